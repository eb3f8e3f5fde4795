package middleware

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tincadia/clients/backend"
	"tincadia/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// Viewer is the authenticated caller, as carried by the backend-issued JWT
type Viewer struct {
	ID    string
	Name  string
	Email string
	Role  string
	Token string // raw bearer token, forwarded to the backend API
}

const viewerKey = "viewer"

// GenerateJWT generates a token with the same claims the backend issues
func GenerateJWT(userID, name, role, email string) (string, error) {
	claims := jwt.MapClaims{
		"userId": userID,
		"name":   name,
		"role":   role,
		"email":  email,
		"iat":    time.Now().Unix(),
		"exp":    time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.AppConfig.JWTKey))
}

// JWTMiddleware is a middleware to check for valid JWT token in the request
func JWTMiddleware(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Missing or invalid Authorization header", nil)
	}

	viewer, msg := parseViewer(authHeader)
	if viewer == nil {
		return JsonResponse(c, fiber.StatusUnauthorized, false, msg, nil)
	}

	c.Locals(viewerKey, viewer)
	return c.Next()
}

// OptionalJWTMiddleware attaches the viewer when a valid token is present and
// lets anonymous requests through untouched. An invalid token is treated as anonymous.
func OptionalJWTMiddleware(c *fiber.Ctx) error {
	if authHeader := c.Get("Authorization"); authHeader != "" {
		if viewer, _ := parseViewer(authHeader); viewer != nil {
			c.Locals(viewerKey, viewer)
		}
	}
	return c.Next()
}

// CurrentViewer returns the viewer stored by the JWT middlewares, or nil
func CurrentViewer(c *fiber.Ctx) *Viewer {
	v, _ := c.Locals(viewerKey).(*Viewer)
	return v
}

// OutboundContext is the request context carrying the viewer's bearer token for backend calls
func OutboundContext(c *fiber.Ctx) context.Context {
	ctx := c.UserContext()
	if v := CurrentViewer(c); v != nil && v.Token != "" {
		return backend.WithToken(ctx, v.Token)
	}
	return ctx
}

func parseViewer(authHeader string) (*Viewer, string) {
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return nil, "Invalid Authorization header format"
	}
	tokenString := authHeader[len("Bearer "):]

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.AppConfig.JWTKey), nil
	})
	if err != nil || !token.Valid {
		return nil, "Invalid or expired token"
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, "Invalid token payload"
	}

	// The backend has issued both numeric and uuid user ids over time.
	userID := claimString(claims, "userId")
	if userID == "" {
		userID = claimString(claims, "sub")
	}
	if userID == "" {
		return nil, "Invalid token payload"
	}

	return &Viewer{
		ID:    userID,
		Name:  claimString(claims, "name"),
		Email: claimString(claims, "email"),
		Role:  strings.ToUpper(claimString(claims, "role")),
		Token: tokenString,
	}, ""
}

func claimString(claims jwt.MapClaims, key string) string {
	switch v := claims[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return fmt.Sprintf("%.0f", v)
	default:
		return ""
	}
}

func JsonResponse(c *fiber.Ctx, statusCode int, status bool, message string, data interface{}) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

func ValidationErrorResponse(c *fiber.Ctx, errors map[string]string) error {
	return JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Validation failed!", errors)
}
