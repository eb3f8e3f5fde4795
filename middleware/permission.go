package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// RequireRole returns a middleware that only lets through viewers holding one of the roles.
// It must run after JWTMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[strings.ToUpper(r)] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		viewer := CurrentViewer(c)
		if viewer == nil {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized: User ID not found", nil)
		}
		if _, ok := allowed[viewer.Role]; !ok {
			return JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource!", nil)
		}
		return c.Next()
	}
}
