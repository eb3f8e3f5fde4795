package adminValidator

import (
	"strings"
	"time"

	"tincadia/middleware"
	"tincadia/validators"

	"github.com/gofiber/fiber/v2"
)

const dateLayout = "2006-01-02"

type FormsQuery struct {
	Type  string     `query:"type" validate:"max=64"`
	Query string     `query:"q" validate:"max=120"`
	From  string     `query:"from"`
	To    string     `query:"to"`
	Page  int        `query:"page" validate:"gte=0,lte=100000"`
	Limit int        `query:"limit" validate:"gte=0,lte=100"`
	FromT *time.Time `query:"-"`
	ToT   *time.Time `query:"-"`
}

type NotificationsQuery struct {
	Category   string `query:"category" validate:"max=64"`
	UnreadOnly bool   `query:"unread"`
	Page       int    `query:"page" validate:"gte=0,lte=100000"`
	Limit      int    `query:"limit" validate:"gte=0,lte=100"`
}

func FormsList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(FormsQuery)

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		errors := validators.Struct(reqData)
		if errors == nil {
			errors = make(map[string]string)
		}

		// Validate date range
		if from := strings.TrimSpace(reqData.From); from != "" {
			t, err := time.Parse(dateLayout, from)
			if err != nil {
				errors["from"] = "From must be a date (YYYY-MM-DD)!"
			} else {
				reqData.FromT = &t
			}
		}
		if to := strings.TrimSpace(reqData.To); to != "" {
			t, err := time.Parse(dateLayout, to)
			if err != nil {
				errors["to"] = "To must be a date (YYYY-MM-DD)!"
			} else {
				reqData.ToT = &t
			}
		}
		if reqData.FromT != nil && reqData.ToT != nil && reqData.ToT.Before(*reqData.FromT) {
			errors["to"] = "To must not be before from!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedForms", reqData)
		return c.Next()
	}
}

func NotificationsList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(NotificationsQuery)

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}
		reqData.Category = strings.ToLower(strings.TrimSpace(reqData.Category))

		if errors := validators.Struct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedNotifications", reqData)
		return c.Next()
	}
}
