package controllers

import (
	"bytes"
	"fmt"
	"time"

	"tincadia/logger"
	"tincadia/middleware"
	"tincadia/services/forms"
	"tincadia/services/notifications"
	validators "tincadia/validators/admin"

	"github.com/gofiber/fiber/v2"
)

func formsFilter(q *validators.FormsQuery) forms.Filter {
	return forms.Filter{Type: q.Type, Query: q.Query, From: q.FromT, To: q.ToT}
}

func ListForms(inbox *forms.Inbox, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData, ok := c.Locals("validatedForms").(*validators.FormsQuery)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
		}

		page, err := inbox.List(middleware.OutboundContext(c), formsFilter(reqData), reqData.Page, reqData.Limit)
		if err != nil {
			log.Error("forms inbox fetch failed", "error", err)
			return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Failed to load form submissions!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Form submissions fetched successfully!", page)
	}
}

// ExportForms downloads the filtered inbox as CSV
func ExportForms(inbox *forms.Inbox, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData, ok := c.Locals("validatedForms").(*validators.FormsQuery)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
		}

		var buf bytes.Buffer
		rows, err := inbox.Export(middleware.OutboundContext(c), formsFilter(reqData), &buf)
		if err != nil {
			log.Error("forms export failed", "error", err)
			return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Failed to export form submissions!", nil)
		}

		filename := fmt.Sprintf("formularios-%s.csv", time.Now().Format("2006-01-02"))
		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
		c.Set("X-Total-Count", fmt.Sprint(rows))
		return c.Status(fiber.StatusOK).Send(buf.Bytes())
	}
}

func ListNotifications(inbox *notifications.Inbox, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData, ok := c.Locals("validatedNotifications").(*validators.NotificationsQuery)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
		}

		page, err := inbox.List(middleware.OutboundContext(c), reqData.Category, reqData.UnreadOnly, reqData.Page, reqData.Limit)
		if err != nil {
			log.Error("notifications fetch failed", "error", err)
			return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Failed to load notifications!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Notifications fetched successfully!", page)
	}
}
