package adminRoutes

import (
	controllers "tincadia/controllers/admin"
	"tincadia/logger"
	"tincadia/middleware"
	"tincadia/services/forms"
	"tincadia/services/notifications"
	validators "tincadia/validators/admin"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminRoutes sets up the forms and notifications inboxes
func SetupAdminRoutes(app *fiber.App, formsInbox *forms.Inbox, notificationsInbox *notifications.Inbox, log *logger.Logger) {
	adminGroup := app.Group("/admin", middleware.JWTMiddleware, middleware.RequireRole("ADMIN", "SUPER_ADMIN"))

	adminGroup.Get("/forms", validators.FormsList(), controllers.ListForms(formsInbox, log))
	adminGroup.Get("/forms/export", validators.FormsList(), controllers.ExportForms(formsInbox, log))

	adminGroup.Get("/notifications", validators.NotificationsList(), controllers.ListNotifications(notificationsInbox, log))
}
