package userProfileRoutes

import (
	userProfileController "tincadia/controllers/userControllers"
	"tincadia/logger"
	"tincadia/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App, subscriptions userProfileController.SubscriptionSource, log *logger.Logger) {
	userGroup := app.Group("/user")

	userGroup.Get("/subscriptions", middleware.JWTMiddleware, userProfileController.MySubscriptions(subscriptions, log))
}
