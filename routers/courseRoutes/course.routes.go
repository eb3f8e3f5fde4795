package courseRoutes

import (
	checkoutControllers "tincadia/controllers/checkout"
	controllers "tincadia/controllers/course"
	"tincadia/logger"
	"tincadia/middleware"
	"tincadia/services/access"
	"tincadia/services/checkout"
	validators "tincadia/validators/checkout"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up the course access and purchase routes
func SetupCourseRoutes(app *fiber.App, resolver *access.Resolver, svc *checkout.Service, log *logger.Logger) {
	courseGroup := app.Group("/course")

	// Access resolution works for anonymous visitors too
	courseGroup.Get("/:id/access", middleware.OptionalJWTMiddleware, validators.Course(), controllers.CourseAccess(resolver, log))
	courseGroup.Get("/:id/player", middleware.OptionalJWTMiddleware, validators.Course(), controllers.CoursePlayer(resolver, log))

	courseGroup.Post("/:id/purchase", middleware.JWTMiddleware, validators.Purchase(), checkoutControllers.PurchaseCourse(svc, log))
}
