package controllers

import (
	"tincadia/logger"
	"tincadia/middleware"
	"tincadia/services/access"
	validators "tincadia/validators/checkout"

	"github.com/gofiber/fiber/v2"
)

func resolve(c *fiber.Ctx, resolver *access.Resolver, log *logger.Logger) (*access.Decision, error) {
	reqData, ok := c.Locals("validatedCourse").(*validators.CourseParam)
	if !ok {
		return nil, middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	userID := ""
	if viewer := middleware.CurrentViewer(c); viewer != nil {
		userID = viewer.ID
	}

	decision, err := resolver.Resolve(middleware.OutboundContext(c), reqData.CourseID, userID)
	if err != nil {
		log.Error("course access resolution failed", "course_id", reqData.CourseID, "error", err)
		return nil, middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Failed to load course!", nil)
	}
	return decision, nil
}

// CourseAccess tells the front-end whether to render the player or the paywall
func CourseAccess(resolver *access.Resolver, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		decision, err := resolve(c, resolver, log)
		if decision == nil {
			return err
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Course access resolved!", decision)
	}
}

// CoursePlayer returns the course with every gated lesson locked
func CoursePlayer(resolver *access.Resolver, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		decision, err := resolve(c, resolver, log)
		if decision == nil {
			return err
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Course player fetched successfully!", access.BuildPlayer(decision))
	}
}
