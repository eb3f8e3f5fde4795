package controllers

import (
	"context"
	"time"

	"tincadia/logger"
	"tincadia/middleware"
	"tincadia/models"

	"github.com/gofiber/fiber/v2"
)

type SubscriptionSource interface {
	ListSubscriptions(ctx context.Context, userID string) ([]models.Subscription, error)
}

type subscriptionView struct {
	models.Subscription
	Active bool `json:"active"`
}

// MySubscriptions lists the viewer's subscriptions with their effective active flag
func MySubscriptions(source SubscriptionSource, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		viewer := middleware.CurrentViewer(c)
		if viewer == nil {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		}

		subs, err := source.ListSubscriptions(middleware.OutboundContext(c), viewer.ID)
		if err != nil {
			log.Error("subscriptions fetch failed", "user_id", viewer.ID, "error", err)
			return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Failed to load subscriptions!", nil)
		}

		now := time.Now()
		out := make([]subscriptionView, 0, len(subs))
		for _, s := range subs {
			out = append(out, subscriptionView{Subscription: s, Active: s.IsActive(now)})
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Subscriptions fetched successfully!", out)
	}
}
