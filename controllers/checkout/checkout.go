package controllers

import (
	"errors"

	"tincadia/catalog"
	"tincadia/logger"
	"tincadia/middleware"
	"tincadia/models"
	"tincadia/services/checkout"
	validators "tincadia/validators/checkout"

	"github.com/gofiber/fiber/v2"
)

// PurchaseCourse opens a payment for the authenticated viewer and returns how to reach the provider
func PurchaseCourse(svc *checkout.Service, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		viewer := middleware.CurrentViewer(c)
		if viewer == nil {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		}

		reqData, ok := c.Locals("validatedPurchase").(*validators.PurchaseRequest)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
		}

		dispatch, err := svc.InitiateCoursePurchase(middleware.OutboundContext(c), checkout.PurchaseRequest{
			UserID:       viewer.ID,
			Email:        viewer.Email,
			CourseID:     reqData.CourseID,
			BillingCycle: reqData.BillingCycle,
		})
		switch {
		case errors.Is(err, checkout.ErrMissingBuyer):
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Your account has no email address!", nil)
		case err != nil:
			log.Error("payment initiation failed", "course_id", reqData.CourseID, "user_id", viewer.ID, "error", err)
			return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Could not start the payment. Please try again.", nil)
		}

		return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment initiated successfully!", dispatch)
	}
}

type paymentResponse struct {
	checkout.Result
	Label string `json:"label"`
	Color string `json:"color"`
}

// PaymentResponse reconciles the provider redirect into the state the landing page shows
func PaymentResponse(svc *checkout.Service, cat *catalog.Catalog) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData, ok := c.Locals("validatedPaymentResponse").(*validators.PaymentResponseQuery)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
		}

		result := svc.Reconcile(c.UserContext(), checkout.ResponseParams{
			ID:     reqData.ID,
			Status: reqData.Status,
			Reason: reqData.Reason,
		})

		out := paymentResponse{Result: result}
		if style, ok := cat.StatusStyle(models.TransactionStatus(result.State)); ok {
			out.Label = style.Label
			out.Color = style.Color
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment status resolved!", out)
	}
}

// Acceptance returns the provider's presigned acceptance token
func Acceptance(provider *checkout.AcceptanceProvider, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		acceptance, err := provider.Get(c.UserContext())
		if err != nil {
			log.Error("acceptance token fetch failed", "error", err)
			return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Failed to load payment terms!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Acceptance token fetched successfully!", acceptance)
	}
}
