package checkoutValidator

import (
	"strings"

	"tincadia/middleware"
	"tincadia/validators"

	"github.com/gofiber/fiber/v2"
)

type CourseParam struct {
	CourseID string `validate:"required,max=64"`
}

type PurchaseRequest struct {
	CourseID     string `json:"-" validate:"required,max=64"`
	BillingCycle string `json:"billingCycle" validate:"omitempty,oneof=MONTHLY YEARLY"`
}

type PaymentResponseQuery struct {
	ID     string `query:"id" validate:"max=120"`
	Status string `query:"status" validate:"max=32"`
	Reason string `query:"reason"`
}

func Course() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := &CourseParam{CourseID: strings.TrimSpace(c.Params("id"))}

		if errors := validators.Struct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

func Purchase() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(PurchaseRequest)

		if len(c.Body()) > 0 {
			if err := c.BodyParser(reqData); err != nil {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
			}
		}
		reqData.CourseID = strings.TrimSpace(c.Params("id"))
		reqData.BillingCycle = strings.ToUpper(strings.TrimSpace(reqData.BillingCycle))

		if errors := validators.Struct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedPurchase", reqData)
		return c.Next()
	}
}

func PaymentResponse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(PaymentResponseQuery)

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		if errors := validators.Struct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedPaymentResponse", reqData)
		return c.Next()
	}
}
