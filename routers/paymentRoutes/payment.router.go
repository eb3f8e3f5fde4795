package paymentRoutes

import (
	"tincadia/catalog"
	controllers "tincadia/controllers/checkout"
	"tincadia/logger"
	"tincadia/services/checkout"
	validators "tincadia/validators/checkout"

	"github.com/gofiber/fiber/v2"
)

// SetupPaymentRoutes sets up the provider return and acceptance routes. Both are public:
// the provider redirects the browser here without our token.
func SetupPaymentRoutes(app *fiber.App, svc *checkout.Service, acceptance *checkout.AcceptanceProvider, cat *catalog.Catalog, log *logger.Logger) {
	app.Get("/payments/response", validators.PaymentResponse(), controllers.PaymentResponse(svc, cat))
	app.Get("/checkout/acceptance", controllers.Acceptance(acceptance, log))
}
