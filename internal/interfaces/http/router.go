package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Facturacion-api/internal/application/billing"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Orchestrator *billing.InkassoOrchestrator
	CompanyUC    *billing.CompanyUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Invoices: envío a Inkassogram e inspección de estado (protegido)
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.Orchestrator)
	invoices.Post("/inkasso", invoiceHandler.SendToInkasso)
	invoices.Post("/:id/inkasso", invoiceHandler.SendOneToInkasso)
	invoices.Get("/:id", invoiceHandler.GetByID)

	// Companies: configuración Inkassogram (protegido)
	companies := protected.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Put("/:id/inkasso", companyHandler.UpdateInkassoSettings)
}
