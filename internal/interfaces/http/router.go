package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/taff-facture/internal/application/billing"
	"github.com/jhoicas/taff-facture/internal/application/view"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	InvoiceUC *billing.InvoiceUseCase
	Pages     *view.Pages
}

// Router registra las rutas de la API y de las páginas.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Invoices
	invoices := api.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC)
	invoices.Get("/", invoiceHandler.List)
	invoices.Post("/summary", invoiceHandler.Summarize)
	invoices.Post("/export", invoiceHandler.ExportPayload)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Post("/:id/export", invoiceHandler.Export)

	// Páginas HTML
	if deps.Pages != nil {
		pageHandler := NewPageHandler(deps.InvoiceUC, deps.Pages)
		app.Get("/", pageHandler.List)
		app.Get("/invoice/:id", pageHandler.Document)
	}
}
