package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/notas-pagar/internal/application/analytics"
	"github.com/jhoicas/notas-pagar/internal/application/dto"
	"github.com/jhoicas/notas-pagar/internal/application/payables"
	"github.com/jhoicas/notas-pagar/internal/infrastructure/export"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Repo      *payables.InvoiceRepository
	Importer  *payables.Importer
	Dashboard *analytics.DashboardUseCase
	Report    *analytics.ReportUseCase
	Exporter  *export.Exporter
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(dto.HealthResponse{
			Status:    "ok",
			Suppliers: len(deps.Repo.Suppliers()),
			Invoices:  len(deps.Repo.Invoices()),
		})
	})

	api := app.Group("/api")

	// Suppliers
	suppliers := api.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.Repo)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Patch("/:id", supplierHandler.Update)

	// Invoices
	invoices := api.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.Repo)
	invoices.Get("/", invoiceHandler.List)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Patch("/:id", invoiceHandler.Update)
	invoices.Delete("/:id", invoiceHandler.Delete)

	// Pagos, ítems y anexos de una nota
	children := NewInvoiceChildrenHandler(deps.Repo)
	invoices.Post("/:id/payments", children.AddPayment)
	invoices.Put("/:id/payments/:paymentId", children.EditPayment)
	invoices.Patch("/:id/payments/:paymentId", children.EditPayment)
	invoices.Delete("/:id/payments/:paymentId", children.DeletePayment)
	invoices.Post("/:id/items", children.AddItem)
	invoices.Put("/:id/items/:itemId", children.EditItem)
	invoices.Patch("/:id/items/:itemId", children.EditItem)
	invoices.Delete("/:id/items/:itemId", children.DeleteItem)
	invoices.Post("/:id/attachments", children.AddAttachment)
	invoices.Delete("/:id/attachments/:attachmentId", children.DeleteAttachment)

	// Importación de XML
	importHandler := NewImportHandler(deps.Importer)
	api.Post("/imports", importHandler.Import)

	// Panel y reportes
	reportHandler := NewReportHandler(deps.Dashboard, deps.Report, deps.Exporter, deps.Repo.Today)
	api.Get("/dashboard", reportHandler.Dashboard)
	api.Get("/reports", reportHandler.Report)
	api.Get("/reports/export.:format", reportHandler.Export)
}
