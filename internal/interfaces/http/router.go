package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/facturacion-api/internal/application/auth"
	"github.com/jhoicas/facturacion-api/internal/application/billing"
	"github.com/jhoicas/facturacion-api/internal/application/usecase"
	"github.com/jhoicas/facturacion-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	ClientUC      *usecase.ClientUseCase
	ProductUC     *usecase.ProductUseCase
	CreateInvoice *billing.CreateInvoiceUseCase
	AddItem       *billing.AddItemUseCase
	InvoiceQuery  *billing.InvoiceQueryUseCase
	InvoicePDF    *billing.PDFUseCase
	Logger        *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"mensaje": "API de facturación"})
	})

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, log)
	app.Post("/token", authHandler.Token)
	app.Post("/usuarios", authHandler.Register)

	requireAuth := AuthMiddleware(deps.AuthUC, log)

	clients := app.Group("/clientes", requireAuth)
	clientHandler := NewClientHandler(deps.ClientUC, log)
	clients.Get("/", clientHandler.List)
	clients.Post("/", clientHandler.Create)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Put("/:id", clientHandler.Update)
	clients.Delete("/:id", clientHandler.Delete)

	products := app.Group("/productos", requireAuth)
	productHandler := NewProductHandler(deps.ProductUC, log)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	invoices := app.Group("/facturas", requireAuth)
	invoiceHandler := NewInvoiceHandler(deps.CreateInvoice, deps.AddItem, deps.InvoiceQuery, deps.InvoicePDF, log)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/reporte/ventas-por-cliente", RequireRole(entity.RoleAdmin), invoiceHandler.SalesByClient)
	invoices.Post("/:id/items", invoiceHandler.AddItem)
	invoices.Get("/:id/detalle", invoiceHandler.Detail)
	invoices.Get("/:id/pdf", invoiceHandler.PDF)
}
