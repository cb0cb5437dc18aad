package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/facturacion-api/internal/application/billing"
	"github.com/jhoicas/facturacion-api/internal/application/dto"
	"github.com/jhoicas/facturacion-api/pkg/logger"
)

// InvoiceHandler maneja las peticiones HTTP de facturación (protegido).
type InvoiceHandler struct {
	create  *billing.CreateInvoiceUseCase
	addItem *billing.AddItemUseCase
	query   *billing.InvoiceQueryUseCase
	pdf     *billing.PDFUseCase
	log     *logger.Logger
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(
	create *billing.CreateInvoiceUseCase,
	addItem *billing.AddItemUseCase,
	query *billing.InvoiceQueryUseCase,
	pdf *billing.PDFUseCase,
	log *logger.Logger,
) *InvoiceHandler {
	return &InvoiceHandler{create: create, addItem: addItem, query: query, pdf: pdf, log: log}
}

// Create godoc
// @Summary      Crear factura para un cliente
// @Tags         facturas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateInvoiceRequest  true  "cliente_id"
// @Success      201   {object}  dto.InvoiceCreatedResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /facturas [post]
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.create.CreateInvoice(c.UserContext(), GetCaller(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List GET /facturas: todas para admin, propias para el resto.
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	out, err := h.query.List(c.UserContext(), GetCaller(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// AddItem godoc
// @Summary      Agregar producto a la factura (descuenta stock)
// @Tags         facturas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int                 true  "factura"
// @Param        body  body  dto.AddItemRequest  true  "producto_id, cantidad"
// @Success      201   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /facturas/{id}/items [post]
func (h *InvoiceHandler) AddItem(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}
	var in dto.AddItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if _, err := h.addItem.AddItem(c.UserContext(), id, in); err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{Mensaje: "Producto agregado a la factura"})
}

// Detail GET /facturas/:id/detalle
func (h *InvoiceHandler) Detail(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}
	out, err := h.query.Detail(c.UserContext(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// SalesByClient GET /facturas/reporte/ventas-por-cliente (solo admin).
func (h *InvoiceHandler) SalesByClient(c *fiber.Ctx) error {
	out, err := h.query.SalesByClient(c.UserContext(), GetCaller(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// PDF godoc
// @Summary      Descargar la factura en PDF
// @Tags         facturas
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id  path  int  true  "factura"
// @Success      200
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /facturas/{id}/pdf [get]
func (h *InvoiceHandler) PDF(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}
	b, filename, err := h.pdf.DownloadInvoicePDF(c.UserContext(), GetCaller(c), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%s", filename))
	return c.Send(b)
}
