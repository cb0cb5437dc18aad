package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest body para POST /facturas.
type CreateInvoiceRequest struct {
	ClienteID int64 `json:"cliente_id"`
}

// InvoiceCreatedResponse id de la factura recién creada.
type InvoiceCreatedResponse struct {
	FacturaID int64 `json:"factura_id"`
}

// AddItemRequest body para POST /facturas/:id/items.
type AddItemRequest struct {
	ProductoID int64 `json:"producto_id"`
	Cantidad   int   `json:"cantidad"`
}

// InvoiceSummaryResponse fila de GET /facturas.
type InvoiceSummaryResponse struct {
	ID              int64     `json:"id"`
	Fecha           time.Time `json:"fecha"`
	ClienteNombre   *string   `json:"cliente_nombre"`
	ClienteApellido *string   `json:"cliente_apellido"`
	CreadorUsername *string   `json:"creador_username"`
}

// InvoiceLineResponse línea de GET /facturas/:id/detalle.
type InvoiceLineResponse struct {
	ProductoID int64           `json:"producto_id"`
	Nombre     string          `json:"nombre"`
	Cantidad   int             `json:"cantidad"`
	Precio     decimal.Decimal `json:"precio"`
	Importe    decimal.Decimal `json:"importe"`
}

// ClientSalesResponse fila del reporte de ventas por cliente.
type ClientSalesResponse struct {
	ClienteID     int64           `json:"cliente_id"`
	Nombre        string          `json:"nombre"`
	Apellido      string          `json:"apellido"`
	TotalComprado decimal.Decimal `json:"total_comprado"`
}
