package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice representa la cabecera de una factura. Se crea una sola vez y no se modifica;
// solo acumula líneas de detalle.
type Invoice struct {
	ID        int64
	ClientID  int64
	Fecha     time.Time
	CreatorID *int64 // nulo en facturas anteriores al registro de creador
}

// InvoiceSummary fila del listado de facturas (con nombres resueltos).
type InvoiceSummary struct {
	ID              int64
	Fecha           time.Time
	ClienteNombre   *string
	ClienteApellido *string
	CreadorUsername *string
}

// InvoiceLine línea de detalle unida con el nombre del producto.
type InvoiceLine struct {
	ProductID int64
	Nombre    string
	Cantidad  int
	Precio    decimal.Decimal
}

// Importe devuelve cantidad × precio.
func (l InvoiceLine) Importe() decimal.Decimal {
	return l.Precio.Mul(decimal.NewFromInt(int64(l.Cantidad)))
}

// ClientSales total comprado por un cliente (reporte de ventas).
type ClientSales struct {
	ClientID      int64
	Nombre        string
	Apellido      string
	TotalComprado decimal.Decimal
}

// CreatorPlaceholder se muestra cuando la factura no tiene creador registrado.
const CreatorPlaceholder = "N/A"

// InvoiceDocument vista desnormalizada de una factura para su representación en PDF.
type InvoiceDocument struct {
	ID              int64
	Fecha           time.Time
	CreatorID       *int64
	CreatorUsername string // CreatorPlaceholder si no hay creador
	Client          Client
	Lines           []InvoiceLine
}

// Total suma los importes de todas las líneas.
func (d *InvoiceDocument) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range d.Lines {
		total = total.Add(l.Importe())
	}
	return total
}

// OwnedBy indica si la factura fue creada por el usuario indicado.
func (d *InvoiceDocument) OwnedBy(userID int64) bool {
	return d.CreatorID != nil && *d.CreatorID == userID
}
