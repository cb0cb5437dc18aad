package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItem representa una línea de detalle de una factura.
// La clave es (InvoiceID, ProductID); Precio es una copia del precio de venta
// del producto al momento de la venta y no se recalcula.
type LineItem struct {
	InvoiceID int64
	ProductID int64
	Cantidad  int
	Precio    decimal.Decimal
	Created   time.Time
}

// Importe devuelve cantidad × precio.
func (li *LineItem) Importe() decimal.Decimal {
	return li.Precio.Mul(decimal.NewFromInt(int64(li.Cantidad)))
}
