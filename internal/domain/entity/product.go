package entity

import "github.com/shopspring/decimal"

// Product representa un artículo del catálogo con su stock disponible.
// Stock nunca se persiste negativo; los precios son NUMERIC(11,2) no negativos.
type Product struct {
	ID           int64
	Nombre       string // único
	Descripcion  string
	Stock        int
	PrecioCompra decimal.Decimal
	PrecioVenta  decimal.Decimal
}
