package dto

import "github.com/shopspring/decimal"

// ProductRequest body para POST/PUT /productos.
type ProductRequest struct {
	Nombre       string          `json:"nombre"`
	Descripcion  string          `json:"descripcion"`
	Stock        int             `json:"stock"`
	PrecioCompra decimal.Decimal `json:"precio_compra"`
	PrecioVenta  decimal.Decimal `json:"precio_venta"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID           int64           `json:"id"`
	Nombre       string          `json:"nombre"`
	Descripcion  string          `json:"descripcion"`
	Stock        int             `json:"stock"`
	PrecioCompra decimal.Decimal `json:"precio_compra"`
	PrecioVenta  decimal.Decimal `json:"precio_venta"`
}
