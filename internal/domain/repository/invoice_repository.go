package repository

import (
	"context"
	"time"

	"github.com/jhoicas/facturacion-api/internal/domain/entity"
)

// InvoiceRepository define el puerto de persistencia para facturas y su detalle.
type InvoiceRepository interface {
	// Insert crea la cabecera con INSERT directo y devuelve el id asignado.
	Insert(ctx context.Context, clientID int64, creatorID *int64, fecha time.Time) (int64, error)
	// InsertViaRoutine crea la cabecera mediante la rutina almacenada sp_agregar_factura.
	InsertViaRoutine(ctx context.Context, clientID int64, creatorID *int64) (int64, error)
	// ExistsForUpdate indica si la factura existe y bloquea su fila (SELECT FOR UPDATE).
	ExistsForUpdate(ctx context.Context, id int64) (bool, error)
	Exists(ctx context.Context, id int64) (bool, error)
	CreateLineItem(ctx context.Context, item *entity.LineItem) error
	ListAll(ctx context.Context) ([]*entity.InvoiceSummary, error)
	ListByCreator(ctx context.Context, userID int64) ([]*entity.InvoiceSummary, error)
	GetLines(ctx context.Context, invoiceID int64) ([]entity.InvoiceLine, error)
	SalesByClient(ctx context.Context) ([]*entity.ClientSales, error)
	// GetDocument devuelve nil si la factura no existe.
	GetDocument(ctx context.Context, invoiceID int64) (*entity.InvoiceDocument, error)
}
