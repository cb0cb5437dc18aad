package billing

import (
	"context"
	"time"

	"github.com/jhoicas/facturacion-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-api/internal/domain/repository"
)

// BillingTxRunner ejecuta una función dentro de una transacción con repos de productos y facturas
// atados a la misma conexión. Si fn retorna error se hace rollback de todo.
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		invoiceRepo repository.InvoiceRepository,
	) error) error
}

// InvoiceInserter es un mecanismo de creación de la cabecera de factura.
// Cada implementación es transaccional: o la fila queda visible con su id, o no queda nada.
type InvoiceInserter interface {
	Name() string
	InsertInvoice(ctx context.Context, clientID int64, creatorID *int64, fecha time.Time) (int64, error)
}

// InvoicePDFGenerator genera la representación gráfica de una factura.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, doc *entity.InvoiceDocument) ([]byte, error)
}
