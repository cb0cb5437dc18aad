package billing

import (
	"context"
	"time"

	"github.com/jhoicas/facturacion-api/internal/domain/repository"
)

// DirectInserter crea la factura con un INSERT directo que registra al usuario creador.
type DirectInserter struct {
	tx BillingTxRunner
}

// NewDirectInserter construye el mecanismo principal de creación.
func NewDirectInserter(tx BillingTxRunner) *DirectInserter {
	return &DirectInserter{tx: tx}
}

func (d *DirectInserter) Name() string { return "insert_directo" }

func (d *DirectInserter) InsertInvoice(ctx context.Context, clientID int64, creatorID *int64, fecha time.Time) (int64, error) {
	var id int64
	err := d.tx.RunBilling(ctx, func(_ repository.ProductRepository, invoiceRepo repository.InvoiceRepository) error {
		var err error
		id, err = invoiceRepo.Insert(ctx, clientID, creatorID, fecha)
		return err
	})
	return id, err
}

// RoutineInserter crea la factura a través de la rutina almacenada del esquema heredado.
// La rutina fija la fecha del lado de la base de datos.
type RoutineInserter struct {
	tx BillingTxRunner
}

// NewRoutineInserter construye el mecanismo alternativo de creación.
func NewRoutineInserter(tx BillingTxRunner) *RoutineInserter {
	return &RoutineInserter{tx: tx}
}

func (r *RoutineInserter) Name() string { return "sp_agregar_factura" }

func (r *RoutineInserter) InsertInvoice(ctx context.Context, clientID int64, creatorID *int64, _ time.Time) (int64, error) {
	var id int64
	err := r.tx.RunBilling(ctx, func(_ repository.ProductRepository, invoiceRepo repository.InvoiceRepository) error {
		var err error
		id, err = invoiceRepo.InsertViaRoutine(ctx, clientID, creatorID)
		return err
	})
	return id, err
}
