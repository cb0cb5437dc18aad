package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/facturacion-api/internal/application/dto"
	"github.com/jhoicas/facturacion-api/internal/domain"
	"github.com/jhoicas/facturacion-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-api/internal/domain/repository"
)

// AddItemUseCase agrega líneas de detalle a una factura y descuenta el stock del producto
// en una sola transacción.
type AddItemUseCase struct {
	txRunner BillingTxRunner
	now      func() time.Time
}

// NewAddItemUseCase construye el caso de uso.
func NewAddItemUseCase(txRunner BillingTxRunner) *AddItemUseCase {
	return &AddItemUseCase{
		txRunner: txRunner,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// AddItem registra la línea al precio de venta vigente del producto y descuenta el stock.
//
// Retorna:
//   - domain.ErrInvalidInput      ids o cantidad no positivos.
//   - domain.ErrNotFound          factura o producto inexistente.
//   - domain.ErrInsufficientStock stock < cantidad (sin efectos).
//   - domain.ErrDuplicate         el producto ya está en la factura.
//   - domain.ErrPersistence       cualquier otra falla; la transacción se revierte.
func (uc *AddItemUseCase) AddItem(ctx context.Context, invoiceID int64, in dto.AddItemRequest) (*entity.LineItem, error) {
	if invoiceID <= 0 || in.ProductoID <= 0 || in.Cantidad <= 0 {
		return nil, domain.ErrInvalidInput
	}

	var item *entity.LineItem
	err := uc.txRunner.RunBilling(ctx, func(productRepo repository.ProductRepository, invoiceRepo repository.InvoiceRepository) error {
		exists, err := invoiceRepo.ExistsForUpdate(ctx, invoiceID)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("factura %d: %w", invoiceID, domain.ErrNotFound)
		}

		// Bloquea la fila del producto: verificación y descuento de stock son una sola operación.
		product, err := productRepo.GetForUpdate(ctx, in.ProductoID)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("producto %d: %w", in.ProductoID, domain.ErrNotFound)
		}
		if product.Stock < in.Cantidad {
			return domain.ErrInsufficientStock
		}

		item = &entity.LineItem{
			InvoiceID: invoiceID,
			ProductID: product.ID,
			Cantidad:  in.Cantidad,
			Precio:    product.PrecioVenta,
			Created:   uc.now(),
		}
		if err := invoiceRepo.CreateLineItem(ctx, item); err != nil {
			return err
		}
		return productRepo.DecrementStock(ctx, product.ID, in.Cantidad)
	})
	if err != nil {
		if isDomainError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: agregar item: %w", domain.ErrPersistence, err)
	}
	return item, nil
}
