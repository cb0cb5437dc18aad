package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/facturacion-api/internal/application/dto"
	"github.com/jhoicas/facturacion-api/internal/domain"
	"github.com/jhoicas/facturacion-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-api/internal/domain/repository"
)

// InvoiceQueryUseCase consultas de solo lectura sobre facturas: listado por rol,
// detalle y reporte de ventas por cliente.
type InvoiceQueryUseCase struct {
	invoiceRepo repository.InvoiceRepository
}

// NewInvoiceQueryUseCase construye el caso de uso.
func NewInvoiceQueryUseCase(invoiceRepo repository.InvoiceRepository) *InvoiceQueryUseCase {
	return &InvoiceQueryUseCase{invoiceRepo: invoiceRepo}
}

// List devuelve todas las facturas si el caller es admin; si no, solo las que creó.
// El filtro se aplica en la consulta, nunca sobre filas ya leídas.
func (uc *InvoiceQueryUseCase) List(ctx context.Context, caller *entity.User) ([]dto.InvoiceSummaryResponse, error) {
	if caller == nil {
		return nil, domain.ErrUnauthorized
	}
	var (
		rows []*entity.InvoiceSummary
		err  error
	)
	if caller.IsAdmin() {
		rows, err = uc.invoiceRepo.ListAll(ctx)
	} else {
		rows, err = uc.invoiceRepo.ListByCreator(ctx, caller.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: listar facturas: %w", domain.ErrPersistence, err)
	}
	out := make([]dto.InvoiceSummaryResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.InvoiceSummaryResponse{
			ID:              r.ID,
			Fecha:           r.Fecha,
			ClienteNombre:   r.ClienteNombre,
			ClienteApellido: r.ClienteApellido,
			CreadorUsername: r.CreadorUsername,
		})
	}
	return out, nil
}

// Detail devuelve las líneas de la factura con el nombre del producto y su importe.
// Factura inexistente -> ErrNotFound; factura sin líneas -> lista vacía.
func (uc *InvoiceQueryUseCase) Detail(ctx context.Context, invoiceID int64) ([]dto.InvoiceLineResponse, error) {
	if invoiceID <= 0 {
		return nil, domain.ErrInvalidInput
	}
	exists, err := uc.invoiceRepo.Exists(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("%w: buscar factura: %w", domain.ErrPersistence, err)
	}
	if !exists {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.invoiceRepo.GetLines(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("%w: detalle de factura: %w", domain.ErrPersistence, err)
	}
	out := make([]dto.InvoiceLineResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, dto.InvoiceLineResponse{
			ProductoID: l.ProductID,
			Nombre:     l.Nombre,
			Cantidad:   l.Cantidad,
			Precio:     l.Precio,
			Importe:    l.Importe(),
		})
	}
	return out, nil
}

// SalesByClient total comprado por cliente, de mayor a menor. Solo admin.
func (uc *InvoiceQueryUseCase) SalesByClient(ctx context.Context, caller *entity.User) ([]dto.ClientSalesResponse, error) {
	if caller == nil {
		return nil, domain.ErrUnauthorized
	}
	if !caller.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	rows, err := uc.invoiceRepo.SalesByClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: reporte de ventas: %w", domain.ErrPersistence, err)
	}
	out := make([]dto.ClientSalesResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ClientSalesResponse{
			ClienteID:     r.ClientID,
			Nombre:        r.Nombre,
			Apellido:      r.Apellido,
			TotalComprado: r.TotalComprado,
		})
	}
	return out, nil
}
