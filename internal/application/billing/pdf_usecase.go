package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/facturacion-api/internal/domain"
	"github.com/jhoicas/facturacion-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-api/internal/domain/repository"
)

// PDFUseCase genera la representación gráfica (PDF) de una factura.
type PDFUseCase struct {
	invoiceRepo repository.InvoiceRepository
	generator   InvoicePDFGenerator
}

// NewPDFUseCase construye el caso de uso inyectando sus dependencias.
func NewPDFUseCase(invoiceRepo repository.InvoiceRepository, generator InvoicePDFGenerator) *PDFUseCase {
	return &PDFUseCase{invoiceRepo: invoiceRepo, generator: generator}
}

// DownloadInvoicePDF arma la vista completa de la factura y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si la factura no existe.
//   - domain.ErrForbidden        si el caller no es admin ni el creador de la factura.
func (uc *PDFUseCase) DownloadInvoicePDF(
	ctx context.Context,
	caller *entity.User,
	invoiceID int64,
) (pdfBytes []byte, filename string, err error) {
	if caller == nil {
		return nil, "", domain.ErrUnauthorized
	}
	if invoiceID <= 0 {
		return nil, "", domain.ErrInvalidInput
	}

	doc, err := uc.invoiceRepo.GetDocument(ctx, invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("%w: pdf: obtener factura: %w", domain.ErrPersistence, err)
	}
	if doc == nil {
		return nil, "", domain.ErrNotFound
	}
	if !caller.IsAdmin() && !doc.OwnedBy(caller.ID) {
		return nil, "", domain.ErrForbidden
	}

	pdfBytes, err = uc.generator.GenerateInvoicePDF(ctx, doc)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("factura_%d.pdf", doc.ID), nil
}
