package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturacion-api/internal/domain/entity"
)

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":          "0,00",
		"5.5":        "5,50",
		"999.99":     "999,99",
		"1000":       "1.000,00",
		"1234567.5":  "1.234.567,50",
		"-25000.125": "-25.000,13",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatMoney(decimal.RequireFromString(in)), in)
	}
}

func TestGenerateInvoicePDF_DevuelvePDF(t *testing.T) {
	dir := "Av. Siempre Viva 742"
	creator := int64(7)
	doc := &entity.InvoiceDocument{
		ID:              12,
		Fecha:           time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC),
		CreatorID:       &creator,
		CreatorUsername: "maria",
		Client:          entity.Client{ID: 1, DNI: 30111222, Nombre: "Ana", Apellido: "Pérez", Direccion: &dir},
		Lines: []entity.InvoiceLine{
			{ProductID: 10, Nombre: "Yerba 1kg", Cantidad: 2, Precio: decimal.RequireFromString("5.00")},
			{ProductID: 11, Nombre: "Azúcar 1kg", Cantidad: 1, Precio: decimal.RequireFromString("15.00")},
		},
	}

	b, err := NewMarotoPDFGenerator("facturacion-api").GenerateInvoicePDF(context.Background(), doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF")))
}

func TestGenerateInvoicePDF_SinLineasNiCreador(t *testing.T) {
	doc := &entity.InvoiceDocument{
		ID:              3,
		Fecha:           time.Now(),
		CreatorUsername: entity.CreatorPlaceholder,
		Client:          entity.Client{ID: 2, DNI: 1, Nombre: "Luis", Apellido: "Gómez"},
	}
	b, err := NewMarotoPDFGenerator("").GenerateInvoicePDF(context.Background(), doc)
	require.NoError(t, err)
	assert.NotEmpty(t, b)
}

func TestGenerateInvoicePDF_DocumentoNulo(t *testing.T) {
	_, err := NewMarotoPDFGenerator("").GenerateInvoicePDF(context.Background(), nil)
	assert.Error(t, err)
}
