package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/facturacion-api/internal/application/dto"
)

type catalogOptions struct {
	Latin1    bool
	Separator rune
}

// readCatalog parsea el CSV del catálogo. Acepta precios con coma decimal ("12,50").
func readCatalog(r io.Reader, opts catalogOptions) ([]dto.ProductRequest, error) {
	if opts.Latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	cr := csv.NewReader(r)
	if opts.Separator != 0 {
		cr.Comma = opts.Separator
	}
	cr.FieldsPerRecord = 5
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	out := make([]dto.ProductRequest, 0, len(records)-1)
	for i, rec := range records[1:] {
		line := i + 2
		stock, err := strconv.Atoi(strings.TrimSpace(rec[2]))
		if err != nil {
			return nil, fmt.Errorf("línea %d: stock %q: %w", line, rec[2], err)
		}
		compra, err := parsePrice(rec[3])
		if err != nil {
			return nil, fmt.Errorf("línea %d: precio_compra: %w", line, err)
		}
		venta, err := parsePrice(rec[4])
		if err != nil {
			return nil, fmt.Errorf("línea %d: precio_venta: %w", line, err)
		}
		out = append(out, dto.ProductRequest{
			Nombre:       strings.TrimSpace(rec[0]),
			Descripcion:  strings.TrimSpace(rec[1]),
			Stock:        stock,
			PrecioCompra: compra,
			PrecioVenta:  venta,
		})
	}
	return out, nil
}

// parsePrice acepta "1234.50" y el formato de planilla "1.234,50".
func parsePrice(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	return decimal.NewFromString(s)
}
