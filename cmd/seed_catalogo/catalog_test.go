package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestReadCatalog_UTF8(t *testing.T) {
	in := "nombre,descripcion,stock,precio_compra,precio_venta\n" +
		"Yerba,Paquete 1kg,10,8.00,12.50\n" +
		"Azúcar, Bolsa,5,1.10,2.00\n"

	rows, err := readCatalog(strings.NewReader(in), catalogOptions{})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Yerba", rows[0].Nombre)
	assert.Equal(t, 10, rows[0].Stock)
	assert.True(t, rows[0].PrecioVenta.Equal(decimal.RequireFromString("12.50")))
	assert.Equal(t, "Bolsa", rows[1].Descripcion)
}

func TestReadCatalog_Latin1ConComaDecimal(t *testing.T) {
	utf := "nombre;descripcion;stock;precio_compra;precio_venta\nCafé;Molido;3;4,25;6,90\n"
	latin, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(utf))
	require.NoError(t, err)

	rows, err := readCatalog(bytes.NewReader(latin), catalogOptions{Latin1: true, Separator: ';'})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Café", rows[0].Nombre)
	assert.True(t, rows[0].PrecioCompra.Equal(decimal.RequireFromString("4.25")))
}

func TestParsePrice_Formatos(t *testing.T) {
	cases := map[string]string{
		"12.50":        "12.50",
		"12,50":        "12.50",
		" 1.234,50 ":   "1234.50",
		"1.234.567,5":  "1234567.5",
		"999999999,99": "999999999.99",
	}
	for in, want := range cases {
		got, err := parsePrice(in)
		require.NoError(t, err, in)
		assert.True(t, got.Equal(decimal.RequireFromString(want)), "%q -> %s", in, got)
	}

	_, err := parsePrice("doce")
	assert.Error(t, err)
}

func TestReadCatalog_Errores(t *testing.T) {
	_, err := readCatalog(strings.NewReader("h1,h2,h3,h4,h5\nYerba,x,diez,1,2\n"), catalogOptions{})
	assert.ErrorContains(t, err, "línea 2")

	_, err = readCatalog(strings.NewReader("h1,h2,h3,h4,h5\nYerba,x,1,2\n"), catalogOptions{})
	assert.Error(t, err)

	rows, err := readCatalog(strings.NewReader(""), catalogOptions{})
	require.NoError(t, err)
	assert.Empty(t, rows)
}
