// seed_catalogo carga productos desde un CSV exportado de una planilla.
//
// Uso: go run ./cmd/seed_catalogo [-latin1] [-sep ';'] catalogo.csv
//
// Columnas: nombre, descripcion, stock, precio_compra, precio_venta (la primera fila es encabezado).
// Los productos cuyo nombre ya existe se omiten.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/facturacion-api/internal/application/usecase"
	"github.com/jhoicas/facturacion-api/internal/domain"
	"github.com/jhoicas/facturacion-api/internal/infrastructure/postgres"
	"github.com/jhoicas/facturacion-api/pkg/config"
	"github.com/jhoicas/facturacion-api/pkg/logger"
)

func main() {
	latin1 := flag.Bool("latin1", false, "el archivo está codificado en ISO-8859-1")
	sep := flag.String("sep", ",", "separador de columnas")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "uso: seed_catalogo [-latin1] [-sep ';'] catalogo.csv")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		log.Fatal().Err(err).Msg("abrir CSV")
	}
	defer f.Close()

	opts := catalogOptions{Latin1: *latin1}
	if r := []rune(*sep); len(r) > 0 {
		opts.Separator = r[0]
	}
	rows, err := readCatalog(f, opts)
	if err != nil {
		log.Fatal().Err(err).Msg("leer CSV")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	uc := usecase.NewProductUseCase(postgres.NewProductRepository(pool))
	var creados, omitidos int
	for _, in := range rows {
		_, err := uc.Create(ctx, in)
		switch {
		case err == nil:
			creados++
		case errors.Is(err, domain.ErrDuplicate):
			omitidos++
		default:
			log.Fatal().Err(err).Str("producto", in.Nombre).Msg("crear producto")
		}
	}
	log.Info().Int("creados", creados).Int("omitidos", omitidos).Msg("catálogo cargado")
}
