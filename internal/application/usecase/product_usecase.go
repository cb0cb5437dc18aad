package usecase

import (
	"context"
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/facturacion-api/internal/application/dto"
	"github.com/jhoicas/facturacion-api/internal/domain"
	"github.com/jhoicas/facturacion-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. El stock también baja al facturar (billing.AddItem).
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// List devuelve el catálogo completo.
func (uc *ProductUseCase) List(ctx context.Context) ([]dto.ProductResponse, error) {
	products, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, *toProductResponse(p))
	}
	return out, nil
}

// GetByID obtiene un producto. ErrNotFound si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	p, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// Create valida y persiste un producto. ErrDuplicate si el nombre ya existe.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.ProductRequest) (*dto.ProductResponse, error) {
	p := &entity.Product{}
	if err := applyProductUpdate(p, in); err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByName(ctx, p.Nombre)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, wrapRepoError(err)
	}
	return toProductResponse(p), nil
}

// Update reemplaza los datos del producto.
func (uc *ProductUseCase) Update(ctx context.Context, id int64, in dto.ProductRequest) (*dto.ProductResponse, error) {
	p, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyProductUpdate(p, in); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, wrapRepoError(err)
	}
	return toProductResponse(p), nil
}

// Delete elimina un producto. ErrConflict si figura en alguna factura.
func (uc *ProductUseCase) Delete(ctx context.Context, id int64) error {
	if _, err := uc.find(ctx, id); err != nil {
		return err
	}
	return wrapRepoError(uc.repo.Delete(ctx, id))
}

func (uc *ProductUseCase) find(ctx context.Context, id int64) (*entity.Product, error) {
	if id <= 0 {
		return nil, domain.ErrNotFound
	}
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// applyProductUpdate copia campo por campo los valores editables; no toca el ID.
func applyProductUpdate(p *entity.Product, in dto.ProductRequest) error {
	nombre, ok := requiredText(in.Nombre, 60)
	if !ok {
		return fmt.Errorf("%w: nombre", domain.ErrInvalidInput)
	}
	descripcion, _ := requiredText(in.Descripcion, 100)
	if len([]rune(descripcion)) > 100 {
		return fmt.Errorf("%w: descripcion", domain.ErrInvalidInput)
	}
	if in.Stock < 0 || in.Stock > math.MaxInt32 {
		return fmt.Errorf("%w: stock fuera de rango", domain.ErrInvalidInput)
	}
	compra, venta := in.PrecioCompra.Round(2), in.PrecioVenta.Round(2)
	if !validPrice(compra) || !validPrice(venta) {
		return fmt.Errorf("%w: precio fuera de rango", domain.ErrInvalidInput)
	}
	p.Nombre = nombre
	p.Descripcion = descripcion
	p.Stock = in.Stock
	p.PrecioCompra = compra
	p.PrecioVenta = venta
	return nil
}

// maxPrice primer valor que no entra en NUMERIC(11,2).
var maxPrice = decimal.New(1, 9)

func validPrice(d decimal.Decimal) bool {
	return !d.IsNegative() && d.LessThan(maxPrice)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:           p.ID,
		Nombre:       p.Nombre,
		Descripcion:  p.Descripcion,
		Stock:        p.Stock,
		PrecioCompra: p.PrecioCompra,
		PrecioVenta:  p.PrecioVenta,
	}
}
