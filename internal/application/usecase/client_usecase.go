package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/facturacion-api/internal/application/dto"
	"github.com/jhoicas/facturacion-api/internal/domain"
	"github.com/jhoicas/facturacion-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-api/internal/domain/repository"
)

// ClientUseCase casos de uso CRUD para clientes.
type ClientUseCase struct {
	repo repository.ClientRepository
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(repo repository.ClientRepository) *ClientUseCase {
	return &ClientUseCase{repo: repo}
}

// List devuelve todos los clientes.
func (uc *ClientUseCase) List(ctx context.Context) ([]dto.ClientResponse, error) {
	clients, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	out := make([]dto.ClientResponse, 0, len(clients))
	for _, c := range clients {
		out = append(out, *toClientResponse(c))
	}
	return out, nil
}

// GetByID obtiene un cliente. ErrNotFound si no existe.
func (uc *ClientUseCase) GetByID(ctx context.Context, id int64) (*dto.ClientResponse, error) {
	c, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return toClientResponse(c), nil
}

// Create valida y persiste un cliente. ErrDuplicate si el DNI ya está registrado.
func (uc *ClientUseCase) Create(ctx context.Context, in dto.ClientRequest) (*dto.ClientResponse, error) {
	c := &entity.Client{}
	if err := applyClientUpdate(c, in); err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByDNI(ctx, c.DNI)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, wrapRepoError(err)
	}
	return toClientResponse(c), nil
}

// Update reemplaza los datos del cliente.
func (uc *ClientUseCase) Update(ctx context.Context, id int64, in dto.ClientRequest) (*dto.ClientResponse, error) {
	c, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyClientUpdate(c, in); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, wrapRepoError(err)
	}
	return toClientResponse(c), nil
}

// Delete elimina un cliente. ErrConflict si tiene facturas.
func (uc *ClientUseCase) Delete(ctx context.Context, id int64) error {
	if _, err := uc.find(ctx, id); err != nil {
		return err
	}
	return wrapRepoError(uc.repo.Delete(ctx, id))
}

func (uc *ClientUseCase) find(ctx context.Context, id int64) (*entity.Client, error) {
	if id <= 0 {
		return nil, domain.ErrNotFound
	}
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

// applyClientUpdate copia campo por campo los valores editables; no toca el ID.
func applyClientUpdate(c *entity.Client, in dto.ClientRequest) error {
	if in.DNI <= 0 {
		return fmt.Errorf("%w: dni debe ser positivo", domain.ErrInvalidInput)
	}
	nombre, ok := requiredText(in.Nombre, 45)
	if !ok {
		return fmt.Errorf("%w: nombre", domain.ErrInvalidInput)
	}
	apellido, ok := requiredText(in.Apellido, 45)
	if !ok {
		return fmt.Errorf("%w: apellido", domain.ErrInvalidInput)
	}
	direccion, ok := optionalText(in.Direccion, 60)
	if !ok {
		return fmt.Errorf("%w: direccion", domain.ErrInvalidInput)
	}
	telefono, ok := optionalText(in.Telefono, 20)
	if !ok {
		return fmt.Errorf("%w: telefono", domain.ErrInvalidInput)
	}
	c.DNI = in.DNI
	c.Nombre = nombre
	c.Apellido = apellido
	c.Direccion = direccion
	c.Telefono = telefono
	return nil
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	return &dto.ClientResponse{
		ID:        c.ID,
		DNI:       c.DNI,
		Nombre:    c.Nombre,
		Apellido:  c.Apellido,
		Direccion: c.Direccion,
		Telefono:  c.Telefono,
	}
}

// wrapRepoError deja pasar los errores de dominio y marca el resto como falla de persistencia.
func wrapRepoError(err error) error {
	if err == nil {
		return nil
	}
	for _, known := range []error{domain.ErrNotFound, domain.ErrDuplicate, domain.ErrConflict, domain.ErrInvalidInput} {
		if errors.Is(err, known) {
			return err
		}
	}
	return fmt.Errorf("%w: %w", domain.ErrPersistence, err)
}
