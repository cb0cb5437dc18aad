package repository

import (
	"context"

	"github.com/jhoicas/facturacion-api/internal/domain/entity"
)

// ClientRepository define el puerto de persistencia para Client.
type ClientRepository interface {
	List(ctx context.Context) ([]*entity.Client, error)
	GetByID(ctx context.Context, id int64) (*entity.Client, error)
	GetByDNI(ctx context.Context, dni int64) (*entity.Client, error)
	Create(ctx context.Context, client *entity.Client) error
	Update(ctx context.Context, client *entity.Client) error
	Delete(ctx context.Context, id int64) error
}
