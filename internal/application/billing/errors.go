package billing

import (
	"errors"

	"github.com/jhoicas/facturacion-api/internal/domain"
)

// isDomainError indica si err ya es un error de negocio que el caller puede accionar.
func isDomainError(err error) bool {
	for _, target := range []error{
		domain.ErrNotFound,
		domain.ErrInvalidInput,
		domain.ErrInsufficientStock,
		domain.ErrDuplicate,
		domain.ErrConflict,
		domain.ErrForbidden,
		domain.ErrUnauthorized,
		domain.ErrPersistence,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
