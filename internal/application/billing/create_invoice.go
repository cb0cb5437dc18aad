package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/facturacion-api/internal/application/dto"
	"github.com/jhoicas/facturacion-api/internal/domain"
	"github.com/jhoicas/facturacion-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-api/internal/domain/repository"
	"github.com/jhoicas/facturacion-api/pkg/logger"
)

// CreationError se devuelve cuando fallan ambos mecanismos de creación de factura.
// Conserva las dos causas para diagnóstico; errors.Is(err, domain.ErrPersistence) es true.
type CreationError struct {
	Primary  error
	Fallback error
}

func (e *CreationError) Error() string {
	return fmt.Sprintf("crear factura (ambos métodos fallaron): %v | %v", e.Primary, e.Fallback)
}

func (e *CreationError) Unwrap() []error {
	return []error{domain.ErrPersistence, e.Primary, e.Fallback}
}

// creationAttempt resultado tipado de un mecanismo de creación.
type creationAttempt struct {
	strategy string
	id       int64
	err      error
}

func (a creationAttempt) failed() bool { return a.err != nil }

// CreateInvoiceUseCase crea la cabecera de una factura para el usuario autenticado.
type CreateInvoiceUseCase struct {
	clientRepo repository.ClientRepository
	primary    InvoiceInserter
	fallback   InvoiceInserter // nil si el esquema solo ofrece un mecanismo
	log        *logger.Logger
	now        func() time.Time
}

// NewCreateInvoiceUseCase construye el caso de uso. fallback puede ser nil.
func NewCreateInvoiceUseCase(
	clientRepo repository.ClientRepository,
	primary, fallback InvoiceInserter,
	log *logger.Logger,
) *CreateInvoiceUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &CreateInvoiceUseCase{
		clientRepo: clientRepo,
		primary:    primary,
		fallback:   fallback,
		log:        log,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// CreateInvoice intenta primero el mecanismo principal y, si falla, el alternativo.
// Si ambos fallan devuelve *CreationError con las dos causas.
func (uc *CreateInvoiceUseCase) CreateInvoice(ctx context.Context, caller *entity.User, in dto.CreateInvoiceRequest) (*dto.InvoiceCreatedResponse, error) {
	if caller == nil {
		return nil, domain.ErrUnauthorized
	}
	if in.ClienteID <= 0 {
		return nil, domain.ErrInvalidInput
	}
	client, err := uc.clientRepo.GetByID(ctx, in.ClienteID)
	if err != nil {
		return nil, fmt.Errorf("%w: buscar cliente: %w", domain.ErrPersistence, err)
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}

	creatorID := caller.ID
	fecha := uc.now()

	first := uc.attempt(ctx, uc.primary, client.ID, &creatorID, fecha)
	if !first.failed() {
		return &dto.InvoiceCreatedResponse{FacturaID: first.id}, nil
	}
	if uc.fallback == nil {
		uc.log.Error().Err(first.err).Str("mecanismo", first.strategy).Int64("cliente_id", client.ID).
			Msg("no se pudo crear la factura")
		return nil, fmt.Errorf("%w: %w", domain.ErrPersistence, first.err)
	}

	uc.log.Warn().Err(first.err).Str("mecanismo", first.strategy).Str("alternativo", uc.fallback.Name()).
		Int64("cliente_id", client.ID).Msg("falló la creación de factura, se usa el mecanismo alternativo")

	second := uc.attempt(ctx, uc.fallback, client.ID, &creatorID, fecha)
	if !second.failed() {
		return &dto.InvoiceCreatedResponse{FacturaID: second.id}, nil
	}

	cerr := &CreationError{Primary: first.err, Fallback: second.err}
	uc.log.Error().
		AnErr("error_principal", first.err).
		AnErr("error_alternativo", second.err).
		Int64("cliente_id", client.ID).
		Int64("usuario_id", caller.ID).
		Msg("fallaron ambos mecanismos de creación de factura")
	return nil, cerr
}

func (uc *CreateInvoiceUseCase) attempt(ctx context.Context, ins InvoiceInserter, clientID int64, creatorID *int64, fecha time.Time) creationAttempt {
	id, err := ins.InsertInvoice(ctx, clientID, creatorID, fecha)
	if err == nil && id <= 0 {
		err = errors.New(ins.Name() + ": no devolvió un id de factura")
	}
	return creationAttempt{strategy: ins.Name(), id: id, err: err}
}
