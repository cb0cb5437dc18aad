package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/facturacion-api/internal/domain"
	"github.com/jhoicas/facturacion-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Insert persiste la cabecera de la factura con su creador.
func (r *InvoiceRepo) Insert(ctx context.Context, clientID int64, creatorID *int64, fecha time.Time) (int64, error) {
	query := `
		INSERT INTO factura (cliente_id, fecha, creado_por_usuario_id)
		VALUES ($1, $2, $3)
		RETURNING id`
	var id int64
	if err := r.q.QueryRow(ctx, query, clientID, fecha, creatorID).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert factura: %w", err)
	}
	return id, nil
}

// InsertViaRoutine crea la cabecera llamando a sp_agregar_factura.
func (r *InvoiceRepo) InsertViaRoutine(ctx context.Context, clientID int64, creatorID *int64) (int64, error) {
	var id *int64
	if err := r.q.QueryRow(ctx, `SELECT sp_agregar_factura($1, $2)`, clientID, creatorID).Scan(&id); err != nil {
		return 0, fmt.Errorf("sp_agregar_factura: %w", err)
	}
	if id == nil {
		return 0, errors.New("sp_agregar_factura: no devolvió id")
	}
	return *id, nil
}

// ExistsForUpdate verifica la factura y bloquea su fila hasta el fin de la transacción.
func (r *InvoiceRepo) ExistsForUpdate(ctx context.Context, id int64) (bool, error) {
	return r.exists(ctx, `SELECT id FROM factura WHERE id = $1 FOR UPDATE`, id)
}

// Exists indica si la factura existe.
func (r *InvoiceRepo) Exists(ctx context.Context, id int64) (bool, error) {
	return r.exists(ctx, `SELECT id FROM factura WHERE id = $1`, id)
}

func (r *InvoiceRepo) exists(ctx context.Context, query string, id int64) (bool, error) {
	var found int64
	err := r.q.QueryRow(ctx, query, id).Scan(&found)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("get factura: %w", err)
	}
	return true, nil
}

// CreateLineItem persiste una línea de detalle. ErrDuplicate si el producto ya está en la factura.
func (r *InvoiceRepo) CreateLineItem(ctx context.Context, item *entity.LineItem) error {
	query := `
		INSERT INTO detalle (factura_id, producto_id, cantidad, precio, created)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, item.InvoiceID, item.ProductID, item.Cantidad, item.Precio, item.Created)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isFKViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert detalle: %w", err)
	}
	return nil
}

const summarySelect = `
	SELECT f.id, f.fecha, c.nombre, c.apellido, u.username
	FROM factura f
	LEFT JOIN clientes c ON c.id = f.cliente_id
	LEFT JOIN usuarios u ON u.id = f.creado_por_usuario_id`

// ListAll lista todas las facturas, más recientes primero.
func (r *InvoiceRepo) ListAll(ctx context.Context) ([]*entity.InvoiceSummary, error) {
	return r.listSummaries(ctx, summarySelect+` ORDER BY f.fecha DESC, f.id DESC`)
}

// ListByCreator lista solo las facturas creadas por userID.
func (r *InvoiceRepo) ListByCreator(ctx context.Context, userID int64) ([]*entity.InvoiceSummary, error) {
	return r.listSummaries(ctx,
		summarySelect+` WHERE f.creado_por_usuario_id = $1 ORDER BY f.fecha DESC, f.id DESC`, userID)
}

func (r *InvoiceRepo) listSummaries(ctx context.Context, query string, args ...any) ([]*entity.InvoiceSummary, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list facturas: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.InvoiceSummary, 0)
	for rows.Next() {
		var s entity.InvoiceSummary
		if err := rows.Scan(&s.ID, &s.Fecha, &s.ClienteNombre, &s.ClienteApellido, &s.CreadorUsername); err != nil {
			return nil, fmt.Errorf("scan factura: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// GetLines devuelve el detalle de la factura con el nombre de cada producto.
func (r *InvoiceRepo) GetLines(ctx context.Context, invoiceID int64) ([]entity.InvoiceLine, error) {
	query := `
		SELECT d.producto_id, p.nombre, d.cantidad, d.precio
		FROM detalle d
		JOIN productos p ON p.id = d.producto_id
		WHERE d.factura_id = $1
		ORDER BY d.created, d.producto_id`
	rows, err := r.q.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("get detalle: %w", err)
	}
	defer rows.Close()
	lines := make([]entity.InvoiceLine, 0)
	for rows.Next() {
		var l entity.InvoiceLine
		if err := rows.Scan(&l.ProductID, &l.Nombre, &l.Cantidad, &l.Precio); err != nil {
			return nil, fmt.Errorf("scan detalle: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// SalesByClient agrega cantidad × precio por cliente, de mayor a menor.
func (r *InvoiceRepo) SalesByClient(ctx context.Context) ([]*entity.ClientSales, error) {
	query := `
		SELECT c.id, c.nombre, c.apellido, SUM(d.cantidad * d.precio) AS total_comprado
		FROM clientes c
		JOIN factura f ON f.cliente_id = c.id
		JOIN detalle d ON d.factura_id = f.id
		GROUP BY c.id, c.nombre, c.apellido
		ORDER BY total_comprado DESC, c.id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ventas por cliente: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.ClientSales, 0)
	for rows.Next() {
		var s entity.ClientSales
		if err := rows.Scan(&s.ClientID, &s.Nombre, &s.Apellido, &s.TotalComprado); err != nil {
			return nil, fmt.Errorf("scan ventas: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// GetDocument arma la vista completa para el PDF. nil si la factura no existe.
func (r *InvoiceRepo) GetDocument(ctx context.Context, invoiceID int64) (*entity.InvoiceDocument, error) {
	query := `
		SELECT f.id, f.fecha, f.creado_por_usuario_id, COALESCE(u.username, $2),
		       c.id, c.dni, c.nombre, c.apellido, c.direccion, c.telefono
		FROM factura f
		JOIN clientes c ON c.id = f.cliente_id
		LEFT JOIN usuarios u ON u.id = f.creado_por_usuario_id
		WHERE f.id = $1`
	var doc entity.InvoiceDocument
	err := r.q.QueryRow(ctx, query, invoiceID, entity.CreatorPlaceholder).Scan(
		&doc.ID, &doc.Fecha, &doc.CreatorID, &doc.CreatorUsername,
		&doc.Client.ID, &doc.Client.DNI, &doc.Client.Nombre, &doc.Client.Apellido,
		&doc.Client.Direccion, &doc.Client.Telefono,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get documento factura: %w", err)
	}
	doc.Lines, err = r.GetLines(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}
