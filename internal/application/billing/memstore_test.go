package billing_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/facturacion-api/internal/domain"
	"github.com/jhoicas/facturacion-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-api/internal/domain/repository"
)

// memState estado "persistido" del store en memoria.
type memState struct {
	clients     map[int64]entity.Client
	users       map[int64]entity.User
	products    map[int64]entity.Product
	invoices    map[int64]entity.Invoice
	items       map[[2]int64]entity.LineItem
	nextInvoice int64
}

func (s *memState) clone() *memState {
	c := &memState{
		clients:     s.clients,
		users:       s.users,
		products:    make(map[int64]entity.Product, len(s.products)),
		invoices:    make(map[int64]entity.Invoice, len(s.invoices)),
		items:       make(map[[2]int64]entity.LineItem, len(s.items)),
		nextInvoice: s.nextInvoice,
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.invoices {
		c.invoices[k] = v
	}
	for k, v := range s.items {
		c.items[k] = v
	}
	return c
}

// memStore simula la base: cada RunBilling trabaja sobre una copia y solo la publica si fn no falla.
// Las transacciones se serializan, como lo haría el bloqueo de fila sobre el producto.
type memStore struct {
	mu    sync.Mutex
	state *memState

	failDecrement error
	failInsert    error
	failRoutine   error
}

var _ repository.ClientRepository = (*memClients)(nil)

func newMemStore() *memStore {
	return &memStore{state: &memState{
		clients:  map[int64]entity.Client{},
		users:    map[int64]entity.User{},
		products: map[int64]entity.Product{},
		invoices: map[int64]entity.Invoice{},
		items:    map[[2]int64]entity.LineItem{},
	}}
}

func (s *memStore) addClient(c entity.Client) { s.state.clients[c.ID] = c }
func (s *memStore) addUser(u entity.User)     { s.state.users[u.ID] = u }
func (s *memStore) addProduct(p entity.Product) {
	s.state.products[p.ID] = p
}

func (s *memStore) addInvoice(clientID int64, creatorID *int64, fecha time.Time) int64 {
	s.state.nextInvoice++
	id := s.state.nextInvoice
	s.state.invoices[id] = entity.Invoice{ID: id, ClientID: clientID, Fecha: fecha, CreatorID: creatorID}
	return id
}

func (s *memStore) addLine(invoiceID, productID int64, qty int, price string) {
	s.state.items[[2]int64{invoiceID, productID}] = entity.LineItem{
		InvoiceID: invoiceID, ProductID: productID, Cantidad: qty, Precio: decimal.RequireFromString(price),
	}
}

func (s *memStore) product(id int64) entity.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.products[id]
}

func (s *memStore) lineCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.state.items)
}

func (s *memStore) RunBilling(ctx context.Context, fn func(repository.ProductRepository, repository.InvoiceRepository) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	work := s.state.clone()
	tx := &memTx{store: s, st: work}
	if err := fn(tx, tx); err != nil {
		return err
	}
	s.state = work
	return nil
}

// reader vista de solo lectura sobre el estado confirmado.
func (s *memStore) reader() *memTx {
	return &memTx{store: s, st: s.state}
}

func (s *memStore) clients() *memClients { return &memClients{store: s} }

// memTx implementa ProductRepository e InvoiceRepository sobre un memState.
type memTx struct {
	store *memStore
	st    *memState
}

func (t *memTx) List(context.Context) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(t.st.products))
	for _, p := range t.st.products {
		p := p
		out = append(out, &p)
	}
	return out, nil
}

func (t *memTx) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	p, ok := t.st.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (t *memTx) GetByName(_ context.Context, nombre string) (*entity.Product, error) {
	for _, p := range t.st.products {
		if p.Nombre == nombre {
			p := p
			return &p, nil
		}
	}
	return nil, nil
}

func (t *memTx) Create(_ context.Context, p *entity.Product) error {
	t.st.products[p.ID] = *p
	return nil
}

func (t *memTx) Update(_ context.Context, p *entity.Product) error {
	t.st.products[p.ID] = *p
	return nil
}

func (t *memTx) Delete(_ context.Context, id int64) error {
	delete(t.st.products, id)
	return nil
}

func (t *memTx) GetForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	return t.GetByID(ctx, id)
}

func (t *memTx) DecrementStock(_ context.Context, id int64, qty int) error {
	if t.store.failDecrement != nil {
		return t.store.failDecrement
	}
	p, ok := t.st.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	if p.Stock < qty {
		return domain.ErrInsufficientStock
	}
	p.Stock -= qty
	t.st.products[id] = p
	return nil
}

func (t *memTx) Insert(_ context.Context, clientID int64, creatorID *int64, fecha time.Time) (int64, error) {
	if t.store.failInsert != nil {
		return 0, t.store.failInsert
	}
	t.st.nextInvoice++
	id := t.st.nextInvoice
	t.st.invoices[id] = entity.Invoice{ID: id, ClientID: clientID, Fecha: fecha, CreatorID: creatorID}
	return id, nil
}

func (t *memTx) InsertViaRoutine(ctx context.Context, clientID int64, creatorID *int64) (int64, error) {
	if t.store.failRoutine != nil {
		return 0, t.store.failRoutine
	}
	t.st.nextInvoice++
	id := t.st.nextInvoice
	t.st.invoices[id] = entity.Invoice{ID: id, ClientID: clientID, Fecha: time.Now().UTC(), CreatorID: creatorID}
	return id, nil
}

func (t *memTx) ExistsForUpdate(ctx context.Context, id int64) (bool, error) {
	return t.Exists(ctx, id)
}

func (t *memTx) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := t.st.invoices[id]
	return ok, nil
}

func (t *memTx) CreateLineItem(_ context.Context, item *entity.LineItem) error {
	key := [2]int64{item.InvoiceID, item.ProductID}
	if _, dup := t.st.items[key]; dup {
		return domain.ErrDuplicate
	}
	t.st.items[key] = *item
	return nil
}

func (t *memTx) summaries(filter func(entity.Invoice) bool) []*entity.InvoiceSummary {
	var out []*entity.InvoiceSummary
	for _, inv := range t.st.invoices {
		if !filter(inv) {
			continue
		}
		s := &entity.InvoiceSummary{ID: inv.ID, Fecha: inv.Fecha}
		if c, ok := t.st.clients[inv.ClientID]; ok {
			nombre, apellido := c.Nombre, c.Apellido
			s.ClienteNombre, s.ClienteApellido = &nombre, &apellido
		}
		if inv.CreatorID != nil {
			if u, ok := t.st.users[*inv.CreatorID]; ok {
				username := u.Username
				s.CreadorUsername = &username
			}
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Fecha.Equal(out[j].Fecha) {
			return out[i].ID > out[j].ID
		}
		return out[i].Fecha.After(out[j].Fecha)
	})
	return out
}

func (t *memTx) ListAll(context.Context) ([]*entity.InvoiceSummary, error) {
	return t.summaries(func(entity.Invoice) bool { return true }), nil
}

func (t *memTx) ListByCreator(_ context.Context, userID int64) ([]*entity.InvoiceSummary, error) {
	return t.summaries(func(inv entity.Invoice) bool {
		return inv.CreatorID != nil && *inv.CreatorID == userID
	}), nil
}

func (t *memTx) GetLines(_ context.Context, invoiceID int64) ([]entity.InvoiceLine, error) {
	var out []entity.InvoiceLine
	for key, it := range t.st.items {
		if key[0] != invoiceID {
			continue
		}
		out = append(out, entity.InvoiceLine{
			ProductID: it.ProductID,
			Nombre:    t.st.products[it.ProductID].Nombre,
			Cantidad:  it.Cantidad,
			Precio:    it.Precio,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out, nil
}

func (t *memTx) SalesByClient(context.Context) ([]*entity.ClientSales, error) {
	totals := map[int64]decimal.Decimal{}
	for _, it := range t.st.items {
		inv := t.st.invoices[it.InvoiceID]
		totals[inv.ClientID] = totals[inv.ClientID].Add(it.Importe())
	}
	out := make([]*entity.ClientSales, 0, len(totals))
	for id, total := range totals {
		c := t.st.clients[id]
		out = append(out, &entity.ClientSales{ClientID: id, Nombre: c.Nombre, Apellido: c.Apellido, TotalComprado: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TotalComprado.GreaterThan(out[j].TotalComprado) })
	return out, nil
}

func (t *memTx) GetDocument(ctx context.Context, invoiceID int64) (*entity.InvoiceDocument, error) {
	inv, ok := t.st.invoices[invoiceID]
	if !ok {
		return nil, nil
	}
	lines, _ := t.GetLines(ctx, invoiceID)
	doc := &entity.InvoiceDocument{
		ID:              inv.ID,
		Fecha:           inv.Fecha,
		CreatorID:       inv.CreatorID,
		CreatorUsername: entity.CreatorPlaceholder,
		Client:          t.st.clients[inv.ClientID],
		Lines:           lines,
	}
	if inv.CreatorID != nil {
		if u, ok := t.st.users[*inv.CreatorID]; ok {
			doc.CreatorUsername = u.Username
		}
	}
	return doc, nil
}

// memClients ClientRepository mínimo sobre el mismo estado.
type memClients struct {
	store *memStore
	err   error
}

func (m *memClients) List(context.Context) ([]*entity.Client, error) { return nil, m.err }

func (m *memClients) GetByID(_ context.Context, id int64) (*entity.Client, error) {
	if m.err != nil {
		return nil, m.err
	}
	c, ok := m.store.state.clients[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (m *memClients) GetByDNI(context.Context, int64) (*entity.Client, error) { return nil, m.err }
func (m *memClients) Create(context.Context, *entity.Client) error             { return m.err }
func (m *memClients) Update(context.Context, *entity.Client) error             { return m.err }
func (m *memClients) Delete(context.Context, int64) error                      { return m.err }
