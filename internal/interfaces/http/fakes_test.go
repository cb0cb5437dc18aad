package http_test

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

// fakeDB base en memoria compartida por los repos fake del router.
type fakeDB struct {
	mu       sync.Mutex
	users    map[int64]entity.User
	clients  map[int64]entity.Client
	products map[int64]entity.Product
	invoices map[int64]entity.Invoice
	items    []entity.LineItem
	nextID   int64
	failList error
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		users:    map[int64]entity.User{},
		clients:  map[int64]entity.Client{},
		products: map[int64]entity.Product{},
		invoices: map[int64]entity.Invoice{},
	}
}

func (db *fakeDB) id() int64 {
	db.nextID++
	return db.nextID
}

func (db *fakeDB) RunBilling(_ context.Context, fn func(repository.ProductRepository, repository.InvoiceRepository) error) error {
	return fn(fakeProducts{db}, fakeInvoices{db})
}

type fakeUsers struct{ db *fakeDB }

func (f fakeUsers) Create(_ context.Context, u *entity.User) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	for _, existing := range f.db.users {
		if existing.Username == u.Username {
			return domain.ErrUsernameExists
		}
	}
	u.ID = f.db.id()
	f.db.users[u.ID] = *u
	return nil
}

func (f fakeUsers) GetByID(_ context.Context, id int64) (*entity.User, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	u, ok := f.db.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (f fakeUsers) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	for _, u := range f.db.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

type fakeClients struct{ db *fakeDB }

func (f fakeClients) List(context.Context) ([]*entity.Client, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	out := make([]*entity.Client, 0, len(f.db.clients))
	for _, c := range f.db.clients {
		c := c
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f fakeClients) GetByID(_ context.Context, id int64) (*entity.Client, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	c, ok := f.db.clients[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (f fakeClients) GetByDNI(_ context.Context, dni int64) (*entity.Client, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	for _, c := range f.db.clients {
		if c.DNI == dni {
			c := c
			return &c, nil
		}
	}
	return nil, nil
}

func (f fakeClients) Create(_ context.Context, c *entity.Client) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	c.ID = f.db.id()
	f.db.clients[c.ID] = *c
	return nil
}

func (f fakeClients) Update(_ context.Context, c *entity.Client) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	f.db.clients[c.ID] = *c
	return nil
}

func (f fakeClients) Delete(_ context.Context, id int64) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	for _, inv := range f.db.invoices {
		if inv.ClientID == id {
			return domain.ErrConflict
		}
	}
	delete(f.db.clients, id)
	return nil
}

type fakeProducts struct{ db *fakeDB }

func (f fakeProducts) List(context.Context) ([]*entity.Product, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	out := make([]*entity.Product, 0, len(f.db.products))
	for _, p := range f.db.products {
		p := p
		out = append(out, &p)
	}
	return out, nil
}

func (f fakeProducts) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	p, ok := f.db.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (f fakeProducts) GetByName(_ context.Context, nombre string) (*entity.Product, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	for _, p := range f.db.products {
		if p.Nombre == nombre {
			p := p
			return &p, nil
		}
	}
	return nil, nil
}

func (f fakeProducts) Create(_ context.Context, p *entity.Product) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	p.ID = f.db.id()
	f.db.products[p.ID] = *p
	return nil
}

func (f fakeProducts) Update(_ context.Context, p *entity.Product) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	f.db.products[p.ID] = *p
	return nil
}

func (f fakeProducts) Delete(_ context.Context, id int64) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	delete(f.db.products, id)
	return nil
}

func (f fakeProducts) GetForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	return f.GetByID(ctx, id)
}

func (f fakeProducts) DecrementStock(_ context.Context, id int64, qty int) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	p := f.db.products[id]
	if p.Stock < qty {
		return domain.ErrInsufficientStock
	}
	p.Stock -= qty
	f.db.products[id] = p
	return nil
}

type fakeInvoices struct{ db *fakeDB }

func (f fakeInvoices) Insert(_ context.Context, clientID int64, creatorID *int64, fecha time.Time) (int64, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	id := f.db.id()
	f.db.invoices[id] = entity.Invoice{ID: id, ClientID: clientID, Fecha: fecha, CreatorID: creatorID}
	return id, nil
}

func (f fakeInvoices) InsertViaRoutine(ctx context.Context, clientID int64, creatorID *int64) (int64, error) {
	return f.Insert(ctx, clientID, creatorID, time.Now())
}

func (f fakeInvoices) ExistsForUpdate(ctx context.Context, id int64) (bool, error) {
	return f.Exists(ctx, id)
}

func (f fakeInvoices) Exists(_ context.Context, id int64) (bool, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	_, ok := f.db.invoices[id]
	return ok, nil
}

func (f fakeInvoices) CreateLineItem(_ context.Context, item *entity.LineItem) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	for _, it := range f.db.items {
		if it.InvoiceID == item.InvoiceID && it.ProductID == item.ProductID {
			return domain.ErrDuplicate
		}
	}
	f.db.items = append(f.db.items, *item)
	return nil
}

func (f fakeInvoices) summaries(keep func(entity.Invoice) bool) ([]*entity.InvoiceSummary, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if f.db.failList != nil {
		return nil, f.db.failList
	}
	out := make([]*entity.InvoiceSummary, 0)
	for _, inv := range f.db.invoices {
		if !keep(inv) {
			continue
		}
		s := &entity.InvoiceSummary{ID: inv.ID, Fecha: inv.Fecha}
		if inv.CreatorID != nil {
			name := f.db.users[*inv.CreatorID].Username
			s.CreadorUsername = &name
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f fakeInvoices) ListAll(context.Context) ([]*entity.InvoiceSummary, error) {
	return f.summaries(func(entity.Invoice) bool { return true })
}

func (f fakeInvoices) ListByCreator(_ context.Context, userID int64) ([]*entity.InvoiceSummary, error) {
	return f.summaries(func(inv entity.Invoice) bool { return inv.CreatorID != nil && *inv.CreatorID == userID })
}

func (f fakeInvoices) GetLines(_ context.Context, invoiceID int64) ([]entity.InvoiceLine, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	out := make([]entity.InvoiceLine, 0)
	for _, it := range f.db.items {
		if it.InvoiceID == invoiceID {
			out = append(out, entity.InvoiceLine{
				ProductID: it.ProductID, Nombre: f.db.products[it.ProductID].Nombre,
				Cantidad: it.Cantidad, Precio: it.Precio,
			})
		}
	}
	return out, nil
}

func (f fakeInvoices) SalesByClient(context.Context) ([]*entity.ClientSales, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	totals := map[int64]decimal.Decimal{}
	for _, it := range f.db.items {
		cid := f.db.invoices[it.InvoiceID].ClientID
		totals[cid] = totals[cid].Add(it.Importe())
	}
	out := make([]*entity.ClientSales, 0, len(totals))
	for cid, total := range totals {
		c := f.db.clients[cid]
		out = append(out, &entity.ClientSales{ClientID: cid, Nombre: c.Nombre, Apellido: c.Apellido, TotalComprado: total})
	}
	return out, nil
}

func (f fakeInvoices) GetDocument(ctx context.Context, invoiceID int64) (*entity.InvoiceDocument, error) {
	f.db.mu.Lock()
	inv, ok := f.db.invoices[invoiceID]
	var client entity.Client
	username := entity.CreatorPlaceholder
	if ok {
		client = f.db.clients[inv.ClientID]
		if inv.CreatorID != nil {
			username = f.db.users[*inv.CreatorID].Username
		}
	}
	f.db.mu.Unlock()
	if !ok {
		return nil, nil
	}
	lines, _ := f.GetLines(ctx, invoiceID)
	return &entity.InvoiceDocument{
		ID: inv.ID, Fecha: inv.Fecha, CreatorID: inv.CreatorID, CreatorUsername: username,
		Client: client, Lines: lines,
	}, nil
}

type fakePDF struct{}

func (fakePDF) GenerateInvoicePDF(context.Context, *entity.InvoiceDocument) ([]byte, error) {
	return []byte("%PDF-1.4 fake"), nil
}
