package testhelpers

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/DanielPopoola/cps-gateway/internal/application"
	"github.com/DanielPopoola/cps-gateway/internal/domain"
)

// MemoryOrderStore is an in-process application.OrderStore. Any *Fn field
// overrides the default behavior of the matching method.
type MemoryOrderStore struct {
	mu     sync.RWMutex
	txMu   sync.Mutex
	orders map[int64]*domain.Order
	nextID int64

	MarkPaidCalls int

	GetOrderFn  func(ctx context.Context, id int64) (*domain.Order, error)
	SetStatusFn func(ctx context.Context, id int64, status domain.OrderStatus, note string) error
	AddNoteFn   func(ctx context.Context, id int64, note string) error
	MarkPaidFn  func(ctx context.Context, id int64) error
	WithTxFn    func(ctx context.Context, fn func(application.OrderStore) error) error
}

func NewMemoryOrderStore() *MemoryOrderStore {
	return &MemoryOrderStore{
		orders: make(map[int64]*domain.Order),
	}
}

// Put stores a copy of the order as given.
func (m *MemoryOrderStore) Put(order *domain.Order) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o := *order
	o.Notes = append([]domain.Note(nil), order.Notes...)
	m.orders[o.ID] = &o
}

// Order returns a copy of the stored order, or nil.
func (m *MemoryOrderStore) Order(id int64) *domain.Order {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.orders[id]
	if !ok {
		return nil
	}
	cp := *o
	cp.Notes = append([]domain.Note(nil), o.Notes...)
	return &cp
}

func (m *MemoryOrderStore) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	if m.GetOrderFn != nil {
		return m.GetOrderFn(ctx, id)
	}
	if o := m.Order(id); o != nil {
		return o, nil
	}
	return nil, domain.NewOrderNotFoundError(strconv.FormatInt(id, 10))
}

func (m *MemoryOrderStore) GetOrderForUpdate(ctx context.Context, id int64) (*domain.Order, error) {
	return m.GetOrder(ctx, id)
}

func (m *MemoryOrderStore) SetStatus(ctx context.Context, id int64, status domain.OrderStatus, note string) error {
	if m.SetStatusFn != nil {
		return m.SetStatusFn(ctx, id, status, note)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return domain.NewOrderNotFoundError(strconv.FormatInt(id, 10))
	}
	o.Status = status
	o.UpdatedAt = time.Now()
	m.appendNote(o, note)
	return nil
}

func (m *MemoryOrderStore) AddNote(ctx context.Context, id int64, note string) error {
	if m.AddNoteFn != nil {
		return m.AddNoteFn(ctx, id, note)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return domain.NewOrderNotFoundError(strconv.FormatInt(id, 10))
	}
	m.appendNote(o, note)
	return nil
}

func (m *MemoryOrderStore) MarkPaid(ctx context.Context, id int64) error {
	if m.MarkPaidFn != nil {
		return m.MarkPaidFn(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return domain.NewOrderNotFoundError(strconv.FormatInt(id, 10))
	}
	now := time.Now()
	o.Status = domain.StatusCompleted
	o.PaidAt = &now
	o.UpdatedAt = now
	m.MarkPaidCalls++
	return nil
}

func (m *MemoryOrderStore) ListNotes(ctx context.Context, id int64) ([]domain.Note, error) {
	if o := m.Order(id); o != nil {
		return o.Notes, nil
	}
	return nil, domain.NewOrderNotFoundError(strconv.FormatInt(id, 10))
}

func (m *MemoryOrderStore) FindStaleHolds(ctx context.Context, heldSince time.Time, limit int) ([]*domain.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Order
	for _, o := range m.orders {
		if o.Status == domain.StatusOnHold && o.UpdatedAt.Before(heldSince) {
			cp := *o
			out = append(out, &cp)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

// WithTx serializes transactions so concurrent callers see each other's writes.
func (m *MemoryOrderStore) WithTx(ctx context.Context, fn func(application.OrderStore) error) error {
	if m.WithTxFn != nil {
		return m.WithTxFn(ctx, fn)
	}
	m.txMu.Lock()
	defer m.txMu.Unlock()
	return fn(m)
}

func (m *MemoryOrderStore) appendNote(o *domain.Order, body string) {
	if body == "" {
		return
	}
	m.nextID++
	o.Notes = append(o.Notes, domain.Note{
		ID:        m.nextID,
		OrderID:   o.ID,
		Body:      body,
		CreatedAt: time.Now(),
	})
}
