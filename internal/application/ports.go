package application

import (
	"context"
	"time"

	"github.com/DanielPopoola/cps-gateway/internal/domain"
)

// OrderStore is the port onto the shop's order records. Each call is atomic on
// its own; WithTx groups a read-decide-write sequence for one order.
type OrderStore interface {
	GetOrder(ctx context.Context, id int64) (*domain.Order, error)
	// GetOrderForUpdate reads the order and locks it until the surrounding
	// transaction ends.
	GetOrderForUpdate(ctx context.Context, id int64) (*domain.Order, error)
	SetStatus(ctx context.Context, id int64, status domain.OrderStatus, note string) error
	AddNote(ctx context.Context, id int64, note string) error
	MarkPaid(ctx context.Context, id int64) error
	FindStaleHolds(ctx context.Context, heldSince time.Time, limit int) ([]*domain.Order, error)

	WithTx(ctx context.Context, fn func(OrderStore) error) error
}

// OrderReader serves the read-only order view.
type OrderReader interface {
	GetOrder(ctx context.Context, id int64) (*domain.Order, error)
	ListNotes(ctx context.Context, id int64) ([]domain.Note, error)
}

// OriginValidator authenticates the sender of a callback.
type OriginValidator interface {
	IsTrustedOrigin(ctx context.Context, sourceIP string) bool
}
