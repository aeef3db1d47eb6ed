package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/DanielPopoola/cps-gateway/internal/application"
	"github.com/DanielPopoola/cps-gateway/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const orderColumns = `id, order_key, status, total_cents, currency, paid_at, created_at, updated_at`

type OrderRepository struct {
	db *pgxpool.Pool
	q  Executor
	tx pgx.Tx
}

func NewOrderRepository(db *DB) *OrderRepository {
	return &OrderRepository{
		db: db.Pool,
		q:  db.Pool,
	}
}

// CreateOrder inserts the order. A zero ID takes the next value of the
// sequence; a non-zero ID is stored as given.
func (r *OrderRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	query := `
		INSERT INTO orders (id, order_key, status, total_cents, currency, paid_at)
		VALUES (COALESCE(NULLIF($1::bigint, 0), nextval('orders_id_seq')), $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	m := toOrderModel(order)
	err := r.q.QueryRow(ctx, query,
		m.ID,
		m.OrderKey,
		m.Status,
		m.TotalCents,
		m.Currency,
		m.PaidAt,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			return domain.NewOrderExistsError(order.ID)
		}
		return fmt.Errorf("failed to create order: %w", err)
	}

	return nil
}

func (r *OrderRepository) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	return scanOrder(r.q.QueryRow(ctx, query, id), id)
}

// GetOrderForUpdate locks the row until the transaction ends. Outside WithTx
// the lock is released as soon as the statement completes.
func (r *OrderRepository) GetOrderForUpdate(ctx context.Context, id int64) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1 FOR UPDATE`

	return scanOrder(r.q.QueryRow(ctx, query, id), id)
}

func (r *OrderRepository) SetStatus(ctx context.Context, id int64, status domain.OrderStatus, note string) error {
	query := `UPDATE orders SET status = $2, updated_at = NOW() WHERE id = $1`

	tag, err := r.q.Exec(ctx, query, id, string(status))
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewOrderNotFoundError(strconv.FormatInt(id, 10))
	}

	if note == "" {
		return nil
	}
	return r.AddNote(ctx, id, note)
}

func (r *OrderRepository) AddNote(ctx context.Context, id int64, note string) error {
	query := `INSERT INTO order_notes (order_id, body) VALUES ($1, $2)`

	if _, err := r.q.Exec(ctx, query, id, note); err != nil {
		if IsForeignKeyViolation(err) {
			return domain.NewOrderNotFoundError(strconv.FormatInt(id, 10))
		}
		return fmt.Errorf("failed to add order note: %w", err)
	}
	return nil
}

// MarkPaid completes the order and stamps paid_at. An existing paid_at is kept.
func (r *OrderRepository) MarkPaid(ctx context.Context, id int64) error {
	query := `
		UPDATE orders
		SET status = $2, paid_at = COALESCE(paid_at, NOW()), updated_at = NOW()
		WHERE id = $1
	`

	tag, err := r.q.Exec(ctx, query, id, string(domain.StatusCompleted))
	if err != nil {
		return fmt.Errorf("failed to mark order paid: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewOrderNotFoundError(strconv.FormatInt(id, 10))
	}
	return nil
}

func (r *OrderRepository) ListNotes(ctx context.Context, id int64) ([]domain.Note, error) {
	query := `
		SELECT id, order_id, body, created_at
		FROM order_notes WHERE order_id = $1
		ORDER BY id
	`

	rows, err := r.q.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("query order notes: %w", err)
	}

	notes, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Note, error) {
		var m NoteModel
		err := row.Scan(&m.ID, &m.OrderID, &m.Body, &m.CreatedAt)
		return toDomainNote(m), err
	})
	if err != nil {
		return nil, fmt.Errorf("scan order notes: %w", err)
	}
	return notes, nil
}

// FindStaleHolds returns on-hold orders not updated since heldSince, oldest first.
func (r *OrderRepository) FindStaleHolds(ctx context.Context, heldSince time.Time, limit int) ([]*domain.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE status = $1 AND updated_at < $2
		ORDER BY updated_at
		LIMIT $3
	`

	rows, err := r.q.Query(ctx, query, string(domain.StatusOnHold), heldSince, limit)
	if err != nil {
		return nil, fmt.Errorf("query stale holds: %w", err)
	}

	orders, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.Order, error) {
		m, err := scanOrderModel(row)
		return toDomainOrder(m), err
	})
	if err != nil {
		return nil, fmt.Errorf("error occurred while scanning rows: %w", err)
	}
	return orders, nil
}

// WithTx runs fn against a repository bound to one transaction. Nested calls
// join the outer transaction.
func (r *OrderRepository) WithTx(ctx context.Context, fn func(application.OrderStore) error) error {
	if r.tx != nil {
		return fn(r)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	txRepo := &OrderRepository{
		db: r.db,
		q:  tx,
		tx: tx,
	}

	if err := fn(txRepo); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func scanOrderModel(row pgx.Row) (OrderModel, error) {
	var m OrderModel
	err := row.Scan(
		&m.ID, &m.OrderKey, &m.Status, &m.TotalCents, &m.Currency,
		&m.PaidAt, &m.CreatedAt, &m.UpdatedAt,
	)
	return m, err
}

func scanOrder(row pgx.Row, id int64) (*domain.Order, error) {
	m, err := scanOrderModel(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewOrderNotFoundError(strconv.FormatInt(id, 10))
		}
		return nil, fmt.Errorf("failed to scan order: %w", err)
	}
	return toDomainOrder(m), nil
}
