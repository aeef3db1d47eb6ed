package postgres

import (
	"time"
)

// OrderModel is the orders row.
type OrderModel struct {
	ID         int64
	OrderKey   string
	Status     string
	TotalCents int64
	Currency   string
	PaidAt     *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NoteModel is the order_notes row.
type NoteModel struct {
	ID        int64
	OrderID   int64
	Body      string
	CreatedAt time.Time
}
