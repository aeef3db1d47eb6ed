package api

import "time"

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

type HandoffField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type Handoff struct {
	OrderId   int64          `json:"order_id"`
	ActionUrl string         `json:"action_url"`
	Method    string         `json:"method"`
	Fields    []HandoffField `json:"fields"`
}

type HandoffResponse struct {
	Success bool    `json:"success"`
	Data    Handoff `json:"data"`
}

type Note struct {
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

type OrderStatus string

type Order struct {
	Id        int64       `json:"id"`
	Status    OrderStatus `json:"status"`
	Amount    string      `json:"amount"`
	Currency  string      `json:"currency"`
	Paid      bool        `json:"paid"`
	PaidAt    *time.Time  `json:"paid_at,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
	Notes     []Note      `json:"notes,omitempty"`
}

type OrderResponse struct {
	Success bool  `json:"success"`
	Data    Order `json:"data"`
}

// GetOrderParams defines parameters for GetOrder.
type GetOrderParams struct {
	Notes *bool `form:"notes,omitempty" json:"notes,omitempty"`
}
