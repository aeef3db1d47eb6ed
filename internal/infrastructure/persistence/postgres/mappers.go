package postgres

import (
	"github.com/DanielPopoola/cps-gateway/internal/domain"
)

func toDomainOrder(m OrderModel) *domain.Order {
	return &domain.Order{
		ID:     m.ID,
		Key:    m.OrderKey,
		Status: domain.OrderStatus(m.Status),
		Total: domain.Money{
			Cents:    m.TotalCents,
			Currency: m.Currency,
		},
		PaidAt:    m.PaidAt,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toOrderModel(o *domain.Order) OrderModel {
	return OrderModel{
		ID:         o.ID,
		OrderKey:   o.Key,
		Status:     string(o.Status),
		TotalCents: o.Total.Cents,
		Currency:   o.Total.Currency,
		PaidAt:     o.PaidAt,
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
}

func toDomainNote(m NoteModel) domain.Note {
	return domain.Note{
		ID:        m.ID,
		OrderID:   m.OrderID,
		Body:      m.Body,
		CreatedAt: m.CreatedAt,
	}
}
