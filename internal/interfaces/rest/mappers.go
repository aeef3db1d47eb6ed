package rest

import (
	"github.com/DanielPopoola/cps-gateway/internal/api"
	"github.com/DanielPopoola/cps-gateway/internal/application/services"
	"github.com/DanielPopoola/cps-gateway/internal/domain"
)

func ToAPIOrder(o *domain.Order) api.Order {
	apiOrder := api.Order{
		Id:        o.ID,
		Status:    api.OrderStatus(o.Status),
		Amount:    o.Total.String(),
		Currency:  o.Total.Currency,
		Paid:      o.IsPaid(),
		PaidAt:    o.PaidAt,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}

	for _, n := range o.Notes {
		apiOrder.Notes = append(apiOrder.Notes, api.Note{
			Body:      n.Body,
			CreatedAt: n.CreatedAt,
		})
	}

	return apiOrder
}

func ToAPIHandoff(h *services.Handoff) api.Handoff {
	fields := make([]api.HandoffField, 0, len(h.Fields))
	for _, f := range h.Fields {
		fields = append(fields, api.HandoffField{Name: f.Name, Value: f.Value})
	}

	return api.Handoff{
		OrderId:   h.OrderID,
		ActionUrl: h.ActionURL,
		Method:    h.Method,
		Fields:    fields,
	}
}
