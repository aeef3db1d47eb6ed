package services

import (
	"context"

	"github.com/DanielPopoola/cps-gateway/internal/application"
	"github.com/DanielPopoola/cps-gateway/internal/domain"
)

type QueryService struct {
	orders application.OrderReader
}

func NewQueryService(orders application.OrderReader) *QueryService {
	return &QueryService{
		orders: orders,
	}
}

func (s *QueryService) FindByID(ctx context.Context, id int64) (*domain.Order, error) {
	return s.orders.GetOrder(ctx, id)
}

// FindWithNotes loads the order together with its note log.
func (s *QueryService) FindWithNotes(ctx context.Context, id int64) (*domain.Order, error) {
	order, err := s.orders.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	notes, err := s.orders.ListNotes(ctx, id)
	if err != nil {
		return nil, application.NewInternalError(err)
	}
	order.Notes = notes

	return order, nil
}
