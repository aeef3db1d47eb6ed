package handlers

import (
	"net/http"

	"github.com/DanielPopoola/cps-gateway/internal/api"
	"github.com/DanielPopoola/cps-gateway/internal/domain"
	"github.com/DanielPopoola/cps-gateway/internal/interfaces/rest"
)

func (h *Handlers) GetOrder(w http.ResponseWriter, r *http.Request, orderID int64, params api.GetOrderParams) {
	var (
		order *domain.Order
		err   error
	)

	if params.Notes != nil && *params.Notes {
		order, err = h.queryService.FindWithNotes(r.Context(), orderID)
	} else {
		order, err = h.queryService.FindByID(r.Context(), orderID)
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, api.OrderResponse{
		Success: true,
		Data:    rest.ToAPIOrder(order),
	})
}
