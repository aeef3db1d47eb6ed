package handlers

import (
	"net/http"

	"github.com/DanielPopoola/cps-gateway/internal/api"
	"github.com/DanielPopoola/cps-gateway/internal/application"
	"github.com/DanielPopoola/cps-gateway/internal/interfaces/rest"
)

func (h *Handlers) GetCheckout(w http.ResponseWriter, r *http.Request, orderID int64) {
	order, err := h.queryService.FindByID(r.Context(), orderID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	handoff, err := h.handoffBuilder.Build(order)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.logger.Info("checkout hand-off built", "order_id", orderID, "action_url", handoff.ActionURL)

	rest.WriteJSON(w, http.StatusOK, api.HandoffResponse{
		Success: true,
		Data:    rest.ToAPIHandoff(handoff),
	})
}

func (h *Handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := application.ToHTTPStatus(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed",
			"path", r.URL.Path,
			"error", err,
			"category", application.CategorizeError(err))
	}
	rest.WriteError(w, err)
}
