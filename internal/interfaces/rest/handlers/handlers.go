package handlers

import (
	"log/slog"

	"github.com/DanielPopoola/cps-gateway/internal/api"
	"github.com/DanielPopoola/cps-gateway/internal/application/services"
)

// Handlers implements the OpenAPI ServerInterface
type Handlers struct {
	handoffBuilder *services.HandoffBuilder
	queryService   *services.QueryService
	logger         *slog.Logger
}

func NewHandlers(
	handoffBuilder *services.HandoffBuilder,
	queryService *services.QueryService,
	logger *slog.Logger,
) *Handlers {
	return &Handlers{
		handoffBuilder: handoffBuilder,
		queryService:   queryService,
		logger:         logger,
	}
}

// Ensure Handlers implements ServerInterface
var _ api.ServerInterface = (*Handlers)(nil)
