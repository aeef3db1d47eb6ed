package main

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/DanielPopoola/cps-gateway/internal/api"
	"github.com/DanielPopoola/cps-gateway/internal/application"
	"github.com/DanielPopoola/cps-gateway/internal/application/services"
	"github.com/DanielPopoola/cps-gateway/internal/config"
	"github.com/DanielPopoola/cps-gateway/internal/interfaces/rest"
	"github.com/DanielPopoola/cps-gateway/internal/interfaces/rest/handlers"
	"github.com/DanielPopoola/cps-gateway/internal/interfaces/rest/middleware"
)

type orderStore interface {
	application.OrderStore
	application.OrderReader
}

func newRouter(cfg *config.Config, store orderStore, origin application.OriginValidator, logger *slog.Logger) (http.Handler, error) {
	callbackService := services.NewCallbackService(origin, store, cfg.Gateway, logger)
	handoffBuilder := services.NewHandoffBuilder(cfg.Gateway)
	queryService := services.NewQueryService(store)

	h := handlers.NewHandlers(handoffBuilder, queryService, logger)

	mux := http.NewServeMux()
	api.RegisterDocsRoutes(mux)
	api.HandlerWithOptions(h, api.StdHTTPServerOptions{
		ErrorHandlerFunc: rest.ParamErrorHandler,
	}, mux)
	proxies, err := rest.ParseTrustedProxies(cfg.Server.TrustedProxies)
	if err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}
	rest.NewCallbackHandler(callbackService, proxies, logger).Register(mux)

	doc, err := api.GetSwagger()
	if err != nil {
		return nil, err
	}
	validate, err := middleware.OpenAPIValidator(doc, logger)
	if err != nil {
		return nil, fmt.Errorf("openapi validator: %w", err)
	}

	handler := validate(mux)
	handler = middleware.Recovery(logger)(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.Timeout(cfg.Server.WriteTimeout)(handler)

	return handler, nil
}
