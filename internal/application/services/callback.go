package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"github.com/DanielPopoola/cps-gateway/internal/application"
	"github.com/DanielPopoola/cps-gateway/internal/config"
	"github.com/DanielPopoola/cps-gateway/internal/domain"
	"github.com/google/uuid"
)

// CallbackRequest is one inbound gateway notification as seen at the boundary.
type CallbackRequest struct {
	Params     url.Values
	SourceIP   string
	ReceivedAt time.Time
}

type CallbackService struct {
	origin  application.OriginValidator
	store   application.OrderStore
	applier *Applier
	cfg     config.GatewayConfig
	logger  *slog.Logger
	audit   *slog.Logger
}

func NewCallbackService(
	origin application.OriginValidator,
	store application.OrderStore,
	cfg config.GatewayConfig,
	logger *slog.Logger,
) *CallbackService {
	return &CallbackService{
		origin:  origin,
		store:   store,
		applier: NewApplier(store, logger),
		cfg:     cfg,
		logger:  logger,
		audit:   cfg.AuditLogger(logger),
	}
}

// Handle runs the whole callback protocol and never fails: anything that stops
// the order from being resolved turns into a Drop.
func (s *CallbackService) Handle(ctx context.Context, req CallbackRequest) ResponseDirective {
	if req.ReceivedAt.IsZero() {
		req.ReceivedAt = time.Now()
	}
	callbackID := uuid.New()
	logger := s.logger.With("callback_id", callbackID.String())
	audit := s.audit.With("callback_id", callbackID.String())

	audit.Info("callback received", "source_ip", req.SourceIP, "params", req.Params.Encode())

	if !s.origin.IsTrustedOrigin(ctx, req.SourceIP) {
		err := domain.NewOriginUntrustedError(req.SourceIP)
		logger.Warn("callback dropped",
			"error", err,
			"code", domain.ErrCodeOriginUntrusted,
			"category", application.CategorizeError(err))
		return Drop()
	}

	n, err := domain.ParseCallback(req.Params, req.SourceIP, req.ReceivedAt)
	if err != nil {
		if !errors.Is(err, domain.ErrMissingStatus) {
			logger.Warn("callback dropped", "error", err)
			return Drop()
		}
		if s.cfg.MissingStatus == config.MissingStatusReject {
			logger.Warn("callback dropped",
				"error", err,
				"code", domain.ErrCodeMissingStatus,
				"order_ref", n.OrderRef)
			return Drop()
		}
		logger.Warn("callback without status, holding order",
			"code", domain.ErrCodeMissingStatus,
			"order_ref", n.OrderRef)
	}
	n.ID = callbackID

	order, err := s.resolveOrder(ctx, n.OrderRef)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			logger.Warn("callback dropped",
				"error", err,
				"code", domain.ErrCodeOrderNotFound,
				"order_ref", n.OrderRef)
		} else {
			logger.Error("order lookup failed",
				"error", err,
				"order_ref", n.OrderRef,
				"category", application.CategorizeError(err))
		}
		return Drop()
	}

	outcome := domain.Interpret(n.Status)
	audit.Info("callback interpreted",
		"order_id", order.ID,
		"status", n.Status,
		"outcome", outcome.String(),
		"message", n.Message)

	outcome = s.reconcile(logger, order, n, outcome)

	result, updated, err := s.applier.Apply(ctx, order.ID, outcome, n.Message)
	if err != nil {
		logger.Error("failed to apply gateway outcome",
			"error", err,
			"order_id", order.ID,
			"outcome", outcome.String(),
			"category", application.CategorizeError(err))
		return Drop()
	}

	directive := ResolveResponse(s.cfg.ReturnURL, updated, result)
	audit.Info("callback resolved",
		"order_id", order.ID,
		"result", result.Kind.String(),
		"location", directive.Location)

	return directive
}

func (s *CallbackService) resolveOrder(ctx context.Context, ref string) (*domain.Order, error) {
	if ref == "" {
		return nil, domain.NewOrderNotFoundError(ref)
	}
	id, err := strconv.ParseInt(ref, 10, 64)
	if err != nil {
		return nil, domain.NewOrderNotFoundError(ref)
	}
	return s.store.GetOrder(ctx, id)
}

// reconcile holds an approval whose reported amount disagrees with the order.
func (s *CallbackService) reconcile(logger *slog.Logger, order *domain.Order, n *domain.CallbackNotification, outcome domain.GatewayOutcome) domain.GatewayOutcome {
	if !s.cfg.ReconcileAmount || outcome.Kind != domain.OutcomeApproved || !n.HasAmount() {
		return outcome
	}

	expected := order.Total.Decimal()
	if n.AmountValid && domain.AmountsEqual(expected, n.Amount) {
		return outcome
	}

	err := domain.NewAmountMismatchError(expected.String(), n.RawAmount)
	logger.Warn("approved callback amount does not match order total",
		"error", err,
		"code", domain.ErrCodeAmountMismatch,
		"order_id", order.ID)

	return domain.Indeterminate(fmt.Sprintf("amount mismatch expected %s reported %s", expected, n.RawAmount))
}
