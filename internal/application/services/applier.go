package services

import (
	"context"
	"log/slog"

	"github.com/DanielPopoola/cps-gateway/internal/application"
	"github.com/DanielPopoola/cps-gateway/internal/domain"
)

// AppliedKind is the observable effect of one outcome on one order.
type AppliedKind int

const (
	Applied AppliedKind = iota
	Unchanged
	Rejected
)

func (k AppliedKind) String() string {
	switch k {
	case Applied:
		return "APPLIED"
	case Unchanged:
		return "UNCHANGED"
	case Rejected:
		return "REJECTED"
	}
	return "UNKNOWN"
}

// AppliedResult reports what Apply did. From/To are set for Applied, Status for
// Unchanged and Reason for Rejected.
type AppliedResult struct {
	Kind   AppliedKind
	From   domain.OrderStatus
	To     domain.OrderStatus
	Status domain.OrderStatus
	Reason string
}

type Applier struct {
	store  application.OrderStore
	logger *slog.Logger
}

func NewApplier(store application.OrderStore, logger *slog.Logger) *Applier {
	return &Applier{
		store:  store,
		logger: logger,
	}
}

// Apply moves the order according to the outcome. The read, the decision and
// the writes share one transaction holding the order's row lock, so redelivered
// callbacks observe each other's effects.
func (a *Applier) Apply(ctx context.Context, orderID int64, outcome domain.GatewayOutcome, message string) (AppliedResult, *domain.Order, error) {
	var (
		result AppliedResult
		order  *domain.Order
	)

	err := a.store.WithTx(ctx, func(tx application.OrderStore) error {
		var txErr error
		order, txErr = tx.GetOrderForUpdate(ctx, orderID)
		if txErr != nil {
			return txErr
		}

		t := order.Decide(outcome, message)

		switch t.Kind {
		case domain.TransitionApply:
			if t.MarkPaid {
				if err := tx.AddNote(ctx, orderID, t.Note); err != nil {
					return err
				}
				if err := tx.MarkPaid(ctx, orderID); err != nil {
					return err
				}
			} else if err := tx.SetStatus(ctx, orderID, t.To, t.Note); err != nil {
				return err
			}
			order.Status = t.To
			result = AppliedResult{Kind: Applied, From: t.From, To: t.To}

		case domain.TransitionNoteOnly:
			if err := tx.AddNote(ctx, orderID, t.Note); err != nil {
				return err
			}
			result = AppliedResult{Kind: Unchanged, Status: order.Status}

		case domain.TransitionNoop:
			result = AppliedResult{Kind: Unchanged, Status: order.Status}

		case domain.TransitionReject:
			result = AppliedResult{Kind: Rejected, Status: order.Status, Reason: t.Reason}
		}
		return nil
	})
	if err != nil {
		return AppliedResult{}, nil, err
	}

	switch result.Kind {
	case Rejected:
		a.logger.Warn("gateway outcome rejected",
			"order_id", orderID,
			"outcome", outcome.String(),
			"status", result.Status,
			"reason", result.Reason)
	case Applied:
		a.logger.Info("order transitioned",
			"order_id", orderID,
			"outcome", outcome.String(),
			"from", result.From,
			"to", result.To)
	default:
		a.logger.Debug("order unchanged",
			"order_id", orderID,
			"outcome", outcome.String(),
			"status", result.Status)
	}

	return result, order, nil
}
