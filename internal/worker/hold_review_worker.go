package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/DanielPopoola/cps-gateway/internal/application"
	"github.com/DanielPopoola/cps-gateway/internal/config"
)

// HoldReviewWorker surfaces orders the gateway left on hold for longer than
// the configured age. It never changes an order; resolving a hold is a manual
// decision.
type HoldReviewWorker struct {
	store     application.OrderStore
	interval  time.Duration
	batchSize int
	holdAge   time.Duration
	now       func() time.Time
	logger    *slog.Logger
}

func NewHoldReviewWorker(
	store application.OrderStore,
	cfg config.WorkerConfig,
	logger *slog.Logger,
) *HoldReviewWorker {
	return &HoldReviewWorker{
		store:     store,
		interval:  cfg.Interval,
		batchSize: cfg.BatchSize,
		holdAge:   cfg.HoldAge,
		now:       time.Now,
		logger:    logger,
	}
}

func (w *HoldReviewWorker) Start(ctx context.Context) {
	w.logger.Info("hold review worker started", "interval", w.interval, "hold_age", w.holdAge)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	if _, err := w.ProcessHolds(ctx); err != nil {
		w.logger.Error("hold review failed", "error", err)
	}

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("hold review worker stopping")
			return
		case <-ticker.C:
			if _, err := w.ProcessHolds(ctx); err != nil {
				w.logger.Error("hold review failed", "error", err)
			}
		}
	}
}

// ProcessHolds runs one pass and returns how many stale holds it reported.
func (w *HoldReviewWorker) ProcessHolds(ctx context.Context) (int, error) {
	now := w.now()
	cutoff := now.Add(-w.holdAge)

	holds, err := w.store.FindStaleHolds(ctx, cutoff, w.batchSize)
	if err != nil {
		return 0, err
	}

	for _, order := range holds {
		w.logger.Warn("order on hold needs manual review",
			"order_id", order.ID,
			"amount", order.Total.String(),
			"currency", order.Total.Currency,
			"held_for", now.Sub(order.UpdatedAt).Round(time.Minute))
	}

	if len(holds) > 0 {
		w.logger.Info("processed hold review", "stale_holds", len(holds))
	}

	return len(holds), nil
}
