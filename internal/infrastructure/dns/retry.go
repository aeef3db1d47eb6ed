package dns

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net"
	"time"

	"github.com/DanielPopoola/cps-gateway/internal/config"
)

type RetryResolver struct {
	inner      Resolver
	baseDelay  time.Duration
	maxRetries int
	logger     *slog.Logger
}

func NewRetryResolver(inner Resolver, cfg config.DNSConfig, logger *slog.Logger) *RetryResolver {
	maxRetries := cfg.MaxRetries
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &RetryResolver{
		inner:      inner,
		baseDelay:  cfg.BaseDelay,
		maxRetries: maxRetries,
		logger:     logger,
	}
}

// LookupHost retries lookups that failed with a temporary or timeout error.
func (r *RetryResolver) LookupHost(ctx context.Context, host string) ([]string, error) {
	var lastErr error

	for attempt := 0; attempt < r.maxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		addrs, err := r.inner.LookupHost(ctx, host)
		if err == nil {
			return addrs, nil
		}

		lastErr = err

		if !isRetryable(err) {
			return nil, err
		}

		if attempt < r.maxRetries-1 {
			delay := r.backoff(attempt)
			r.logger.Debug("retrying dns lookup",
				"host", host,
				"attempt", attempt+1,
				"delay", delay,
				"error", err)

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return nil, fmt.Errorf("maximum retries exceeded: %w", lastErr)
}

func isRetryable(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return dnsErr.IsTemporary || dnsErr.IsTimeout
	}

	return errors.Is(err, context.DeadlineExceeded)
}

// Backoff calculation with exponential delay and jitter
func (r *RetryResolver) backoff(attempt int) time.Duration {
	base := r.baseDelay * time.Duration(1<<attempt)
	if r.baseDelay <= 0 {
		return 0
	}

	jitter := time.Duration(rand.Int63n(int64(r.baseDelay)))

	return base + jitter
}
