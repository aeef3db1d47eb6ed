// Package dns resolves gateway hostnames for origin checks.
package dns

import (
	"context"
	"fmt"
	"net"
	"time"
)

// Resolver looks up the addresses of a host.
type Resolver interface {
	LookupHost(ctx context.Context, host string) ([]string, error)
}

// NetResolver bounds each lookup of a net.Resolver by a timeout.
type NetResolver struct {
	resolver *net.Resolver
	timeout  time.Duration
}

func NewNetResolver(timeout time.Duration) *NetResolver {
	return &NetResolver{
		resolver: net.DefaultResolver,
		timeout:  timeout,
	}
}

func (r *NetResolver) LookupHost(ctx context.Context, host string) ([]string, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	addrs, err := r.resolver.LookupHost(ctx, host)
	if err != nil {
		return nil, fmt.Errorf("lookup %s: %w", host, err)
	}
	return addrs, nil
}
