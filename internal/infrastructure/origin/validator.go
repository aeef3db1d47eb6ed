// Package origin decides whether a callback came from the payment gateway by
// comparing its source address with the resolved addresses of the gateway's
// published hostnames.
package origin

import (
	"context"
	"log/slog"
	"net/netip"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/DanielPopoola/cps-gateway/internal/infrastructure/dns"
)

type Validator struct {
	resolver dns.Resolver
	hosts    []string
	ttl      time.Duration
	logger   *slog.Logger
	now      func() time.Time

	mu      sync.Mutex
	trusted []netip.Addr
	expires time.Time
}

// NewValidator trusts the addresses the given hosts resolve to. With a zero
// ttl every check resolves again.
func NewValidator(resolver dns.Resolver, hosts []string, ttl time.Duration, logger *slog.Logger) *Validator {
	cleaned := make([]string, 0, len(hosts))
	for _, h := range hosts {
		h = strings.TrimSuffix(strings.TrimSpace(h), "/")
		if h != "" {
			cleaned = append(cleaned, h)
		}
	}
	return &Validator{
		resolver: resolver,
		hosts:    cleaned,
		ttl:      ttl,
		logger:   logger,
		now:      time.Now,
	}
}

// IsTrustedOrigin fails closed: an unparseable source or an empty trusted set
// is never trusted.
func (v *Validator) IsTrustedOrigin(ctx context.Context, sourceIP string) bool {
	src, err := netip.ParseAddr(strings.TrimSpace(sourceIP))
	if err != nil {
		v.logger.Warn("unparseable callback source address", "source_ip", sourceIP)
		return false
	}
	src = src.Unmap()

	trusted := v.trustedSet(ctx)
	if len(trusted) == 0 {
		v.logger.Error("no gateway addresses resolved, rejecting callback", "hosts", v.hosts)
		return false
	}

	return slices.Contains(trusted, src)
}

func (v *Validator) trustedSet(ctx context.Context) []netip.Addr {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.ttl > 0 && len(v.trusted) > 0 && v.now().Before(v.expires) {
		return v.trusted
	}

	set := v.resolve(ctx)
	if v.ttl > 0 && len(set) > 0 {
		v.trusted = set
		v.expires = v.now().Add(v.ttl)
	}
	return set
}

func (v *Validator) resolve(ctx context.Context) []netip.Addr {
	var set []netip.Addr

	for _, host := range v.hosts {
		addrs, err := v.resolver.LookupHost(ctx, host)
		if err != nil {
			v.logger.Warn("failed to resolve gateway host", "host", host, "error", err)
			continue
		}

		for _, a := range addrs {
			ip, err := netip.ParseAddr(a)
			if err != nil {
				continue
			}
			ip = ip.Unmap()
			if !slices.Contains(set, ip) {
				set = append(set, ip)
			}
		}
	}

	v.logger.Debug("resolved gateway addresses", "hosts", v.hosts, "addresses", set)
	return set
}
