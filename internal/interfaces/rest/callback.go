package rest

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"strings"
	"time"

	"github.com/DanielPopoola/cps-gateway/internal/application/services"
)

// CallbackHandler receives the gateway's asynchronous payment report.
type CallbackHandler struct {
	service        *services.CallbackService
	trustedProxies []netip.Prefix
	logger         *slog.Logger
}

// NewCallbackHandler builds the handler. X-Forwarded-For is only read when the
// direct peer is one of trustedProxies.
func NewCallbackHandler(service *services.CallbackService, trustedProxies []netip.Prefix, logger *slog.Logger) *CallbackHandler {
	return &CallbackHandler{
		service:        service,
		trustedProxies: trustedProxies,
		logger:         logger,
	}
}

// ParseTrustedProxies accepts bare addresses and CIDR ranges.
func ParseTrustedProxies(entries []string) ([]netip.Prefix, error) {
	prefixes := make([]netip.Prefix, 0, len(entries))
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if strings.Contains(entry, "/") {
			p, err := netip.ParsePrefix(entry)
			if err != nil {
				return nil, fmt.Errorf("invalid proxy range %q: %w", entry, err)
			}
			prefixes = append(prefixes, p.Masked())
			continue
		}
		addr, err := netip.ParseAddr(entry)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy address %q: %w", entry, err)
		}
		addr = addr.Unmap()
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return prefixes, nil
}

// Register mounts the handler for both GET and POST deliveries.
func (h *CallbackHandler) Register(mux *http.ServeMux) {
	mux.Handle("GET /callback", h)
	mux.Handle("POST /callback", h)
}

func (h *CallbackHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.logger.Warn("unreadable callback body", "error", err)
		w.WriteHeader(http.StatusOK)
		return
	}

	directive := h.service.Handle(r.Context(), services.CallbackRequest{
		Params:     r.Form,
		SourceIP:   h.sourceIP(r),
		ReceivedAt: time.Now(),
	})

	if directive.IsRedirect() {
		w.Header().Set("Location", directive.Location)
		w.WriteHeader(directive.Status)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// sourceIP walks X-Forwarded-For from the right, skipping our own proxies,
// and stops at the first hop they did not vouch for.
func (h *CallbackHandler) sourceIP(r *http.Request) string {
	peer, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		peer = r.RemoteAddr
	}

	if !h.isTrustedProxy(peer) {
		return peer
	}

	fwd := r.Header.Values("X-Forwarded-For")
	if len(fwd) == 0 {
		return peer
	}
	hops := strings.Split(strings.Join(fwd, ","), ",")

	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		if hop == "" {
			continue
		}
		if !h.isTrustedProxy(hop) {
			return hop
		}
		peer = hop
	}
	return peer
}

func (h *CallbackHandler) isTrustedProxy(ip string) bool {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, p := range h.trustedProxies {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}
