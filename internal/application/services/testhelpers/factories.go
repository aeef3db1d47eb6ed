package testhelpers

import (
	"context"
	"net/url"
	"slices"
	"time"

	"github.com/DanielPopoola/cps-gateway/internal/config"
	"github.com/DanielPopoola/cps-gateway/internal/domain"
)

// PendingOrder returns the order used across callback tests: #4521 for 49.99 USD.
func PendingOrder() *domain.Order {
	now := time.Now()
	return &domain.Order{
		ID:        4521,
		Key:       "wc_order_58d2a1",
		Status:    domain.StatusPending,
		Total:     domain.Money{Cents: 4999, Currency: "USD"},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// OrderIn is PendingOrder moved to the given status.
func OrderIn(status domain.OrderStatus) *domain.Order {
	o := PendingOrder()
	o.Status = status
	return o
}

// DefaultGatewayConfig is a test-mode configuration with the default vocabulary.
func DefaultGatewayConfig() config.GatewayConfig {
	return config.GatewayConfig{
		LiveURL:           "https://checkout.cornerstone.cc/shop/checkout",
		SandboxURL:        "https://give.cornerstone.cc/The+Page+of+Infinite+Testing/checkout",
		TestMode:          true,
		CurrencyAllowlist: []string{"USD"},
		TrustedHosts:      []string{"give.cornerstone.cc", "checkout.cornerstone.cc"},
		CallbackURL:       "https://shop.example.com/callback",
		ReturnURL:         "https://shop.example.com/checkout/order-received",
		StoreName:         "Example Shop",
		MissingStatus:     config.MissingStatusHold,
		ReconcileAmount:   true,
	}
}

// CallbackParams builds the query string the gateway sends.
func CallbackParams(orderID, status, message string) url.Values {
	v := url.Values{}
	v.Set(domain.ParamOrderID, orderID)
	v.Set(domain.ParamStatus, status)
	if message != "" {
		v.Set(domain.ParamMessage, message)
	}
	return v
}

// StaticOrigin trusts exactly the listed addresses.
type StaticOrigin []string

func (s StaticOrigin) IsTrustedOrigin(_ context.Context, ip string) bool {
	return slices.Contains(s, ip)
}
