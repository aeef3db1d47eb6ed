package services_test

import (
	"net/http"
	"testing"

	"github.com/DanielPopoola/cps-gateway/internal/application/services"
	"github.com/DanielPopoola/cps-gateway/internal/application/services/testhelpers"
	"github.com/stretchr/testify/assert"
)

func TestResolveResponse(t *testing.T) {
	order := testhelpers.PendingOrder()
	want := "https://shop.example.com/checkout/order-received/4521/?key=wc_order_58d2a1"

	for _, kind := range []services.AppliedKind{services.Applied, services.Unchanged, services.Rejected} {
		d := services.ResolveResponse("https://shop.example.com/checkout/order-received/", order, services.AppliedResult{Kind: kind})

		assert.True(t, d.IsRedirect(), kind.String())
		assert.Equal(t, http.StatusSeeOther, d.Status)
		assert.Equal(t, want, d.Location)
	}
}

func TestResolveResponse_NoOrderDrops(t *testing.T) {
	d := services.ResolveResponse("https://shop.example.com", nil, services.AppliedResult{})

	assert.True(t, d.Drop)
	assert.False(t, d.IsRedirect())
}

func TestReceiptURL_EscapesKey(t *testing.T) {
	order := testhelpers.PendingOrder()
	order.Key = "a b&c"

	assert.Equal(t, "https://shop.example.com/r/4521/?key=a+b%26c", services.ReceiptURL("https://shop.example.com/r", order))
}
