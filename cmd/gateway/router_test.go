package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DanielPopoola/cps-gateway/internal/api"
	"github.com/DanielPopoola/cps-gateway/internal/application/services/testhelpers"
	"github.com/DanielPopoola/cps-gateway/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*httptest.Server, *testhelpers.MemoryOrderStore) {
	t.Helper()

	store := testhelpers.NewMemoryOrderStore()
	store.Put(testhelpers.PendingOrder())

	cfg := &config.Config{
		Server:  config.ServerConfig{WriteTimeout: 5 * time.Second},
		Gateway: testhelpers.DefaultGatewayConfig(),
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	handler, err := newRouter(cfg, store, testhelpers.StaticOrigin{"127.0.0.1"}, logger)
	require.NoError(t, err)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv, store
}

func noRedirect(*http.Request, []*http.Request) error {
	return http.ErrUseLastResponse
}

func TestRouter_CallbackThenOrderStatus(t *testing.T) {
	srv, _ := newTestServer(t)
	client := &http.Client{CheckRedirect: noRedirect}

	resp, err := client.Get(srv.URL + "/callback?orderid=4521&status=Approved")
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "https://shop.example.com/checkout/order-received/4521/?key=wc_order_58d2a1", resp.Header.Get("Location"))

	resp, err = client.Get(srv.URL + "/orders/4521?notes=true")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body api.OrderResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, api.OrderStatus("completed"), body.Data.Status)
	assert.True(t, body.Data.Paid)
	require.Len(t, body.Data.Notes, 1)
	assert.Equal(t, "Payment completed via Cornerstone.", body.Data.Notes[0].Body)
}

func TestRouter_CheckoutHandoff(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/checkout/4521")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body api.HandoffResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testhelpers.DefaultGatewayConfig().SandboxURL, body.Data.ActionUrl)
}

func TestRouter_RejectsInvalidPath(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/checkout/not-a-number")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRouter_ServesDocs(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/docs/openapi.json")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
