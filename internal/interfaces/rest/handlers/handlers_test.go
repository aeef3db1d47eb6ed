package handlers_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DanielPopoola/cps-gateway/internal/api"
	"github.com/DanielPopoola/cps-gateway/internal/application"
	"github.com/DanielPopoola/cps-gateway/internal/application/services"
	"github.com/DanielPopoola/cps-gateway/internal/application/services/testhelpers"
	"github.com/DanielPopoola/cps-gateway/internal/domain"
	"github.com/DanielPopoola/cps-gateway/internal/interfaces/rest"
	"github.com/DanielPopoola/cps-gateway/internal/interfaces/rest/handlers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type HandlersTestSuite struct {
	suite.Suite
	store  *testhelpers.MemoryOrderStore
	router http.Handler
}

func TestHandlersSuite(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}

func (suite *HandlersTestSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	suite.store = testhelpers.NewMemoryOrderStore()
	suite.store.Put(testhelpers.PendingOrder())

	h := handlers.NewHandlers(
		services.NewHandoffBuilder(testhelpers.DefaultGatewayConfig()),
		services.NewQueryService(suite.store),
		logger,
	)
	suite.router = api.HandlerWithOptions(h, api.StdHTTPServerOptions{
		ErrorHandlerFunc: rest.ParamErrorHandler,
	}, http.NewServeMux())
}

func (suite *HandlersTestSuite) get(path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	suite.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func (suite *HandlersTestSuite) Test_GetCheckout() {
	t := suite.T()

	rec := suite.get("/checkout/4521")
	require.Equal(t, http.StatusOK, rec.Code)

	var body api.HandoffResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.True(t, body.Success)
	assert.Equal(t, int64(4521), body.Data.OrderId)
	assert.Equal(t, http.MethodPost, body.Data.Method)
	assert.Len(t, body.Data.Fields, 8)
	assert.Equal(t, "merchant_id", body.Data.Fields[0].Name)
}

func (suite *HandlersTestSuite) Test_GetCheckout_PaidOrderConflicts() {
	t := suite.T()
	suite.store.Put(testhelpers.OrderIn(domain.StatusCompleted))

	rec := suite.get("/checkout/4521")

	assert.Equal(t, http.StatusConflict, rec.Code)
	var body api.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, domain.ErrCodeInvalidState, body.Error.Code)
}

func (suite *HandlersTestSuite) Test_GetCheckout_UnknownOrder() {
	assert.Equal(suite.T(), http.StatusNotFound, suite.get("/checkout/77").Code)
}

func (suite *HandlersTestSuite) Test_GetCheckout_BadOrderID() {
	t := suite.T()

	rec := suite.get("/checkout/abc")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body api.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, application.ErrCodeInvalidInput, body.Error.Code)
}

func (suite *HandlersTestSuite) Test_GetOrder() {
	t := suite.T()

	rec := suite.get("/orders/4521")
	require.Equal(t, http.StatusOK, rec.Code)

	var body api.OrderResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, api.OrderStatus("pending"), body.Data.Status)
	assert.Equal(t, "49.99", body.Data.Amount)
	assert.False(t, body.Data.Paid)
	assert.Empty(t, body.Data.Notes)
}

func (suite *HandlersTestSuite) Test_GetOrder_WithNotes() {
	t := suite.T()
	require.NoError(t, suite.store.SetStatus(context.Background(), 4521, domain.StatusFailed, "Payment declined via Cornerstone. Message: ."))

	rec := suite.get("/orders/4521?notes=true")
	require.Equal(t, http.StatusOK, rec.Code)

	var body api.OrderResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, api.OrderStatus("failed"), body.Data.Status)
	require.Len(t, body.Data.Notes, 1)
}

func (suite *HandlersTestSuite) Test_GetOrder_BadNotesFlag() {
	assert.Equal(suite.T(), http.StatusBadRequest, suite.get("/orders/4521?notes=maybe").Code)
}
