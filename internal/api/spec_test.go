package api_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DanielPopoola/cps-gateway/internal/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSwagger(t *testing.T) {
	doc, err := api.GetSwagger()
	require.NoError(t, err)

	assert.Equal(t, "Cornerstone Payment Gateway", doc.Info.Title)
	assert.NotNil(t, doc.Paths.Find("/checkout/{orderID}"))
	assert.NotNil(t, doc.Paths.Find("/orders/{orderID}"))
}

func TestRegisterDocsRoutes(t *testing.T) {
	mux := http.NewServeMux()
	api.RegisterDocsRoutes(mux)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/docs/openapi.json", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `"openapi": "3.0.3"`)
	assert.Contains(t, rec.Body.String(), `"title": "Cornerstone Payment Gateway"`)
}
