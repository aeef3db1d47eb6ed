package api

import (
	"fmt"
	"net/http"

	"github.com/oapi-codegen/runtime"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Build the hosted payment page hand-off for an order
	// (GET /checkout/{orderID})
	GetCheckout(w http.ResponseWriter, r *http.Request, orderID int64)
	// Order payment status for the receipt page
	// (GET /orders/{orderID})
	GetOrder(w http.ResponseWriter, r *http.Request, orderID int64, params GetOrderParams)
}

// ServerInterfaceWrapper converts path and query parameters before calling
// the handler.
type ServerInterfaceWrapper struct {
	Handler          ServerInterface
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

func (siw *ServerInterfaceWrapper) GetCheckout(w http.ResponseWriter, r *http.Request) {
	var orderID int64

	err := runtime.BindStyledParameterWithOptions("simple", "orderID", r.PathValue("orderID"), &orderID, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "orderID", Err: err})
		return
	}

	siw.Handler.GetCheckout(w, r, orderID)
}

func (siw *ServerInterfaceWrapper) GetOrder(w http.ResponseWriter, r *http.Request) {
	var orderID int64

	err := runtime.BindStyledParameterWithOptions("simple", "orderID", r.PathValue("orderID"), &orderID, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "orderID", Err: err})
		return
	}

	var params GetOrderParams

	err = runtime.BindQueryParameter("form", true, false, "notes", r.URL.Query(), &params.Notes)
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "notes", Err: err})
		return
	}

	siw.Handler.GetOrder(w, r, orderID, params)
}

type InvalidParamFormatError struct {
	ParamName string
	Err       error
}

func (e *InvalidParamFormatError) Error() string {
	return fmt.Sprintf("Invalid format for parameter %s: %s", e.ParamName, e.Err.Error())
}

func (e *InvalidParamFormatError) Unwrap() error {
	return e.Err
}

type StdHTTPServerOptions struct {
	BaseURL          string
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

func HandlerWithOptions(si ServerInterface, options StdHTTPServerOptions, m *http.ServeMux) http.Handler {
	if m == nil {
		m = http.NewServeMux()
	}
	if options.ErrorHandlerFunc == nil {
		options.ErrorHandlerFunc = func(w http.ResponseWriter, r *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
	}

	wrapper := ServerInterfaceWrapper{
		Handler:          si,
		ErrorHandlerFunc: options.ErrorHandlerFunc,
	}

	m.HandleFunc("GET "+options.BaseURL+"/checkout/{orderID}", wrapper.GetCheckout)
	m.HandleFunc("GET "+options.BaseURL+"/orders/{orderID}", wrapper.GetOrder)

	return m
}
