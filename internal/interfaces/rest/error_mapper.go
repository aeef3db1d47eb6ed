package rest

import (
	"encoding/json"
	"net/http"

	"github.com/DanielPopoola/cps-gateway/internal/api"
	"github.com/DanielPopoola/cps-gateway/internal/application"
)

// BuildErrorResponse maps an application error to its status and envelope.
func BuildErrorResponse(err error) (int, api.ErrorResponse) {
	return application.ToHTTPStatus(err), api.ErrorResponse{
		Success: false,
		Error: api.ErrorDetail{
			Code:    application.ToErrorCode(err),
			Message: err.Error(),
		},
	}
}

// WriteError maps application errors to HTTP responses
func WriteError(w http.ResponseWriter, err error) {
	statusCode, response := BuildErrorResponse(err)
	WriteJSON(w, statusCode, response)
}

func WriteJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

// ParamErrorHandler answers parameter binding failures with INVALID_INPUT.
func ParamErrorHandler(w http.ResponseWriter, _ *http.Request, err error) {
	WriteError(w, application.NewInvalidInputError(err))
}
