package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/DanielPopoola/cps-gateway/internal/application"
	"github.com/DanielPopoola/cps-gateway/internal/interfaces/rest"
)

func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	_, body := rest.BuildErrorResponse(application.NewTimeoutError())
	msg, _ := json.Marshal(body)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			r = r.WithContext(ctx)

			timeoutHandler := http.TimeoutHandler(
				next,
				timeout,
				string(msg),
			)

			timeoutHandler.ServeHTTP(w, r)
		})
	}
}
