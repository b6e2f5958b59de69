// Package requesttime pins one "now" per HTTP request. Evaluations that do
// not name an as-of date are run against this instant.
package requesttime

import (
	"net/http"
	"time"

	"legalcheck/pkg/requestcontext"
)

// Middleware captures the current time at the start of the request and
// stores it through requestcontext.WithTime.
func Middleware(next http.Handler) http.Handler {
	return MiddlewareWithClock(time.Now)(next)
}

// MiddlewareWithClock is Middleware with an injectable clock for tests.
func MiddlewareWithClock(clock func() time.Time) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := requestcontext.WithTime(r.Context(), clock().UTC())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
