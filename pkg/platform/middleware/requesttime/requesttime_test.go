package requesttime

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"legalcheck/pkg/requestcontext"
)

func TestMiddlewareWithClock_PinsRequestTime(t *testing.T) {
	pinned := time.Date(2025, 6, 1, 9, 30, 0, 0, time.FixedZone("CEST", 2*60*60))

	var first, second time.Time
	handler := MiddlewareWithClock(func() time.Time { return pinned })(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			first = requestcontext.Now(r.Context())
			second = requestcontext.Now(r.Context())
			w.WriteHeader(http.StatusOK)
		}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/laws", nil))

	assert.Equal(t, pinned.UTC(), first)
	assert.Equal(t, first, second, "time should be consistent within request")
	assert.Equal(t, time.UTC, first.Location())
}

func TestMiddleware_UsesWallClock(t *testing.T) {
	var captured time.Time
	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = requestcontext.Now(r.Context())
	}))

	before := time.Now()
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.False(t, captured.Before(before.UTC().Add(-time.Second)))
}
