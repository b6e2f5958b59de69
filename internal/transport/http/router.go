package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"legalcheck/internal/platform/health"
	"legalcheck/pkg/platform/middleware/auth"
	"legalcheck/pkg/platform/middleware/request"
	"legalcheck/pkg/platform/middleware/requesttime"
)

// APIPrefix is the mount point of every versioned route.
const APIPrefix = "/api/v1"

// MaxJSONBodyBytes caps JSON request bodies. Uploads enforce their own limit.
const MaxJSONBodyBytes = 1 << 20

// PublicRoutes are mounted without authentication.
type PublicRoutes interface {
	RegisterPublic(r chi.Router)
}

// Routes are mounted behind RequireAuth.
type Routes interface {
	Register(r chi.Router)
}

// Config collects everything NewRouter mounts. Nil handlers are skipped.
type Config struct {
	Logger         *slog.Logger
	Health         *health.Handler
	Metrics        http.Handler
	RequestMetrics *request.Metrics
	Validator      auth.JWTValidator
	Revocations    auth.TokenRevocationChecker
	Timeout        time.Duration

	Public []PublicRoutes
	// JSON routes share the JSON body limit.
	JSON []Routes
	// Uploads are exempt from the JSON body limit.
	Uploads []Routes
}

// NewRouter wires the middleware stack and every module's routes.
func NewRouter(cfg Config) http.Handler {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Validator == nil {
		panic("router: token validator is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	r := chi.NewRouter()
	r.Use(request.Recovery(cfg.Logger))
	r.Use(request.RequestID)
	r.Use(request.ClientMetadata)
	r.Use(requesttime.Middleware)
	r.Use(request.Logger(cfg.Logger))
	r.Use(request.LatencyMiddleware(cfg.RequestMetrics))
	r.Use(request.Timeout(timeout))

	if cfg.Health != nil {
		cfg.Health.Register(r)
	}
	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics)
	}

	r.Route(APIPrefix, func(api chi.Router) {
		api.Use(request.ContentTypeJSON)

		api.Group(func(pub chi.Router) {
			pub.Use(request.BodyLimit(MaxJSONBodyBytes))
			for _, h := range cfg.Public {
				h.RegisterPublic(pub)
			}
		})

		api.Group(func(authed chi.Router) {
			authed.Use(auth.RequireAuth(cfg.Validator, cfg.Revocations, cfg.Logger))

			authed.Group(func(js chi.Router) {
				js.Use(request.BodyLimit(MaxJSONBodyBytes))
				for _, h := range cfg.JSON {
					h.Register(js)
				}
			})
			authed.Group(func(up chi.Router) {
				for _, h := range cfg.Uploads {
					h.Register(up)
				}
			})
		})
	})

	return r
}
