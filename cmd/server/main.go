package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	docHandler "legalcheck/internal/documents/handler"
	docService "legalcheck/internal/documents/service"
	docStore "legalcheck/internal/documents/store"
	"legalcheck/internal/eligibility/calculator"
	eligConfig "legalcheck/internal/eligibility/config"
	eligHandler "legalcheck/internal/eligibility/handler"
	"legalcheck/internal/eligibility/laws"
	"legalcheck/internal/eligibility/mapper"
	eligMetrics "legalcheck/internal/eligibility/metrics"
	eligService "legalcheck/internal/eligibility/service"
	jwttoken "legalcheck/internal/jwt_token"
	personHandler "legalcheck/internal/person/handler"
	personService "legalcheck/internal/person/service"
	personStore "legalcheck/internal/person/store"
	"legalcheck/internal/platform/config"
	"legalcheck/internal/platform/health"
	"legalcheck/internal/platform/logger"
	"legalcheck/internal/platform/metrics"
	"legalcheck/internal/platform/tracer"
	httptransport "legalcheck/internal/transport/http"
	userHandler "legalcheck/internal/users/handler"
	userService "legalcheck/internal/users/service"
	userStore "legalcheck/internal/users/store"
	"legalcheck/pkg/platform/middleware/request"
)

// revocationCleanupInterval is how often logged-out token ids are pruned.
const revocationCleanupInterval = 5 * time.Minute

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server failed", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

func run(ctx context.Context, cfg config.Server, log *slog.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	log.Info("initializing legalcheck",
		"addr", cfg.Addr,
		"environment", cfg.Environment,
		"ruleset_file", cfg.RuleSetFile,
		"assume_lawful_when_unknown", cfg.AssumeLawfulWhenUnknown,
	)

	app, err := build(cfg, log, prometheus.DefaultRegisterer, prometheus.DefaultGatherer)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           app.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting http server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		app.revocations.RunCleanup(gctx, revocationCleanupInterval)
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server gracefully")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

type application struct {
	router      http.Handler
	revocations *userStore.RevocationList
}

// build constructs every service against reg so tests can use a private
// Prometheus registry.
func build(cfg config.Server, log *slog.Logger, reg prometheus.Registerer, gatherer prometheus.Gatherer) (*application, error) {
	platformMetrics := metrics.NewWithRegisterer(reg)
	otel := tracer.NewOTel()

	cat := laws.Default()
	var ruleSets *eligConfig.RuleSets
	var err error
	if cfg.RuleSetFile != "" {
		ruleSets, err = eligConfig.Load(cfg.RuleSetFile, cat)
	} else {
		ruleSets, err = eligConfig.Default(cat)
	}
	if err != nil {
		return nil, fmt.Errorf("load rule sets: %w", err)
	}

	persons := personService.New(personStore.NewInMemory(),
		personService.WithLogger(log),
		personService.WithMetrics(platformMetrics),
	)

	policy := calculator.DefaultResidencePolicy()
	policy.AssumeLawfulWhenUnknown = cfg.AssumeLawfulWhenUnknown
	eligibility, err := eligService.New(persons, ruleSets, cat,
		eligService.WithLogger(log),
		eligService.WithMetrics(eligMetrics.NewWithRegisterer(reg)),
		eligService.WithTracer(otel),
		eligService.WithMapper(mapper.New(policy)),
	)
	if err != nil {
		return nil, fmt.Errorf("build orchestrator: %w", err)
	}

	blobs, err := docStore.NewFilesystem(cfg.DocumentStorageDir)
	if err != nil {
		return nil, fmt.Errorf("document storage: %w", err)
	}
	documents := docService.New(blobs, persons,
		docService.WithLogger(log),
		docService.WithMetrics(platformMetrics),
		docService.WithTracer(otel),
	)

	jwt := jwttoken.NewJWTService(cfg.JWTSigningKey, cfg.JWTIssuer, cfg.JWTAudience, cfg.TokenTTL)
	jwt.SetEnv(cfg.Environment)
	revocations := userStore.NewRevocationList()
	users := userService.New(userStore.NewInMemory(), jwt,
		userService.WithLogger(log),
		userService.WithMetrics(platformMetrics),
		userService.WithRevoker(revocations),
	)

	healthHandler := health.New(cfg.Environment)
	healthHandler.RegisterCheck("document_storage", blobs.Ping)
	healthHandler.SetDetail("rulesets", ruleSetSource(cfg.RuleSetFile))

	uh := userHandler.New(users, log)
	eh := eligHandler.New(eligibility, log)
	router := httptransport.NewRouter(httptransport.Config{
		Logger:         log,
		Health:         healthHandler,
		Metrics:        promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}),
		RequestMetrics: request.NewMetricsWithRegisterer(reg),
		Validator:      jwt.Middleware(),
		Revocations:    revocations,
		Timeout:        cfg.EvaluationTimeout,
		Public:         []httptransport.PublicRoutes{uh, eh},
		JSON:           []httptransport.Routes{uh, personHandler.New(persons, log), eh},
		Uploads:        []httptransport.Routes{docHandler.New(documents, log)},
	})

	return &application{router: router, revocations: revocations}, nil
}

func ruleSetSource(path string) string {
	if path == "" {
		return "embedded"
	}
	return path
}
