package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/djglaser/spookymart-ecommerce/config"
	"github.com/djglaser/spookymart-ecommerce/internal/catalog"
	"github.com/djglaser/spookymart-ecommerce/internal/domain"
	"github.com/djglaser/spookymart-ecommerce/internal/kafka"
	"github.com/djglaser/spookymart-ecommerce/internal/ports"
	storemem "github.com/djglaser/spookymart-ecommerce/internal/store/memory"
	storepg "github.com/djglaser/spookymart-ecommerce/internal/store/postgres"
	rest "github.com/djglaser/spookymart-ecommerce/internal/transport/http"
	"github.com/djglaser/spookymart-ecommerce/internal/usecase"
	"github.com/djglaser/spookymart-ecommerce/pkg/logger"
	"github.com/djglaser/spookymart-ecommerce/pkg/metrics"
	"github.com/djglaser/spookymart-ecommerce/pkg/telemetry"
)

// App — assembled application and its outward-facing pieces.
type App struct {
	Logger          ports.Logger
	HTTPServer      *http.Server
	gracefulTimeout time.Duration
}

// Cleanup — releases resources acquired during Bootstrap.
type Cleanup func()

// applyGinMode — sets the gin mode; unknown values fall back to debug
// with a warning.
func applyGinMode(ctx context.Context, mode string, log ports.Logger) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	case "", "debug":
		gin.SetMode(gin.DebugMode)
	default:
		gin.SetMode(gin.DebugMode)
		log.Warnf(ctx, "unknown GIN_MODE=%q, fallback to debug", mode)
	}
}

// seeder — stores that can bulk load the demo orders.
type seeder interface {
	Seed(ctx context.Context, orders []*domain.Order) error
}

// Bootstrap — builds the dependency graph and returns the app plus a
// cleanup function.
func Bootstrap(ctx context.Context, cfg config.Config) (*App, Cleanup, error) {
	logg, cleanupLogger, err := logger.NewZapLogger(cfg.Logger.IsProd)
	if err != nil {
		return nil, func() {}, err
	}

	metrics.MustRegister()

	// Tracing is a no-op unless enabled.
	shutdownTrace := func(context.Context) error { return nil }
	if cfg.Tracing.Enabled {
		setup, tErr := telemetry.SetupTracing(ctx, cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
		if tErr != nil {
			logg.Warnf(ctx, "failed to setup tracing: %v", tErr)
		} else {
			logg.Infof(ctx, "otel tracing enabled service=%s endpoint=%s sample=%.2f",
				cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
			shutdownTrace = setup
		}
	}

	// Order store: in-memory by default, postgres when configured.
	var (
		store     ports.OrderStore
		closePool = func() {}
	)
	switch strings.ToLower(cfg.Store.Driver) {
	case "", "memory":
		store = storemem.NewOrderStore()
	case "postgres":
		pool, pErr := storepg.NewPool(ctx, cfg.Postgres.DSN, cfg.Postgres.MaxConns)
		if pErr != nil {
			if cErr := cleanupLogger(); cErr != nil {
				logg.Warnf(ctx, "cleanup logger: %v", cErr)
			}
			return nil, func() {}, pErr
		}
		closePool = pool.Close
		store = storepg.NewOrderStore(pool)
	default:
		if cErr := cleanupLogger(); cErr != nil {
			logg.Warnf(ctx, "cleanup logger: %v", cErr)
		}
		return nil, func() {}, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}

	if cfg.Store.SeedDemo {
		if err := store.(seeder).Seed(ctx, domain.DemoOrders()); err != nil {
			logg.Warnf(ctx, "demo seed failed: %v", err)
		}
	}

	// Catalog client, used by /health and the validation surface.
	catalogClient := catalog.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.Timeout, logg)
	if catalogClient.Health(ctx) {
		logg.Infof(ctx, "catalog service is healthy url=%s", cfg.Catalog.BaseURL)
	} else {
		logg.Warnf(ctx, "catalog service health check failed url=%s", cfg.Catalog.BaseURL)
	}

	// Event publisher: no brokers, no events.
	var publisher ports.EventPublisher = kafka.Nop{}
	if len(cfg.Kafka.Brokers) > 0 {
		publisher = kafka.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, logg)
		logg.Infof(ctx, "order events enabled brokers=%v topic=%s", cfg.Kafka.Brokers, cfg.Kafka.Topic)
	}

	orderService := usecase.NewOrderService(store, publisher, logg)

	applyGinMode(ctx, cfg.HTTP.GinMode, logg)

	otelServiceName := ""
	if cfg.Tracing.Enabled {
		otelServiceName = cfg.Tracing.ServiceName
	}

	httpHandler := rest.NewHandler(orderService, catalogClient, logg, cfg.HTTP.HandlerTimeout)
	router := rest.NewRouter(httpHandler, otelServiceName)

	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}

	app := &App{
		Logger:          logg,
		HTTPServer:      httpSrv,
		gracefulTimeout: cfg.HTTP.GracefulTimeout,
	}

	// Release in reverse acquisition order.
	cleanup := func() {
		if terr := shutdownTrace(context.Background()); terr != nil {
			logg.Warnf(ctx, "shutdown tracing: %v", terr)
		}
		if perr := publisher.Close(); perr != nil {
			logg.Warnf(ctx, "event publisher close error: %v", perr)
		}
		closePool()
		if cerr := cleanupLogger(); cerr != nil {
			logg.Warnf(ctx, "cleanup logger: %v", cerr)
		}
	}

	return app, cleanup, nil
}

// Run — serves HTTP until the context is cancelled or the server fails,
// then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.Logger.Infof(ctx, "http server starting (addr=%s)", a.HTTPServer.Addr)
		if err := a.HTTPServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		a.Logger.Infof(ctx, "shutdown requested, starting graceful shutdown")
	case err := <-errCh:
		a.Logger.Warnf(ctx, "http server error: %v", err)
	}

	gt := a.gracefulTimeout
	if gt <= 0 {
		gt = 5 * time.Second
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), gt)
	defer cancel()

	if err := a.HTTPServer.Shutdown(shutdownCtx); err != nil {
		a.Logger.Warnf(ctx, "http server shutdown failed: %v", err)
	} else {
		a.Logger.Infof(ctx, "http server stopped gracefully")
	}

	a.Logger.Infof(ctx, "service stopped")
	return nil
}
