// Package orderapp boots the order service: config, observability, storage,
// the lookup clients for its two peers, and the placement orchestrator.
package orderapp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	"github.com/shopmesh/shopmesh/internal/clients/http/lookup"
	"github.com/shopmesh/shopmesh/internal/domains/orders/adapters/external"
	ordershttp "github.com/shopmesh/shopmesh/internal/domains/orders/adapters/http"
	ordersmemory "github.com/shopmesh/shopmesh/internal/domains/orders/adapters/memory"
	ordersobs "github.com/shopmesh/shopmesh/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/shopmesh/shopmesh/internal/domains/orders/adapters/persistence/postgres"
	ordersworkflows "github.com/shopmesh/shopmesh/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/shopmesh/shopmesh/internal/domains/orders/application"
	ordersports "github.com/shopmesh/shopmesh/internal/domains/orders/ports"
	"github.com/shopmesh/shopmesh/internal/platform/migrations"
	platformobservability "github.com/shopmesh/shopmesh/internal/platform/observability"
	platformpostgres "github.com/shopmesh/shopmesh/internal/platform/postgres"
	"github.com/shopmesh/shopmesh/internal/shared/httpapi"
)

const serviceName = "order-service"

// Run boots the order service and blocks until the HTTP server exits.
func Run(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	service, cleanup, err := BuildService(ctx, cfg, instruments)
	if err != nil {
		return err
	}
	defer cleanup()

	var orchestrator ordersports.WorkflowOrchestrator = ordersworkflows.NewInlineOrderWorkflows(service)
	if temporalClient, err := connectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, running inline placement", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		orchestrator = ordersworkflows.NewTemporalOrderWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	router := gin.New()
	router.Use(gin.Recovery(), otelgin.Middleware(serviceName))
	router.GET("/health", httpapi.Health(serviceName))
	router.GET("/metrics", httpapi.Metrics(instruments.MetricsSnapshot))
	ordershttp.NewHandler(orchestrator, service).Register(router)

	addr := ":" + cfg.Port
	logger.Info("order service listening",
		slog.String("addr", addr),
		slog.String("userService", cfg.UserServiceURL),
		slog.String("productService", cfg.ProductServiceURL))
	if err := router.Run(addr); err != nil {
		logger.Error("order service exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

// BuildService assembles the fully decorated order application service. Shared
// with cmd/worker so the durable activity runs the same code path as the
// inline one.
func BuildService(ctx context.Context, cfg Config, instruments *platformobservability.Instruments) (ordersports.Service, func(), error) {
	logger := instruments.Logger

	repo, idem, cleanup := buildStores(ctx, cfg, logger)

	httpClient := &http.Client{
		Timeout:   cfg.LookupTimeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
	userClient, err := lookup.NewClient("user-service", cfg.UserServiceURL, httpClient)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	productClient, err := lookup.NewClient("product-service", cfg.ProductServiceURL, httpClient)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	resolver := external.NewResolver(userClient, productClient)

	core := ordersapp.NewService(repo, resolver, idem)
	service := ordersobs.New(
		core,
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)
	return service, cleanup, nil
}

func buildStores(ctx context.Context, cfg Config, logger *slog.Logger) (ordersports.Repository, ordersports.IdempotencyStore, func()) {
	db, cleanup := platformpostgres.Open(ctx, cfg.PostgresDSN, logger)
	if db == nil {
		return ordersmemory.NewRepository(), ordersmemory.NewIdempotencyStore(), cleanup
	}
	if err := migrations.Run(db); err != nil {
		logger.Warn("migrations failed, falling back to in-memory stores", slog.String("error", err.Error()))
		cleanup()
		return ordersmemory.NewRepository(), ordersmemory.NewIdempotencyStore(), func() {}
	}
	logger.Info("order stores configured with postgres")
	return orderspostgres.NewRepository(db), orderspostgres.NewIdempotencyStore(db), cleanup
}

func connectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(instruments.Logger),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}
