// Package userapp boots the user service: config, observability, storage, and
// the HTTP façade.
package userapp

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	usershttp "github.com/shopmesh/shopmesh/internal/domains/users/adapters/http"
	usersmemory "github.com/shopmesh/shopmesh/internal/domains/users/adapters/memory"
	userspostgres "github.com/shopmesh/shopmesh/internal/domains/users/adapters/persistence/postgres"
	usersapp "github.com/shopmesh/shopmesh/internal/domains/users/application"
	usersports "github.com/shopmesh/shopmesh/internal/domains/users/ports"
	"github.com/shopmesh/shopmesh/internal/platform/migrations"
	platformobservability "github.com/shopmesh/shopmesh/internal/platform/observability"
	platformpostgres "github.com/shopmesh/shopmesh/internal/platform/postgres"
	"github.com/shopmesh/shopmesh/internal/shared/httpapi"
)

const serviceName = "user-service"

// Run boots the user service and blocks until the HTTP server exits.
func Run(ctx context.Context) error {
	cfg := LoadConfig()
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

	repo, cleanupRepo := buildRepository(ctx, cfg, logger)
	defer cleanupRepo()
	service := usersapp.NewService(repo)

	router := gin.New()
	router.Use(gin.Recovery(), otelgin.Middleware(serviceName))
	router.GET("/health", httpapi.Health(serviceName))
	router.GET("/metrics", httpapi.Metrics(instruments.MetricsSnapshot))
	usershttp.NewHandler(service).Register(router)

	addr := ":" + cfg.Port
	logger.Info("user service listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("user service exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

func buildRepository(ctx context.Context, cfg Config, logger *slog.Logger) (usersports.Repository, func()) {
	db, cleanup := platformpostgres.Open(ctx, cfg.PostgresDSN, logger)
	if db == nil {
		return usersmemory.NewRepository(), cleanup
	}
	if err := migrations.Run(db); err != nil {
		logger.Warn("migrations failed, falling back to in-memory repository", slog.String("error", err.Error()))
		cleanup()
		return usersmemory.NewRepository(), func() {}
	}
	logger.Info("user repository configured with postgres")
	return userspostgres.NewRepository(db), cleanup
}
