// Package app wires configuration, storage, services, and the HTTP server
// into a running application.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/stocktrack/inventory-backend/internal/adapter/postgres"
	"github.com/stocktrack/inventory-backend/internal/adapter/postgres/item"
	"github.com/stocktrack/inventory-backend/internal/adapter/postgres/token"
	"github.com/stocktrack/inventory-backend/internal/adapter/postgres/user"
	"github.com/stocktrack/inventory-backend/internal/auth"
	"github.com/stocktrack/inventory-backend/internal/config"
	authsvc "github.com/stocktrack/inventory-backend/internal/service/auth"
	"github.com/stocktrack/inventory-backend/internal/service/inventory"
	"github.com/stocktrack/inventory-backend/internal/transport/middleware"
	"github.com/stocktrack/inventory-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, initializes
// the logger and database, applies migrations, wires services and handlers,
// and serves HTTP until the context is cancelled or a shutdown signal
// arrives.
func Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	if cfg.Database.MigrateOnStart {
		if err := runMigrations(ctx, logger, cfg.Database); err != nil {
			return err
		}
	}

	// Repositories and infrastructure.
	userRepo := user.New(pool)
	tokenRepo := token.New(pool)
	itemRepo := item.New(pool)
	txManager := postgres.NewTxManager(pool)
	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	// Services.
	authService := authsvc.NewService(logger, userRepo, tokenRepo, jwtManager, cfg.Auth)
	inventoryService := inventory.NewService(logger, itemRepo, txManager)

	// Periodic refresh token cleanup. cmd/cleanup-tokens covers deployments
	// that prefer an external cron.
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				n, err := authService.CleanupExpiredTokens(ctx)
				if err != nil {
					logger.Warn("token cleanup failed", slog.String("error", err.Error()))
				} else if n > 0 {
					logger.Info("expired refresh tokens deleted", slog.Int("count", n))
				}
			}
		}
	}()

	if cfg.Bootstrap.AdminEnabled {
		if err := ensureAdminUser(ctx, logger, userRepo, cfg.Bootstrap, cfg.Auth.PasswordHashCost); err != nil {
			return err
		}
	}

	// Transport.
	pageHandler, err := rest.NewPageHandler(logger)
	if err != nil {
		return fmt.Errorf("parse page templates: %w", err)
	}

	authHandler := rest.NewAuthHandler(authService, logger)
	invHandler := rest.NewInventoryHandler(inventoryService, logger)
	healthHandler := rest.NewHealthHandler(pool, BuildVersion())

	limiter := middleware.NewRateLimiter(time.Minute)
	defer limiter.Stop()

	mux := newRouter(cfg, authHandler, invHandler, healthHandler, pageHandler, authService, limiter)

	handler := middleware.Chain(
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
	)(mux)

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	logger.Info("http server stopped")
	return nil
}
