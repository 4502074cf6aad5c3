package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/stocktrack/inventory-backend/internal/adapter/postgres/user"
	"github.com/stocktrack/inventory-backend/internal/config"
	"github.com/stocktrack/inventory-backend/internal/domain"
)

// ensureAdminUser creates the default admin account on startup if it does
// not exist yet. A concurrent replica may win the race; ErrAlreadyExists
// from the insert is treated as success.
func ensureAdminUser(ctx context.Context, logger *slog.Logger, users *user.Repo, cfg config.BootstrapConfig, hashCost int) error {
	_, err := users.GetByUsername(ctx, cfg.AdminUsername)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("look up admin user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), hashCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	now := time.Now()
	_, err = users.Create(ctx, &domain.User{
		ID:           uuid.New(),
		Username:     cfg.AdminUsername,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil
		}
		return fmt.Errorf("create admin user: %w", err)
	}

	logger.Info("default admin account created",
		slog.String("username", cfg.AdminUsername))

	return nil
}
