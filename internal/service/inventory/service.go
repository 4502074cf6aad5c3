// Package inventory implements the stock tracking business logic.
package inventory

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/stocktrack/inventory-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type itemRepo interface {
	List(ctx context.Context) ([]*domain.InventoryItem, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.InventoryItem, error)
	ListByCategory(ctx context.Context, category string) ([]*domain.InventoryItem, error)
	SearchByName(ctx context.Context, fragment string) ([]*domain.InventoryItem, error)
	Create(ctx context.Context, fields domain.ItemFields) (*domain.InventoryItem, error)
	Update(ctx context.Context, id uuid.UUID, fields domain.ItemFields) (*domain.InventoryItem, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the inventory business logic.
type Service struct {
	log   *slog.Logger
	items itemRepo
	tx    txManager
}

// NewService creates a new Inventory service.
func NewService(logger *slog.Logger, items itemRepo, tx txManager) *Service {
	return &Service{
		log:   logger.With("service", "inventory"),
		items: items,
		tx:    tx,
	}
}
