package inventory

import (
	"context"

	"github.com/google/uuid"

	"github.com/stocktrack/inventory-backend/internal/domain"
)

// GetItem returns a single item by ID.
// Returns domain.ErrNotFound if no such item exists.
func (s *Service) GetItem(ctx context.Context, id uuid.UUID) (*domain.InventoryItem, error) {
	return s.items.GetByID(ctx, id)
}
