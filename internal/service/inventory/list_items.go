package inventory

import (
	"context"

	"github.com/stocktrack/inventory-backend/internal/domain"
)

// ListItems returns every item in the store.
// An empty store yields an empty slice, never nil.
func (s *Service) ListItems(ctx context.Context) ([]*domain.InventoryItem, error) {
	return s.items.List(ctx)
}

// ListByCategory returns items whose category matches exactly (case-sensitive).
// An unknown category yields an empty slice, not an error.
func (s *Service) ListByCategory(ctx context.Context, category string) ([]*domain.InventoryItem, error) {
	return s.items.ListByCategory(ctx, category)
}
