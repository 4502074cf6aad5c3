package inventory

import (
	"context"

	"github.com/stocktrack/inventory-backend/internal/domain"
)

// SearchByName returns items whose name contains the fragment,
// case-insensitively. An empty fragment matches every item.
func (s *Service) SearchByName(ctx context.Context, fragment string) ([]*domain.InventoryItem, error) {
	return s.items.SearchByName(ctx, fragment)
}
