package inventory

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/stocktrack/inventory-backend/internal/domain"
)

// CreateItem validates the input and persists a new inventory item.
// The store assigns the ID and timestamps.
func (s *Service) CreateItem(ctx context.Context, input ItemInput) (*domain.InventoryItem, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Category = strings.TrimSpace(input.Category)

	if err := input.Validate(); err != nil {
		return nil, err
	}

	created, err := s.items.Create(ctx, input.fields())
	if err != nil {
		return nil, fmt.Errorf("inventory.CreateItem: %w", err)
	}

	s.log.InfoContext(ctx, "item created",
		slog.String("item_id", created.ID.String()),
		slog.String("name", created.Name))

	return created, nil
}
