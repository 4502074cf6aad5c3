package inventory

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/stocktrack/inventory-backend/internal/domain"
)

// UpdateItem overwrites all mutable fields of an existing item.
// The existence check and the overwrite run in one transaction so a
// concurrent delete cannot slip between them.
// Returns domain.ErrNotFound if the item does not exist.
func (s *Service) UpdateItem(ctx context.Context, id uuid.UUID, input ItemInput) (*domain.InventoryItem, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Category = strings.TrimSpace(input.Category)

	if err := input.Validate(); err != nil {
		return nil, err
	}

	var updated *domain.InventoryItem

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.items.GetByID(txCtx, id); err != nil {
			return err
		}

		item, err := s.items.Update(txCtx, id, input.fields())
		if err != nil {
			return fmt.Errorf("update item: %w", err)
		}

		updated = item
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "item updated",
		slog.String("item_id", id.String()))

	return updated, nil
}
