package inventory

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// DeleteItem removes an item by ID.
// The existence check and the delete run in one transaction.
// Returns domain.ErrNotFound if the item does not exist.
func (s *Service) DeleteItem(ctx context.Context, id uuid.UUID) error {
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.items.GetByID(txCtx, id); err != nil {
			return err
		}

		if err := s.items.Delete(txCtx, id); err != nil {
			return fmt.Errorf("delete item: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "item deleted",
		slog.String("item_id", id.String()))

	return nil
}
