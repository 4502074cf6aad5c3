package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InventoryItem is a single stock record in the catalog.
//
// ID and CreatedAt are assigned by the store on first persistence and are
// immutable afterwards. UpdatedAt is refreshed on every successful mutation.
// Quantity and Price are never negative at rest; Price is an exact decimal
// (NUMERIC in the database) so money values never drift.
type InventoryItem struct {
	ID          uuid.UUID
	Name        string
	Description *string
	Quantity    int
	Price       decimal.Decimal
	Category    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ItemFields is the full mutable field set of an InventoryItem.
// Updates replace all of these at once; there is no partial patch.
type ItemFields struct {
	Name        string
	Description *string
	Quantity    int
	Price       decimal.Decimal
	Category    string
}
