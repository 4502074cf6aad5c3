package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/stocktrack/inventory-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser creates a user with a fixed (pre-hashed) password.
// Returns a filled domain.User.
func SeedUser(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	user := domain.User{
		ID:       uuid.New(),
		Username: "testuser-" + suffix,
		// bcrypt hash of "password123", cost 10
		PasswordHash: "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO users (id, username, password_hash, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		user.ID, user.Username, user.PasswordHash, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser insert user: %v", err)
	}

	return user
}

// SeedItem creates an inventory item with the given name and category.
// Returns the persisted domain.InventoryItem.
func SeedItem(t *testing.T, pool *pgxpool.Pool, name, category string) domain.InventoryItem {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	desc := "Seeded item " + suffix
	item := domain.InventoryItem{
		Name:        name,
		Description: &desc,
		Quantity:    10,
		Price:       decimal.NewFromFloat(19.99),
		Category:    category,
	}

	err := pool.QueryRow(ctx,
		`INSERT INTO inventory_items (name, description, quantity, price, category)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		item.Name, item.Description, item.Quantity, item.Price.String(), item.Category,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedItem insert item: %v", err)
	}

	return item
}

// SeedRefreshToken creates an active refresh token for the given user.
// Returns the persisted domain.RefreshToken.
func SeedRefreshToken(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID) domain.RefreshToken {
	t.Helper()
	ctx := context.Background()

	token := domain.RefreshToken{
		UserID:    userID,
		TokenHash: "hash-" + uniqueSuffix(),
		ExpiresAt: time.Now().UTC().Add(24 * time.Hour).Truncate(time.Microsecond),
	}

	err := pool.QueryRow(ctx,
		`INSERT INTO refresh_tokens (user_id, token_hash, expires_at)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		token.UserID, token.TokenHash, token.ExpiresAt,
	).Scan(&token.ID, &token.CreatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedRefreshToken insert token: %v", err)
	}

	return token
}
