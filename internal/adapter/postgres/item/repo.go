// Package item implements the InventoryItem repository using PostgreSQL.
// It is the single durable store for stock records: point lookup, full scan,
// exact category filter, and case-insensitive name search.
package item

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	postgres "github.com/stocktrack/inventory-backend/internal/adapter/postgres"
	"github.com/stocktrack/inventory-backend/internal/domain"
)

// Repo provides inventory item persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new inventory item repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// qb is the shared statement builder with PostgreSQL placeholders.
var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// itemColumns is the column list every read returns.
// price is cast to text so it can be parsed into an exact decimal.
var itemColumns = []string{
	"id", "name", "description", "quantity", "price::text", "category", "created_at", "updated_at",
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// List returns every item, ordered by creation time for stable output.
// Returns an empty slice (not nil) when the store is empty.
func (r *Repo) List(ctx context.Context) ([]*domain.InventoryItem, error) {
	query := qb.Select(itemColumns...).
		From("inventory_items").
		OrderBy("created_at", "id")

	items, err := r.queryItems(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

// GetByID returns an item by primary key.
// Returns domain.ErrNotFound if the item does not exist.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.InventoryItem, error) {
	query := qb.Select(itemColumns...).
		From("inventory_items").
		Where(sq.Eq{"id": id})

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)
	it, err := scanItemRow(querier.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, mapError(err, "inventory_item", id)
	}

	return it, nil
}

// ListByCategory returns items whose category matches exactly (case-sensitive).
// Returns an empty slice (not nil) when none match.
func (r *Repo) ListByCategory(ctx context.Context, category string) ([]*domain.InventoryItem, error) {
	query := qb.Select(itemColumns...).
		From("inventory_items").
		Where(sq.Eq{"category": category}).
		OrderBy("created_at", "id")

	items, err := r.queryItems(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list items by category: %w", err)
	}
	return items, nil
}

// SearchByName returns items whose name contains the fragment,
// case-insensitively. LIKE wildcards in the fragment are treated literally.
// Returns an empty slice (not nil) when none match.
func (r *Repo) SearchByName(ctx context.Context, fragment string) ([]*domain.InventoryItem, error) {
	query := qb.Select(itemColumns...).
		From("inventory_items").
		Where(sq.ILike{"name": "%" + escapeLike(fragment) + "%"}).
		OrderBy("created_at", "id")

	items, err := r.queryItems(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search items by name: %w", err)
	}
	return items, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new item. The store assigns id, created_at and updated_at;
// the persisted record is returned.
func (r *Repo) Create(ctx context.Context, fields domain.ItemFields) (*domain.InventoryItem, error) {
	query := qb.Insert("inventory_items").
		Columns("name", "description", "quantity", "price", "category").
		Values(fields.Name, ptrStringToPgText(fields.Description), fields.Quantity, fields.Price.String(), fields.Category).
		Suffix("RETURNING " + strings.Join(itemColumns, ", "))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)
	it, err := scanItemRow(querier.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, mapError(err, "inventory_item", uuid.Nil)
	}

	return it, nil
}

// Update overwrites all mutable fields of an existing item and refreshes
// updated_at. id and created_at are never touched.
// Returns domain.ErrNotFound if the item does not exist.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, fields domain.ItemFields) (*domain.InventoryItem, error) {
	query := qb.Update("inventory_items").
		Set("name", fields.Name).
		Set("description", ptrStringToPgText(fields.Description)).
		Set("quantity", fields.Quantity).
		Set("price", fields.Price.String()).
		Set("category", fields.Category).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(itemColumns, ", "))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)
	it, err := scanItemRow(querier.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, mapError(err, "inventory_item", id)
	}

	return it, nil
}

// Delete removes an item by id.
// Returns domain.ErrNotFound if the id no longer exists.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	query := qb.Delete("inventory_items").Where(sq.Eq{"id": id})

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)
	tag, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return mapError(err, "inventory_item", id)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("inventory_item %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

// queryItems runs a squirrel SELECT and scans all rows.
func (r *Repo) queryItems(ctx context.Context, query sq.SelectBuilder) ([]*domain.InventoryItem, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanItems(rows)
}

// scanItems scans multiple rows into []*domain.InventoryItem.
func scanItems(rows pgx.Rows) ([]*domain.InventoryItem, error) {
	var result []*domain.InventoryItem
	for rows.Next() {
		it, err := scanItemRow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if result == nil {
		result = []*domain.InventoryItem{}
	}

	return result, nil
}

// scanItemRow scans a single row into a domain.InventoryItem.
func scanItemRow(row pgx.Row) (*domain.InventoryItem, error) {
	var (
		id          uuid.UUID
		name        string
		description pgtype.Text
		quantity    int
		priceText   string
		category    string
		createdAt   time.Time
		updatedAt   time.Time
	)

	if err := row.Scan(&id, &name, &description, &quantity, &priceText, &category, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	price, err := decimal.NewFromString(priceText)
	if err != nil {
		return nil, fmt.Errorf("parse price %q: %w", priceText, err)
	}

	it := &domain.InventoryItem{
		ID:        id,
		Name:      name,
		Quantity:  quantity,
		Price:     price,
		Category:  category,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
	if description.Valid {
		it.Description = &description.String
	}

	return it, nil
}

// escapeLike escapes LIKE/ILIKE wildcards so the fragment matches literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}

// ---------------------------------------------------------------------------
// Error mapping
// ---------------------------------------------------------------------------

// mapError converts pgx/pgconn errors into domain errors.
func mapError(err error, entity string, id uuid.UUID) error {
	if err == nil {
		return nil
	}

	// context errors pass through as-is
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %s: %w", entity, id, err)
	}

	// pgx.ErrNoRows -> domain.ErrNotFound
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}

	// PgError codes
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrAlreadyExists)
		case "23514": // check_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrValidation)
		}
	}

	// Everything else: wrap with context
	return fmt.Errorf("%s %s: %w", entity, id, err)
}

// ---------------------------------------------------------------------------
// pgtype helpers
// ---------------------------------------------------------------------------

// ptrStringToPgText converts a *string to pgtype.Text (nil -> NULL).
func ptrStringToPgText(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *s, Valid: true}
}
