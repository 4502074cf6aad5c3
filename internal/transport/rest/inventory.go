package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stocktrack/inventory-backend/internal/domain"
	"github.com/stocktrack/inventory-backend/internal/service/inventory"
)

// inventoryService defines the minimal interface needed by InventoryHandler.
type inventoryService interface {
	ListItems(ctx context.Context) ([]*domain.InventoryItem, error)
	GetItem(ctx context.Context, id uuid.UUID) (*domain.InventoryItem, error)
	ListByCategory(ctx context.Context, category string) ([]*domain.InventoryItem, error)
	SearchByName(ctx context.Context, fragment string) ([]*domain.InventoryItem, error)
	CreateItem(ctx context.Context, input inventory.ItemInput) (*domain.InventoryItem, error)
	UpdateItem(ctx context.Context, id uuid.UUID, input inventory.ItemInput) (*domain.InventoryItem, error)
	DeleteItem(ctx context.Context, id uuid.UUID) error
}

// InventoryHandler serves the stock item REST endpoints.
type InventoryHandler struct {
	svc inventoryService
	log *slog.Logger
}

// NewInventoryHandler creates an InventoryHandler.
func NewInventoryHandler(svc inventoryService, logger *slog.Logger) *InventoryHandler {
	return &InventoryHandler{svc: svc, log: logger.With("handler", "inventory")}
}

type itemRequest struct {
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
}

type itemResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// List handles GET /api/inventory.
func (h *InventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListItems(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toItemResponses(items))
}

// GetByID handles GET /api/inventory/{id}.
func (h *InventoryHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseItemID(w, r)
	if !ok {
		return
	}

	item, err := h.svc.GetItem(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toItemResponse(item))
}

// ByCategory handles GET /api/inventory/category/{category}.
// The match is exact and case-sensitive.
func (h *InventoryHandler) ByCategory(w http.ResponseWriter, r *http.Request) {
	category := r.PathValue("category")

	items, err := h.svc.ListByCategory(r.Context(), category)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toItemResponses(items))
}

// Search handles GET /api/inventory/search?name=fragment.
// The match is a case-insensitive substring. The name parameter is
// required; a present-but-empty value matches every item.
func (h *InventoryHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if !query.Has("name") {
		writeError(w, http.StatusBadRequest, "missing name parameter")
		return
	}

	items, err := h.svc.SearchByName(r.Context(), query.Get("name"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toItemResponses(items))
}

// Create handles POST /api/inventory.
func (h *InventoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	input, ok := decodeItemInput(w, r)
	if !ok {
		return
	}

	item, err := h.svc.CreateItem(r.Context(), input)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toItemResponse(item))
}

// Update handles PUT /api/inventory/{id}. Every mutable field is
// overwritten with the request values; there is no partial patch.
func (h *InventoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseItemID(w, r)
	if !ok {
		return
	}

	input, ok := decodeItemInput(w, r)
	if !ok {
		return
	}

	item, err := h.svc.UpdateItem(r.Context(), id, input)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toItemResponse(item))
}

// Delete handles DELETE /api/inventory/{id}.
func (h *InventoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseItemID(w, r)
	if !ok {
		return
	}

	if err := h.svc.DeleteItem(r.Context(), id); err != nil {
		h.handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *InventoryHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "item not found")
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	default:
		h.log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func parseItemID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid item id")
		return uuid.Nil, false
	}
	return id, true
}

// decodeItemInput decodes and validates the request body. Validation runs
// here so malformed payloads are rejected before the service is invoked.
func decodeItemInput(w http.ResponseWriter, r *http.Request) (inventory.ItemInput, bool) {
	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return inventory.ItemInput{}, false
	}

	input := inventory.ItemInput{
		Name:        req.Name,
		Description: req.Description,
		Quantity:    req.Quantity,
		Price:       req.Price,
		Category:    req.Category,
	}
	if err := input.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return inventory.ItemInput{}, false
	}

	return input, true
}

func toItemResponse(item *domain.InventoryItem) itemResponse {
	return itemResponse{
		ID:          item.ID.String(),
		Name:        item.Name,
		Description: item.Description,
		Quantity:    item.Quantity,
		Price:       item.Price,
		Category:    item.Category,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

func toItemResponses(items []*domain.InventoryItem) []itemResponse {
	out := make([]itemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toItemResponse(item))
	}
	return out
}
