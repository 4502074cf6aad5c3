package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/stocktrack/inventory-backend/internal/domain"
)

// ItemInput holds the full mutable field set of an item.
// It is used by both create and update: an update overwrites every
// mutable field with the values given here.
type ItemInput struct {
	Name        string
	Description *string
	Quantity    int
	Price       decimal.Decimal
	Category    string
}

// Validate checks all fields and collects all errors.
func (i *ItemInput) Validate() error {
	var errs []domain.FieldError

	if i.Name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	} else if len(i.Name) > 255 {
		errs = append(errs, domain.FieldError{Field: "name", Message: "too long (max 255)"})
	}

	if i.Quantity < 0 {
		errs = append(errs, domain.FieldError{Field: "quantity", Message: "must not be negative"})
	}

	if i.Price.IsNegative() {
		errs = append(errs, domain.FieldError{Field: "price", Message: "must not be negative"})
	}

	if len(i.Category) > 255 {
		errs = append(errs, domain.FieldError{Field: "category", Message: "too long (max 255)"})
	}

	if i.Description != nil && len(*i.Description) > 2000 {
		errs = append(errs, domain.FieldError{Field: "description", Message: "too long (max 2000)"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// fields converts the input into the repository field set.
func (i *ItemInput) fields() domain.ItemFields {
	return domain.ItemFields{
		Name:        i.Name,
		Description: i.Description,
		Quantity:    i.Quantity,
		Price:       i.Price,
		Category:    i.Category,
	}
}
