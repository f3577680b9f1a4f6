package models

import (
	"errors"

	"github.com/google/uuid"
)

// Sort fields accepted by the receipt list view.
const (
	SortByDate     = "date"
	SortByCategory = "category"
	SortByTotal    = "total_amount"

	SortAsc  = "asc"
	SortDesc = "desc"
)

// AllCategoriesSentinel passes every receipt through the category filter.
const AllCategoriesSentinel = "All Categories"

var (
	ErrInvalidSortField = errors.New("sort field must be one of date, category, total_amount")
	ErrInvalidSortOrder = errors.New("sort order must be asc or desc")
)

// ReceiptFilters describes the derived view requested over the receipt
// collection: category filter, sort field/direction and pagination window.
// Applying filters never mutates the stored collection.
type ReceiptFilters struct {
	UserID    uuid.UUID
	Category  string
	SortField string
	SortOrder string
	Offset    int
	Limit     int
}

// Validate checks the sort parameters; empty values mean "no sort requested".
func (f *ReceiptFilters) Validate() error {
	switch f.SortField {
	case "", SortByDate, SortByCategory, SortByTotal:
	default:
		return ErrInvalidSortField
	}

	switch f.SortOrder {
	case "", SortAsc, SortDesc:
	default:
		return ErrInvalidSortOrder
	}

	return nil
}

// FiltersAll reports whether the category filter is a pass-through.
func (f *ReceiptFilters) FiltersAll() bool {
	return f.Category == "" || f.Category == AllCategoriesSentinel
}

// Descending reports whether the requested order is descending.
func (f *ReceiptFilters) Descending() bool {
	return f.SortOrder == SortDesc
}
