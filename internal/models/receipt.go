package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	// DefaultCategory is assigned when the extracted category is empty;
	// receipts with an empty category sort and filter as this value.
	DefaultCategory = "Other"

	// UncategorizedLabel is the display bucket used by aggregates for
	// receipts without a category.
	UncategorizedLabel = "Uncategorized"

	// DefaultCurrency follows the original deployment's home market.
	DefaultCurrency = "PHP"

	// DateLayout is the wire format for transaction dates.
	DateLayout = "2006-01-02"
)

var (
	ErrInvalidCurrency = errors.New("currency must be a 3-letter code")
	ErrCategoryTooLong = errors.New("category must be at most 100 characters")
	ErrNegativeAmount  = errors.New("amount cannot be negative")
)

// Receipt represents one uploaded document and its extracted fields.
// Monetary fields are nullable because extraction may fail to read them;
// a nil TotalAmount is treated as zero when sorting or aggregating.
type Receipt struct {
	ID          uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	UserID      *uuid.UUID       `gorm:"type:uuid;index" json:"user_id,omitempty"`
	StoreName   string           `gorm:"type:varchar(255)" json:"store_name"`
	Date        *time.Time       `gorm:"type:date" json:"date,omitempty"`
	Category    string           `gorm:"type:varchar(100)" json:"category"`
	TotalAmount *decimal.Decimal `gorm:"type:decimal(10,2)" json:"total_amount"`
	TaxAmount   decimal.Decimal  `gorm:"type:decimal(10,2);default:0" json:"tax_amount"`
	Currency    string           `gorm:"type:varchar(3);not null;default:'PHP'" json:"currency"`
	FilePath    string           `gorm:"type:varchar(512)" json:"-"`
	CreatedAt   time.Time        `gorm:"not null;index" json:"created_at"`
	UpdatedAt   time.Time        `gorm:"not null" json:"updated_at"`

	// Items keep backend insertion order via Position.
	Items []ReceiptItem `gorm:"foreignKey:ReceiptID;constraint:OnDelete:CASCADE" json:"items"`
}

// BeforeCreate hook for Receipt
func (r *Receipt) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}

	if r.Currency == "" {
		r.Currency = DefaultCurrency
	}

	// Set timestamps if not already set (for tests)
	now := time.Now()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}
	if r.UpdatedAt.IsZero() {
		r.UpdatedAt = now
	}

	return r.Validate()
}

// BeforeUpdate hook for Receipt
func (r *Receipt) BeforeUpdate(tx *gorm.DB) error {
	r.UpdatedAt = time.Now()
	return r.Validate()
}

// Validate validates the receipt fields
func (r *Receipt) Validate() error {
	if len(r.Currency) != 3 {
		return ErrInvalidCurrency
	}

	if len(r.Category) > 100 {
		return ErrCategoryTooLong
	}

	if r.TotalAmount != nil && r.TotalAmount.IsNegative() {
		return ErrNegativeAmount
	}

	if r.TaxAmount.IsNegative() {
		return ErrNegativeAmount
	}

	return nil
}

// CategoryOrDefault returns the category used for filtering and display;
// an empty category is treated as DefaultCategory.
func (r *Receipt) CategoryOrDefault() string {
	if strings.TrimSpace(r.Category) == "" {
		return DefaultCategory
	}
	return r.Category
}

// DateString returns the wire representation of the transaction date,
// or the empty string when no date was extracted.
func (r *Receipt) DateString() string {
	if r.Date == nil {
		return ""
	}
	return r.Date.Format(DateLayout)
}

// TotalOrZero returns the total amount, treating nil as zero.
// Used by sorting and aggregation, which never distinguish missing from zero.
func (r *Receipt) TotalOrZero() decimal.Decimal {
	if r.TotalAmount == nil {
		return decimal.Zero
	}
	return *r.TotalAmount
}

// Signature derives the duplicate-detection key from normalized store name,
// date and total. An entirely empty signature means the receipt carries no
// identifying fields and must never be flagged as a duplicate.
func (r *Receipt) Signature() string {
	store := strings.TrimSpace(r.StoreName)
	total := ""
	if r.TotalAmount != nil {
		total = r.TotalAmount.String()
	}
	return store + "|" + r.DateString() + "|" + total
}

// HasEmptySignature reports whether every signature component is empty.
func (r *Receipt) HasEmptySignature() bool {
	return r.Signature() == "||"
}

// TableName returns the table name for Receipt
func (r *Receipt) TableName() string {
	return "receipts"
}
