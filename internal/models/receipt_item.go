package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrItemDescriptionRequired = errors.New("item description is required")
	ErrItemReceiptRequired     = errors.New("item must belong to a receipt")
)

// ReceiptItem is one purchased line within a receipt. LineTotal is whatever
// the extraction read off the paper; it is never recomputed from quantity
// and unit price.
type ReceiptItem struct {
	ID          uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	ReceiptID   uuid.UUID        `gorm:"type:uuid;not null;index" json:"receipt_id"`
	Description string           `gorm:"type:varchar(255);not null" json:"description"`
	Quantity    int              `gorm:"not null;default:1" json:"quantity"`
	UnitPrice   *decimal.Decimal `gorm:"type:decimal(10,2)" json:"unit_price"`
	LineTotal   *decimal.Decimal `gorm:"type:decimal(10,2)" json:"line_total"`
	Position    int              `gorm:"not null;default:0" json:"-"`
	CreatedAt   time.Time        `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time        `gorm:"not null" json:"updated_at"`
}

// BeforeCreate hook for ReceiptItem
func (i *ReceiptItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}

	if i.Quantity == 0 {
		i.Quantity = 1
	}

	now := time.Now()
	if i.CreatedAt.IsZero() {
		i.CreatedAt = now
	}
	if i.UpdatedAt.IsZero() {
		i.UpdatedAt = now
	}

	return i.Validate()
}

// BeforeUpdate hook for ReceiptItem
func (i *ReceiptItem) BeforeUpdate(tx *gorm.DB) error {
	i.UpdatedAt = time.Now()
	return i.Validate()
}

// Validate validates the item fields
func (i *ReceiptItem) Validate() error {
	if i.ReceiptID == uuid.Nil {
		return ErrItemReceiptRequired
	}

	if i.Description == "" {
		return ErrItemDescriptionRequired
	}

	if i.Quantity < 0 {
		return ErrNegativeAmount
	}

	return nil
}

// TableName returns the table name for ReceiptItem
func (i *ReceiptItem) TableName() string {
	return "receipt_items"
}
