package repositories

import (
	"errors"
	"fmt"

	"snapspend-api/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrReceiptNotFound = errors.New("receipt not found")
)

// ReceiptRepository handles database operations for receipts
type ReceiptRepository struct {
	db *gorm.DB
}

// NewReceiptRepository creates a new receipt repository
func NewReceiptRepository(db *gorm.DB) ReceiptRepositoryInterface {
	return &ReceiptRepository{
		db: db,
	}
}

// Create creates a new receipt along with any attached items
func (r *ReceiptRepository) Create(receipt *models.Receipt) error {
	if receipt == nil {
		return errors.New("receipt cannot be nil")
	}

	if err := r.db.Create(receipt).Error; err != nil {
		return fmt.Errorf("failed to create receipt: %w", err)
	}

	return nil
}

// GetByID retrieves a receipt with its items in insertion order
func (r *ReceiptRepository) GetByID(id uuid.UUID) (*models.Receipt, error) {
	var receipt models.Receipt

	err := r.db.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, created_at ASC")
		}).
		First(&receipt, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReceiptNotFound
		}
		return nil, fmt.Errorf("failed to get receipt by ID: %w", err)
	}

	return &receipt, nil
}

// GetByIDForUser retrieves a receipt only if it belongs to the given user
func (r *ReceiptRepository) GetByIDForUser(id, userID uuid.UUID) (*models.Receipt, error) {
	var receipt models.Receipt

	err := r.db.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, created_at ASC")
		}).
		Where("id = ? AND user_id = ?", id, userID).
		First(&receipt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReceiptNotFound
		}
		return nil, fmt.Errorf("failed to get receipt for user: %w", err)
	}

	return &receipt, nil
}

// ListByUser retrieves all receipts for a user, newest first, items preloaded
func (r *ReceiptRepository) ListByUser(userID uuid.UUID) ([]models.Receipt, error) {
	var receipts []models.Receipt

	err := r.db.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, created_at ASC")
		}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&receipts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list receipts: %w", err)
	}

	return receipts, nil
}

// Update saves all receipt fields
func (r *ReceiptRepository) Update(receipt *models.Receipt) error {
	if receipt == nil {
		return errors.New("receipt cannot be nil")
	}

	if err := r.db.Omit("Items").Save(receipt).Error; err != nil {
		return fmt.Errorf("failed to update receipt: %w", err)
	}

	return nil
}

// UpdateFields performs a partial update on the given columns
func (r *ReceiptRepository) UpdateFields(receiptID uuid.UUID, fields map[string]interface{}) error {
	if receiptID == uuid.Nil {
		return errors.New("receipt ID cannot be nil")
	}

	if len(fields) == 0 {
		return nil
	}

	result := r.db.Model(&models.Receipt{}).Where("id = ?", receiptID).Updates(fields)
	if result.Error != nil {
		return fmt.Errorf("failed to update receipt fields: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrReceiptNotFound
	}

	return nil
}

// Delete removes a receipt; items are removed by the cascade constraint
func (r *ReceiptRepository) Delete(id uuid.UUID) error {
	result := r.db.Select("Items").Delete(&models.Receipt{ID: id})
	if result.Error != nil {
		return fmt.Errorf("failed to delete receipt: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrReceiptNotFound
	}

	return nil
}

// CountByUser returns the number of receipts owned by a user
func (r *ReceiptRepository) CountByUser(userID uuid.UUID) (int64, error) {
	var count int64

	err := r.db.Model(&models.Receipt{}).Where("user_id = ?", userID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count receipts: %w", err)
	}

	return count, nil
}
