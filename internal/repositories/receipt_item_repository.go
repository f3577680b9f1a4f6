package repositories

import (
	"errors"
	"fmt"

	"snapspend-api/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrReceiptItemNotFound = errors.New("receipt item not found")
)

// ReceiptItemRepository handles database operations for receipt line items
type ReceiptItemRepository struct {
	db *gorm.DB
}

// NewReceiptItemRepository creates a new receipt item repository
func NewReceiptItemRepository(db *gorm.DB) ReceiptItemRepositoryInterface {
	return &ReceiptItemRepository{
		db: db,
	}
}

// Create creates a single receipt item
func (r *ReceiptItemRepository) Create(item *models.ReceiptItem) error {
	if item == nil {
		return errors.New("item cannot be nil")
	}

	if err := r.db.Create(item).Error; err != nil {
		return fmt.Errorf("failed to create receipt item: %w", err)
	}

	return nil
}

// CreateBatch creates multiple items in a single statement
func (r *ReceiptItemRepository) CreateBatch(items []models.ReceiptItem) error {
	if len(items) == 0 {
		return nil
	}

	if err := r.db.Create(&items).Error; err != nil {
		return fmt.Errorf("failed to create receipt items: %w", err)
	}

	return nil
}

// GetByID retrieves a receipt item by its ID
func (r *ReceiptItemRepository) GetByID(id uuid.UUID) (*models.ReceiptItem, error) {
	var item models.ReceiptItem

	if err := r.db.First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReceiptItemNotFound
		}
		return nil, fmt.Errorf("failed to get receipt item by ID: %w", err)
	}

	return &item, nil
}

// GetByReceiptID retrieves all items for a receipt in insertion order
func (r *ReceiptItemRepository) GetByReceiptID(receiptID uuid.UUID) ([]models.ReceiptItem, error) {
	var items []models.ReceiptItem

	err := r.db.
		Where("receipt_id = ?", receiptID).
		Order("position ASC, created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get items by receipt ID: %w", err)
	}

	return items, nil
}

// Update saves all item fields
func (r *ReceiptItemRepository) Update(item *models.ReceiptItem) error {
	if item == nil {
		return errors.New("item cannot be nil")
	}

	if err := r.db.Save(item).Error; err != nil {
		return fmt.Errorf("failed to update receipt item: %w", err)
	}

	return nil
}

// Delete removes a receipt item
func (r *ReceiptItemRepository) Delete(id uuid.UUID) error {
	result := r.db.Delete(&models.ReceiptItem{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete receipt item: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrReceiptItemNotFound
	}

	return nil
}

// DeleteByReceiptID removes all items for a receipt
func (r *ReceiptItemRepository) DeleteByReceiptID(receiptID uuid.UUID) error {
	err := r.db.Delete(&models.ReceiptItem{}, "receipt_id = ?", receiptID).Error
	if err != nil {
		return fmt.Errorf("failed to delete items by receipt ID: %w", err)
	}

	return nil
}
