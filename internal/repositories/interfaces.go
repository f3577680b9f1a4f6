package repositories

import (
	"snapspend-api/internal/models"

	"github.com/google/uuid"
)

// ReceiptRepositoryInterface defines the contract for receipt repository operations
type ReceiptRepositoryInterface interface {
	Create(receipt *models.Receipt) error
	GetByID(id uuid.UUID) (*models.Receipt, error)
	GetByIDForUser(id, userID uuid.UUID) (*models.Receipt, error)
	ListByUser(userID uuid.UUID) ([]models.Receipt, error)
	Update(receipt *models.Receipt) error
	UpdateFields(receiptID uuid.UUID, fields map[string]interface{}) error
	Delete(id uuid.UUID) error
	CountByUser(userID uuid.UUID) (int64, error)
}

// ReceiptItemRepositoryInterface defines the contract for receipt item repository operations
type ReceiptItemRepositoryInterface interface {
	Create(item *models.ReceiptItem) error
	CreateBatch(items []models.ReceiptItem) error
	GetByID(id uuid.UUID) (*models.ReceiptItem, error)
	GetByReceiptID(receiptID uuid.UUID) ([]models.ReceiptItem, error)
	Update(item *models.ReceiptItem) error
	Delete(id uuid.UUID) error
	DeleteByReceiptID(receiptID uuid.UUID) error
}

// UserRepositoryInterface defines the contract for user repository operations
type UserRepositoryInterface interface {
	Create(user *models.User) error
	GetByID(id uuid.UUID) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	UpdateLastLogin(userID uuid.UUID) error
}
