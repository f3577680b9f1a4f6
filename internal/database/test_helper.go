package database

import (
	"testing"
	"time"

	"snapspend-api/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB creates an in-memory SQLite database for testing
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Receipt{},
		&models.ReceiptItem{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	return db
}

// CreateTestUser inserts a user with a random email for testing
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	user := &models.User{
		Email:        gofakeit.Email(),
		PasswordHash: "$2a$12$test.hash.not.a.real.one",
		FirstName:    gofakeit.FirstName(),
		LastName:     gofakeit.LastName(),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestReceipt inserts a receipt owned by the given user
func CreateTestReceipt(t *testing.T, db *gorm.DB, userID uuid.UUID) *models.Receipt {
	t.Helper()

	date := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
	total := decimal.NewFromFloat(gofakeit.Price(10, 5000)).Round(2)

	receipt := &models.Receipt{
		UserID:      &userID,
		StoreName:   gofakeit.Company(),
		Date:        &date,
		Category:    models.DefaultCategory,
		TotalAmount: &total,
		Currency:    models.DefaultCurrency,
	}
	if err := db.Create(receipt).Error; err != nil {
		t.Fatalf("failed to create test receipt: %v", err)
	}
	return receipt
}

// CreateTestReceiptItem inserts a line item for the given receipt
func CreateTestReceiptItem(t *testing.T, db *gorm.DB, receiptID uuid.UUID, position int) *models.ReceiptItem {
	t.Helper()

	unitPrice := decimal.NewFromFloat(gofakeit.Price(1, 500)).Round(2)
	lineTotal := unitPrice

	item := &models.ReceiptItem{
		ReceiptID:   receiptID,
		Description: gofakeit.ProductName(),
		Quantity:    1,
		UnitPrice:   &unitPrice,
		LineTotal:   &lineTotal,
		Position:    position,
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("failed to create test receipt item: %v", err)
	}
	return item
}
