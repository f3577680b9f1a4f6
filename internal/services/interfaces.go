package services

import (
	"context"

	"snapspend-api/internal/dto"
	"snapspend-api/internal/models"

	"github.com/google/uuid"
)

// UploadFile carries one uploaded file through the ingestion pipeline
type UploadFile struct {
	Filename string
	Data     []byte
}

// UploadServiceInterface defines the receipt ingestion contract.
// Each file is processed independently so one bad file never fails the batch.
type UploadServiceInterface interface {
	ProcessUpload(ctx context.Context, userID uuid.UUID, files []UploadFile) ([]models.Receipt, []dto.UploadFileError)
}

// ReceiptServiceInterface defines receipt read, edit, and delete operations
type ReceiptServiceInterface interface {
	ListReceipts(filters models.ReceiptFilters) ([]models.Receipt, int, error)
	GetReceipt(receiptID, userID uuid.UUID) (*models.Receipt, error)
	UpdateReceipt(receiptID, userID uuid.UUID, req *dto.UpdateReceiptRequest) (*models.Receipt, error)
	DeleteReceipt(receiptID, userID uuid.UUID) error
	GetReceiptImage(receiptID, userID uuid.UUID) (data []byte, contentType string, err error)

	GetItem(itemID, userID uuid.UUID) (*models.ReceiptItem, error)
	UpdateItem(itemID, userID uuid.UUID, req *dto.UpdateReceiptItemRequest) (*models.ReceiptItem, error)
	DeleteItem(itemID, userID uuid.UUID) error
}

// AggregationServiceInterface defines category spending aggregation
type AggregationServiceInterface interface {
	Aggregate(userID uuid.UUID, query *dto.AggregateQuery) (*models.AggregateReport, error)
}

// DuplicateServiceInterface defines duplicate receipt detection
type DuplicateServiceInterface interface {
	FindDuplicates(userID uuid.UUID) ([]models.DuplicateGroup, error)
}

// ExportFormat selects the export serialization
type ExportFormat string

const (
	ExportFormatCSV   ExportFormat = "csv"
	ExportFormatSheet ExportFormat = "sheet"
	ExportFormatExcel ExportFormat = "excel"
)

// ExportResult is a rendered export ready to be served as a download
type ExportResult struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportServiceInterface defines receipt export operations
type ExportServiceInterface interface {
	Export(userID uuid.UUID, format ExportFormat) (*ExportResult, error)
}

// AuthServiceInterface defines signup and login operations
type AuthServiceInterface interface {
	Signup(req *dto.SignupRequest) (*models.User, string, error)
	Login(req *dto.LoginRequest) (*models.User, string, error)
	GetUser(userID uuid.UUID) (*models.User, error)
}

// PasswordServiceInterface defines password hashing operations
type PasswordServiceInterface interface {
	HashPassword(password string) (string, error)
	VerifyPassword(hash, password string) bool
	ValidateStrength(password string) error
}

// TokenServiceInterface defines session token operations
type TokenServiceInterface interface {
	GenerateToken(user *models.User) (string, error)
	ValidateToken(token string) (*models.SessionClaims, error)
}

// MetricsRecorderInterface defines the metrics recording contract
type MetricsRecorderInterface interface {
	RecordUpload(status string)
	RecordExtraction(status string, durationMs float64)
	RecordExport(format string)
	RecordAuthEvent(event string)
	RecordReceiptMutation(operation string)
}
