package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"snapspend-api/internal/config"
	"snapspend-api/internal/dto"
	"snapspend-api/internal/extract"
	"snapspend-api/internal/models"
	"snapspend-api/internal/repositories"
	"snapspend-api/internal/storage"

	"github.com/google/uuid"
)

type uploadService struct {
	receiptRepo repositories.ReceiptRepositoryInterface
	extractor   extract.Extractor
	store       storage.Storage
	cfg         *config.UploadConfig
	metrics     MetricsRecorderInterface
	logger      *slog.Logger
}

// NewUploadService creates a new UploadServiceInterface instance
func NewUploadService(
	receiptRepo repositories.ReceiptRepositoryInterface,
	extractor extract.Extractor,
	store storage.Storage,
	cfg *config.UploadConfig,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) UploadServiceInterface {
	return &uploadService{
		receiptRepo: receiptRepo,
		extractor:   extractor,
		store:       store,
		cfg:         cfg,
		metrics:     metrics,
		logger:      logger,
	}
}

// ProcessUpload ingests each file independently: store the image, extract
// fields, persist the receipt. A failed file lands in the errors slice and
// the rest of the batch continues, so callers always learn exactly which
// files failed. Successful receipts come back newest-first, matching the
// presentation order of the list view.
func (s *uploadService) ProcessUpload(ctx context.Context, userID uuid.UUID, files []UploadFile) ([]models.Receipt, []dto.UploadFileError) {
	receipts := []models.Receipt{}
	uploadErrors := []dto.UploadFileError{}

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			uploadErrors = append(uploadErrors, dto.UploadFileError{
				Filename: file.Filename,
				Error:    "upload cancelled",
			})
			continue
		}

		receipt, err := s.processFile(ctx, userID, file)
		if err != nil {
			s.metrics.RecordUpload("failure")
			s.logger.Warn("receipt upload failed",
				"filename", file.Filename,
				"user_id", userID,
				"error", err,
			)
			uploadErrors = append(uploadErrors, dto.UploadFileError{
				Filename: file.Filename,
				Error:    err.Error(),
			})
			continue
		}

		s.metrics.RecordUpload("success")
		// Prepend so the newest receipt leads the response
		receipts = append([]models.Receipt{*receipt}, receipts...)
	}

	return receipts, uploadErrors
}

func (s *uploadService) processFile(ctx context.Context, userID uuid.UUID, file UploadFile) (*models.Receipt, error) {
	if len(file.Data) == 0 {
		return nil, fmt.Errorf("file is empty")
	}

	if int64(len(file.Data)) > s.cfg.MaxFileBytes {
		return nil, fmt.Errorf("file exceeds the %d byte limit", s.cfg.MaxFileBytes)
	}

	path, err := s.store.Save(file.Filename, file.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to store image: %w", err)
	}

	start := time.Now()
	fields, err := s.extractor.Extract(ctx, file.Data, file.Filename)
	elapsed := float64(time.Since(start).Milliseconds())
	if err != nil {
		s.metrics.RecordExtraction("failure", elapsed)
		// The image is already stored; keep the receipt with empty fields
		// rather than losing the upload.
		s.logger.Warn("extraction failed, creating empty receipt",
			"filename", file.Filename,
			"error", err,
		)
		fields = &extract.ReceiptFields{Currency: models.DefaultCurrency}
	} else {
		s.metrics.RecordExtraction("success", elapsed)
	}

	receipt := s.buildReceipt(userID, path, fields)
	if err := s.receiptRepo.Create(receipt); err != nil {
		if delErr := s.store.Delete(path); delErr != nil {
			s.logger.Warn("failed to clean up stored image", "path", path, "error", delErr)
		}
		return nil, fmt.Errorf("failed to save receipt: %w", err)
	}

	s.logger.Info("receipt created from upload",
		"receipt_id", receipt.ID,
		"user_id", userID,
		"store_name", receipt.StoreName,
		"items", len(receipt.Items),
	)

	return receipt, nil
}

func (s *uploadService) buildReceipt(userID uuid.UUID, path string, fields *extract.ReceiptFields) *models.Receipt {
	receipt := &models.Receipt{
		UserID:      &userID,
		StoreName:   strings.TrimSpace(fields.StoreName),
		Date:        fields.Date,
		Category:    strings.TrimSpace(fields.Category),
		TotalAmount: fields.TotalAmount,
		Currency:    fields.Currency,
		FilePath:    path,
	}

	if fields.TaxAmount != nil {
		receipt.TaxAmount = *fields.TaxAmount
	}
	if receipt.Currency == "" {
		receipt.Currency = models.DefaultCurrency
	}

	for i, item := range fields.Items {
		receipt.Items = append(receipt.Items, models.ReceiptItem{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			LineTotal:   item.LineTotal,
			Position:    i,
		})
	}

	return receipt
}
