package services

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"snapspend-api/internal/dto"
	"snapspend-api/internal/models"
	"snapspend-api/internal/repositories"
	"snapspend-api/internal/storage"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrReceiptNotFound = errors.New("receipt not found")
	ErrItemNotFound    = errors.New("receipt item not found")
	ErrNoImage         = errors.New("receipt has no stored image")
	ErrInvalidAmount   = errors.New("amount is not a valid decimal")
	ErrInvalidDate     = errors.New("date is not a valid YYYY-MM-DD value")
)

type receiptService struct {
	receiptRepo repositories.ReceiptRepositoryInterface
	itemRepo    repositories.ReceiptItemRepositoryInterface
	store       storage.Storage
	metrics     MetricsRecorderInterface
	logger      *slog.Logger
}

// NewReceiptService creates a new ReceiptServiceInterface instance
func NewReceiptService(
	receiptRepo repositories.ReceiptRepositoryInterface,
	itemRepo repositories.ReceiptItemRepositoryInterface,
	store storage.Storage,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) ReceiptServiceInterface {
	return &receiptService{
		receiptRepo: receiptRepo,
		itemRepo:    itemRepo,
		store:       store,
		metrics:     metrics,
		logger:      logger,
	}
}

// ListReceipts returns a derived view over the user's collection: filtered
// by category, sorted, and windowed. The stored collection is never mutated;
// all derivation happens over a copy. The returned total counts receipts
// after filtering but before pagination.
func (s *receiptService) ListReceipts(filters models.ReceiptFilters) ([]models.Receipt, int, error) {
	if err := filters.Validate(); err != nil {
		return nil, 0, err
	}

	receipts, err := s.receiptRepo.ListByUser(filters.UserID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load receipts: %w", err)
	}

	view := filterByCategory(receipts, filters)
	sortReceipts(view, filters)
	total := len(view)

	return paginate(view, filters.Offset, filters.Limit), total, nil
}

// filterByCategory keeps receipts whose effective category matches the
// filter. An empty category matches as DefaultCategory; the sentinel
// passes everything through unchanged.
func filterByCategory(receipts []models.Receipt, filters models.ReceiptFilters) []models.Receipt {
	view := make([]models.Receipt, 0, len(receipts))
	if filters.FiltersAll() {
		return append(view, receipts...)
	}

	for _, r := range receipts {
		if r.CategoryOrDefault() == filters.Category {
			view = append(view, r)
		}
	}
	return view
}

// sortReceipts orders the view in place. Date and category compare as
// strings with empty first; total compares numerically with nil as zero.
// Descending order is the exact reverse of ascending.
func sortReceipts(view []models.Receipt, filters models.ReceiptFilters) {
	if filters.SortField == "" {
		return
	}

	var less func(a, b *models.Receipt) bool
	switch filters.SortField {
	case models.SortByDate:
		less = func(a, b *models.Receipt) bool {
			return a.DateString() < b.DateString()
		}
	case models.SortByCategory:
		less = func(a, b *models.Receipt) bool {
			return a.Category < b.Category
		}
	case models.SortByTotal:
		less = func(a, b *models.Receipt) bool {
			return a.TotalOrZero().LessThan(b.TotalOrZero())
		}
	default:
		return
	}

	descending := filters.Descending()
	sort.SliceStable(view, func(i, j int) bool {
		if descending {
			return less(&view[j], &view[i])
		}
		return less(&view[i], &view[j])
	})
}

func paginate(view []models.Receipt, offset, limit int) []models.Receipt {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(view) {
		return []models.Receipt{}
	}

	view = view[offset:]
	if limit > 0 && limit < len(view) {
		view = view[:limit]
	}
	return view
}

// GetReceipt returns one receipt with items, enforcing ownership
func (s *receiptService) GetReceipt(receiptID, userID uuid.UUID) (*models.Receipt, error) {
	receipt, err := s.receiptRepo.GetByIDForUser(receiptID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrReceiptNotFound) {
			return nil, ErrReceiptNotFound
		}
		return nil, err
	}
	return receipt, nil
}

// UpdateReceipt applies a partial update. Only fields present in the
// request change; amount and date strings are coerced to numeric-or-null
// here, at commit time. The stored record is re-read after the update so
// the caller always sees server-confirmed state.
func (s *receiptService) UpdateReceipt(receiptID, userID uuid.UUID, req *dto.UpdateReceiptRequest) (*models.Receipt, error) {
	if _, err := s.receiptRepo.GetByIDForUser(receiptID, userID); err != nil {
		if errors.Is(err, repositories.ErrReceiptNotFound) {
			return nil, ErrReceiptNotFound
		}
		return nil, err
	}

	fields := map[string]interface{}{}

	if req.StoreName != nil {
		fields["store_name"] = strings.TrimSpace(*req.StoreName)
	}
	if req.Category != nil {
		fields["category"] = strings.TrimSpace(*req.Category)
	}
	if req.Currency != nil {
		fields["currency"] = strings.ToUpper(strings.TrimSpace(*req.Currency))
	}
	if req.Date != nil {
		date, err := parseDateOrNull(*req.Date)
		if err != nil {
			return nil, err
		}
		fields["date"] = date
	}
	if req.TotalAmount != nil {
		amount, err := parseAmountOrNull(*req.TotalAmount)
		if err != nil {
			return nil, err
		}
		fields["total_amount"] = amount
	}
	if req.TaxAmount != nil {
		amount, err := parseAmountOrNull(*req.TaxAmount)
		if err != nil {
			return nil, err
		}
		if amount == nil {
			fields["tax_amount"] = decimal.Zero
		} else {
			fields["tax_amount"] = *amount
		}
	}

	if len(fields) > 0 {
		fields["updated_at"] = time.Now().UTC()
		if err := s.receiptRepo.UpdateFields(receiptID, fields); err != nil {
			if errors.Is(err, repositories.ErrReceiptNotFound) {
				return nil, ErrReceiptNotFound
			}
			return nil, err
		}
	}

	s.metrics.RecordReceiptMutation("update")
	s.logger.Info("receipt updated", "receipt_id", receiptID, "fields", len(fields))

	return s.receiptRepo.GetByID(receiptID)
}

// DeleteReceipt removes a receipt, its items, and its stored image
func (s *receiptService) DeleteReceipt(receiptID, userID uuid.UUID) error {
	receipt, err := s.receiptRepo.GetByIDForUser(receiptID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrReceiptNotFound) {
			return ErrReceiptNotFound
		}
		return err
	}

	if err := s.receiptRepo.Delete(receiptID); err != nil {
		if errors.Is(err, repositories.ErrReceiptNotFound) {
			return ErrReceiptNotFound
		}
		return err
	}

	if receipt.FilePath != "" {
		if err := s.store.Delete(receipt.FilePath); err != nil {
			// Orphaned file, not a user-visible failure
			s.logger.Warn("failed to delete receipt image", "receipt_id", receiptID, "error", err)
		}
	}

	s.metrics.RecordReceiptMutation("delete")
	s.logger.Info("receipt deleted", "receipt_id", receiptID)

	return nil
}

// GetReceiptImage returns the stored source image for a receipt
func (s *receiptService) GetReceiptImage(receiptID, userID uuid.UUID) ([]byte, string, error) {
	receipt, err := s.receiptRepo.GetByIDForUser(receiptID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrReceiptNotFound) {
			return nil, "", ErrReceiptNotFound
		}
		return nil, "", err
	}

	if receipt.FilePath == "" {
		return nil, "", ErrNoImage
	}

	data, err := s.store.Get(receipt.FilePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read receipt image: %w", err)
	}

	return data, http.DetectContentType(data), nil
}

// GetItem returns one line item, enforcing ownership through its receipt
func (s *receiptService) GetItem(itemID, userID uuid.UUID) (*models.ReceiptItem, error) {
	item, err := s.itemRepo.GetByID(itemID)
	if err != nil {
		if errors.Is(err, repositories.ErrReceiptItemNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	if _, err := s.receiptRepo.GetByIDForUser(item.ReceiptID, userID); err != nil {
		if errors.Is(err, repositories.ErrReceiptNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	return item, nil
}

// UpdateItem applies a partial update to one line item. Line totals are
// stored as extracted, never recomputed from quantity and unit price.
func (s *receiptService) UpdateItem(itemID, userID uuid.UUID, req *dto.UpdateReceiptItemRequest) (*models.ReceiptItem, error) {
	item, err := s.GetItem(itemID, userID)
	if err != nil {
		return nil, err
	}

	if req.Description != nil {
		item.Description = strings.TrimSpace(*req.Description)
	}
	if req.Quantity != nil {
		item.Quantity = *req.Quantity
	}
	if req.UnitPrice != nil {
		amount, err := parseAmountOrNull(*req.UnitPrice)
		if err != nil {
			return nil, err
		}
		item.UnitPrice = amount
	}
	if req.LineTotal != nil {
		amount, err := parseAmountOrNull(*req.LineTotal)
		if err != nil {
			return nil, err
		}
		item.LineTotal = amount
	}

	if err := s.itemRepo.Update(item); err != nil {
		return nil, err
	}

	s.metrics.RecordReceiptMutation("update_item")

	return s.itemRepo.GetByID(itemID)
}

// DeleteItem removes one line item
func (s *receiptService) DeleteItem(itemID, userID uuid.UUID) error {
	item, err := s.GetItem(itemID, userID)
	if err != nil {
		return err
	}

	if err := s.itemRepo.Delete(item.ID); err != nil {
		if errors.Is(err, repositories.ErrReceiptItemNotFound) {
			return ErrItemNotFound
		}
		return err
	}

	s.metrics.RecordReceiptMutation("delete_item")

	return nil
}

// parseAmountOrNull converts a free-text amount to numeric-or-null: the
// empty string clears the value, anything else must parse as a decimal.
func parseAmountOrNull(raw string) (*decimal.Decimal, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}

	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return nil, ErrInvalidAmount
	}
	if d.IsNegative() {
		return nil, models.ErrNegativeAmount
	}

	rounded := d.Round(2)
	return &rounded, nil
}

// parseDateOrNull converts a date string to a date-or-null under the same
// commit-time policy as amounts.
func parseDateOrNull(raw string) (*time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}

	t, err := time.Parse(models.DateLayout, trimmed)
	if err != nil {
		return nil, ErrInvalidDate
	}

	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &day, nil
}
