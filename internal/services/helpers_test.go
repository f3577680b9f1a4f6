package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"snapspend-api/internal/extract"
	"snapspend-api/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// nopMetrics avoids registering prometheus collectors in tests
type nopMetrics struct{}

func (nopMetrics) RecordUpload(string)              {}
func (nopMetrics) RecordExtraction(string, float64) {}
func (nopMetrics) RecordExport(string)              {}
func (nopMetrics) RecordAuthEvent(string)           {}
func (nopMetrics) RecordReceiptMutation(string)     {}

// fakeStorage is an in-memory Storage for service tests
type fakeStorage struct {
	files   map[string][]byte
	saveErr error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{files: map[string][]byte{}}
}

func (f *fakeStorage) Save(filename string, data []byte) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	path := uuid.New().String() + "_" + filename
	f.files[path] = data
	return path, nil
}

func (f *fakeStorage) Get(path string) ([]byte, error) {
	data, ok := f.files[path]
	if !ok {
		return nil, errors.New("not found")
	}
	return data, nil
}

func (f *fakeStorage) Delete(path string) error {
	delete(f.files, path)
	return nil
}

// fakeExtractor returns canned fields or a canned error
type fakeExtractor struct {
	fields *extract.ReceiptFields
	err    error
	calls  int
}

func (f *fakeExtractor) Extract(ctx context.Context, image []byte, filename string) (*extract.ReceiptFields, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.fields, nil
}

func testLogger() *slog.Logger {
	return slog.Default()
}

func datePtr(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

func amountPtr(value string) *decimal.Decimal {
	d := decimal.RequireFromString(value)
	return &d
}

func makeReceipt(store, category, total string, date *time.Time) models.Receipt {
	r := models.Receipt{
		ID:        uuid.New(),
		StoreName: store,
		Category:  category,
		Date:      date,
		Currency:  models.DefaultCurrency,
	}
	if total != "" {
		r.TotalAmount = amountPtr(total)
	}
	return r
}
