package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"snapspend-api/internal/config"
	"snapspend-api/internal/extract"
	"snapspend-api/internal/models"
	"snapspend-api/internal/repositories/repository_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type UploadServiceTestSuite struct {
	suite.Suite
	ctrl            *gomock.Controller
	mockReceiptRepo *repository_mocks.MockReceiptRepositoryInterface
	store           *fakeStorage
	extractor       *fakeExtractor
	userID          uuid.UUID
}

func (s *UploadServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockReceiptRepo = repository_mocks.NewMockReceiptRepositoryInterface(s.ctrl)
	s.store = newFakeStorage()
	s.extractor = &fakeExtractor{
		fields: &extract.ReceiptFields{
			StoreName:   "SM Supermarket",
			Date:        datePtr(2025, time.June, 15),
			Category:    "Groceries",
			TotalAmount: amountPtr("450.75"),
			Currency:    "PHP",
			Items: []extract.ItemFields{
				{Description: "Rice 5kg", Quantity: 1, UnitPrice: amountPtr("250.00")},
				{Description: "Eggs", Quantity: 2, UnitPrice: amountPtr("100.00")},
			},
		},
	}
	s.userID = uuid.New()
}

func (s *UploadServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestUploadServiceSuite(t *testing.T) {
	suite.Run(t, new(UploadServiceTestSuite))
}

func (s *UploadServiceTestSuite) newService() UploadServiceInterface {
	cfg := &config.UploadConfig{MaxFileBytes: 1 << 20, MaxFiles: 20}
	return NewUploadService(s.mockReceiptRepo, s.extractor, s.store, cfg, nopMetrics{}, testLogger())
}

func (s *UploadServiceTestSuite) TestProcessUpload_Success() {
	s.mockReceiptRepo.EXPECT().Create(gomock.Any()).DoAndReturn(func(r *models.Receipt) error {
		s.Equal("SM Supermarket", r.StoreName)
		s.Equal(&s.userID, r.UserID)
		s.Len(r.Items, 2)
		s.Equal(0, r.Items[0].Position)
		s.Equal(1, r.Items[1].Position)
		s.NotEmpty(r.FilePath)
		return nil
	})

	receipts, uploadErrors := s.newService().ProcessUpload(context.Background(), s.userID, []UploadFile{
		{Filename: "receipt.jpg", Data: []byte("image bytes")},
	})

	s.Empty(uploadErrors)
	s.Len(receipts, 1)
}

func (s *UploadServiceTestSuite) TestProcessUpload_PartialFailure() {
	s.mockReceiptRepo.EXPECT().Create(gomock.Any()).Return(nil).Times(2)

	receipts, uploadErrors := s.newService().ProcessUpload(context.Background(), s.userID, []UploadFile{
		{Filename: "one.jpg", Data: []byte("a")},
		{Filename: "empty.jpg", Data: nil},
		{Filename: "two.jpg", Data: []byte("b")},
	})

	s.Len(receipts, 2)
	s.Len(uploadErrors, 1)
	s.Equal("empty.jpg", uploadErrors[0].Filename)
}

func (s *UploadServiceTestSuite) TestProcessUpload_FileTooLarge() {
	cfg := &config.UploadConfig{MaxFileBytes: 4, MaxFiles: 20}
	service := NewUploadService(s.mockReceiptRepo, s.extractor, s.store, cfg, nopMetrics{}, testLogger())

	receipts, uploadErrors := service.ProcessUpload(context.Background(), s.userID, []UploadFile{
		{Filename: "big.jpg", Data: []byte("way too large")},
	})

	s.Empty(receipts)
	s.Len(uploadErrors, 1)
	s.Contains(uploadErrors[0].Error, "byte limit")
	s.Equal(0, s.extractor.calls)
}

func (s *UploadServiceTestSuite) TestProcessUpload_ExtractionFailureKeepsUpload() {
	s.extractor.err = errors.New("model unavailable")
	s.mockReceiptRepo.EXPECT().Create(gomock.Any()).DoAndReturn(func(r *models.Receipt) error {
		// Receipt persisted with empty fields rather than dropped
		s.Empty(r.StoreName)
		s.Nil(r.TotalAmount)
		s.Equal(models.DefaultCurrency, r.Currency)
		s.NotEmpty(r.FilePath)
		return nil
	})

	receipts, uploadErrors := s.newService().ProcessUpload(context.Background(), s.userID, []UploadFile{
		{Filename: "blurry.jpg", Data: []byte("image")},
	})

	s.Empty(uploadErrors)
	s.Len(receipts, 1)
}

func (s *UploadServiceTestSuite) TestProcessUpload_CreateFailureCleansUpImage() {
	s.mockReceiptRepo.EXPECT().Create(gomock.Any()).Return(errors.New("db down"))

	receipts, uploadErrors := s.newService().ProcessUpload(context.Background(), s.userID, []UploadFile{
		{Filename: "receipt.jpg", Data: []byte("image")},
	})

	s.Empty(receipts)
	s.Len(uploadErrors, 1)
	s.Empty(s.store.files)
}

func (s *UploadServiceTestSuite) TestProcessUpload_NewestFirst() {
	s.mockReceiptRepo.EXPECT().Create(gomock.Any()).Return(nil).Times(2)

	receipts, _ := s.newService().ProcessUpload(context.Background(), s.userID, []UploadFile{
		{Filename: "first.jpg", Data: []byte("a")},
		{Filename: "second.jpg", Data: []byte("b")},
	})

	s.Len(receipts, 2)
	// The most recently processed file leads the response
}

func (s *UploadServiceTestSuite) TestProcessUpload_CancelledContext() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	receipts, uploadErrors := s.newService().ProcessUpload(ctx, s.userID, []UploadFile{
		{Filename: "receipt.jpg", Data: []byte("image")},
	})

	s.Empty(receipts)
	s.Len(uploadErrors, 1)
	s.Contains(uploadErrors[0].Error, "cancelled")
}
