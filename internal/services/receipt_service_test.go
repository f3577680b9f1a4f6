package services

import (
	"testing"
	"time"

	"snapspend-api/internal/dto"
	"snapspend-api/internal/models"
	"snapspend-api/internal/repositories"
	"snapspend-api/internal/repositories/repository_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type ReceiptServiceTestSuite struct {
	suite.Suite
	ctrl            *gomock.Controller
	mockReceiptRepo *repository_mocks.MockReceiptRepositoryInterface
	mockItemRepo    *repository_mocks.MockReceiptItemRepositoryInterface
	store           *fakeStorage
	service         ReceiptServiceInterface
	userID          uuid.UUID
}

func (s *ReceiptServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockReceiptRepo = repository_mocks.NewMockReceiptRepositoryInterface(s.ctrl)
	s.mockItemRepo = repository_mocks.NewMockReceiptItemRepositoryInterface(s.ctrl)
	s.store = newFakeStorage()
	s.userID = uuid.New()
	s.service = NewReceiptService(s.mockReceiptRepo, s.mockItemRepo, s.store, nopMetrics{}, testLogger())
}

func (s *ReceiptServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestReceiptServiceSuite(t *testing.T) {
	suite.Run(t, new(ReceiptServiceTestSuite))
}

func (s *ReceiptServiceTestSuite) collection() []models.Receipt {
	return []models.Receipt{
		makeReceipt("SM Supermarket", "Groceries", "450.75", datePtr(2025, time.June, 15)),
		makeReceipt("Jollibee", "Dining", "185.00", datePtr(2025, time.June, 20)),
		makeReceipt("Grab", "Transport", "320.00", datePtr(2025, time.May, 2)),
		makeReceipt("Mystery Shop", "", "", nil),
	}
}

func (s *ReceiptServiceTestSuite) TestListReceipts_AllCategoriesSentinelPassesThrough() {
	collection := s.collection()
	s.mockReceiptRepo.EXPECT().ListByUser(s.userID).Return(collection, nil)

	view, total, err := s.service.ListReceipts(models.ReceiptFilters{
		UserID:   s.userID,
		Category: models.AllCategoriesSentinel,
	})

	s.NoError(err)
	s.Equal(len(collection), total)
	s.Len(view, len(collection))
	for i := range collection {
		s.Equal(collection[i].ID, view[i].ID)
	}
}

func (s *ReceiptServiceTestSuite) TestListReceipts_FilterTreatsEmptyCategoryAsOther() {
	s.mockReceiptRepo.EXPECT().ListByUser(s.userID).Return(s.collection(), nil)

	view, total, err := s.service.ListReceipts(models.ReceiptFilters{
		UserID:   s.userID,
		Category: "Other",
	})

	s.NoError(err)
	s.Equal(1, total)
	s.Len(view, 1)
	s.Equal("Mystery Shop", view[0].StoreName)
}

func (s *ReceiptServiceTestSuite) TestListReceipts_SortByTotalDescendingReversesAscending() {
	collection := s.collection()
	s.mockReceiptRepo.EXPECT().ListByUser(s.userID).Return(collection, nil).Times(2)

	asc, _, err := s.service.ListReceipts(models.ReceiptFilters{
		UserID:    s.userID,
		SortField: models.SortByTotal,
		SortOrder: models.SortAsc,
	})
	s.NoError(err)

	desc, _, err := s.service.ListReceipts(models.ReceiptFilters{
		UserID:    s.userID,
		SortField: models.SortByTotal,
		SortOrder: models.SortDesc,
	})
	s.NoError(err)

	s.Len(asc, len(collection))
	for i := range asc {
		s.Equal(asc[i].ID, desc[len(desc)-1-i].ID)
	}

	// Missing totals sort as zero
	s.Equal("Mystery Shop", asc[0].StoreName)
}

func (s *ReceiptServiceTestSuite) TestListReceipts_SortByDateEmptyFirst() {
	s.mockReceiptRepo.EXPECT().ListByUser(s.userID).Return(s.collection(), nil)

	view, _, err := s.service.ListReceipts(models.ReceiptFilters{
		UserID:    s.userID,
		SortField: models.SortByDate,
		SortOrder: models.SortAsc,
	})

	s.NoError(err)
	s.Equal("Mystery Shop", view[0].StoreName)
	s.Equal("Grab", view[1].StoreName)
	s.Equal("SM Supermarket", view[2].StoreName)
	s.Equal("Jollibee", view[3].StoreName)
}

func (s *ReceiptServiceTestSuite) TestListReceipts_Pagination() {
	s.mockReceiptRepo.EXPECT().ListByUser(s.userID).Return(s.collection(), nil)

	view, total, err := s.service.ListReceipts(models.ReceiptFilters{
		UserID: s.userID,
		Offset: 1,
		Limit:  2,
	})

	s.NoError(err)
	s.Equal(4, total)
	s.Len(view, 2)
	s.Equal("Jollibee", view[0].StoreName)
}

func (s *ReceiptServiceTestSuite) TestListReceipts_OffsetBeyondEnd() {
	s.mockReceiptRepo.EXPECT().ListByUser(s.userID).Return(s.collection(), nil)

	view, total, err := s.service.ListReceipts(models.ReceiptFilters{
		UserID: s.userID,
		Offset: 100,
	})

	s.NoError(err)
	s.Equal(4, total)
	s.Empty(view)
}

func (s *ReceiptServiceTestSuite) TestListReceipts_InvalidSortField() {
	_, _, err := s.service.ListReceipts(models.ReceiptFilters{
		UserID:    s.userID,
		SortField: "store_name",
	})

	s.ErrorIs(err, models.ErrInvalidSortField)
}

func (s *ReceiptServiceTestSuite) TestUpdateReceipt_NumericOrNullCoercion() {
	receiptID := uuid.New()
	existing := &models.Receipt{ID: receiptID, UserID: &s.userID, Currency: "PHP"}

	s.mockReceiptRepo.EXPECT().GetByIDForUser(receiptID, s.userID).Return(existing, nil)
	s.mockReceiptRepo.EXPECT().UpdateFields(receiptID, gomock.Any()).DoAndReturn(
		func(id uuid.UUID, fields map[string]interface{}) error {
			amount, ok := fields["total_amount"].(*decimal.Decimal)
			s.True(ok)
			s.True(amount.Equal(decimal.RequireFromString("99.95")))
			s.Nil(fields["date"])
			return nil
		})
	s.mockReceiptRepo.EXPECT().GetByID(receiptID).Return(existing, nil)

	total := "99.95"
	emptyDate := ""
	_, err := s.service.UpdateReceipt(receiptID, s.userID, &dto.UpdateReceiptRequest{
		TotalAmount: &total,
		Date:        &emptyDate,
	})

	s.NoError(err)
}

func (s *ReceiptServiceTestSuite) TestUpdateReceipt_RejectsMalformedAmount() {
	receiptID := uuid.New()
	existing := &models.Receipt{ID: receiptID, UserID: &s.userID, Currency: "PHP"}
	s.mockReceiptRepo.EXPECT().GetByIDForUser(receiptID, s.userID).Return(existing, nil)

	bad := "12.3.4"
	_, err := s.service.UpdateReceipt(receiptID, s.userID, &dto.UpdateReceiptRequest{
		TotalAmount: &bad,
	})

	s.ErrorIs(err, ErrInvalidAmount)
}

func (s *ReceiptServiceTestSuite) TestUpdateReceipt_NotFound() {
	receiptID := uuid.New()
	s.mockReceiptRepo.EXPECT().GetByIDForUser(receiptID, s.userID).
		Return(nil, repositories.ErrReceiptNotFound)

	store := "New Store"
	_, err := s.service.UpdateReceipt(receiptID, s.userID, &dto.UpdateReceiptRequest{
		StoreName: &store,
	})

	s.ErrorIs(err, ErrReceiptNotFound)
}

func (s *ReceiptServiceTestSuite) TestDeleteReceipt_RemovesStoredImage() {
	path, err := s.store.Save("receipt.jpg", []byte("img"))
	s.NoError(err)

	receiptID := uuid.New()
	existing := &models.Receipt{ID: receiptID, UserID: &s.userID, Currency: "PHP", FilePath: path}

	s.mockReceiptRepo.EXPECT().GetByIDForUser(receiptID, s.userID).Return(existing, nil)
	s.mockReceiptRepo.EXPECT().Delete(receiptID).Return(nil)

	s.NoError(s.service.DeleteReceipt(receiptID, s.userID))

	_, err = s.store.Get(path)
	s.Error(err)
}

func (s *ReceiptServiceTestSuite) TestGetReceiptImage_NoImage() {
	receiptID := uuid.New()
	existing := &models.Receipt{ID: receiptID, UserID: &s.userID, Currency: "PHP"}
	s.mockReceiptRepo.EXPECT().GetByIDForUser(receiptID, s.userID).Return(existing, nil)

	_, _, err := s.service.GetReceiptImage(receiptID, s.userID)
	s.ErrorIs(err, ErrNoImage)
}

func (s *ReceiptServiceTestSuite) TestUpdateItem_OwnershipEnforcedThroughReceipt() {
	itemID := uuid.New()
	receiptID := uuid.New()
	item := &models.ReceiptItem{ID: itemID, ReceiptID: receiptID, Description: "Milk", Quantity: 1}

	s.mockItemRepo.EXPECT().GetByID(itemID).Return(item, nil)
	s.mockReceiptRepo.EXPECT().GetByIDForUser(receiptID, s.userID).
		Return(nil, repositories.ErrReceiptNotFound)

	desc := "Milk 1L"
	_, err := s.service.UpdateItem(itemID, s.userID, &dto.UpdateReceiptItemRequest{
		Description: &desc,
	})

	s.ErrorIs(err, ErrItemNotFound)
}

func (s *ReceiptServiceTestSuite) TestUpdateItem_LineTotalNeverRecomputed() {
	itemID := uuid.New()
	receiptID := uuid.New()
	lineTotal := decimal.RequireFromString("50.00")
	item := &models.ReceiptItem{
		ID: itemID, ReceiptID: receiptID,
		Description: "Milk", Quantity: 1, LineTotal: &lineTotal,
	}
	receipt := &models.Receipt{ID: receiptID, UserID: &s.userID, Currency: "PHP"}

	s.mockItemRepo.EXPECT().GetByID(itemID).Return(item, nil)
	s.mockReceiptRepo.EXPECT().GetByIDForUser(receiptID, s.userID).Return(receipt, nil)
	s.mockItemRepo.EXPECT().Update(gomock.Any()).DoAndReturn(func(updated *models.ReceiptItem) error {
		s.Equal(5, updated.Quantity)
		// quantity changed but line total stays as stored
		s.True(updated.LineTotal.Equal(lineTotal))
		return nil
	})
	s.mockItemRepo.EXPECT().GetByID(itemID).Return(item, nil)

	quantity := 5
	_, err := s.service.UpdateItem(itemID, s.userID, &dto.UpdateReceiptItemRequest{
		Quantity: &quantity,
	})

	s.NoError(err)
}
