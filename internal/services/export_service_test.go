package services

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"snapspend-api/internal/models"
	"snapspend-api/internal/repositories/repository_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"github.com/xuri/excelize/v2"
)

type ExportServiceTestSuite struct {
	suite.Suite
	ctrl            *gomock.Controller
	mockReceiptRepo *repository_mocks.MockReceiptRepositoryInterface
	service         ExportServiceInterface
	userID          uuid.UUID
}

func (s *ExportServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockReceiptRepo = repository_mocks.NewMockReceiptRepositoryInterface(s.ctrl)
	s.service = NewExportService(s.mockReceiptRepo, nopMetrics{}, testLogger())
	s.userID = uuid.New()
}

func (s *ExportServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestExportServiceSuite(t *testing.T) {
	suite.Run(t, new(ExportServiceTestSuite))
}

func withItems(r models.Receipt, descriptions ...string) models.Receipt {
	for i, desc := range descriptions {
		r.Items = append(r.Items, models.ReceiptItem{
			ID:          uuid.New(),
			ReceiptID:   r.ID,
			Description: desc,
			Quantity:    1,
			Position:    i,
		})
	}
	return r
}

func (s *ExportServiceTestSuite) TestBuildExportRows_RowCountProperty() {
	date := datePtr(2025, time.June, 15)
	collection := []models.Receipt{
		withItems(makeReceipt("A", "Food", "10.00", date), "x", "y", "z"),
		makeReceipt("B", "Food", "20.00", date),
		withItems(makeReceipt("C", "Food", "30.00", date), "p"),
	}

	rows := BuildExportRows(collection)

	// 3 + 1 + 1: zero-item receipts still contribute exactly one row
	s.Len(rows, 5)
	s.Equal("1", rows[0].Quantity)
	s.Empty(rows[3].ItemID)
	s.Empty(rows[3].Description)
	s.Empty(rows[3].Quantity)
	s.Equal("B", rows[3].StoreName)
}

func (s *ExportServiceTestSuite) TestBuildExportRows_ZeroItemCollection() {
	date := datePtr(2025, time.June, 15)
	collection := []models.Receipt{
		makeReceipt("A", "Food", "10.00", date),
		makeReceipt("B", "Food", "20.00", date),
		makeReceipt("C", "Food", "30.00", date),
	}

	rows := BuildExportRows(collection)

	s.Len(rows, len(collection))
}

func (s *ExportServiceTestSuite) TestSerializeCSV_EscapingRules() {
	row := models.ExportRow{StoreName: `Tom's, "Diner"`, Category: "Food"}

	payload := string(SerializeCSV([]models.ExportRow{row}))
	lines := strings.Split(payload, "\r\n")

	s.Contains(lines[1], `"Tom's, ""Diner"""`)
	// Plain fields stay unquoted
	s.Contains(lines[1], ",Food,")
}

func (s *ExportServiceTestSuite) TestSerializeCSV_HeaderAndCRLF() {
	payload := string(SerializeCSV(nil))

	s.True(strings.HasSuffix(payload, "\r\n"))
	s.Equal(strings.Join(models.ExportHeaders, ","), strings.TrimSuffix(payload, "\r\n"))
}

func (s *ExportServiceTestSuite) TestExport_CSVAndSheetSharePayload() {
	date := datePtr(2025, time.June, 15)
	collection := []models.Receipt{makeReceipt("A", "Food", "10.00", date)}
	s.mockReceiptRepo.EXPECT().ListByUser(s.userID).Return(collection, nil).Times(2)

	csvResult, err := s.service.Export(s.userID, ExportFormatCSV)
	s.NoError(err)
	sheetResult, err := s.service.Export(s.userID, ExportFormatSheet)
	s.NoError(err)

	s.Equal(csvResult.Data, sheetResult.Data)
	s.Equal("text/csv", csvResult.ContentType)
	s.Equal("text/csv", sheetResult.ContentType)
	s.NotEqual(csvResult.Filename, sheetResult.Filename)
	s.True(strings.HasSuffix(csvResult.Filename, ".csv"))
	s.True(strings.HasSuffix(sheetResult.Filename, ".csv"))
}

func (s *ExportServiceTestSuite) TestExport_ExcelIsRealWorkbook() {
	date := datePtr(2025, time.June, 15)
	collection := []models.Receipt{
		withItems(makeReceipt("SM Supermarket", "Groceries", "450.75", date), "Rice 5kg"),
	}
	s.mockReceiptRepo.EXPECT().ListByUser(s.userID).Return(collection, nil)

	result, err := s.service.Export(s.userID, ExportFormatExcel)
	s.NoError(err)
	s.True(strings.HasSuffix(result.Filename, ".xlsx"))
	s.Equal("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", result.ContentType)

	f, err := excelize.OpenReader(bytes.NewReader(result.Data))
	s.NoError(err)
	defer f.Close()

	rows, err := f.GetRows("Receipts")
	s.NoError(err)
	s.Len(rows, 2)
	s.Equal("receipt_id", rows[0][0])
	s.Equal("SM Supermarket", rows[1][1])
	s.Equal("Rice 5kg", rows[1][8])
}

func (s *ExportServiceTestSuite) TestExport_UnknownFormat() {
	s.mockReceiptRepo.EXPECT().ListByUser(s.userID).Return([]models.Receipt{}, nil)

	_, err := s.service.Export(s.userID, ExportFormat("pdf"))
	s.ErrorIs(err, ErrUnknownExportFormat)
}
