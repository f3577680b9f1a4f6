package services

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"snapspend-api/internal/models"
	"snapspend-api/internal/repositories"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

var ErrUnknownExportFormat = errors.New("unknown export format")

type exportService struct {
	receiptRepo repositories.ReceiptRepositoryInterface
	metrics     MetricsRecorderInterface
	logger      *slog.Logger
}

// NewExportService creates a new ExportServiceInterface instance
func NewExportService(
	receiptRepo repositories.ReceiptRepositoryInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) ExportServiceInterface {
	return &exportService{
		receiptRepo: receiptRepo,
		metrics:     metrics,
		logger:      logger,
	}
}

// Export renders the user's full collection in the requested format.
// The csv and sheet variants share one serialized CSV payload and differ
// only in filename; the excel variant is a real XLSX workbook built from
// the same rows.
func (s *exportService) Export(userID uuid.UUID, format ExportFormat) (*ExportResult, error) {
	receipts, err := s.receiptRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load receipts: %w", err)
	}

	rows := BuildExportRows(receipts)
	stamp := time.Now().UTC().Format("2006-01-02")

	var result *ExportResult
	switch format {
	case ExportFormatCSV:
		result = &ExportResult{
			Filename:    fmt.Sprintf("receipts_%s.csv", stamp),
			ContentType: "text/csv",
			Data:        SerializeCSV(rows),
		}
	case ExportFormatSheet:
		result = &ExportResult{
			Filename:    fmt.Sprintf("receipts_sheet_%s.csv", stamp),
			ContentType: "text/csv",
			Data:        SerializeCSV(rows),
		}
	case ExportFormatExcel:
		data, err := serializeXLSX(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to build workbook: %w", err)
		}
		result = &ExportResult{
			Filename:    fmt.Sprintf("receipts_%s.xlsx", stamp),
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Data:        data,
		}
	default:
		return nil, ErrUnknownExportFormat
	}

	s.metrics.RecordExport(string(format))
	s.logger.Info("export generated",
		"user_id", userID,
		"format", format,
		"rows", len(rows),
		"bytes", len(result.Data),
	)

	return result, nil
}

// BuildExportRows flattens receipts into one row per (receipt, item) pair.
// A receipt with zero items still yields exactly one row with empty item
// columns, so every receipt is represented.
func BuildExportRows(receipts []models.Receipt) []models.ExportRow {
	rows := make([]models.ExportRow, 0, len(receipts))

	for i := range receipts {
		r := &receipts[i]
		base := models.ExportRow{
			ReceiptID: r.ID.String(),
			StoreName: r.StoreName,
			Date:      r.DateString(),
			Category:  r.CategoryOrDefault(),
			Currency:  r.Currency,
			TaxAmount: r.TaxAmount.StringFixed(2),
		}
		if r.TotalAmount != nil {
			base.TotalAmount = r.TotalAmount.StringFixed(2)
		}

		if len(r.Items) == 0 {
			rows = append(rows, base)
			continue
		}

		for j := range r.Items {
			item := &r.Items[j]
			row := base
			row.ItemID = item.ID.String()
			row.Description = item.Description
			row.Quantity = fmt.Sprintf("%d", item.Quantity)
			if item.UnitPrice != nil {
				row.UnitPrice = item.UnitPrice.StringFixed(2)
			}
			if item.LineTotal != nil {
				row.LineTotal = item.LineTotal.StringFixed(2)
			}
			rows = append(rows, row)
		}
	}

	return rows
}

// SerializeCSV renders rows under the export escaping rules: a field is
// quoted, with interior quotes doubled, only when it contains a comma,
// a quote, or a newline. Rows are joined with CRLF.
func SerializeCSV(rows []models.ExportRow) []byte {
	var sb strings.Builder

	writeRow := func(fields []string) {
		for i, field := range fields {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(escapeCSVField(field))
		}
		sb.WriteString("\r\n")
	}

	writeRow(models.ExportHeaders)
	for i := range rows {
		writeRow(rows[i].Fields())
	}

	return []byte(sb.String())
}

func escapeCSVField(field string) string {
	if !strings.ContainsAny(field, ",\"\n\r") {
		return field
	}
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

func serializeXLSX(rows []models.ExportRow) ([]byte, error) {
	f := excelize.NewFile()
	const sheet = "Receipts"

	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	for i, header := range models.ExportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, err
		}
	}

	for rowIdx := range rows {
		for colIdx, value := range rows[rowIdx].Fields() {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
