package handlers

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"snapspend-api/internal/errors"
	"snapspend-api/internal/services"

	"github.com/labstack/echo/v4"
)

// ExportHandler handles receipt export downloads
type ExportHandler struct {
	exportService services.ExportServiceInterface
}

// NewExportHandler creates a new export handler
func NewExportHandler(exportService services.ExportServiceInterface) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// Export renders the user's full collection as a downloadable file. The
// format query selects csv, sheet or excel; the default is csv. One row is
// emitted per line item, with receipt fields repeated, and itemless
// receipts still produce a single row.
func (h *ExportHandler) Export(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingSession)
	}

	format := services.ExportFormat(c.QueryParam("format"))
	if format == "" {
		format = services.ExportFormatCSV
	}

	result, err := h.exportService.Export(userID, format)
	if err != nil {
		if stderrors.Is(err, services.ErrUnknownExportFormat) {
			return SendError(c, errors.ExportInvalidFormat, errors.WithDetails("Format must be one of csv, sheet, excel"))
		}
		return SendSystemError(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, result.Filename))
	return c.Blob(http.StatusOK, result.ContentType, result.Data)
}
