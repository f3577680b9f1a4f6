package handlers

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"snapspend-api/internal/config"
	"snapspend-api/internal/dto"
	"snapspend-api/internal/errors"
	"snapspend-api/internal/services"

	"github.com/labstack/echo/v4"
)

// Multipart field names accepted for uploaded receipt images. Clients are
// inconsistent about the bracket suffix so all three are treated the same.
var uploadFieldNames = []string{"files", "files[]", "file"}

// UploadHandler handles receipt image uploads
type UploadHandler struct {
	uploadService services.UploadServiceInterface
	uploadConfig  config.UploadConfig
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(uploadService services.UploadServiceInterface, uploadConfig config.UploadConfig) *UploadHandler {
	return &UploadHandler{
		uploadService: uploadService,
		uploadConfig:  uploadConfig,
	}
}

// Upload accepts one or more receipt images and runs each through storage
// and extraction independently. A bad file yields a per-file error entry
// while the rest of the batch still succeeds.
//
// Responses: 201 when every file produced a receipt, 207 on partial
// success, 400 when no file could be processed.
func (h *UploadHandler) Upload(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingSession)
	}

	form, err := c.MultipartForm()
	if err != nil {
		return SendError(c, errors.UploadNoFiles, errors.WithDetails("Request must be multipart/form-data with at least one file"))
	}

	fileHeaders := collectFileHeaders(form)
	if len(fileHeaders) == 0 {
		return SendError(c, errors.UploadNoFiles)
	}

	if h.uploadConfig.MaxFiles > 0 && len(fileHeaders) > h.uploadConfig.MaxFiles {
		return SendError(c, errors.ValidationGeneral,
			errors.WithDetails(fmt.Sprintf("At most %d files may be uploaded per request", h.uploadConfig.MaxFiles)))
	}

	files := make([]services.UploadFile, 0, len(fileHeaders))
	fileErrors := make([]dto.UploadFileError, 0)
	for _, header := range fileHeaders {
		data, err := readFileHeader(header)
		if err != nil {
			fileErrors = append(fileErrors, dto.UploadFileError{
				Filename: header.Filename,
				Error:    "could not read uploaded file",
			})
			continue
		}
		files = append(files, services.UploadFile{Filename: header.Filename, Data: data})
	}

	receipts, processErrors := h.uploadService.ProcessUpload(c.Request().Context(), userID, files)
	fileErrors = append(fileErrors, processErrors...)

	resp := dto.UploadResponse{
		Receipts: make([]dto.ReceiptResponse, 0, len(receipts)),
		Errors:   fileErrors,
	}
	for i := range receipts {
		resp.Receipts = append(resp.Receipts, toReceiptResponse(&receipts[i]))
	}

	switch {
	case len(resp.Receipts) == 0:
		return c.JSON(http.StatusBadRequest, resp)
	case len(resp.Errors) > 0:
		return c.JSON(http.StatusMultiStatus, resp)
	default:
		return c.JSON(http.StatusCreated, resp)
	}
}

// collectFileHeaders gathers file parts from the accepted field names,
// preserving the order they appear in the form
func collectFileHeaders(form *multipart.Form) []*multipart.FileHeader {
	var headers []*multipart.FileHeader
	for _, field := range uploadFieldNames {
		headers = append(headers, form.File[field]...)
	}
	return headers
}

func readFileHeader(header *multipart.FileHeader) ([]byte, error) {
	src, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	return io.ReadAll(src)
}
