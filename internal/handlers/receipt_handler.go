package handlers

import (
	stderrors "errors"
	"net/http"

	"snapspend-api/internal/dto"
	"snapspend-api/internal/errors"
	"snapspend-api/internal/models"
	"snapspend-api/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ReceiptHandler handles receipt collection and single-receipt HTTP requests
type ReceiptHandler struct {
	receiptService   services.ReceiptServiceInterface
	duplicateService services.DuplicateServiceInterface
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(receiptService services.ReceiptServiceInterface, duplicateService services.DuplicateServiceInterface) *ReceiptHandler {
	return &ReceiptHandler{
		receiptService:   receiptService,
		duplicateService: duplicateService,
	}
}

// ListReceipts returns the authenticated user's receipts, newest first,
// with optional category filter, sorting and pagination. The total in the
// envelope counts receipts after filtering but before pagination.
func (h *ReceiptHandler) ListReceipts(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingSession)
	}

	var query dto.ReceiptListQuery
	if err := c.Bind(&query); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid query parameters"))
	}

	filters := models.ReceiptFilters{
		UserID:    userID,
		Category:  query.Category,
		SortField: query.Sort,
		SortOrder: query.Order,
		Limit:     query.Limit,
		Offset:    query.Offset,
	}

	receipts, total, err := h.receiptService.ListReceipts(filters)
	if err != nil {
		if stderrors.Is(err, models.ErrInvalidSortField) || stderrors.Is(err, models.ErrInvalidSortOrder) {
			return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
		}
		return SendSystemError(c, err)
	}

	resp := dto.ListReceiptsResponse{
		Receipts: make([]dto.ReceiptResponse, 0, len(receipts)),
		Total:    total,
	}
	for i := range receipts {
		resp.Receipts = append(resp.Receipts, toReceiptResponse(&receipts[i]))
	}

	return c.JSON(http.StatusOK, resp)
}

// GetReceipt returns a single receipt with its items
func (h *ReceiptHandler) GetReceipt(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingSession)
	}

	receiptID, err := uuid.Parse(c.Param("receiptId"))
	if err != nil {
		return SendError(c, errors.ReceiptInvalidID)
	}

	receipt, err := h.receiptService.GetReceipt(receiptID, userID)
	if err != nil {
		if stderrors.Is(err, services.ErrReceiptNotFound) {
			return SendError(c, errors.ReceiptNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.ReceiptDetailResponse{Receipt: toReceiptResponse(receipt)})
}

// UpdateReceipt applies a partial edit to a receipt. Only the fields present
// in the request body are touched; amounts and dates sent as empty strings
// clear the stored value.
func (h *ReceiptHandler) UpdateReceipt(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingSession)
	}

	receiptID, err := uuid.Parse(c.Param("receiptId"))
	if err != nil {
		return SendError(c, errors.ReceiptInvalidID)
	}

	var req dto.UpdateReceiptRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	receipt, err := h.receiptService.UpdateReceipt(receiptID, userID, &req)
	if err != nil {
		switch {
		case stderrors.Is(err, services.ErrReceiptNotFound):
			return SendError(c, errors.ReceiptNotFound)
		case stderrors.Is(err, services.ErrInvalidAmount), stderrors.Is(err, models.ErrNegativeAmount):
			return SendError(c, errors.ValidationInvalidAmount, errors.WithDetails(err.Error()))
		case stderrors.Is(err, services.ErrInvalidDate):
			return SendError(c, errors.ValidationInvalidDate, errors.WithDetails(err.Error()))
		default:
			return SendSystemError(c, err)
		}
	}

	return c.JSON(http.StatusOK, dto.ReceiptDetailResponse{Receipt: toReceiptResponse(receipt)})
}

// DeleteReceipt removes a receipt, its items and its stored image
func (h *ReceiptHandler) DeleteReceipt(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingSession)
	}

	receiptID, err := uuid.Parse(c.Param("receiptId"))
	if err != nil {
		return SendError(c, errors.ReceiptInvalidID)
	}

	if err := h.receiptService.DeleteReceipt(receiptID, userID); err != nil {
		if stderrors.Is(err, services.ErrReceiptNotFound) {
			return SendError(c, errors.ReceiptNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// GetReceiptImage streams the original uploaded image for a receipt
func (h *ReceiptHandler) GetReceiptImage(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingSession)
	}

	receiptID, err := uuid.Parse(c.Param("receiptId"))
	if err != nil {
		return SendError(c, errors.ReceiptInvalidID)
	}

	data, contentType, err := h.receiptService.GetReceiptImage(receiptID, userID)
	if err != nil {
		switch {
		case stderrors.Is(err, services.ErrReceiptNotFound):
			return SendError(c, errors.ReceiptNotFound)
		case stderrors.Is(err, services.ErrNoImage):
			return SendError(c, errors.ReceiptNoImage)
		default:
			return SendSystemError(c, err)
		}
	}

	return c.Blob(http.StatusOK, contentType, data)
}

// ListDuplicates returns groups of receipts sharing a store/date/total
// signature, each tagged with a stable highlight color.
func (h *ReceiptHandler) ListDuplicates(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingSession)
	}

	groups, err := h.duplicateService.FindDuplicates(userID)
	if err != nil {
		return SendSystemError(c, err)
	}

	resp := dto.ListDuplicatesResponse{Duplicates: make([]dto.DuplicateGroupResponse, 0, len(groups))}
	for _, group := range groups {
		ids := make([]string, 0, len(group.ReceiptIDs))
		for _, id := range group.ReceiptIDs {
			ids = append(ids, id.String())
		}
		resp.Duplicates = append(resp.Duplicates, dto.DuplicateGroupResponse{
			Signature:  group.Signature,
			ReceiptIDs: ids,
			Tag:        group.Tag,
		})
	}

	return c.JSON(http.StatusOK, resp)
}
