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

// ItemHandler handles line-item HTTP requests
type ItemHandler struct {
	receiptService services.ReceiptServiceInterface
}

// NewItemHandler creates a new item handler
func NewItemHandler(receiptService services.ReceiptServiceInterface) *ItemHandler {
	return &ItemHandler{receiptService: receiptService}
}

// GetItem returns a single line item
func (h *ItemHandler) GetItem(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingSession)
	}

	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		return SendError(c, errors.ItemInvalidID)
	}

	item, err := h.receiptService.GetItem(itemID, userID)
	if err != nil {
		if stderrors.Is(err, services.ErrItemNotFound) {
			return SendError(c, errors.ItemNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, toReceiptItemResponse(item))
}

// UpdateItem applies a partial edit to a line item. The line total is stored
// exactly as sent and never recomputed from quantity and unit price.
func (h *ItemHandler) UpdateItem(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingSession)
	}

	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		return SendError(c, errors.ItemInvalidID)
	}

	var req dto.UpdateReceiptItemRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	item, err := h.receiptService.UpdateItem(itemID, userID, &req)
	if err != nil {
		switch {
		case stderrors.Is(err, services.ErrItemNotFound):
			return SendError(c, errors.ItemNotFound)
		case stderrors.Is(err, services.ErrInvalidAmount), stderrors.Is(err, models.ErrNegativeAmount):
			return SendError(c, errors.ValidationInvalidAmount, errors.WithDetails(err.Error()))
		default:
			return SendSystemError(c, err)
		}
	}

	return c.JSON(http.StatusOK, toReceiptItemResponse(item))
}

// DeleteItem removes a single line item from its receipt
func (h *ItemHandler) DeleteItem(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingSession)
	}

	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		return SendError(c, errors.ItemInvalidID)
	}

	if err := h.receiptService.DeleteItem(itemID, userID); err != nil {
		if stderrors.Is(err, services.ErrItemNotFound) {
			return SendError(c, errors.ItemNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
