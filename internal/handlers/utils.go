package handlers

import (
	"fmt"

	"snapspend-api/internal/dto"
	"snapspend-api/internal/models"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ErrUnauthorized is returned when user context is invalid
var ErrUnauthorized = fmt.Errorf("unauthorized")

// Helper function to extract user ID from context
// Returns ErrUnauthorized if user ID is missing or invalid
func getUserIDFromContext(c echo.Context) (uuid.UUID, error) {
	userIDValue := c.Get("user_id")
	if userIDValue == nil {
		return uuid.UUID{}, ErrUnauthorized
	}

	userID, ok := userIDValue.(uuid.UUID)
	if !ok {
		return uuid.UUID{}, ErrUnauthorized
	}

	return userID, nil
}

// toReceiptResponse converts a receipt model into its API representation.
// Amounts are rendered as strings so clients never see float artifacts.
func toReceiptResponse(r *models.Receipt) dto.ReceiptResponse {
	items := make([]dto.ReceiptItemResponse, 0, len(r.Items))
	for i := range r.Items {
		items = append(items, toReceiptItemResponse(&r.Items[i]))
	}

	resp := dto.ReceiptResponse{
		ID:        r.ID.String(),
		StoreName: r.StoreName,
		Date:      r.DateString(),
		Category:  r.Category,
		TaxAmount: r.TaxAmount.StringFixed(2),
		Currency:  r.Currency,
		Items:     items,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if r.TotalAmount != nil {
		resp.TotalAmount = r.TotalAmount.StringFixed(2)
	}
	return resp
}

func toReceiptItemResponse(item *models.ReceiptItem) dto.ReceiptItemResponse {
	resp := dto.ReceiptItemResponse{
		ID:          item.ID.String(),
		Description: item.Description,
		Quantity:    item.Quantity,
	}
	if item.UnitPrice != nil {
		resp.UnitPrice = item.UnitPrice.StringFixed(2)
	}
	if item.LineTotal != nil {
		resp.LineTotal = item.LineTotal.StringFixed(2)
	}
	return resp
}

func toUserResponse(u *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID.String(),
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		CreatedAt: u.CreatedAt,
	}
}
