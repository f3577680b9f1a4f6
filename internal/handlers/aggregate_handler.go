package handlers

import (
	stderrors "errors"
	"net/http"

	"snapspend-api/internal/dto"
	"snapspend-api/internal/errors"
	"snapspend-api/internal/services"

	"github.com/labstack/echo/v4"
)

// AggregateHandler handles category spending aggregation requests
type AggregateHandler struct {
	aggregationService services.AggregationServiceInterface
}

// NewAggregateHandler creates a new aggregate handler
func NewAggregateHandler(aggregationService services.AggregationServiceInterface) *AggregateHandler {
	return &AggregateHandler{aggregationService: aggregationService}
}

// Aggregate returns per-category spending totals for the pie chart, computed
// over the current collection. Date filtering accepts one of four modes:
// month (YYYY-MM), quarter (1-4 with year), year, or an explicit start/end
// range. Without a date filter every receipt counts, including dateless ones.
func (h *AggregateHandler) Aggregate(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingSession)
	}

	var query dto.AggregateQuery
	if err := c.Bind(&query); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid query parameters"))
	}

	report, err := h.aggregationService.Aggregate(userID, &query)
	if err != nil {
		if stderrors.Is(err, services.ErrInvalidPeriod) {
			return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
		}
		return SendSystemError(c, err)
	}

	resp := dto.AggregateResponse{
		Categories: make([]dto.CategoryAggregateResponse, 0, len(report.Categories)),
		GrandTotal: report.GrandTotal.StringFixed(2),
	}
	for _, bucket := range report.Categories {
		resp.Categories = append(resp.Categories, dto.CategoryAggregateResponse{
			Category:     bucket.Category,
			ReceiptCount: bucket.ReceiptCount,
			TotalAmount:  bucket.TotalAmount.StringFixed(2),
			Percentage:   bucket.Percentage.InexactFloat64(),
		})
	}

	return c.JSON(http.StatusOK, resp)
}
