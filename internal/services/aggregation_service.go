package services

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"snapspend-api/internal/dto"
	"snapspend-api/internal/models"
	"snapspend-api/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidPeriod = errors.New("invalid aggregation period")

	hundred = decimal.NewFromInt(100)
)

// dateRange is an inclusive day window; nil means unbounded aggregation
type dateRange struct {
	start time.Time
	end   time.Time
}

type aggregationService struct {
	receiptRepo repositories.ReceiptRepositoryInterface
}

// NewAggregationService creates a new AggregationServiceInterface instance
func NewAggregationService(receiptRepo repositories.ReceiptRepositoryInterface) AggregationServiceInterface {
	return &aggregationService{
		receiptRepo: receiptRepo,
	}
}

// Aggregate groups the user's receipts by category and sums totals,
// producing percentage-of-grand-total per bucket. When a date filter is
// active, receipts without a date are excluded entirely. The report is
// recomputed from the collection on every call.
func (s *aggregationService) Aggregate(userID uuid.UUID, query *dto.AggregateQuery) (*models.AggregateReport, error) {
	window, err := resolveDateRange(query)
	if err != nil {
		return nil, err
	}

	receipts, err := s.receiptRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load receipts: %w", err)
	}

	totals := map[string]decimal.Decimal{}
	counts := map[string]int{}
	order := []string{}
	grandTotal := decimal.Zero

	for i := range receipts {
		r := &receipts[i]

		if window != nil {
			if r.Date == nil {
				continue
			}
			if r.Date.Before(window.start) || r.Date.After(window.end) {
				continue
			}
		}

		category := r.Category
		if category == "" {
			category = models.UncategorizedLabel
		}

		if _, seen := totals[category]; !seen {
			order = append(order, category)
		}

		amount := r.TotalOrZero()
		totals[category] = totals[category].Add(amount)
		counts[category]++
		grandTotal = grandTotal.Add(amount)
	}

	report := &models.AggregateReport{
		Categories: make([]models.CategoryAggregate, 0, len(order)),
		GrandTotal: grandTotal,
	}

	for _, category := range order {
		aggregate := models.CategoryAggregate{
			Category:     category,
			ReceiptCount: counts[category],
			TotalAmount:  totals[category],
		}
		if grandTotal.IsPositive() {
			aggregate.Percentage = totals[category].Mul(hundred).Div(grandTotal).Round(1)
		}
		report.Categories = append(report.Categories, aggregate)
	}

	// Largest slice first for chart display
	sort.SliceStable(report.Categories, func(i, j int) bool {
		return report.Categories[i].TotalAmount.GreaterThan(report.Categories[j].TotalAmount)
	})

	return report, nil
}

// resolveDateRange maps the query parameters to an inclusive window.
// Exactly one mode applies: month, quarter within a year, whole year, or
// explicit start/end. No parameters means no date filtering at all.
func resolveDateRange(query *dto.AggregateQuery) (*dateRange, error) {
	if query == nil {
		return nil, nil
	}

	switch {
	case query.Month != "":
		start, err := time.Parse("2006-01", query.Month)
		if err != nil {
			return nil, fmt.Errorf("%w: month must be YYYY-MM", ErrInvalidPeriod)
		}
		return &dateRange{
			start: start,
			end:   start.AddDate(0, 1, -1),
		}, nil

	case query.Quarter != 0:
		if query.Quarter < 1 || query.Quarter > 4 {
			return nil, fmt.Errorf("%w: quarter must be between 1 and 4", ErrInvalidPeriod)
		}
		if query.Year == 0 {
			return nil, fmt.Errorf("%w: quarter requires a year", ErrInvalidPeriod)
		}
		start := time.Date(query.Year, time.Month((query.Quarter-1)*3+1), 1, 0, 0, 0, 0, time.UTC)
		return &dateRange{
			start: start,
			end:   start.AddDate(0, 3, -1),
		}, nil

	case query.Year != 0:
		start := time.Date(query.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
		return &dateRange{
			start: start,
			end:   time.Date(query.Year, time.December, 31, 0, 0, 0, 0, time.UTC),
		}, nil

	case query.Start != "" || query.End != "":
		if query.Start == "" || query.End == "" {
			return nil, fmt.Errorf("%w: custom range requires both start and end", ErrInvalidPeriod)
		}
		start, err := time.Parse(models.DateLayout, query.Start)
		if err != nil {
			return nil, fmt.Errorf("%w: start must be YYYY-MM-DD", ErrInvalidPeriod)
		}
		end, err := time.Parse(models.DateLayout, query.End)
		if err != nil {
			return nil, fmt.Errorf("%w: end must be YYYY-MM-DD", ErrInvalidPeriod)
		}
		if end.Before(start) {
			return nil, fmt.Errorf("%w: end precedes start", ErrInvalidPeriod)
		}
		return &dateRange{start: start, end: end}, nil
	}

	return nil, nil
}
