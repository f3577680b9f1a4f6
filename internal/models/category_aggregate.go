package models

import "github.com/shopspring/decimal"

// CategoryAggregate contains summed receipt totals for one category bucket,
// recomputed from the collection on every request.
type CategoryAggregate struct {
	Category     string          `json:"category"`
	ReceiptCount int             `json:"receipt_count"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	Percentage   decimal.Decimal `json:"percentage"`
}

// AggregateReport is the full chart payload: per-category slices plus the
// grand total they were computed against.
type AggregateReport struct {
	Categories []CategoryAggregate `json:"categories"`
	GrandTotal decimal.Decimal     `json:"grand_total"`
}
