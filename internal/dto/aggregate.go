package dto

// AggregateQuery contains the date-range parameters for category aggregation.
// Exactly one mode applies: month (YYYY-MM), quarter+year, year, or start+end.
// With no parameters all receipts are aggregated.
type AggregateQuery struct {
	Month   string `query:"month"`
	Quarter int    `query:"quarter"`
	Year    int    `query:"year"`
	Start   string `query:"start"`
	End     string `query:"end"`
}

// CategoryAggregateResponse represents one category's share of spending
type CategoryAggregateResponse struct {
	Category     string  `json:"category"`
	ReceiptCount int     `json:"receipt_count"`
	TotalAmount  string  `json:"total_amount"`
	Percentage   float64 `json:"percentage"`
}

// AggregateResponse wraps the per-category breakdown
type AggregateResponse struct {
	Categories []CategoryAggregateResponse `json:"categories"`
	GrandTotal string                      `json:"grand_total"`
}
