package extract

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyImage       = errors.New("image data is empty")
	ErrExtractionFailed = errors.New("extraction failed")
)

// supportedCurrencies are the codes the extraction output may carry.
// Anything else falls back to the configured default.
var supportedCurrencies = map[string]bool{
	"PHP": true,
	"USD": true,
	"EUR": true,
	"JPY": true,
	"GBP": true,
}

// ItemFields is a single extracted line item
type ItemFields struct {
	Description string           `json:"description"`
	Quantity    int              `json:"quantity"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
	LineTotal   *decimal.Decimal `json:"line_total"`
}

// ReceiptFields is the structured result of extracting a receipt image
type ReceiptFields struct {
	StoreName   string           `json:"store_name"`
	Date        *time.Time       `json:"-"`
	Category    string           `json:"category"`
	TotalAmount *decimal.Decimal `json:"total_amount"`
	TaxAmount   *decimal.Decimal `json:"tax_amount"`
	Currency    string           `json:"currency"`
	Items       []ItemFields     `json:"items"`
}

// Extractor extracts structured receipt fields from an image
type Extractor interface {
	Extract(ctx context.Context, image []byte, filename string) (*ReceiptFields, error)
}

// NormalizeCurrency maps an extracted currency string to a supported
// 3-letter code, falling back to the default when unrecognized
func NormalizeCurrency(raw, defaultCurrency string) string {
	code := strings.ToUpper(strings.TrimSpace(raw))

	// Common symbols and aliases seen on receipts
	switch code {
	case "₱", "PESO", "PESOS", "PHP":
		return "PHP"
	case "$", "US$", "USD":
		return "USD"
	case "€", "EUR":
		return "EUR"
	case "¥", "YEN", "JPY":
		return "JPY"
	case "£", "GBP":
		return "GBP"
	}

	if supportedCurrencies[code] {
		return code
	}

	return defaultCurrency
}

// ParseDate parses a date string in the formats extraction commonly
// returns. Returns nil when the value cannot be parsed.
func ParseDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	layouts := []string{
		"2006-01-02",
		time.RFC3339,
		"01/02/2006",
		"2006/01/02",
		"Jan 2, 2006",
		"January 2, 2006",
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return &day
		}
	}

	return nil
}

// ParseAmount parses a decimal amount string, tolerating currency
// symbols and thousand separators. Returns nil for unparseable input.
func ParseAmount(raw string) *decimal.Decimal {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return nil
	}

	cleaned = strings.NewReplacer("₱", "", "$", "", "€", "", "¥", "", "£", "", ",", "", " ", "").Replace(cleaned)

	d, err := decimal.NewFromString(cleaned)
	if err != nil || d.IsNegative() {
		return nil
	}

	rounded := d.Round(2)
	return &rounded
}
