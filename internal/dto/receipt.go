package dto

import "time"

// ReceiptItemResponse represents a single line item on a receipt
type ReceiptItemResponse struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unit_price,omitempty"`
	LineTotal   string `json:"line_total,omitempty"`
}

// ReceiptResponse represents a receipt with its line items.
// Amounts are serialized as decimal strings and dates as YYYY-MM-DD.
type ReceiptResponse struct {
	ID          string                `json:"id"`
	StoreName   string                `json:"store_name"`
	Date        string                `json:"date,omitempty"`
	Category    string                `json:"category"`
	TotalAmount string                `json:"total_amount,omitempty"`
	TaxAmount   string                `json:"tax_amount"`
	Currency    string                `json:"currency"`
	Items       []ReceiptItemResponse `json:"items"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
}

// ListReceiptsResponse wraps the receipt collection
type ListReceiptsResponse struct {
	Receipts []ReceiptResponse `json:"receipts"`
	Total    int               `json:"total"`
}

// ReceiptDetailResponse wraps a single receipt
type ReceiptDetailResponse struct {
	Receipt ReceiptResponse `json:"receipt"`
}

// ReceiptListQuery contains filtering, sorting, and pagination query parameters
type ReceiptListQuery struct {
	Category string `query:"category"`
	Sort     string `query:"sort"`
	Order    string `query:"order"`
	Limit    int    `query:"limit"`
	Offset   int    `query:"offset"`
}

// UpdateReceiptRequest contains editable receipt fields. Pointer fields
// distinguish "not provided" from explicit empty values; amount and date
// fields arrive as strings so that empty means null.
type UpdateReceiptRequest struct {
	StoreName   *string `json:"store_name,omitempty" validate:"omitempty,max=255"`
	Date        *string `json:"date,omitempty" validate:"omitempty,receipt_date"`
	Category    *string `json:"category,omitempty" validate:"omitempty,max=100"`
	TotalAmount *string `json:"total_amount,omitempty" validate:"omitempty,amount_string"`
	TaxAmount   *string `json:"tax_amount,omitempty" validate:"omitempty,amount_string"`
	Currency    *string `json:"currency,omitempty" validate:"omitempty,currency_code"`
}

// UpdateReceiptItemRequest contains editable item fields. Items are only
// ever mutated in place; creation happens during extraction.
type UpdateReceiptItemRequest struct {
	Description *string `json:"description,omitempty" validate:"omitempty,min=1,max=255"`
	Quantity    *int    `json:"quantity,omitempty" validate:"omitempty,min=1"`
	UnitPrice   *string `json:"unit_price,omitempty" validate:"omitempty,amount_string"`
	LineTotal   *string `json:"line_total,omitempty" validate:"omitempty,amount_string"`
}

// DuplicateGroupResponse represents a group of receipts sharing a signature
type DuplicateGroupResponse struct {
	Signature  string   `json:"signature"`
	ReceiptIDs []string `json:"receipt_ids"`
	Tag        string   `json:"tag"`
}

// ListDuplicatesResponse wraps the duplicate groups
type ListDuplicatesResponse struct {
	Duplicates []DuplicateGroupResponse `json:"duplicates"`
}
