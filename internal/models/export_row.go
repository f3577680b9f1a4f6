package models

// ExportRow is one flattened (receipt, item) pair. A receipt without items
// still contributes exactly one row with empty item columns.
type ExportRow struct {
	ReceiptID   string
	StoreName   string
	Date        string
	Category    string
	Currency    string
	TotalAmount string
	TaxAmount   string
	ItemID      string
	Description string
	Quantity    string
	UnitPrice   string
	LineTotal   string
}

// ExportHeaders is the fixed column order shared by every export variant.
var ExportHeaders = []string{
	"receipt_id",
	"store_name",
	"date",
	"category",
	"currency",
	"total_amount",
	"tax_amount",
	"item_id",
	"item_description",
	"item_quantity",
	"item_unit_price",
	"item_line_total",
}

// Fields returns the row values in header order.
func (r *ExportRow) Fields() []string {
	return []string{
		r.ReceiptID,
		r.StoreName,
		r.Date,
		r.Category,
		r.Currency,
		r.TotalAmount,
		r.TaxAmount,
		r.ItemID,
		r.Description,
		r.Quantity,
		r.UnitPrice,
		r.LineTotal,
	}
}
