package models

import "github.com/google/uuid"

// HighlightPalette is the fixed tag rotation for duplicate groups, assigned
// in the order groups are first encountered.
var HighlightPalette = []string{"amber", "rose", "sky", "lime", "violet"}

// DuplicateGroup is a set of receipts sharing one signature. Only groups
// with two or more members are materialized.
type DuplicateGroup struct {
	Signature  string      `json:"signature"`
	ReceiptIDs []uuid.UUID `json:"receipt_ids"`
	Tag        string      `json:"tag"`
}
