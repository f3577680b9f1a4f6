package dto

// UploadFileError describes a single file that could not be processed
type UploadFileError struct {
	Filename string `json:"filename"`
	Error    string `json:"error"`
}

// UploadResponse contains the receipts created from an upload batch plus
// per-file errors for files that were rejected or failed extraction
type UploadResponse struct {
	Receipts []ReceiptResponse `json:"receipts"`
	Errors   []UploadFileError `json:"errors"`
}
