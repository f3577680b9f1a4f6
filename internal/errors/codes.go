package errors

// ErrorCode represents a standardized error code used throughout the API
type ErrorCode string

// Authentication error codes (AUTH_*)
const (
	AuthInvalidCredentials ErrorCode = "AUTH_001"
	AuthMissingSession     ErrorCode = "AUTH_002"
	AuthExpiredSession     ErrorCode = "AUTH_003"
	AuthInvalidSession     ErrorCode = "AUTH_004"
	AuthForbidden          ErrorCode = "AUTH_005"
)

// Validation error codes (VALIDATION_*)
const (
	ValidationGeneral       ErrorCode = "VALIDATION_001"
	ValidationRequiredField ErrorCode = "VALIDATION_002"
	ValidationInvalidFormat ErrorCode = "VALIDATION_003"
	ValidationInvalidAmount ErrorCode = "VALIDATION_004"
	ValidationInvalidDate   ErrorCode = "VALIDATION_005"
	ValidationInvalidEmail  ErrorCode = "VALIDATION_006"
)

// Receipt error codes (RECEIPT_*)
const (
	ReceiptNotFound  ErrorCode = "RECEIPT_001"
	ReceiptInvalidID ErrorCode = "RECEIPT_002"
	ReceiptNoImage   ErrorCode = "RECEIPT_003"
)

// Receipt item error codes (ITEM_*)
const (
	ItemNotFound  ErrorCode = "ITEM_001"
	ItemInvalidID ErrorCode = "ITEM_002"
)

// Upload error codes (UPLOAD_*)
const (
	UploadNoFiles        ErrorCode = "UPLOAD_001"
	UploadTooLarge       ErrorCode = "UPLOAD_002"
	UploadUnsupported    ErrorCode = "UPLOAD_003"
	UploadStorageFailure ErrorCode = "UPLOAD_004"
)

// Export error codes (EXPORT_*)
const (
	ExportInvalidFormat ErrorCode = "EXPORT_001"
	ExportInvalidRange  ErrorCode = "EXPORT_002"
)

// User error codes (USER_*)
const (
	UserAlreadyExists ErrorCode = "USER_001"
	UserNotFound      ErrorCode = "USER_002"
	UserWeakPassword  ErrorCode = "USER_003"
)

// System error codes (SYSTEM_*)
const (
	SystemInternalError      ErrorCode = "SYSTEM_001"
	SystemDatabaseError      ErrorCode = "SYSTEM_002"
	SystemServiceUnavailable ErrorCode = "SYSTEM_003"
	SystemExtractionFailure  ErrorCode = "SYSTEM_004"
	SystemRateLimitExceeded  ErrorCode = "SYSTEM_005"
)

// errorMessages maps error codes to their default human-readable messages
var errorMessages = map[ErrorCode]string{
	// Authentication errors
	AuthInvalidCredentials: "Invalid email or password",
	AuthMissingSession:     "Authentication required",
	AuthExpiredSession:     "Session has expired, please log in again",
	AuthInvalidSession:     "Invalid session",
	AuthForbidden:          "Insufficient permissions to access this resource",

	// Validation errors
	ValidationGeneral:       "Validation failed",
	ValidationRequiredField: "Required field is missing",
	ValidationInvalidFormat: "Invalid field format",
	ValidationInvalidAmount: "Amount must be a number or null",
	ValidationInvalidDate:   "Invalid date format or range",
	ValidationInvalidEmail:  "Invalid email address format",

	// Receipt errors
	ReceiptNotFound:  "Receipt not found",
	ReceiptInvalidID: "Invalid receipt ID format",
	ReceiptNoImage:   "Receipt has no stored image",

	// Item errors
	ItemNotFound:  "Receipt item not found",
	ItemInvalidID: "Invalid receipt item ID format",

	// Upload errors
	UploadNoFiles:        "No file(s) provided",
	UploadTooLarge:       "Uploaded file exceeds the maximum allowed size",
	UploadUnsupported:    "Unsupported file type",
	UploadStorageFailure: "Failed to store uploaded file",

	// Export errors
	ExportInvalidFormat: "Unknown export format",
	ExportInvalidRange:  "Invalid export date range",

	// User errors
	UserAlreadyExists: "An account with this email already exists",
	UserNotFound:      "User not found",
	UserWeakPassword:  "Password does not meet the minimum requirements",

	// System errors
	SystemInternalError:      "An unexpected error occurred. Please contact support with trace ID",
	SystemDatabaseError:      "Database connection error",
	SystemServiceUnavailable: "Service temporarily unavailable",
	SystemExtractionFailure:  "Receipt data extraction failed",
	SystemRateLimitExceeded:  "Rate limit exceeded. Please try again later",
}

// GetErrorMessage returns the default message for a given error code
// If the error code is not found, it returns a generic error message
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "An error occurred"
}

// IsValidErrorCode checks if the provided error code is a valid registered code
func IsValidErrorCode(code ErrorCode) bool {
	_, ok := errorMessages[code]
	return ok
}
