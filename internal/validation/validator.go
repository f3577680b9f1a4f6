package validation

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator wraps the go-playground validator with custom rules and error formatting
type Validator struct {
	validate *validator.Validate
}

// GetValidate returns the underlying validator.Validate instance for use with Echo
func (v *Validator) GetValidate() *validator.Validate {
	return v.validate
}

// singleton instance of the validator
var instance *Validator

// GetValidator returns the singleton validator instance
func GetValidator() *Validator {
	if instance == nil {
		instance = NewValidator()
	}
	return instance
}

// NewValidator creates a new validator instance with custom rules and configuration
func NewValidator() *Validator {
	v := validator.New()

	_ = v.RegisterValidation("currency_code", validateCurrencyCode)
	_ = v.RegisterValidation("amount_string", validateAmountString)
	_ = v.RegisterValidation("receipt_date", validateReceiptDate)
	_ = v.RegisterValidation("receipt_id", validateReceiptID)
	_ = v.RegisterValidation("sort_field", validateSortField)
	_ = v.RegisterValidation("sort_order", validateSortOrder)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// Custom validation functions

// validateCurrencyCode validates that a currency is a supported 3-letter code
func validateCurrencyCode(fl validator.FieldLevel) bool {
	currency := strings.ToUpper(fl.Field().String())
	validCodes := map[string]bool{
		"PHP": true,
		"USD": true,
		"EUR": true,
		"JPY": true,
		"GBP": true,
	}
	return validCodes[currency]
}

// validateAmountString validates a decimal amount string with at most 2 decimal places.
// An empty string is accepted and treated as null downstream.
func validateAmountString(fl validator.FieldLevel) bool {
	amount := strings.TrimSpace(fl.Field().String())
	if amount == "" {
		return true
	}

	matched, _ := regexp.MatchString(`^-?\d+(\.\d{1,2})?$`, amount)
	if !matched {
		return false
	}

	// Negative amounts are not valid receipt totals
	return !strings.HasPrefix(amount, "-")
}

// validateReceiptDate validates an ISO date string (YYYY-MM-DD).
// An empty string is accepted and treated as unknown downstream.
func validateReceiptDate(fl validator.FieldLevel) bool {
	date := strings.TrimSpace(fl.Field().String())
	if date == "" {
		return true
	}

	matched, _ := regexp.MatchString(`^\d{4}-\d{2}-\d{2}$`, date)
	return matched
}

// validateReceiptID validates that a receipt ID is a valid UUID
func validateReceiptID(fl validator.FieldLevel) bool {
	id := fl.Field().String()
	if id == "" {
		return false
	}

	matched, _ := regexp.MatchString(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`, id)
	return matched
}

// validateSortField validates that the sort field is one of the allowed columns
func validateSortField(fl validator.FieldLevel) bool {
	field := strings.ToLower(fl.Field().String())
	validFields := map[string]bool{
		"date":         true,
		"category":     true,
		"total_amount": true,
	}
	return validFields[field]
}

// validateSortOrder validates that the sort order is asc or desc
func validateSortOrder(fl validator.FieldLevel) bool {
	order := strings.ToLower(fl.Field().String())
	return order == "asc" || order == "desc"
}
