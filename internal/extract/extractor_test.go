package extract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCurrency(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{"peso symbol", "₱", "PHP"},
		{"dollar symbol", "$", "USD"},
		{"lowercase code", "usd", "USD"},
		{"supported code", "EUR", "EUR"},
		{"yen alias", "yen", "JPY"},
		{"whitespace", "  GBP  ", "GBP"},
		{"unknown falls back", "XYZ", "PHP"},
		{"empty falls back", "", "PHP"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeCurrency(tt.raw, "PHP"))
		})
	}
}

func TestParseDate(t *testing.T) {
	expected := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		raw  string
		want *time.Time
	}{
		{"iso", "2025-06-15", &expected},
		{"slash us", "06/15/2025", &expected},
		{"slash iso", "2025/06/15", &expected},
		{"long form", "June 15, 2025", &expected},
		{"short month", "Jun 15, 2025", &expected},
		{"garbage", "not a date", nil},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDate(tt.raw)
			if tt.want == nil {
				assert.Nil(t, got)
			} else {
				assert.NotNil(t, got)
				assert.True(t, tt.want.Equal(*got))
			}
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain", "123.45", "123.45"},
		{"with peso sign", "₱1,234.50", "1234.5"},
		{"with dollar sign", "$99.99", "99.99"},
		{"thousands", "12,345.67", "12345.67"},
		{"rounds to cents", "10.999", "11"},
		{"integer", "500", "500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseAmount(tt.raw)
			assert.NotNil(t, got)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestParseAmount_Invalid(t *testing.T) {
	assert.Nil(t, ParseAmount(""))
	assert.Nil(t, ParseAmount("abc"))
	assert.Nil(t, ParseAmount("-10.00"))
}
