package output

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "£0.00"},
		{"12.5", "£12.50"},
		{"999.999", "£1,000.00"},
		{"1234.567", "£1,234.57"},
		{"39519.6", "£39,519.60"},
		{"1234567.89", "£1,234,567.89"},
		{"-2000", "-£2,000.00"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCurrency(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestFormatPercentage(t *testing.T) {
	assert.Equal(t, "12.35%", FormatPercentage(decimal.NewFromFloat(12.3456)))
	assert.Equal(t, "20%", FormatRate(decimal.RequireFromString("0.2")))
	assert.Equal(t, "47.5%", FormatRate(decimal.RequireFromString("0.475")))
}
