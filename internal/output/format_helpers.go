package output

import (
	"github.com/shopspring/decimal"
	"github.com/ukcalc/personal-finance/pkg/money"
)

// FormatCurrency formats a decimal as pounds sterling, e.g. £1,234.56 or -£12.00.
func FormatCurrency(amount decimal.Decimal) string { return money.Format(amount) }

// FormatPercentage formats a decimal as a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

// FormatRate formats a fractional rate (0.2) as a percentage ("20%").
func FormatRate(rate decimal.Decimal) string {
	return rate.Mul(decimalHundred).String() + "%"
}
