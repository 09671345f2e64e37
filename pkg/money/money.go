package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	hundred  = decimal.NewFromInt(100)
	twelve   = decimal.NewFromInt(12)
	fiftyTwo = decimal.NewFromInt(52)
)

const thousands = 3

// FloorPenny truncates an amount down to the nearest penny.
// Payroll deductions (NI in particular) are always rounded down, never to nearest.
func FloorPenny(d decimal.Decimal) decimal.Decimal {
	return d.Mul(hundred).Floor().Div(hundred)
}

// FloorPound truncates an amount down to whole pounds.
func FloorPound(d decimal.Decimal) decimal.Decimal {
	return d.Floor()
}

// RoundPenny rounds an amount to pennies (half away from zero).
func RoundPenny(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Monthly converts an annual amount to a monthly amount
func Monthly(annual decimal.Decimal) decimal.Decimal {
	return annual.Div(twelve)
}

// Annual converts a monthly amount to an annual amount
func Annual(monthly decimal.Decimal) decimal.Decimal {
	return monthly.Mul(twelve)
}

// WeeklyFromMonthly converts a monthly figure to a weekly one (x12/52), so that
// weekly figures inherit the monthly rounding rather than a raw annual/52.
func WeeklyFromMonthly(monthly decimal.Decimal) decimal.Decimal {
	return monthly.Mul(twelve).Div(fiftyTwo)
}

// Percent converts a percentage (e.g. 9.9) to a fraction (0.099).
func Percent(p decimal.Decimal) decimal.Decimal {
	return p.Div(hundred)
}

// AsPercent converts a fraction to a percentage.
func AsPercent(f decimal.Decimal) decimal.Decimal {
	return f.Mul(hundred)
}

// NonNegative clamps an amount at zero.
func NonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// Clamp limits d to the inclusive range [lo, hi].
func Clamp(d, lo, hi decimal.Decimal) decimal.Decimal {
	return decimal.Min(decimal.Max(d, lo), hi)
}

// Parse reads an amount such as "£1,234.50" or "1234.5".
func Parse(s string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.TrimPrefix(cleaned, "£")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return d, nil
}

// Format renders an amount as sterling with thousands separators, e.g. £12,570.00.
func Format(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	fixed := d.StringFixed(2)
	whole, frac := fixed[:len(fixed)-3], fixed[len(fixed)-2:]

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%thousands == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + "£" + b.String() + "." + frac
}
