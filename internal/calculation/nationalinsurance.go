package calculation

import (
	"github.com/shopspring/decimal"
	"github.com/ukcalc/personal-finance/internal/domain"
	"github.com/ukcalc/personal-finance/pkg/money"
)

// NationalInsuranceAnnual returns Class 1 employee NI on annual NI-eligible pay.
func NationalInsuranceAnnual(pay decimal.Decimal, rates domain.NationalInsuranceRates) decimal.Decimal {
	return nationalInsurance(pay, rates.PrimaryThreshold, rates.UpperEarningsLimit, rates)
}

// NationalInsuranceMonthly returns NI for one month's pay using monthly thresholds.
func NationalInsuranceMonthly(monthlyPay decimal.Decimal, rates domain.NationalInsuranceRates) decimal.Decimal {
	return nationalInsurance(monthlyPay, money.Monthly(rates.PrimaryThreshold), money.Monthly(rates.UpperEarningsLimit), rates)
}

// nationalInsurance charges the main rate between the thresholds and the upper
// rate above. Each band's charge is rounded down to the penny before summing.
func nationalInsurance(pay, lower, upper decimal.Decimal, rates domain.NationalInsuranceRates) decimal.Decimal {
	if pay.LessThanOrEqual(lower) {
		return decimal.Zero
	}
	main := decimal.Min(pay, upper).Sub(lower)
	total := money.FloorPenny(main.Mul(rates.MainRate))
	if pay.GreaterThan(upper) {
		total = total.Add(money.FloorPenny(pay.Sub(upper).Mul(rates.UpperRate)))
	}
	return total
}
