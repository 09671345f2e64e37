package calculation

import (
	"github.com/shopspring/decimal"
	"github.com/ukcalc/personal-finance/internal/domain"
	"github.com/ukcalc/personal-finance/pkg/money"
)

var (
	eleven     = decimal.NewFromInt(11)
	twelve     = decimal.NewFromInt(12)
	oneTwelfth = decimal.NewFromInt(1).Div(twelve)
	hundred    = decimal.NewFromInt(100)
)

// MonthSplit divides an annual deduction into eleven regular months and
// one bonus month. Regular*11 + BonusMonth == Annual always holds.
type MonthSplit struct {
	Regular    decimal.Decimal
	BonusMonth decimal.Decimal
	Annual     decimal.Decimal
}

// splitAnnual spreads regularAnnual evenly (to the penny) and lets the bonus
// month absorb the rest of totalAnnual, including any rounding.
func splitAnnual(regularAnnual, totalAnnual decimal.Decimal) MonthSplit {
	regular := money.RoundPenny(money.Monthly(regularAnnual))
	return MonthSplit{
		Regular:    regular,
		BonusMonth: totalAnnual.Sub(regular.Mul(eleven)),
		Annual:     totalAnnual,
	}
}

// fromMonths builds a split from two monthly figures.
func fromMonths(regular, bonusMonth decimal.Decimal) MonthSplit {
	return MonthSplit{Regular: regular, BonusMonth: bonusMonth, Annual: regular.Mul(eleven).Add(bonusMonth)}
}

// BonusTax is the income tax apportionment for a year with a bonus.
type BonusTax struct {
	Split MonthSplit
	// WithoutBonus is tax on regular pay alone.
	WithoutBonus TaxComputation
	// WithBonus is the annual liability reported in the result.
	WithBonus TaxComputation
	// AllowanceLossTax is the extra tax caused by the bonus pushing
	// adjusted income further into the allowance taper.
	AllowanceLossTax decimal.Decimal
}

// apportionIncomeTax differences the annual liability with and without the
// bonus. The bonus month carries the marginal tax on the bonus, any
// allowance lost because of it, and its own twelfth of the regular tax.
func apportionIncomeTax(rule incomeTaxRule, regularIncome, totalIncome, regularAllowance, totalAllowance decimal.Decimal) BonusTax {
	without := rule.compute(regularIncome, regularAllowance)
	with := rule.compute(totalIncome, totalAllowance)
	loss := decimal.Zero
	if rule.differenced() {
		atRegularAllowance := rule.compute(totalIncome, regularAllowance)
		loss = with.Total.Sub(atRegularAllowance.Total)
	}
	return BonusTax{
		Split:            splitAnnual(without.Total, with.Total),
		WithoutBonus:     without,
		WithBonus:        with,
		AllowanceLossTax: loss,
	}
}

// apportionEmergencyTax computes tax month by month on a month-one basis
// (W1/M1/X codes). Without a bonus the year is twelve regular months.
func apportionEmergencyTax(rule incomeTaxRule, regularIncome, totalIncome, allowance decimal.Decimal, hasBonus bool) BonusTax {
	gross := splitAnnual(regularIncome, totalIncome)
	regular := rule.monthOne(gross.Regular, allowance)
	bonusMonth := regular
	months := twelve
	if hasBonus {
		bonusMonth = rule.monthOne(gross.BonusMonth, allowance)
		months = eleven
	}

	breakdown := domain.TaxBreakdown{}
	for band, amount := range regular.Breakdown {
		breakdown.Add(band, amount.Mul(months))
	}
	if hasBonus {
		for band, amount := range bonusMonth.Breakdown {
			breakdown.Add(band, amount)
		}
	}
	annual := TaxComputation{
		Taxable:   TaxableIncome(totalIncome, allowance),
		Total:     breakdown.Total(),
		Breakdown: breakdown,
	}
	return BonusTax{
		Split:            MonthSplit{Regular: regular.Total, BonusMonth: bonusMonth.Total, Annual: annual.Total},
		WithoutBonus:     annual,
		WithBonus:        annual,
		AllowanceLossTax: decimal.Zero,
	}
}

// apportionNationalInsurance charges NI on each month's actual pay. NI is
// not annualised, so the bonus month is simply a bigger month.
func apportionNationalInsurance(regularAnnual, bonus decimal.Decimal, rates domain.NationalInsuranceRates) MonthSplit {
	regularPay := money.Monthly(regularAnnual)
	return fromMonths(
		NationalInsuranceMonthly(regularPay, rates),
		NationalInsuranceMonthly(regularPay.Add(bonus), rates),
	)
}
