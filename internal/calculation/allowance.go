package calculation

import (
	"github.com/shopspring/decimal"
	"github.com/ukcalc/personal-finance/internal/domain"
	"github.com/ukcalc/personal-finance/pkg/money"
)

// TaperReduction is the amount of standard allowance lost to adjusted income
// above the taper threshold: £1 for every £2, rounded down, and the whole
// allowance from the loss limit upwards.
func TaperReduction(adjustedIncome decimal.Decimal, rates *domain.TaxYearConstants) decimal.Decimal {
	excess := adjustedIncome.Sub(rates.TaperThreshold)
	if !excess.IsPositive() || rates.TaperRate.IsZero() {
		return decimal.Zero
	}
	if !adjustedIncome.LessThan(rates.AllowanceLossLimit()) {
		return rates.PersonalAllowance
	}
	return decimal.Min(money.FloorPound(excess.Mul(rates.TaperRate)), rates.PersonalAllowance)
}

// PersonalAllowance returns the standard allowance after tapering.
func PersonalAllowance(adjustedIncome decimal.Decimal, rates *domain.TaxYearConstants) decimal.Decimal {
	return money.NonNegative(rates.PersonalAllowance.Sub(TaperReduction(adjustedIncome, rates)))
}

// AllowanceInputs are the taxpayer circumstances that move the allowance.
type AllowanceInputs struct {
	AdjustedIncome    decimal.Decimal
	Blind             bool
	MarriageAllowance domain.MarriageAllowance
	Override          *decimal.Decimal
}

// CalculateAllowance builds the allowance breakdown. A tax-code override
// replaces the computed figure entirely and may be negative (K codes);
// otherwise the total is never negative.
func CalculateAllowance(in AllowanceInputs, rates *domain.TaxYearConstants) domain.AllowanceBreakdown {
	ab := domain.AllowanceBreakdown{
		Standard:       rates.PersonalAllowance,
		TaperReduction: TaperReduction(in.AdjustedIncome, rates),
		AdjustedIncome: in.AdjustedIncome,
	}
	if in.Blind {
		ab.Blind = rates.BlindPersonsAllowance
	}
	switch in.MarriageAllowance {
	case domain.MarriageTransferor:
		ab.Marriage = rates.MarriageAllowance.Neg()
	case domain.MarriageRecipient:
		ab.Marriage = rates.MarriageAllowance
	}

	ab.Total = money.NonNegative(ab.Standard.Sub(ab.TaperReduction).Add(ab.Blind).Add(ab.Marriage))
	if in.Override != nil {
		override := *in.Override
		ab.CodeOverride = &override
		ab.Total = override
	}
	return ab
}
