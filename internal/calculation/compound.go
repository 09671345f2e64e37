package calculation

import (
	"math"

	"github.com/shopspring/decimal"
	"github.com/ukcalc/personal-finance/internal/domain"
	"github.com/ukcalc/personal-finance/pkg/money"
)

// maxProjectionYears bounds the loop lengths of every projection.
const maxProjectionYears = 100

// balancePrecision keeps running balances from growing unbounded digits.
const balancePrecision = 10

// effectiveMonthlyRate converts a nominal annual rate compounded n times a
// year into the equivalent monthly rate: (1 + r/n)^(n/12) - 1.
func effectiveMonthlyRate(annual decimal.Decimal, periodsPerYear int) decimal.Decimal {
	if annual.IsZero() {
		return decimal.Zero
	}
	r := annual.InexactFloat64()
	n := float64(periodsPerYear)
	return decimal.NewFromFloat(math.Pow(1+r/n, n/12) - 1)
}

// CompoundInterest simulates a savings balance month by month with
// contributions paid at the end of each month.
func CompoundInterest(in domain.CompoundInterestInputs) (*domain.CompoundInterestResult, error) {
	if in.InitialDeposit.IsNegative() {
		return nil, domain.NewValidationError("initial_deposit", domain.ErrInvalidInput)
	}
	if in.MonthlyContribution.IsNegative() {
		return nil, domain.NewValidationError("monthly_contribution", domain.ErrInvalidInput)
	}
	if in.AnnualRate.IsNegative() {
		return nil, domain.NewValidationError("annual_rate", domain.ErrInvalidInput)
	}
	if in.Years <= 0 || in.Years > maxProjectionYears {
		return nil, domain.NewValidationError("years", domain.ErrInvalidInput)
	}
	frequency := in.Frequency
	if frequency == "" {
		frequency = domain.CompoundMonthly
	}
	periods := frequency.PeriodsPerYear()
	if periods == 0 {
		return nil, domain.NewValidationError("frequency", domain.ErrInvalidInput)
	}

	monthlyRate := effectiveMonthlyRate(money.Percent(in.AnnualRate), periods)
	balance := in.InitialDeposit
	contributed := in.InitialDeposit
	yearly := make([]domain.CompoundInterestYear, 0, in.Years)

	for year := 1; year <= in.Years; year++ {
		opening := balance
		for month := 0; month < 12; month++ {
			balance = balance.Add(balance.Mul(monthlyRate)).Round(balancePrecision).Add(in.MonthlyContribution)
		}
		yearContributions := in.MonthlyContribution.Mul(twelve)
		contributed = contributed.Add(yearContributions)
		rounded := money.RoundPenny(balance)
		yearly = append(yearly, domain.CompoundInterestYear{
			Year:               year,
			Contributions:      yearContributions,
			Interest:           money.RoundPenny(balance.Sub(opening).Sub(yearContributions)),
			TotalContributions: contributed,
			TotalInterest:      rounded.Sub(contributed),
			Balance:            rounded,
		})
	}

	final := money.RoundPenny(balance)
	effectiveAnnual := decimal.NewFromInt(1).Add(monthlyRate).Pow(twelve).Sub(decimal.NewFromInt(1))
	return &domain.CompoundInterestResult{
		FinalBalance:       final,
		TotalContributions: contributed,
		TotalInterest:      final.Sub(contributed),
		EffectiveAnnual:    money.AsPercent(effectiveAnnual).Round(4),
		Yearly:             yearly,
	}, nil
}
