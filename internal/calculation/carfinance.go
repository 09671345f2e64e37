package calculation

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/ukcalc/personal-finance/internal/domain"
	"github.com/ukcalc/personal-finance/pkg/money"
)

// defaultRetention is the guaranteed future value as a percentage of the
// car's price, by agreement length in months.
var defaultRetention = map[int]decimal.Decimal{
	24: decimal.NewFromInt(58),
	36: decimal.NewFromInt(53),
	48: decimal.NewFromInt(49),
	60: decimal.NewFromInt(43),
}

// DefaultRetention returns the retention for the longest listed term not
// exceeding months; shorter agreements use the 24-month figure.
func DefaultRetention(months int) decimal.Decimal {
	terms := make([]int, 0, len(defaultRetention))
	for t := range defaultRetention {
		terms = append(terms, t)
	}
	sort.Ints(terms)
	retention := defaultRetention[terms[0]]
	for _, t := range terms {
		if months >= t {
			retention = defaultRetention[t]
		}
	}
	return retention
}

func validateFinance(carValue, depositPercent decimal.Decimal, term int, apr decimal.Decimal) error {
	switch {
	case !carValue.IsPositive():
		return domain.NewValidationError("car_value", domain.ErrInvalidInput)
	case depositPercent.IsNegative() || depositPercent.GreaterThan(decimal.NewFromInt(100)):
		return domain.NewValidationError("deposit_percent", domain.ErrInvalidInput)
	case term <= 0 || term > 120:
		return domain.NewValidationError("term_months", domain.ErrInvalidInput)
	case apr.IsNegative():
		return domain.NewValidationError("apr", domain.ErrInvalidInput)
	}
	return nil
}

// annuityPayment is the level payment that repays principal less the
// present value of a final balloon over n months at monthly rate r.
// The power is taken in float64 and converted back.
func annuityPayment(principal, balloon decimal.Decimal, apr decimal.Decimal, n int) decimal.Decimal {
	months := decimal.NewFromInt(int64(n))
	if apr.IsZero() {
		return principal.Sub(balloon).Div(months)
	}
	r := money.Percent(apr).InexactFloat64() / 12
	factor := math.Pow(1+r, float64(n))
	p := principal.InexactFloat64()
	b := balloon.InexactFloat64()
	payment := (p - b/factor) * r / (1 - 1/factor)
	return decimal.NewFromFloat(payment)
}

func financeTotals(res *domain.CarFinanceResult, term int) {
	res.TotalMonthlyPayments = res.MonthlyPayment.Mul(decimal.NewFromInt(int64(term)))
	res.TotalPayable = res.Deposit.Add(res.TotalMonthlyPayments).Add(res.BalloonPayment)
	res.TotalInterest = res.TotalMonthlyPayments.Add(res.BalloonPayment).Sub(res.AmountFinanced)
}

// CalculatePCP prices a personal contract purchase: the monthly payments
// amortise the financed amount down to the balloon (guaranteed future value).
func CalculatePCP(in domain.PCPInputs) (*domain.CarFinanceResult, error) {
	if err := validateFinance(in.CarValue, in.DepositPercent, in.TermMonths, in.APR); err != nil {
		return nil, err
	}
	retention := in.RetentionPercent
	if retention.IsZero() {
		retention = DefaultRetention(in.TermMonths)
	}
	if retention.IsNegative() || retention.GreaterThan(decimal.NewFromInt(100)) {
		return nil, domain.NewValidationError("retention_percent", domain.ErrInvalidInput)
	}

	res := &domain.CarFinanceResult{
		Deposit:          money.RoundPenny(in.CarValue.Mul(money.Percent(in.DepositPercent))),
		RetentionPercent: retention,
		BalloonPayment:   money.RoundPenny(in.CarValue.Mul(money.Percent(retention))),
	}
	res.AmountFinanced = in.CarValue.Sub(res.Deposit)
	if res.BalloonPayment.GreaterThan(res.AmountFinanced) {
		return nil, domain.NewValidationError("deposit_percent", domain.ErrInvalidInput)
	}
	res.MonthlyPayment = money.RoundPenny(annuityPayment(res.AmountFinanced, res.BalloonPayment, in.APR, in.TermMonths))
	financeTotals(res, in.TermMonths)
	return res, nil
}

// CalculateHP prices a hire purchase agreement with no balloon.
func CalculateHP(in domain.HPInputs) (*domain.CarFinanceResult, error) {
	if err := validateFinance(in.CarValue, in.DepositPercent, in.TermMonths, in.APR); err != nil {
		return nil, err
	}
	res := &domain.CarFinanceResult{
		Deposit:        money.RoundPenny(in.CarValue.Mul(money.Percent(in.DepositPercent))),
		BalloonPayment: decimal.Zero,
	}
	res.AmountFinanced = in.CarValue.Sub(res.Deposit)
	res.MonthlyPayment = money.RoundPenny(annuityPayment(res.AmountFinanced, decimal.Zero, in.APR, in.TermMonths))
	financeTotals(res, in.TermMonths)
	return res, nil
}
