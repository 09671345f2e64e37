package calculation

import (
	"math"

	"github.com/shopspring/decimal"
	"github.com/ukcalc/personal-finance/internal/domain"
	"github.com/ukcalc/personal-finance/pkg/money"
)

// Lending criteria applied when the request leaves them unset.
var (
	DefaultIncomeMultiple     = decimal.NewFromFloat(4.5)
	DefaultStressBuffer       = decimal.NewFromInt(3)
	DefaultMaxPaymentToIncome = decimal.NewFromFloat(0.35)
)

const (
	limitIncomeMultiple = "income_multiple"
	limitStressTest     = "stress_test"
)

// presentValue is the loan a level monthly payment supports over n months.
func presentValue(payment decimal.Decimal, ratePercent decimal.Decimal, n int) decimal.Decimal {
	if ratePercent.IsZero() {
		return payment.Mul(decimal.NewFromInt(int64(n)))
	}
	r := money.Percent(ratePercent).InexactFloat64() / 12
	pv := payment.InexactFloat64() * (1 - math.Pow(1+r, -float64(n))) / r
	return decimal.NewFromFloat(pv)
}

// MortgagePayment is the repayment mortgage monthly payment.
func MortgagePayment(loan, ratePercent decimal.Decimal, n int) decimal.Decimal {
	if n <= 0 || !loan.IsPositive() {
		return decimal.Zero
	}
	return money.RoundPenny(annuityPayment(loan, decimal.Zero, ratePercent, n))
}

// MortgageAffordability estimates the largest loan a lender would offer:
// the lower of an income multiple and the loan whose payment at the stressed
// rate stays within a share of gross monthly income.
func MortgageAffordability(in domain.MortgageInputs) (*domain.AffordabilityResult, error) {
	switch {
	case in.Applicant1Salary.IsNegative():
		return nil, domain.NewValidationError("applicant1Salary", domain.ErrNegativeIncome)
	case in.Applicant2Salary.IsNegative():
		return nil, domain.NewValidationError("applicant2Salary", domain.ErrNegativeIncome)
	case in.DownPayment.IsNegative():
		return nil, domain.NewValidationError("downPayment", domain.ErrInvalidInput)
	case in.TermYears <= 0 || in.TermYears > 40:
		return nil, domain.NewValidationError("mortgageTerm", domain.ErrInvalidInput)
	case in.InterestRate.IsNegative():
		return nil, domain.NewValidationError("interestRate", domain.ErrInvalidInput)
	case in.MonthlyDebts.IsNegative():
		return nil, domain.NewValidationError("monthlyDebts", domain.ErrInvalidInput)
	}
	multiple := in.IncomeMultiple
	if !multiple.IsPositive() {
		multiple = DefaultIncomeMultiple
	}
	buffer := in.StressBuffer
	if buffer.IsZero() {
		buffer = DefaultStressBuffer
	}
	maxPTI := in.MaxPaymentToIncome
	if !maxPTI.IsPositive() {
		maxPTI = DefaultMaxPaymentToIncome
	}

	income := in.Applicant1Salary.Add(in.Applicant2Salary)
	months := in.TermYears * 12

	byMultiple := income.Mul(multiple)
	budget := money.NonNegative(money.Monthly(income).Mul(maxPTI).Sub(in.MonthlyDebts))
	byStress := presentValue(budget, in.InterestRate.Add(buffer), months)

	loan, limitedBy := byMultiple, limitIncomeMultiple
	if byStress.LessThan(byMultiple) {
		loan, limitedBy = byStress, limitStressTest
	}
	loan = money.FloorPound(money.NonNegative(loan))

	res := &domain.AffordabilityResult{
		MaxLoanAmount:    loan,
		MaxPropertyPrice: loan.Add(in.DownPayment),
		MonthlyPayment:   MortgagePayment(loan, in.InterestRate, months),
		LimitedBy:        limitedBy,
	}
	if res.MaxPropertyPrice.IsPositive() {
		res.LTV = money.AsPercent(loan.Div(res.MaxPropertyPrice)).Round(2)
	}
	if income.IsPositive() {
		monthlyOutgoings := res.MonthlyPayment.Add(in.MonthlyDebts)
		res.DebtToIncome = money.AsPercent(money.Annual(monthlyOutgoings).Div(income)).Round(2)
		res.AffordabilityMultiple = loan.Div(income).Round(2)
	}
	return res, nil
}
