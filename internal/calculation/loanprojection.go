package calculation

import (
	"github.com/shopspring/decimal"
	"github.com/ukcalc/personal-finance/internal/domain"
	"github.com/ukcalc/personal-finance/pkg/money"
)

// RepaymentSchedule projects a student loan month by month: interest is
// added monthly, the payroll repayment for the plan comes off, and salary
// grows once a year. Thresholds stay at the starting year's values. The
// projection stops when the balance is cleared or the plan's write-off
// term is reached.
func (ce *CalculationEngine) RepaymentSchedule(in domain.RepaymentScheduleInputs) (*domain.RepaymentScheduleResult, error) {
	if in.Balance.IsNegative() {
		return nil, domain.NewValidationError("balance", domain.ErrInvalidInput)
	}
	if in.Salary.IsNegative() {
		return nil, domain.NewValidationError("salary", domain.ErrNegativeIncome)
	}
	if in.SalaryGrowth.LessThan(decimal.NewFromInt(-100)) {
		return nil, domain.NewValidationError("salary_growth", domain.ErrInvalidInput)
	}
	year, err := ce.resolveYear(in.TaxYear)
	if err != nil {
		return nil, domain.NewValidationError("tax_year", err)
	}
	rates, err := ce.Rates.For(year)
	if err != nil {
		return nil, domain.NewValidationError("tax_year", err)
	}
	rule, err := StudentLoanRule(in.Plan, rates)
	if err != nil {
		return nil, domain.NewValidationError("plan", err)
	}
	rate := rule.InterestRate
	if in.InterestRate != nil {
		if in.InterestRate.IsNegative() {
			return nil, domain.NewValidationError("interest_rate", domain.ErrInvalidInput)
		}
		rate = *in.InterestRate
	}

	monthlyRate := money.Percent(rate).Div(twelve)
	growth := decimal.NewFromInt(1).Add(money.Percent(in.SalaryGrowth))
	maxMonths := rule.WriteOffYears * 12
	if maxMonths <= 0 || maxMonths > maxProjectionYears*12 {
		maxMonths = maxProjectionYears * 12
	}

	res := &domain.RepaymentScheduleResult{
		Plan:          in.Plan,
		InterestRate:  rate,
		TotalRepaid:   decimal.Zero,
		TotalInterest: decimal.Zero,
		WrittenOff:    decimal.Zero,
		Years:         []domain.RepaymentYear{},
	}
	balance := in.Balance
	salary := in.Salary
	current := domain.RepaymentYear{Year: 1, Salary: salary}

	month := 0
	for month < maxMonths && balance.IsPositive() {
		interest := money.RoundPenny(balance.Mul(monthlyRate))
		balance = balance.Add(interest)
		repayment := decimal.Min(StudentLoanMonthly(salary, rule), balance)
		balance = balance.Sub(repayment)
		month++

		current.Interest = current.Interest.Add(interest)
		current.Repaid = current.Repaid.Add(repayment)
		res.TotalInterest = res.TotalInterest.Add(interest)
		res.TotalRepaid = res.TotalRepaid.Add(repayment)

		if month%12 == 0 || !balance.IsPositive() || month == maxMonths {
			current.ClosingBalance = balance
			res.Years = append(res.Years, current)
			salary = money.RoundPenny(salary.Mul(growth))
			current = domain.RepaymentYear{Year: current.Year + 1, Salary: salary}
		}
	}

	res.Cleared = !balance.IsPositive()
	if res.Cleared {
		res.MonthsToClear = month
	} else {
		res.WrittenOff = balance
	}
	return res, nil
}
