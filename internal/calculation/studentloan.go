package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/ukcalc/personal-finance/internal/domain"
	"github.com/ukcalc/personal-finance/pkg/money"
)

// StudentLoanRule looks up a plan, failing with domain.ErrUnknownPlan.
func StudentLoanRule(plan domain.StudentLoanPlan, rates *domain.TaxYearConstants) (domain.StudentLoanPlanRule, error) {
	rule, ok := rates.StudentLoans[plan]
	if !ok {
		return domain.StudentLoanPlanRule{}, fmt.Errorf("%w: %q", domain.ErrUnknownPlan, plan)
	}
	return rule, nil
}

// StudentLoanMonthly is one month's repayment when pay is running at
// annualisedPay a year (twelve times the month's pay): the plan rate on pay
// above the monthly threshold, rounded down to whole pounds. Working from
// the annual figures keeps the result exact when pay/12 does not terminate.
func StudentLoanMonthly(annualisedPay decimal.Decimal, rule domain.StudentLoanPlanRule) decimal.Decimal {
	over := annualisedPay.Sub(rule.Threshold)
	if !over.IsPositive() {
		return decimal.Zero
	}
	return money.FloorPound(over.Mul(rule.Rate).Div(twelve))
}

// StudentLoanRepayments totals repayments on annual pay for every plan held.
// Plans are applied independently, so a duplicated plan is charged twice.
func StudentLoanRepayments(annualPay decimal.Decimal, plans []domain.StudentLoanPlan, rates *domain.TaxYearConstants) (domain.StudentLoanResult, error) {
	result := domain.StudentLoanResult{Plans: []domain.StudentLoanPlanRepayment{}}
	for _, plan := range plans {
		rule, err := StudentLoanRule(plan, rates)
		if err != nil {
			return domain.StudentLoanResult{}, err
		}
		monthly := StudentLoanMonthly(annualPay, rule)
		result.Plans = append(result.Plans, domain.StudentLoanPlanRepayment{
			Plan:      plan,
			Threshold: rule.Threshold,
			Rate:      rule.Rate,
			Monthly:   monthly,
			Annual:    money.Annual(monthly),
		})
	}
	sumStudentLoans(&result)
	return result, nil
}

// studentLoanWithBonus splits repayments into a regular month and a bonus
// month, each charged on its own pay; the annual figure is eleven regular months plus
// the bonus month. It returns the annual result and both monthly totals.
func studentLoanWithBonus(regularAnnual, bonus decimal.Decimal, plans []domain.StudentLoanPlan, rates *domain.TaxYearConstants) (domain.StudentLoanResult, decimal.Decimal, decimal.Decimal, error) {
	result := domain.StudentLoanResult{Plans: []domain.StudentLoanPlanRepayment{}}
	bonusMonthAnnualised := regularAnnual.Add(money.Annual(bonus))
	regularTotal, bonusTotal := decimal.Zero, decimal.Zero
	for _, plan := range plans {
		rule, err := StudentLoanRule(plan, rates)
		if err != nil {
			return domain.StudentLoanResult{}, decimal.Zero, decimal.Zero, err
		}
		regular := StudentLoanMonthly(regularAnnual, rule)
		bonusMonth := StudentLoanMonthly(bonusMonthAnnualised, rule)
		result.Plans = append(result.Plans, domain.StudentLoanPlanRepayment{
			Plan:      plan,
			Threshold: rule.Threshold,
			Rate:      rule.Rate,
			Monthly:   regular,
			Annual:    regular.Mul(eleven).Add(bonusMonth),
		})
		regularTotal = regularTotal.Add(regular)
		bonusTotal = bonusTotal.Add(bonusMonth)
	}
	sumStudentLoans(&result)
	return result, regularTotal, bonusTotal, nil
}

func sumStudentLoans(r *domain.StudentLoanResult) {
	r.Monthly, r.Annual = decimal.Zero, decimal.Zero
	for _, p := range r.Plans {
		r.Monthly = r.Monthly.Add(p.Monthly)
		r.Annual = r.Annual.Add(p.Annual)
	}
}
