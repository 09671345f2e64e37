package calculation

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/ukcalc/personal-finance/internal/domain"
	"github.com/ukcalc/personal-finance/pkg/money"
)

// takeHomeRequest is a validated TaxInputs with everything looked up.
type takeHomeRequest struct {
	in       domain.TaxInputs
	year     domain.TaxYear
	rates    *domain.TaxYearConstants
	code     TaxCode
	settings TaxCodeSettings
	scheme   PensionScheme
	pension  domain.PensionConfig
	scottish bool
}

// prepare validates inputs. Every failure is a *domain.ValidationError
// naming the offending field.
func (ce *CalculationEngine) prepare(in domain.TaxInputs) (*takeHomeRequest, error) {
	if in.Salary.IsNegative() {
		return nil, domain.NewValidationError("salary", domain.ErrNegativeIncome)
	}
	if in.Bonus.IsNegative() {
		return nil, domain.NewValidationError("bonus", domain.ErrNegativeIncome)
	}

	year, err := ce.resolveYear(in.TaxYear)
	if err != nil {
		return nil, domain.NewValidationError("tax_year", err)
	}
	rates, err := ce.Rates.For(year)
	if err != nil {
		return nil, domain.NewValidationError("tax_year", err)
	}

	for _, plan := range in.StudentLoanPlans {
		if _, err := StudentLoanRule(plan, rates); err != nil {
			return nil, domain.NewValidationError("student_loan_plans", err)
		}
	}

	switch in.MarriageAllowance {
	case domain.MarriageNone, domain.MarriageTransferor, domain.MarriageRecipient:
	default:
		return nil, domain.NewValidationError("marriage_allowance", domain.ErrInvalidInput)
	}

	code, err := ParseTaxCode(in.TaxCode, rates)
	if err != nil {
		return nil, domain.NewValidationError("tax_code", err)
	}

	req := &takeHomeRequest{
		in:       in,
		year:     year,
		rates:    rates,
		code:     code,
		settings: code.Settings(),
	}
	req.scottish = in.Scottish || req.settings.ForceScottish

	if in.Pension != nil {
		scheme, err := SchemeFor(in.Pension.Scheme)
		if err != nil {
			return nil, domain.NewValidationError("pension.scheme", err)
		}
		cfg := *in.Pension
		if cfg.ValueType == "" {
			cfg.ValueType = domain.ValuePercentage
		}
		if cfg.ValueType != domain.ValuePercentage && cfg.ValueType != domain.ValueFixed {
			return nil, domain.NewValidationError("pension.value_type", domain.ErrInvalidInput)
		}
		if cfg.Frequency == "" {
			cfg.Frequency = domain.Yearly
		}
		if cfg.Frequency != domain.Yearly && cfg.Frequency != domain.Monthly {
			return nil, domain.NewValidationError("pension.frequency", domain.ErrInvalidInput)
		}
		if cfg.ValueType == domain.ValuePercentage && cfg.Value.GreaterThan(hundred) {
			return nil, domain.NewValidationError("pension.value", fmt.Errorf("%w: percentage above 100", domain.ErrInvalidInput))
		}
		switch cfg.EarningsBasis {
		case "", domain.BasisTotal, domain.BasisQualifying:
		default:
			return nil, domain.NewValidationError("pension.earnings_basis", domain.ErrInvalidInput)
		}
		req.scheme = scheme
		req.pension = cfg
	}
	return req, nil
}

// CalculateTaxes computes the full take-home breakdown for one set of inputs
func (ce *CalculationEngine) CalculateTaxes(ctx context.Context, in domain.TaxInputs) (*domain.TaxResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	req, err := ce.prepare(in)
	if err != nil {
		return nil, err
	}
	rates := req.rates

	salary, bonus := in.Salary, in.Bonus
	total := salary.Add(bonus)
	hasBonus := bonus.IsPositive()

	// Pension, regular pay and the full year
	contribRegular, contribTotal := decimal.Zero, decimal.Zero
	costRegular, costTotal := decimal.Zero, decimal.Zero
	pension := domain.PensionResult{}
	if req.scheme != nil {
		contribRegular = req.scheme.Contribution(salary, req.pension, rates.Pension)
		contribTotal = contribRegular
		if req.pension.IncludeBonus && hasBonus {
			contribTotal = req.scheme.Contribution(total, req.pension, rates.Pension)
		}
		costRegular = req.scheme.TakeHomeCost(contribRegular, rates.Pension)
		costTotal = req.scheme.TakeHomeCost(contribTotal, rates.Pension)
		pension = domain.PensionResult{
			Scheme:       req.scheme.Type(),
			Contribution: contribTotal,
			TakeHomeCost: costTotal,
			TaxRelief:    TaxRelief(req.scheme, contribTotal, rates.Pension),
		}
	}

	taxRegular, taxTotal := salary, total
	niRegular, niTotal := salary, total
	adjustedRegular, adjustedTotal := salary, total
	if req.scheme != nil {
		if req.scheme.AffectsTaxableIncome() {
			taxRegular, taxTotal = taxRegular.Sub(contribRegular), taxTotal.Sub(contribTotal)
		}
		if req.scheme.AffectsNIEligibleIncome() {
			niRegular, niTotal = niRegular.Sub(contribRegular), niTotal.Sub(contribTotal)
		}
		adjustedRegular, adjustedTotal = taxRegular, taxTotal
		if req.scheme.ReliefAtSource() {
			adjustedRegular, adjustedTotal = adjustedRegular.Sub(contribRegular), adjustedTotal.Sub(contribTotal)
		}
	}

	// Allowance
	allowanceIn := AllowanceInputs{
		Blind:             in.Blind,
		MarriageAllowance: in.MarriageAllowance,
		Override:          req.settings.AllowanceOverride,
	}
	allowanceIn.AdjustedIncome = adjustedRegular
	regularAllowance := CalculateAllowance(allowanceIn, rates)
	allowanceIn.AdjustedIncome = adjustedTotal
	allowance := CalculateAllowance(allowanceIn, rates)

	// Income tax
	rule := newIncomeTaxRule(req.settings, req.scottish, rates)
	var tax BonusTax
	if req.settings.Emergency {
		emergencyAllowance := allowance.Standard.Add(allowance.Blind).Add(allowance.Marriage)
		if allowance.CodeOverride != nil {
			emergencyAllowance = *allowance.CodeOverride
		}
		tax = apportionEmergencyTax(rule, taxRegular, taxTotal, emergencyAllowance, hasBonus)
	} else {
		tax = apportionIncomeTax(rule, taxRegular, taxTotal, regularAllowance.Total, allowance.Total)
	}

	// National Insurance
	ni := MonthSplit{Regular: decimal.Zero, BonusMonth: decimal.Zero, Annual: decimal.Zero}
	if !in.NoNI {
		if hasBonus {
			ni = apportionNationalInsurance(niRegular, niTotal.Sub(niRegular), rates.NationalInsurance)
		} else {
			regular := NationalInsuranceMonthly(money.Monthly(niRegular), rates.NationalInsurance)
			ni = MonthSplit{Regular: regular, BonusMonth: regular, Annual: NationalInsuranceAnnual(niTotal, rates.NationalInsurance)}
		}
	}

	// Student loans, on NI-eligible pay
	var loans domain.StudentLoanResult
	var loanSplit MonthSplit
	if hasBonus {
		var regular, bonusMonth decimal.Decimal
		loans, regular, bonusMonth, err = studentLoanWithBonus(niRegular, niTotal.Sub(niRegular), in.StudentLoanPlans, rates)
		loanSplit = MonthSplit{Regular: regular, BonusMonth: bonusMonth, Annual: loans.Annual}
	} else {
		loans, err = StudentLoanRepayments(niTotal, in.StudentLoanPlans, rates)
		loanSplit = MonthSplit{Regular: loans.Monthly, BonusMonth: loans.Monthly, Annual: loans.Annual}
	}
	if err != nil {
		return nil, domain.NewValidationError("student_loan_plans", err)
	}

	gross := splitAnnual(salary, total)
	pensionSplit := splitAnnual(costRegular, costTotal)

	regularMonth := monthBreakdown(gross.Regular, tax.Split.Regular, ni.Regular, loanSplit.Regular, pensionSplit.Regular)
	result := &domain.TaxResult{
		TaxYear:  req.year,
		TaxCode:  req.code.Normalised,
		Scottish: req.scottish,
		Gross: domain.GrossIncome{
			Salary: salary,
			Bonus:  bonus,
			Total:  total,
		},
		Pension:       pension,
		GrossForTax:   taxTotal,
		GrossForNI:    niTotal,
		Allowance:     allowance,
		TaxableIncome: tax.WithBonus.Taxable,
		IncomeTax: domain.IncomeTaxResult{
			Total:            tax.Split.Annual,
			Breakdown:        tax.WithBonus.Breakdown,
			AllowanceLossTax: tax.AllowanceLossTax,
		},
		NationalInsurance: ni.Annual,
		StudentLoan:       loans,
		RegularMonth:      regularMonth,
	}
	if result.TaxCode == "" {
		result.TaxCode = StandardTaxCode(rates)
	}

	result.TotalDeductions = tax.Split.Annual.Add(ni.Annual).Add(loans.Annual).Add(costTotal)
	annualTakeHome := total.Sub(result.TotalDeductions)
	result.TakeHome = domain.TakeHome{
		Annual:  annualTakeHome,
		Monthly: regularMonth.TakeHome,
		Weekly:  money.RoundPenny(money.WeeklyFromMonthly(regularMonth.TakeHome)),
	}
	if hasBonus {
		bonusMonth := monthBreakdown(gross.BonusMonth, tax.Split.BonusMonth, ni.BonusMonth, loanSplit.BonusMonth, pensionSplit.BonusMonth)
		result.BonusMonth = &bonusMonth
	}

	if ce.Debug {
		ce.Logger.Debugf("take-home %s code=%s gross=%s tax=%s ni=%s loans=%s pension=%s net=%s",
			req.year, result.TaxCode, total.StringFixed(2), tax.Split.Annual.StringFixed(2),
			ni.Annual.StringFixed(2), loans.Annual.StringFixed(2), costTotal.StringFixed(2),
			annualTakeHome.StringFixed(2))
	}
	return result, nil
}

func monthBreakdown(gross, tax, ni, loans, pension decimal.Decimal) domain.MonthBreakdown {
	m := domain.MonthBreakdown{
		Gross:             gross,
		IncomeTax:         tax,
		NationalInsurance: ni,
		StudentLoan:       loans,
		Pension:           pension,
	}
	m.TakeHome = gross.Sub(m.Deductions())
	return m
}
