package domain

import "github.com/shopspring/decimal"

// CompoundingFrequency is how often interest is compounded per year.
type CompoundingFrequency string

const (
	CompoundMonthly   CompoundingFrequency = "monthly"
	CompoundQuarterly CompoundingFrequency = "quarterly"
	CompoundAnnually  CompoundingFrequency = "annually"
	CompoundDaily     CompoundingFrequency = "daily"
)

// PeriodsPerYear returns the number of compounding periods, or 0 if unknown.
func (f CompoundingFrequency) PeriodsPerYear() int {
	switch f {
	case CompoundMonthly:
		return 12
	case CompoundQuarterly:
		return 4
	case CompoundAnnually:
		return 1
	case CompoundDaily:
		return 365
	}
	return 0
}

// CompoundInterestInputs describes a savings plan. AnnualRate is a percentage.
type CompoundInterestInputs struct {
	InitialDeposit      decimal.Decimal      `yaml:"initial_deposit" json:"initial_deposit"`
	MonthlyContribution decimal.Decimal      `yaml:"monthly_contribution" json:"monthly_contribution"`
	AnnualRate          decimal.Decimal      `yaml:"annual_rate" json:"annual_rate"`
	Frequency           CompoundingFrequency `yaml:"frequency" json:"frequency"`
	Years               int                  `yaml:"years" json:"years"`
}

// CompoundInterestYear is the position at the end of one year.
type CompoundInterestYear struct {
	Year               int             `json:"year"`
	Contributions      decimal.Decimal `json:"contributions"`
	Interest           decimal.Decimal `json:"interest"`
	TotalContributions decimal.Decimal `json:"total_contributions"`
	TotalInterest      decimal.Decimal `json:"total_interest"`
	Balance            decimal.Decimal `json:"balance"`
}

// CompoundInterestResult satisfies FinalBalance == TotalContributions + TotalInterest.
type CompoundInterestResult struct {
	FinalBalance       decimal.Decimal        `json:"final_balance"`
	TotalContributions decimal.Decimal        `json:"total_contributions"`
	TotalInterest      decimal.Decimal        `json:"total_interest"`
	EffectiveAnnual    decimal.Decimal        `json:"effective_annual_rate"`
	Yearly             []CompoundInterestYear `json:"yearly"`
}

// PCPInputs describes a personal contract purchase. Percentages are 0-100.
// A zero RetentionPercent selects the default for the term.
type PCPInputs struct {
	CarValue         decimal.Decimal `yaml:"car_value" json:"car_value"`
	DepositPercent   decimal.Decimal `yaml:"deposit_percent" json:"deposit_percent"`
	TermMonths       int             `yaml:"term_months" json:"term_months"`
	APR              decimal.Decimal `yaml:"apr" json:"apr"`
	RetentionPercent decimal.Decimal `yaml:"retention_percent,omitempty" json:"retention_percent,omitempty"`
}

// HPInputs describes a hire purchase agreement.
type HPInputs struct {
	CarValue       decimal.Decimal `yaml:"car_value" json:"car_value"`
	DepositPercent decimal.Decimal `yaml:"deposit_percent" json:"deposit_percent"`
	TermMonths     int             `yaml:"term_months" json:"term_months"`
	APR            decimal.Decimal `yaml:"apr" json:"apr"`
}

// CarFinanceResult is shared by PCP and HP; BalloonPayment is zero for HP.
type CarFinanceResult struct {
	Deposit              decimal.Decimal `json:"deposit"`
	AmountFinanced       decimal.Decimal `json:"amount_financed"`
	RetentionPercent     decimal.Decimal `json:"retention_percent,omitempty"`
	BalloonPayment       decimal.Decimal `json:"balloon_payment"`
	MonthlyPayment       decimal.Decimal `json:"monthly_payment"`
	TotalMonthlyPayments decimal.Decimal `json:"total_monthly_payments"`
	TotalPayable         decimal.Decimal `json:"total_payable"`
	TotalInterest        decimal.Decimal `json:"total_interest"`
}

// MortgageInputs mirrors the affordability request. Rates are percentages.
// Zero values for the lending criteria select defaults.
type MortgageInputs struct {
	Applicant1Salary   decimal.Decimal `yaml:"applicant1_salary" json:"applicant1Salary"`
	Applicant2Salary   decimal.Decimal `yaml:"applicant2_salary" json:"applicant2Salary"`
	DownPayment        decimal.Decimal `yaml:"down_payment" json:"downPayment"`
	TermYears          int             `yaml:"term_years" json:"mortgageTerm"`
	InterestRate       decimal.Decimal `yaml:"interest_rate" json:"interestRate"`
	MonthlyDebts       decimal.Decimal `yaml:"monthly_debts,omitempty" json:"monthlyDebts,omitempty"`
	IncomeMultiple     decimal.Decimal `yaml:"income_multiple,omitempty" json:"incomeMultiple,omitempty"`
	StressBuffer       decimal.Decimal `yaml:"stress_buffer,omitempty" json:"stressBuffer,omitempty"`
	MaxPaymentToIncome decimal.Decimal `yaml:"max_payment_to_income,omitempty" json:"maxPaymentToIncome,omitempty"`
}

// AffordabilityResult is the mortgage affordability outcome.
type AffordabilityResult struct {
	MaxPropertyPrice      decimal.Decimal `json:"maxPropertyPrice"`
	MaxLoanAmount         decimal.Decimal `json:"maxLoanAmount"`
	MonthlyPayment        decimal.Decimal `json:"monthlyPayment"`
	LTV                   decimal.Decimal `json:"ltv"`
	DebtToIncome          decimal.Decimal `json:"debtToIncome"`
	AffordabilityMultiple decimal.Decimal `json:"affordabilityMultiple"`
	LimitedBy             string          `json:"limitedBy"`
}

// PriceIndex names a published inflation index.
type PriceIndex string

const (
	IndexCPI PriceIndex = "cpi"
	IndexRPI PriceIndex = "rpi"
)

// InflationInputs asks what Amount in FromYear is worth in ToYear.
type InflationInputs struct {
	Amount   decimal.Decimal `yaml:"amount" json:"amount"`
	FromYear int             `yaml:"from_year" json:"from_year"`
	ToYear   int             `yaml:"to_year" json:"to_year"`
	Index    PriceIndex      `yaml:"index" json:"index"`
}

// InflationResult gives the adjusted amount and the inflation between the years.
// Inflation figures are percentages.
type InflationResult struct {
	Index               PriceIndex      `json:"index"`
	FromYear            int             `json:"from_year"`
	ToYear              int             `json:"to_year"`
	OriginalAmount      decimal.Decimal `json:"original_amount"`
	AdjustedAmount      decimal.Decimal `json:"adjusted_amount"`
	FromIndex           decimal.Decimal `json:"from_index"`
	ToIndex             decimal.Decimal `json:"to_index"`
	CumulativeInflation decimal.Decimal `json:"cumulative_inflation"`
	AnnualisedInflation decimal.Decimal `json:"annualised_inflation"`
}

// RepaymentScheduleInputs projects a student loan balance forward.
// SalaryGrowth and InterestRate are percentages; a nil InterestRate uses
// the plan's rate for the tax year.
type RepaymentScheduleInputs struct {
	Balance      decimal.Decimal  `yaml:"balance" json:"balance"`
	Plan         StudentLoanPlan  `yaml:"plan" json:"plan"`
	Salary       decimal.Decimal  `yaml:"salary" json:"salary"`
	SalaryGrowth decimal.Decimal  `yaml:"salary_growth" json:"salary_growth"`
	InterestRate *decimal.Decimal `yaml:"interest_rate,omitempty" json:"interest_rate,omitempty"`
	TaxYear      string           `yaml:"tax_year,omitempty" json:"tax_year,omitempty"`
}

// RepaymentYear is one year of a repayment projection.
type RepaymentYear struct {
	Year           int             `json:"year"`
	Salary         decimal.Decimal `json:"salary"`
	Repaid         decimal.Decimal `json:"repaid"`
	Interest       decimal.Decimal `json:"interest"`
	ClosingBalance decimal.Decimal `json:"closing_balance"`
}

// RepaymentScheduleResult summarises a repayment projection.
type RepaymentScheduleResult struct {
	Plan          StudentLoanPlan `json:"plan"`
	InterestRate  decimal.Decimal `json:"interest_rate"`
	Cleared       bool            `json:"cleared"`
	MonthsToClear int             `json:"months_to_clear"`
	TotalRepaid   decimal.Decimal `json:"total_repaid"`
	TotalInterest decimal.Decimal `json:"total_interest"`
	WrittenOff    decimal.Decimal `json:"written_off"`
	Years         []RepaymentYear `json:"years"`
}
