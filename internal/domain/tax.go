package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// StudentLoanPlan identifies a UK student loan repayment plan.
type StudentLoanPlan string

const (
	Plan1        StudentLoanPlan = "plan1"
	Plan2        StudentLoanPlan = "plan2"
	Plan4        StudentLoanPlan = "plan4"
	Plan5        StudentLoanPlan = "plan5"
	PlanPostgrad StudentLoanPlan = "postgrad"
)

// PensionSchemeType selects how a pension contribution interacts with tax and NI.
type PensionSchemeType string

const (
	SchemeSalarySacrifice        PensionSchemeType = "salary_sacrifice"
	SchemeAutoEnrolment          PensionSchemeType = "auto_enrolment"
	SchemeAutoUnbanded           PensionSchemeType = "auto_unbanded"
	SchemeReliefAtSource         PensionSchemeType = "relief_at_source"
	SchemeReliefAtSourceUnbanded PensionSchemeType = "relief_at_source_unbanded"
	SchemePersonal               PensionSchemeType = "personal"
)

// ContributionValueType says whether PensionConfig.Value is a percentage or an amount.
type ContributionValueType string

const (
	ValuePercentage ContributionValueType = "percentage"
	ValueFixed      ContributionValueType = "fixed"
)

// EarningsBasis selects the pay a percentage contribution is applied to.
type EarningsBasis string

const (
	BasisTotal      EarningsBasis = "total"
	BasisQualifying EarningsBasis = "qualifying"
)

// Frequency of a fixed amount or a pay figure.
type Frequency string

const (
	Monthly Frequency = "monthly"
	Yearly  Frequency = "yearly"
)

// MarriageAllowance records a marriage allowance election.
type MarriageAllowance string

const (
	MarriageNone       MarriageAllowance = ""
	MarriageTransferor MarriageAllowance = "transferor"
	MarriageRecipient  MarriageAllowance = "recipient"
)

// PensionConfig describes a member's pension contribution.
type PensionConfig struct {
	Scheme        PensionSchemeType     `yaml:"scheme" json:"scheme"`
	Value         decimal.Decimal       `yaml:"value" json:"value"`
	ValueType     ContributionValueType `yaml:"value_type" json:"value_type"`
	Frequency     Frequency             `yaml:"frequency,omitempty" json:"frequency,omitempty"`
	EarningsBasis EarningsBasis         `yaml:"earnings_basis,omitempty" json:"earnings_basis,omitempty"`
	IncludeBonus  bool                  `yaml:"include_bonus" json:"include_bonus"`
}

// TaxInputs is the flat input to the take-home pay calculation.
type TaxInputs struct {
	Salary            decimal.Decimal   `yaml:"salary" json:"salary"`
	Bonus             decimal.Decimal   `yaml:"bonus" json:"bonus"`
	StudentLoanPlans  []StudentLoanPlan `yaml:"student_loan_plans,omitempty" json:"student_loan_plans,omitempty"`
	Scottish          bool              `yaml:"scottish" json:"scottish"`
	NoNI              bool              `yaml:"no_ni" json:"no_ni"`
	Blind             bool              `yaml:"blind" json:"blind"`
	MarriageAllowance MarriageAllowance `yaml:"marriage_allowance,omitempty" json:"marriage_allowance,omitempty"`
	TaxYear           string            `yaml:"tax_year" json:"tax_year"`
	TaxCode           string            `yaml:"tax_code,omitempty" json:"tax_code,omitempty"`
	Pension           *PensionConfig    `yaml:"pension,omitempty" json:"pension,omitempty"`
}

// TaxBreakdown maps a band name (e.g. "basic_rate") to the tax charged in it.
type TaxBreakdown map[string]decimal.Decimal

// Add accumulates amount into band.
func (tb TaxBreakdown) Add(band string, amount decimal.Decimal) {
	tb[band] = tb[band].Add(amount)
}

// Total sums every band.
func (tb TaxBreakdown) Total() decimal.Decimal {
	total := decimal.Zero
	for _, v := range tb {
		total = total.Add(v)
	}
	return total
}

// Bands returns band names in a stable order.
func (tb TaxBreakdown) Bands() []string {
	names := make([]string, 0, len(tb))
	for k := range tb {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// GrossIncome is the income side of a TaxResult.
type GrossIncome struct {
	Salary decimal.Decimal `json:"salary"`
	Bonus  decimal.Decimal `json:"bonus"`
	Total  decimal.Decimal `json:"total"`
}

// AllowanceBreakdown shows how the final personal allowance was reached.
type AllowanceBreakdown struct {
	Standard       decimal.Decimal  `json:"standard"`
	TaperReduction decimal.Decimal  `json:"taper_reduction"`
	Blind          decimal.Decimal  `json:"blind"`
	Marriage       decimal.Decimal  `json:"marriage"`
	CodeOverride   *decimal.Decimal `json:"code_override,omitempty"`
	AdjustedIncome decimal.Decimal  `json:"adjusted_income"`
	Total          decimal.Decimal  `json:"total"`
}

// IncomeTaxResult is the annual income tax with its per-band breakdown.
type IncomeTaxResult struct {
	Total            decimal.Decimal `json:"total"`
	Breakdown        TaxBreakdown    `json:"breakdown"`
	AllowanceLossTax decimal.Decimal `json:"allowance_loss_tax"`
}

// StudentLoanPlanRepayment is one plan's share of student loan deductions.
type StudentLoanPlanRepayment struct {
	Plan      StudentLoanPlan `json:"plan"`
	Threshold decimal.Decimal `json:"threshold"`
	Rate      decimal.Decimal `json:"rate"`
	Monthly   decimal.Decimal `json:"monthly"`
	Annual    decimal.Decimal `json:"annual"`
}

// StudentLoanResult totals repayments across every held plan.
type StudentLoanResult struct {
	Plans   []StudentLoanPlanRepayment `json:"plans"`
	Monthly decimal.Decimal            `json:"monthly"`
	Annual  decimal.Decimal            `json:"annual"`
}

// PensionResult describes the annual pension contribution.
type PensionResult struct {
	Scheme       PensionSchemeType `json:"scheme,omitempty"`
	Contribution decimal.Decimal   `json:"contribution"`
	TakeHomeCost decimal.Decimal   `json:"take_home_cost"`
	TaxRelief    decimal.Decimal   `json:"tax_relief"`
}

// TakeHome holds net pay at each frequency.
type TakeHome struct {
	Annual  decimal.Decimal `json:"annual"`
	Monthly decimal.Decimal `json:"monthly"`
	Weekly  decimal.Decimal `json:"weekly"`
}

// MonthBreakdown is the cash-flow view of a single pay month.
type MonthBreakdown struct {
	Gross             decimal.Decimal `json:"gross"`
	IncomeTax         decimal.Decimal `json:"income_tax"`
	NationalInsurance decimal.Decimal `json:"national_insurance"`
	StudentLoan       decimal.Decimal `json:"student_loan"`
	Pension           decimal.Decimal `json:"pension"`
	TakeHome          decimal.Decimal `json:"take_home"`
}

// Deductions sums everything taken from the month's gross.
func (m MonthBreakdown) Deductions() decimal.Decimal {
	return m.IncomeTax.Add(m.NationalInsurance).Add(m.StudentLoan).Add(m.Pension)
}

// TaxResult is the full take-home pay breakdown.
type TaxResult struct {
	TaxYear           TaxYear            `json:"tax_year"`
	TaxCode           string             `json:"tax_code"`
	Scottish          bool               `json:"scottish"`
	Gross             GrossIncome        `json:"gross"`
	Pension           PensionResult      `json:"pension"`
	GrossForTax       decimal.Decimal    `json:"gross_for_tax"`
	GrossForNI        decimal.Decimal    `json:"gross_for_ni"`
	Allowance         AllowanceBreakdown `json:"allowance"`
	TaxableIncome     decimal.Decimal    `json:"taxable_income"`
	IncomeTax         IncomeTaxResult    `json:"income_tax"`
	NationalInsurance decimal.Decimal    `json:"national_insurance"`
	StudentLoan       StudentLoanResult  `json:"student_loan"`
	TotalDeductions   decimal.Decimal    `json:"total_deductions"`
	TakeHome          TakeHome           `json:"take_home"`
	RegularMonth      MonthBreakdown     `json:"regular_month"`
	BonusMonth        *MonthBreakdown    `json:"bonus_month,omitempty"`
}

// Scenario is a named set of take-home inputs in a scenario file.
type Scenario struct {
	Name   string    `yaml:"name" json:"name"`
	Inputs TaxInputs `yaml:"inputs" json:"inputs"`
}

// Configuration is the top-level scenario file.
type Configuration struct {
	Scenarios []Scenario `yaml:"scenarios" json:"scenarios"`
}

// ScenarioResult pairs a scenario name with its computed result.
type ScenarioResult struct {
	Name   string     `json:"name"`
	Result *TaxResult `json:"result"`
}

// TakeHomeReport is the output of running every scenario in a Configuration.
type TakeHomeReport struct {
	Scenarios []ScenarioResult `json:"scenarios"`
	// Rates holds the constants the scenarios were calculated with, one entry
	// per tax year, including any overrides.
	Rates []TaxYearConstants `json:"rates,omitempty"`
}

// RatesFor returns the constants recorded for year.
func (r *TakeHomeReport) RatesFor(year TaxYear) (*TaxYearConstants, bool) {
	for i := range r.Rates {
		if r.Rates[i].Year == year {
			return &r.Rates[i], true
		}
	}
	return nil, false
}
