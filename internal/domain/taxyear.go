package domain

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/ukcalc/personal-finance/pkg/dateutil"
)

// TaxYear identifies a supported UK tax year by its label, e.g. "2024/25".
type TaxYear string

const (
	TaxYear2024 TaxYear = "2024/25"
	TaxYear2025 TaxYear = "2025/26"
)

// LatestTaxYear is used when no year is requested.
const LatestTaxYear = TaxYear2025

var supportedTaxYears = map[TaxYear]bool{
	TaxYear2024: true,
	TaxYear2025: true,
}

// SupportedTaxYears lists the years with rate tables, oldest first.
func SupportedTaxYears() []TaxYear {
	years := make([]TaxYear, 0, len(supportedTaxYears))
	for y := range supportedTaxYears {
		years = append(years, y)
	}
	sort.Slice(years, func(i, j int) bool { return years[i] < years[j] })
	return years
}

// ParseTaxYear resolves a tax-year key. An empty key selects LatestTaxYear;
// anything unrecognised is an ErrUnsupportedTaxYear rather than a silent default.
func ParseTaxYear(key string) (TaxYear, error) {
	if key == "" {
		return LatestTaxYear, nil
	}
	start, err := dateutil.ParseTaxYearLabel(key)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedTaxYear, err)
	}
	year := TaxYear(dateutil.TaxYearLabel(start))
	if !supportedTaxYears[year] {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedTaxYear, year)
	}
	return year, nil
}

// IsSupported reports whether the year has a rate table.
func (y TaxYear) IsSupported() bool { return supportedTaxYears[y] }

func (y TaxYear) String() string { return string(y) }

// TaxBand is one marginal band: Width of taxable income charged at Rate.
type TaxBand struct {
	Name  string          `yaml:"name" json:"name"`
	Width decimal.Decimal `yaml:"width" json:"width"`
	Rate  decimal.Decimal `yaml:"rate" json:"rate"`
}

// TaxBands is an ordered list of bands plus the rate for income above them.
type TaxBands struct {
	Bands []TaxBand `yaml:"bands" json:"bands"`
	Top   TaxBand   `yaml:"top" json:"top"`
}

// Band returns the named band (including the top band).
func (tb TaxBands) Band(name string) (TaxBand, bool) {
	for _, b := range tb.Bands {
		if b.Name == name {
			return b, true
		}
	}
	if tb.Top.Name == name {
		return tb.Top, true
	}
	return TaxBand{}, false
}

// Scale returns a copy with every band width multiplied by factor and rounded
// up to whole pounds (used for month-1 emergency tables).
func (tb TaxBands) Scale(factor decimal.Decimal) TaxBands {
	out := TaxBands{Bands: make([]TaxBand, len(tb.Bands)), Top: tb.Top}
	for i, b := range tb.Bands {
		b.Width = b.Width.Mul(factor).Ceil()
		out.Bands[i] = b
	}
	return out
}

// NationalInsuranceRates holds Class 1 employee thresholds (annual) and rates.
type NationalInsuranceRates struct {
	PrimaryThreshold   decimal.Decimal `yaml:"primary_threshold" json:"primary_threshold"`
	UpperEarningsLimit decimal.Decimal `yaml:"upper_earnings_limit" json:"upper_earnings_limit"`
	MainRate           decimal.Decimal `yaml:"main_rate" json:"main_rate"`
	UpperRate          decimal.Decimal `yaml:"upper_rate" json:"upper_rate"`
}

// PensionRates holds the auto-enrolment qualifying earnings band and relief rate.
type PensionRates struct {
	QualifyingLower decimal.Decimal `yaml:"qualifying_lower" json:"qualifying_lower"`
	QualifyingUpper decimal.Decimal `yaml:"qualifying_upper" json:"qualifying_upper"`
	ReliefRate      decimal.Decimal `yaml:"relief_rate" json:"relief_rate"`
}

// StudentLoanPlanRule is the repayment rule for one plan in one tax year.
type StudentLoanPlanRule struct {
	Threshold     decimal.Decimal `yaml:"threshold" json:"threshold"`
	Rate          decimal.Decimal `yaml:"rate" json:"rate"`
	InterestRate  decimal.Decimal `yaml:"interest_rate" json:"interest_rate"`
	WriteOffYears int             `yaml:"write_off_years" json:"write_off_years"`
}

// TaxYearConstants is the full rate table for one tax year.
type TaxYearConstants struct {
	Year                  TaxYear                                 `yaml:"year" json:"year"`
	PersonalAllowance     decimal.Decimal                         `yaml:"personal_allowance" json:"personal_allowance"`
	TaperThreshold        decimal.Decimal                         `yaml:"taper_threshold" json:"taper_threshold"`
	TaperRate             decimal.Decimal                         `yaml:"taper_rate" json:"taper_rate"`
	BlindPersonsAllowance decimal.Decimal                         `yaml:"blind_persons_allowance" json:"blind_persons_allowance"`
	MarriageAllowance     decimal.Decimal                         `yaml:"marriage_allowance" json:"marriage_allowance"`
	UKBands               TaxBands                                `yaml:"uk_bands" json:"uk_bands"`
	ScottishBands         TaxBands                                `yaml:"scottish_bands" json:"scottish_bands"`
	NationalInsurance     NationalInsuranceRates                  `yaml:"national_insurance" json:"national_insurance"`
	Pension               PensionRates                            `yaml:"pension" json:"pension"`
	StudentLoans          map[StudentLoanPlan]StudentLoanPlanRule `yaml:"student_loans" json:"student_loans"`
}

// AllowanceLossLimit is the income at which the personal allowance is fully tapered away.
func (c *TaxYearConstants) AllowanceLossLimit() decimal.Decimal {
	if c.TaperRate.IsZero() {
		return c.TaperThreshold
	}
	return c.TaperThreshold.Add(c.PersonalAllowance.Div(c.TaperRate))
}

// Clone returns a deep copy so callers can never mutate a shared table.
func (c TaxYearConstants) Clone() TaxYearConstants {
	out := c
	out.UKBands.Bands = append([]TaxBand(nil), c.UKBands.Bands...)
	out.ScottishBands.Bands = append([]TaxBand(nil), c.ScottishBands.Bands...)
	out.StudentLoans = make(map[StudentLoanPlan]StudentLoanPlanRule, len(c.StudentLoans))
	for k, v := range c.StudentLoans {
		out.StudentLoans[k] = v
	}
	return out
}

// RateOverride replaces parts of a tax year's table. Nil fields are left alone.
type RateOverride struct {
	PersonalAllowance     *decimal.Decimal                        `yaml:"personal_allowance,omitempty"`
	TaperThreshold        *decimal.Decimal                        `yaml:"taper_threshold,omitempty"`
	BlindPersonsAllowance *decimal.Decimal                        `yaml:"blind_persons_allowance,omitempty"`
	MarriageAllowance     *decimal.Decimal                        `yaml:"marriage_allowance,omitempty"`
	UKBands               *TaxBands                               `yaml:"uk_bands,omitempty"`
	ScottishBands         *TaxBands                               `yaml:"scottish_bands,omitempty"`
	NationalInsurance     *NationalInsuranceRates                 `yaml:"national_insurance,omitempty"`
	Pension               *PensionRates                           `yaml:"pension,omitempty"`
	StudentLoans          map[StudentLoanPlan]StudentLoanPlanRule `yaml:"student_loans,omitempty"`
}

// Apply returns a copy of c with the override applied.
func (o RateOverride) Apply(c TaxYearConstants) TaxYearConstants {
	out := c.Clone()
	if o.PersonalAllowance != nil {
		out.PersonalAllowance = *o.PersonalAllowance
	}
	if o.TaperThreshold != nil {
		out.TaperThreshold = *o.TaperThreshold
	}
	if o.BlindPersonsAllowance != nil {
		out.BlindPersonsAllowance = *o.BlindPersonsAllowance
	}
	if o.MarriageAllowance != nil {
		out.MarriageAllowance = *o.MarriageAllowance
	}
	if o.UKBands != nil {
		out.UKBands = TaxBands{Bands: append([]TaxBand(nil), o.UKBands.Bands...), Top: o.UKBands.Top}
	}
	if o.ScottishBands != nil {
		out.ScottishBands = TaxBands{Bands: append([]TaxBand(nil), o.ScottishBands.Bands...), Top: o.ScottishBands.Top}
	}
	if o.NationalInsurance != nil {
		out.NationalInsurance = *o.NationalInsurance
	}
	if o.Pension != nil {
		out.Pension = *o.Pension
	}
	for plan, rule := range o.StudentLoans {
		out.StudentLoans[plan] = rule
	}
	return out
}
