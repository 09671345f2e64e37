package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/ukcalc/personal-finance/internal/domain"
)

// RATE TABLE NOTES:
//
// 1. Band widths are expressed on taxable income (after the personal
//    allowance), so the higher-rate band runs up to £125,140 of taxable
//    income, which is where the allowance has been fully tapered away.
//
// 2. Scottish advanced-rate widths follow the same convention: the band ends
//    at £125,140 of taxable income and the top rate applies above it.
//
// 3. Student loan interest rates are the September rates of each tax year and
//    are only used by the repayment projection.

// Band names used as TaxBreakdown keys.
const (
	BandBasic                = "basic_rate"
	BandHigher               = "higher_rate"
	BandAdditional           = "additional_rate"
	BandScottishStarter      = "scottish_starter_rate"
	BandScottishBasic        = "scottish_basic_rate"
	BandScottishIntermediate = "scottish_intermediate_rate"
	BandScottishHigher       = "scottish_higher_rate"
	BandScottishAdvanced     = "scottish_advanced_rate"
	BandScottishTop          = "scottish_top_rate"
)

func ukBands() domain.TaxBands {
	return domain.TaxBands{
		Bands: []domain.TaxBand{
			{Name: BandBasic, Width: decimal.NewFromInt(37700), Rate: decimal.NewFromFloat(0.20)},
			{Name: BandHigher, Width: decimal.NewFromInt(87440), Rate: decimal.NewFromFloat(0.40)},
		},
		Top: domain.TaxBand{Name: BandAdditional, Rate: decimal.NewFromFloat(0.45)},
	}
}

func scottishBands(starter, basic, intermediate int64) domain.TaxBands {
	return domain.TaxBands{
		Bands: []domain.TaxBand{
			{Name: BandScottishStarter, Width: decimal.NewFromInt(starter), Rate: decimal.NewFromFloat(0.19)},
			{Name: BandScottishBasic, Width: decimal.NewFromInt(basic), Rate: decimal.NewFromFloat(0.20)},
			{Name: BandScottishIntermediate, Width: decimal.NewFromInt(intermediate), Rate: decimal.NewFromFloat(0.21)},
			{Name: BandScottishHigher, Width: decimal.NewFromInt(31338), Rate: decimal.NewFromFloat(0.42)},
			{Name: BandScottishAdvanced, Width: decimal.NewFromInt(62710), Rate: decimal.NewFromFloat(0.45)},
		},
		Top: domain.TaxBand{Name: BandScottishTop, Rate: decimal.NewFromFloat(0.48)},
	}
}

func commonConstants(year domain.TaxYear) domain.TaxYearConstants {
	return domain.TaxYearConstants{
		Year:              year,
		PersonalAllowance: decimal.NewFromInt(12570),
		TaperThreshold:    decimal.NewFromInt(100000),
		TaperRate:         decimal.NewFromFloat(0.5),
		MarriageAllowance: decimal.NewFromInt(1260),
		UKBands:           ukBands(),
		NationalInsurance: domain.NationalInsuranceRates{
			PrimaryThreshold:   decimal.NewFromInt(12570),
			UpperEarningsLimit: decimal.NewFromInt(50270),
			MainRate:           decimal.NewFromFloat(0.08),
			UpperRate:          decimal.NewFromFloat(0.02),
		},
		Pension: domain.PensionRates{
			QualifyingLower: decimal.NewFromInt(6240),
			QualifyingUpper: decimal.NewFromInt(50270),
			ReliefRate:      decimal.NewFromFloat(0.20),
		},
	}
}

func studentLoanRule(threshold int64, rate, interest float64, writeOff int) domain.StudentLoanPlanRule {
	return domain.StudentLoanPlanRule{
		Threshold:     decimal.NewFromInt(threshold),
		Rate:          decimal.NewFromFloat(rate),
		InterestRate:  decimal.NewFromFloat(interest),
		WriteOffYears: writeOff,
	}
}

// NewTaxYearConstants2024 returns the 2024/25 rate table.
func NewTaxYearConstants2024() domain.TaxYearConstants {
	c := commonConstants(domain.TaxYear2024)
	c.BlindPersonsAllowance = decimal.NewFromInt(3070)
	c.ScottishBands = scottishBands(2306, 11685, 17101)
	c.StudentLoans = map[domain.StudentLoanPlan]domain.StudentLoanPlanRule{
		domain.Plan1:        studentLoanRule(24990, 0.09, 4.3, 25),
		domain.Plan2:        studentLoanRule(27295, 0.09, 7.3, 30),
		domain.Plan4:        studentLoanRule(31395, 0.09, 4.3, 30),
		domain.Plan5:        studentLoanRule(25000, 0.09, 4.3, 40),
		domain.PlanPostgrad: studentLoanRule(21000, 0.06, 7.3, 30),
	}
	return c
}

// NewTaxYearConstants2025 returns the 2025/26 rate table.
func NewTaxYearConstants2025() domain.TaxYearConstants {
	c := commonConstants(domain.TaxYear2025)
	c.BlindPersonsAllowance = decimal.NewFromInt(3130)
	c.ScottishBands = scottishBands(2827, 12094, 16171)
	c.StudentLoans = map[domain.StudentLoanPlan]domain.StudentLoanPlanRule{
		domain.Plan1:        studentLoanRule(26065, 0.09, 3.2, 25),
		domain.Plan2:        studentLoanRule(28470, 0.09, 6.2, 30),
		domain.Plan4:        studentLoanRule(32745, 0.09, 3.2, 30),
		domain.Plan5:        studentLoanRule(25000, 0.09, 3.2, 40),
		domain.PlanPostgrad: studentLoanRule(21000, 0.06, 6.2, 30),
	}
	return c
}

// RateTable holds the constants for every supported tax year.
type RateTable struct {
	years map[domain.TaxYear]domain.TaxYearConstants
}

// NewRateTable returns the built-in rate table.
func NewRateTable() *RateTable {
	return &RateTable{
		years: map[domain.TaxYear]domain.TaxYearConstants{
			domain.TaxYear2024: NewTaxYearConstants2024(),
			domain.TaxYear2025: NewTaxYearConstants2025(),
		},
	}
}

// For returns a private copy of the constants for year.
func (rt *RateTable) For(year domain.TaxYear) (*domain.TaxYearConstants, error) {
	c, ok := rt.years[year]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedTaxYear, year)
	}
	out := c.Clone()
	return &out, nil
}

// WithOverrides returns a new table with overrides applied. Overrides for
// years without a built-in table are rejected.
func (rt *RateTable) WithOverrides(overrides map[domain.TaxYear]domain.RateOverride) (*RateTable, error) {
	out := &RateTable{years: make(map[domain.TaxYear]domain.TaxYearConstants, len(rt.years))}
	for y, c := range rt.years {
		out.years[y] = c.Clone()
	}
	for y, o := range overrides {
		base, ok := out.years[y]
		if !ok {
			return nil, fmt.Errorf("rate override: %w: %s", domain.ErrUnsupportedTaxYear, y)
		}
		out.years[y] = o.Apply(base)
	}
	return out, nil
}

// Years lists the years in the table, oldest first.
func (rt *RateTable) Years() []domain.TaxYear {
	years := make([]domain.TaxYear, 0, len(rt.years))
	for _, y := range domain.SupportedTaxYears() {
		if _, ok := rt.years[y]; ok {
			years = append(years, y)
		}
	}
	return years
}

var defaultRates = NewRateTable()

// RatesFor returns the built-in constants for year.
func RatesFor(year domain.TaxYear) (*domain.TaxYearConstants, error) {
	return defaultRates.For(year)
}
