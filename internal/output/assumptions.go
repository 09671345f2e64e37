package output

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/ukcalc/personal-finance/internal/calculation"
	"github.com/ukcalc/personal-finance/internal/domain"
)

var decimalHundred = decimal.NewFromInt(100)

// GenerateAssumptions lists the headline rates of a tax year for report headers.
func GenerateAssumptions(rates *domain.TaxYearConstants) []string {
	ni := rates.NationalInsurance
	out := []string{
		fmt.Sprintf("Tax year %s", rates.Year),
		fmt.Sprintf("Personal allowance %s, tapered by %s above %s",
			FormatCurrency(rates.PersonalAllowance), FormatRate(rates.TaperRate), FormatCurrency(rates.TaperThreshold)),
	}
	for _, b := range rates.UKBands.Bands {
		out = append(out, fmt.Sprintf("%s: %s on the next %s", b.Name, FormatRate(b.Rate), FormatCurrency(b.Width)))
	}
	out = append(out,
		fmt.Sprintf("%s: %s above that", rates.UKBands.Top.Name, FormatRate(rates.UKBands.Top.Rate)),
		fmt.Sprintf("National Insurance %s between %s and %s, %s above",
			FormatRate(ni.MainRate), FormatCurrency(ni.PrimaryThreshold), FormatCurrency(ni.UpperEarningsLimit), FormatRate(ni.UpperRate)),
		"Pay is monthly; a bonus is paid in a single month",
	)
	return out
}

// reportAssumptions collects assumptions for every tax year used by the
// report, from the constants the report was calculated with. Reports built
// without them fall back to the built-in tables.
func reportAssumptions(report *domain.TakeHomeReport) []string {
	seen := map[domain.TaxYear]bool{}
	var out []string
	for _, sc := range report.Scenarios {
		if sc.Result == nil || seen[sc.Result.TaxYear] {
			continue
		}
		seen[sc.Result.TaxYear] = true
		rates, ok := report.RatesFor(sc.Result.TaxYear)
		if !ok {
			builtin, err := calculation.RatesFor(sc.Result.TaxYear)
			if err != nil {
				continue
			}
			rates = builtin
		}
		out = append(out, GenerateAssumptions(rates)...)
	}
	return out
}
