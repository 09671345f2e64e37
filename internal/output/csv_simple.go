package output

import (
	"bytes"
	"encoding/csv"
	"sort"

	"github.com/ukcalc/personal-finance/internal/domain"
)

// CSVSummarizer implements the simple summary CSV output (one row per scenario).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(report *domain.TakeHomeReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "TaxYear", "TaxCode", "Scottish", "Gross", "Allowance", "IncomeTax", "NationalInsurance", "StudentLoan", "Pension", "TakeHomeAnnual", "TakeHomeMonthly", "TakeHomeWeekly"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	scenarios := append([]domain.ScenarioResult(nil), report.Scenarios...)
	sort.Slice(scenarios, func(i, j int) bool { return scenarios[i].Name < scenarios[j].Name })
	for _, sc := range scenarios {
		r := sc.Result
		if r == nil {
			continue
		}
		row := []string{
			sc.Name,
			string(r.TaxYear),
			r.TaxCode,
			boolToString(r.Scottish),
			r.Gross.Total.StringFixed(2),
			r.Allowance.Total.StringFixed(2),
			r.IncomeTax.Total.StringFixed(2),
			r.NationalInsurance.StringFixed(2),
			r.StudentLoan.Annual.StringFixed(2),
			r.Pension.TakeHomeCost.StringFixed(2),
			r.TakeHome.Annual.StringFixed(2),
			r.TakeHome.Monthly.StringFixed(2),
			r.TakeHome.Weekly.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func boolToString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
