package output

import (
	"bytes"
	"encoding/csv"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/ukcalc/personal-finance/internal/domain"
)

// CSVDetailedExporter writes one row per scenario and pay period (the year,
// a regular month and, when there is a bonus, the bonus month).
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Format(report *domain.TakeHomeReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "Period", "Gross", "IncomeTax", "NationalInsurance", "StudentLoan", "Pension", "TakeHome"}
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
		annual := domain.MonthBreakdown{
			Gross:             r.Gross.Total,
			IncomeTax:         r.IncomeTax.Total,
			NationalInsurance: r.NationalInsurance,
			StudentLoan:       r.StudentLoan.Annual,
			Pension:           r.Pension.TakeHomeCost,
			TakeHome:          r.TakeHome.Annual,
		}
		periods := []struct {
			name string
			m    domain.MonthBreakdown
		}{{"annual", annual}, {"regular_month", r.RegularMonth}}
		if r.BonusMonth != nil {
			periods = append(periods, struct {
				name string
				m    domain.MonthBreakdown
			}{"bonus_month", *r.BonusMonth})
		}
		for _, p := range periods {
			row := append([]string{sc.Name, p.name}, fixed(p.m.Gross, p.m.IncomeTax, p.m.NationalInsurance, p.m.StudentLoan, p.m.Pension, p.m.TakeHome)...)
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func fixed(values ...decimal.Decimal) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = v.StringFixed(2)
	}
	return out
}
