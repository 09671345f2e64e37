package output

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/ukcalc/personal-finance/internal/domain"
)

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(report *domain.TakeHomeReport) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "TAKE-HOME SUMMARY")
	fmt.Fprintln(&buf, "================================")
	scenarios := append([]domain.ScenarioResult(nil), report.Scenarios...)
	sort.Slice(scenarios, func(i, j int) bool { return scenarios[i].Name < scenarios[j].Name })
	for _, sc := range scenarios {
		r := sc.Result
		if r == nil {
			continue
		}
		fmt.Fprintf(&buf, "%s: Gross=%s Tax=%s NI=%s StudentLoan=%s Pension=%s\n",
			sc.Name,
			FormatCurrency(r.Gross.Total),
			FormatCurrency(r.IncomeTax.Total),
			FormatCurrency(r.NationalInsurance),
			FormatCurrency(r.StudentLoan.Annual),
			FormatCurrency(r.Pension.TakeHomeCost),
		)
		fmt.Fprintf(&buf, "  TakeHome=%s Monthly=%s Weekly=%s\n",
			FormatCurrency(r.TakeHome.Annual), FormatCurrency(r.TakeHome.Monthly), FormatCurrency(r.TakeHome.Weekly))
	}
	rec := AnalyzeScenarios(report)
	if rec.ScenarioName != "" && len(report.Scenarios) > 1 {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "Best: %s (Δ %s / %s)\n", rec.ScenarioName, FormatCurrency(rec.TakeHomeChange), FormatPercentage(rec.PercentageChange))
	}
	return buf.Bytes(), nil
}
