package output

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/ukcalc/personal-finance/internal/domain"
)

// ConsoleVerboseFormatter renders a full payslip-style breakdown per scenario.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(report *domain.TakeHomeReport) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintln(&buf, "UK TAKE-HOME PAY REPORT")
	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintln(&buf)

	if assumptions := reportAssumptions(report); len(assumptions) > 0 {
		fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
		for _, a := range assumptions {
			fmt.Fprintf(&buf, "• %s\n", a)
		}
		fmt.Fprintln(&buf)
	}

	for i, sc := range report.Scenarios {
		if sc.Result == nil {
			continue
		}
		writeScenario(&buf, i+1, sc.Name, sc.Result)
	}

	rec := AnalyzeScenarios(report)
	if rec.ScenarioName != "" && len(report.Scenarios) > 1 {
		fmt.Fprintln(&buf, "SUMMARY")
		fmt.Fprintln(&buf, "=======")
		fmt.Fprintf(&buf, "Highest take-home: %s (%s a year)\n", rec.ScenarioName, FormatCurrency(rec.AnnualTakeHome))
		fmt.Fprintf(&buf, "Change vs %s: %s (%s)\n", rec.Baseline, signed(rec.TakeHomeChange), FormatPercentage(rec.PercentageChange))
		fmt.Fprintf(&buf, "Monthly Change: %s\n", signed(rec.TakeHomeChange.Div(decimal.NewFromInt(12)).Round(2)))
	}
	return buf.Bytes(), nil
}

func writeScenario(buf *bytes.Buffer, n int, name string, r *domain.TaxResult) {
	region := "rest of UK"
	if r.Scottish {
		region = "Scotland"
	}
	fmt.Fprintf(buf, "SCENARIO %d: %s\n", n, name)
	fmt.Fprintln(buf, strings.Repeat("=", 50))
	fmt.Fprintf(buf, "Tax year %s, code %s, %s\n", r.TaxYear, r.TaxCode, region)
	fmt.Fprintln(buf)

	fmt.Fprintln(buf, "ALLOWANCE:")
	fmt.Fprintf(buf, "  Personal allowance:     %s\n", FormatCurrency(r.Allowance.Standard))
	if r.Allowance.TaperReduction.IsPositive() {
		fmt.Fprintf(buf, "  Taper reduction:        -%s\n", FormatCurrency(r.Allowance.TaperReduction))
	}
	if r.Allowance.Blind.IsPositive() {
		fmt.Fprintf(buf, "  Blind person's:         %s\n", FormatCurrency(r.Allowance.Blind))
	}
	if !r.Allowance.Marriage.IsZero() {
		fmt.Fprintf(buf, "  Marriage allowance:     %s\n", FormatCurrency(r.Allowance.Marriage))
	}
	if r.Allowance.CodeOverride != nil {
		fmt.Fprintf(buf, "  Set by tax code:        %s\n", FormatCurrency(*r.Allowance.CodeOverride))
	}
	fmt.Fprintf(buf, "  TOTAL ALLOWANCE:        %s\n", FormatCurrency(r.Allowance.Total))
	fmt.Fprintf(buf, "  Taxable income:         %s\n", FormatCurrency(r.TaxableIncome))
	fmt.Fprintln(buf)

	if len(r.IncomeTax.Breakdown) > 0 {
		fmt.Fprintln(buf, "INCOME TAX BY BAND:")
		for _, band := range sortedBands(r.IncomeTax.Breakdown) {
			fmt.Fprintf(buf, "  %-22s  %s\n", band+":", FormatCurrency(r.IncomeTax.Breakdown[band]))
		}
		if r.IncomeTax.AllowanceLossTax.IsPositive() {
			fmt.Fprintf(buf, "  %-22s  %s\n", "lost allowance:", FormatCurrency(r.IncomeTax.AllowanceLossTax))
		}
		fmt.Fprintln(buf)
	}

	if r.Pension.Scheme != "" {
		fmt.Fprintln(buf, "PENSION:")
		fmt.Fprintf(buf, "  Scheme:                 %s\n", r.Pension.Scheme)
		fmt.Fprintf(buf, "  Contribution:           %s\n", FormatCurrency(r.Pension.Contribution))
		fmt.Fprintf(buf, "  Cost to take-home:      %s\n", FormatCurrency(r.Pension.TakeHomeCost))
		if r.Pension.TaxRelief.IsPositive() {
			fmt.Fprintf(buf, "  Relief claimed by fund: %s\n", FormatCurrency(r.Pension.TaxRelief))
		}
		fmt.Fprintln(buf)
	}

	fmt.Fprintf(buf, "%-22s %16s %16s", "", "Annual", "Regular month")
	if r.BonusMonth != nil {
		fmt.Fprintf(buf, " %16s", "Bonus month")
	}
	fmt.Fprintln(buf)
	rows := []struct {
		label  string
		annual decimal.Decimal
		pick   func(domain.MonthBreakdown) decimal.Decimal
	}{
		{"Gross pay", r.Gross.Total, func(m domain.MonthBreakdown) decimal.Decimal { return m.Gross }},
		{"Income tax", r.IncomeTax.Total, func(m domain.MonthBreakdown) decimal.Decimal { return m.IncomeTax }},
		{"National Insurance", r.NationalInsurance, func(m domain.MonthBreakdown) decimal.Decimal { return m.NationalInsurance }},
		{"Student loan", r.StudentLoan.Annual, func(m domain.MonthBreakdown) decimal.Decimal { return m.StudentLoan }},
		{"Pension", r.Pension.TakeHomeCost, func(m domain.MonthBreakdown) decimal.Decimal { return m.Pension }},
		{"TAKE-HOME", r.TakeHome.Annual, func(m domain.MonthBreakdown) decimal.Decimal { return m.TakeHome }},
	}
	for _, row := range rows {
		fmt.Fprintf(buf, "%-22s %16s %16s", row.label, FormatCurrency(row.annual), FormatCurrency(row.pick(r.RegularMonth)))
		if r.BonusMonth != nil {
			fmt.Fprintf(buf, " %16s", FormatCurrency(row.pick(*r.BonusMonth)))
		}
		fmt.Fprintln(buf)
	}
	fmt.Fprintf(buf, "Weekly take-home:      %s\n", FormatCurrency(r.TakeHome.Weekly))
	fmt.Fprintln(buf)
	fmt.Fprintln(buf)
}

// sortedBands orders band names by the amount charged, largest first.
func sortedBands(b domain.TaxBreakdown) []string {
	names := make([]string, 0, len(b))
	for name := range b {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if c := b[names[i]].Cmp(b[names[j]]); c != 0 {
			return c > 0
		}
		return names[i] < names[j]
	})
	return names
}

func signed(d decimal.Decimal) string {
	if d.IsPositive() {
		return "+" + FormatCurrency(d)
	}
	return FormatCurrency(d)
}
