package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/ukcalc/personal-finance/internal/domain"
)

// RenderCalculation writes the result of one of the standalone calculators
// (compound interest, car finance, mortgage, inflation, loan schedule) as
// "json" or as console text. Any other format is unsupported.
func RenderCalculation(w io.Writer, result any, format string) error {
	switch NormalizeFormatName(format) {
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		_, err = w.Write(append(data, '\n'))
		return err
	case "console", "console-lite":
	default:
		return fmt.Errorf("%w: %q for this calculator. Try one of: console, json", ErrUnsupportedFormat, format)
	}

	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	switch r := result.(type) {
	case *domain.CompoundInterestResult:
		fmt.Fprintln(tw, "COMPOUND INTEREST")
		fmt.Fprintf(tw, "Final balance:\t%s\n", FormatCurrency(r.FinalBalance))
		fmt.Fprintf(tw, "Total contributions:\t%s\n", FormatCurrency(r.TotalContributions))
		fmt.Fprintf(tw, "Total interest:\t%s\n", FormatCurrency(r.TotalInterest))
		fmt.Fprintf(tw, "Effective annual rate:\t%s\n", FormatPercentage(r.EffectiveAnnual))
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "Year\tContributions\tInterest\tBalance")
		for _, y := range r.Yearly {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", y.Year, FormatCurrency(y.Contributions), FormatCurrency(y.Interest), FormatCurrency(y.Balance))
		}
	case *domain.CarFinanceResult:
		fmt.Fprintln(tw, "CAR FINANCE")
		fmt.Fprintf(tw, "Deposit:\t%s\n", FormatCurrency(r.Deposit))
		fmt.Fprintf(tw, "Amount financed:\t%s\n", FormatCurrency(r.AmountFinanced))
		if r.BalloonPayment.IsPositive() {
			fmt.Fprintf(tw, "Final payment (%s retained):\t%s\n", FormatPercentage(r.RetentionPercent), FormatCurrency(r.BalloonPayment))
		}
		fmt.Fprintf(tw, "Monthly payment:\t%s\n", FormatCurrency(r.MonthlyPayment))
		fmt.Fprintf(tw, "Total of monthly payments:\t%s\n", FormatCurrency(r.TotalMonthlyPayments))
		fmt.Fprintf(tw, "Total payable:\t%s\n", FormatCurrency(r.TotalPayable))
		fmt.Fprintf(tw, "Total interest:\t%s\n", FormatCurrency(r.TotalInterest))
	case *domain.AffordabilityResult:
		fmt.Fprintln(tw, "MORTGAGE AFFORDABILITY")
		fmt.Fprintf(tw, "Maximum property price:\t%s\n", FormatCurrency(r.MaxPropertyPrice))
		fmt.Fprintf(tw, "Maximum loan:\t%s\n", FormatCurrency(r.MaxLoanAmount))
		fmt.Fprintf(tw, "Monthly payment:\t%s\n", FormatCurrency(r.MonthlyPayment))
		fmt.Fprintf(tw, "Loan to value:\t%s\n", FormatPercentage(r.LTV))
		fmt.Fprintf(tw, "Debt to income:\t%s\n", FormatPercentage(r.DebtToIncome))
		fmt.Fprintf(tw, "Income multiple:\t%sx\n", r.AffordabilityMultiple.StringFixed(2))
		fmt.Fprintf(tw, "Limited by:\t%s\n", r.LimitedBy)
	case *domain.InflationResult:
		fmt.Fprintf(tw, "INFLATION (%s)\n", r.Index)
		fmt.Fprintf(tw, "%s in %d:\t%s in %d\n", FormatCurrency(r.OriginalAmount), r.FromYear, FormatCurrency(r.AdjustedAmount), r.ToYear)
		fmt.Fprintf(tw, "Cumulative inflation:\t%s\n", FormatPercentage(r.CumulativeInflation))
		fmt.Fprintf(tw, "Annualised inflation:\t%s\n", FormatPercentage(r.AnnualisedInflation))
	case *domain.RepaymentScheduleResult:
		fmt.Fprintf(tw, "STUDENT LOAN (%s at %s)\n", r.Plan, FormatPercentage(r.InterestRate))
		if r.Cleared {
			fmt.Fprintf(tw, "Cleared after:\t%d months\n", r.MonthsToClear)
		} else {
			fmt.Fprintf(tw, "Written off:\t%s\n", FormatCurrency(r.WrittenOff))
		}
		fmt.Fprintf(tw, "Total repaid:\t%s\n", FormatCurrency(r.TotalRepaid))
		fmt.Fprintf(tw, "Total interest:\t%s\n", FormatCurrency(r.TotalInterest))
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "Year\tSalary\tRepaid\tInterest\tBalance")
		for _, y := range r.Years {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", y.Year, FormatCurrency(y.Salary), FormatCurrency(y.Repaid), FormatCurrency(y.Interest), FormatCurrency(y.ClosingBalance))
		}
	default:
		return fmt.Errorf("no console layout for %T", result)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}
