package main

import (
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/ukcalc/personal-finance/internal/calculation"
	"github.com/ukcalc/personal-finance/internal/domain"
	"github.com/ukcalc/personal-finance/internal/output"
)

// runCalculator wraps a standalone calculator as a RunE that renders its result.
func runCalculator[In any, Out any](a *app, in *In, calc func(In) (Out, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		res, err := calc(*in)
		if err != nil {
			return err
		}
		return output.RenderCalculation(cmd.OutOrStdout(), res, a.format)
	}
}

func newCompoundCmd(a *app) *cobra.Command {
	var in domain.CompoundInterestInputs
	cmd := &cobra.Command{
		Use:   "compound",
		Short: "Project savings with regular contributions and compound interest",
		RunE:  runCalculator(a, &in, calculation.CompoundInterest),
	}
	f := cmd.Flags()
	f.Var(newDecimalValue(&in.InitialDeposit, decimal.Zero), "initial", "initial deposit")
	f.Var(newDecimalValue(&in.MonthlyContribution, decimal.Zero), "monthly", "monthly contribution")
	f.Var(newDecimalValue(&in.AnnualRate, decimal.NewFromInt(5)), "rate", "annual interest rate, percent")
	f.IntVar(&in.Years, "years", 10, "years to project")
	f.StringVar((*string)(&in.Frequency), "compounding", string(domain.CompoundMonthly), "monthly, quarterly, annually or daily")
	return cmd
}

func newPCPCmd(a *app) *cobra.Command {
	var in domain.PCPInputs
	cmd := &cobra.Command{
		Use:   "pcp",
		Short: "Personal contract purchase car finance",
		RunE:  runCalculator(a, &in, calculation.CalculatePCP),
	}
	f := cmd.Flags()
	f.Var(newDecimalValue(&in.CarValue, decimal.Zero), "price", "car price")
	f.Var(newDecimalValue(&in.DepositPercent, decimal.NewFromInt(10)), "deposit", "deposit, percent of price")
	f.IntVar(&in.TermMonths, "term", 48, "term in months")
	f.Var(newDecimalValue(&in.APR, decimal.Zero), "apr", "APR, percent")
	f.Var(newDecimalValue(&in.RetentionPercent, decimal.Zero), "retention", "value retained at the end, percent (default by term)")
	_ = cmd.MarkFlagRequired("price")
	return cmd
}

func newHPCmd(a *app) *cobra.Command {
	var in domain.HPInputs
	cmd := &cobra.Command{
		Use:   "hp",
		Short: "Hire purchase car finance",
		RunE:  runCalculator(a, &in, calculation.CalculateHP),
	}
	f := cmd.Flags()
	f.Var(newDecimalValue(&in.CarValue, decimal.Zero), "price", "car price")
	f.Var(newDecimalValue(&in.DepositPercent, decimal.NewFromInt(10)), "deposit", "deposit, percent of price")
	f.IntVar(&in.TermMonths, "term", 48, "term in months")
	f.Var(newDecimalValue(&in.APR, decimal.Zero), "apr", "APR, percent")
	_ = cmd.MarkFlagRequired("price")
	return cmd
}

func newMortgageCmd(a *app) *cobra.Command {
	var in domain.MortgageInputs
	cmd := &cobra.Command{
		Use:   "mortgage",
		Short: "Estimate how much can be borrowed",
		RunE:  runCalculator(a, &in, calculation.MortgageAffordability),
	}
	f := cmd.Flags()
	f.Var(newDecimalValue(&in.Applicant1Salary, decimal.Zero), "salary", "first applicant's salary")
	f.Var(newDecimalValue(&in.Applicant2Salary, decimal.Zero), "second-salary", "second applicant's salary")
	f.Var(newDecimalValue(&in.DownPayment, decimal.Zero), "deposit", "deposit available")
	f.IntVar(&in.TermYears, "term", 25, "mortgage term in years")
	f.Var(newDecimalValue(&in.InterestRate, decimal.Zero), "rate", "interest rate, percent")
	f.Var(newDecimalValue(&in.MonthlyDebts, decimal.Zero), "debts", "other monthly debt payments")
	f.Var(newDecimalValue(&in.IncomeMultiple, decimal.Zero), "income-multiple", "lender income multiple (default 4.5)")
	f.Var(newDecimalValue(&in.StressBuffer, decimal.Zero), "stress-buffer", "stress test rate buffer, percent")
	f.Var(newDecimalValue(&in.MaxPaymentToIncome, decimal.Zero), "max-payment-ratio", "maximum share of gross monthly income for payments")
	return cmd
}

func newInflationCmd(a *app) *cobra.Command {
	var in domain.InflationInputs
	cmd := &cobra.Command{
		Use:   "inflation",
		Short: "Restate an amount in another year's prices",
		RunE:  runCalculator(a, &in, calculation.AdjustForInflation),
	}
	f := cmd.Flags()
	f.Var(newDecimalValue(&in.Amount, decimal.NewFromInt(100)), "amount", "amount to adjust")
	f.IntVar(&in.FromYear, "from", 2015, "year the amount is priced in")
	f.IntVar(&in.ToYear, "to", 2024, "year to restate it in")
	f.StringVar((*string)(&in.Index), "index", string(domain.IndexCPI), "cpi or rpi")
	return cmd
}

func newStudentLoanCmd(a *app) *cobra.Command {
	var (
		in   domain.RepaymentScheduleInputs
		rate string
	)
	cmd := &cobra.Command{
		Use:   "studentloan",
		Short: "Project student loan repayments until cleared or written off",
		RunE: func(cmd *cobra.Command, args []string) error {
			if rate != "" {
				r, err := decimal.NewFromString(rate)
				if err != nil {
					return domain.NewValidationError("interest_rate", domain.ErrInvalidInput)
				}
				in.InterestRate = &r
			}
			return runCalculator(a, &in, a.engine.RepaymentSchedule)(cmd, args)
		},
	}
	f := cmd.Flags()
	f.Var(newDecimalValue(&in.Balance, decimal.Zero), "balance", "outstanding balance")
	f.StringVar((*string)(&in.Plan), "plan", string(domain.Plan2), "plan1, plan2, plan4, plan5 or postgrad")
	f.Var(newDecimalValue(&in.Salary, decimal.Zero), "salary", "current salary")
	f.Var(newDecimalValue(&in.SalaryGrowth, decimal.Zero), "salary-growth", "annual salary growth, percent")
	f.StringVar(&rate, "rate", "", "interest rate, percent (default: the plan's rate)")
	f.StringVar(&in.TaxYear, "tax-year", "", "tax year for thresholds")
	return cmd
}
