package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/ukcalc/personal-finance/internal/config"
	"github.com/ukcalc/personal-finance/internal/domain"
	"github.com/ukcalc/personal-finance/internal/output"
	"go.uber.org/zap"
)

func newTakeHomeCmd(a *app) *cobra.Command {
	var (
		in        domain.TaxInputs
		plans     []string
		marriage  string
		input     string
		outputDir string
		pension   domain.PensionConfig
		scheme    string
	)
	cmd := &cobra.Command{
		Use:   "takehome",
		Short: "Calculate take-home pay for a salary or a file of scenarios",
		Example: `  ukcalc takehome --salary 50000 --tax-year 2025-26
  ukcalc takehome --salary 60000 --bonus 10000 --student-loan plan2 --pension-scheme salary_sacrifice --pension-value 5
  ukcalc takehome --input scenarios.yaml --format csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var cfg *domain.Configuration
			if input != "" {
				loaded, err := config.NewInputParser().LoadFromFile(input)
				if err != nil {
					return err
				}
				cfg = loaded
			} else {
				for _, p := range plans {
					in.StudentLoanPlans = append(in.StudentLoanPlans, domain.StudentLoanPlan(p))
				}
				in.MarriageAllowance = domain.MarriageAllowance(marriage)
				if scheme != "" {
					pension.Scheme = domain.PensionSchemeType(scheme)
					in.Pension = &pension
				}
				cfg = &domain.Configuration{Scenarios: []domain.Scenario{{Name: "Take-home", Inputs: in}}}
			}

			report, err := a.engine.RunScenarios(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			if outputDir != "" {
				files, err := output.GenerateReport(report, a.format, outputDir)
				if err != nil {
					return err
				}
				for _, f := range files {
					a.logger.Info("report written", zap.String("file", f))
					fmt.Fprintln(cmd.OutOrStdout(), f)
				}
				return nil
			}
			return output.Render(cmd.OutOrStdout(), report, a.format)
		},
	}

	f := cmd.Flags()
	f.Var(newDecimalValue(&in.Salary, decimal.Zero), "salary", "annual salary")
	f.Var(newDecimalValue(&in.Bonus, decimal.Zero), "bonus", "one-off bonus paid in a single month")
	f.StringVar(&in.TaxYear, "tax-year", "", "tax year, e.g. 2025-26 (default: current)")
	f.StringVar(&in.TaxCode, "tax-code", "", "PAYE tax code, e.g. 1257L, BR, K100, S1257L W1")
	f.StringSliceVar(&plans, "student-loan", nil, "student loan plans (plan1, plan2, plan4, plan5, postgrad)")
	f.BoolVar(&in.Scottish, "scottish", false, "use Scottish income tax bands")
	f.BoolVar(&in.NoNI, "no-ni", false, "exempt from National Insurance")
	f.BoolVar(&in.Blind, "blind", false, "claim blind person's allowance")
	f.StringVar(&marriage, "marriage-allowance", "", "transferor or recipient")
	f.StringVar(&scheme, "pension-scheme", "", "pension scheme (salary_sacrifice, auto_enrolment, relief_at_source, ...)")
	f.Var(newDecimalValue(&pension.Value, decimal.Zero), "pension-value", "pension contribution (percentage or fixed amount)")
	f.StringVar((*string)(&pension.ValueType), "pension-type", "percentage", "percentage or fixed")
	f.StringVar((*string)(&pension.Frequency), "pension-frequency", "", "frequency of a fixed contribution (monthly or yearly)")
	f.StringVar((*string)(&pension.EarningsBasis), "pension-basis", "", "earnings basis (total or qualifying)")
	f.BoolVar(&pension.IncludeBonus, "pension-include-bonus", false, "take pension from the bonus too")
	f.StringVarP(&input, "input", "i", "", "YAML or JSON scenario file")
	f.StringVarP(&outputDir, "output-dir", "o", "", "write a timestamped report file here instead of stdout")
	cmd.MarkFlagsMutuallyExclusive("input", "salary")
	return cmd
}

func newExampleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "example",
		Short: "Print an example scenario file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.NewInputParser().WriteExampleConfiguration(cmd.OutOrStdout())
		},
	}
}

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <scenario-file>",
		Short: "Check a scenario file without calculating",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d scenarios OK\n", args[0], len(cfg.Scenarios))
			return nil
		},
	}
}
