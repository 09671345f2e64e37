package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ukcalc/personal-finance/internal/calculation"
	"github.com/ukcalc/personal-finance/internal/config"
	"github.com/ukcalc/personal-finance/internal/logging"
	"go.uber.org/zap"
)

// app is the state shared by every subcommand once settings are loaded.
type app struct {
	configPath string
	logLevel   string
	logFormat  string
	format     string

	settings *config.Settings
	logger   *zap.Logger
	engine   *calculation.CalculationEngine
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "ukcalc",
		Short:         "UK take-home pay and personal finance calculators",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "settings file (default ./ukcalc.yaml)")
	pf.StringVar(&a.logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	pf.StringVar(&a.logFormat, "log-format", "", "log format override (console, json)")
	pf.StringVarP(&a.format, "format", "f", "console", "output format (console, console-lite, json, csv, detailed-csv)")

	root.AddCommand(
		newTakeHomeCmd(a),
		newCompoundCmd(a),
		newPCPCmd(a),
		newHPCmd(a),
		newMortgageCmd(a),
		newInflationCmd(a),
		newStudentLoanCmd(a),
		newServeCmd(a),
		newExampleCmd(a),
		newValidateCmd(a),
	)
	return root
}

// setup loads settings, applies flag overrides and builds the logger and engine.
func (a *app) setup(cmd *cobra.Command) error {
	settings, err := config.LoadSettings(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		settings.Logging.Level = a.logLevel
	}
	if a.logFormat != "" {
		settings.Logging.Format = a.logFormat
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(settings.Logging.Level, settings.Logging.Format)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	rates := calculation.NewRateTable()
	if settings.RatesFile != "" {
		overrides, err := config.LoadRateOverrides(settings.RatesFile)
		if err != nil {
			return err
		}
		if rates, err = rates.WithOverrides(overrides); err != nil {
			return err
		}
		logger.Info("rate overrides applied", zap.String("file", settings.RatesFile), zap.Int("years", len(overrides)))
	}

	engine := calculation.NewCalculationEngineWithRates(rates)
	engine.DefaultYear = settings.DefaultTaxYear()
	engine.Debug = settings.DebugEnabled()
	engine.SetLogger(calculation.NewZapLogger(logger))

	a.settings = settings
	a.logger = logger
	a.engine = engine
	logger.Debug("settings loaded",
		zap.String("command", cmd.Name()),
		zap.String("default_tax_year", string(engine.DefaultYear)),
	)
	return nil
}
