package calculation

import (
	"context"
	"fmt"

	"github.com/ukcalc/personal-finance/internal/domain"
)

// CalculationEngine orchestrates the take-home pay calculations
type CalculationEngine struct {
	Rates *RateTable
	// DefaultYear is used when inputs carry no tax year. Empty means the
	// current tax year if supported, otherwise the latest one.
	DefaultYear domain.TaxYear
	Debug       bool // Log intermediate figures at debug level
	Logger      Logger
}

// NewCalculationEngine creates an engine over the built-in rate table
func NewCalculationEngine() *CalculationEngine {
	return NewCalculationEngineWithRates(NewRateTable())
}

// NewCalculationEngineWithRates creates an engine over a custom (e.g. overridden) rate table
func NewCalculationEngineWithRates(rates *RateTable) *CalculationEngine {
	if rates == nil {
		rates = NewRateTable()
	}
	return &CalculationEngine{
		Rates:  rates,
		Logger: NopLogger{},
	}
}

// SetLogger sets the logger for the calculation engine. If nil is provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// resolveYear maps an input key to a supported year.
func (ce *CalculationEngine) resolveYear(key string) (domain.TaxYear, error) {
	if key == "" {
		if ce.DefaultYear != "" {
			return ce.DefaultYear, nil
		}
		return DefaultTaxYear(), nil
	}
	return domain.ParseTaxYear(key)
}

// RunScenario calculates a single named scenario
func (ce *CalculationEngine) RunScenario(ctx context.Context, scenario *domain.Scenario) (*domain.ScenarioResult, error) {
	result, err := ce.CalculateTaxes(ctx, scenario.Inputs)
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", scenario.Name, err)
	}
	return &domain.ScenarioResult{Name: scenario.Name, Result: result}, nil
}

// RunScenarios runs every scenario in order and returns them as a report
func (ce *CalculationEngine) RunScenarios(ctx context.Context, config *domain.Configuration) (*domain.TakeHomeReport, error) {
	report := &domain.TakeHomeReport{Scenarios: make([]domain.ScenarioResult, 0, len(config.Scenarios))}
	for i := range config.Scenarios {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res, err := ce.RunScenario(ctx, &config.Scenarios[i])
		if err != nil {
			return nil, fmt.Errorf("RunScenario failed: %w", err)
		}
		report.Scenarios = append(report.Scenarios, *res)
		if _, ok := report.RatesFor(res.Result.TaxYear); !ok {
			rates, err := ce.Rates.For(res.Result.TaxYear)
			if err != nil {
				return nil, err
			}
			report.Rates = append(report.Rates, *rates)
		}
	}
	ce.Logger.Infof("calculated %d scenarios", len(report.Scenarios))
	return report, nil
}
