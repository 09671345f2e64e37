package calculation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukcalc/personal-finance/internal/domain"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRunScenarios(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	ce := NewCalculationEngine()
	ce.SetLogger(NewZapLogger(zap.New(core)))
	ce.Debug = true

	cfg := &domain.Configuration{Scenarios: []domain.Scenario{
		{Name: "Base", Inputs: domain.TaxInputs{Salary: dec("50000"), TaxYear: "2024/25"}},
		{Name: "Scotland", Inputs: domain.TaxInputs{Salary: dec("50000"), Scottish: true, TaxYear: "2025/26"}},
	}}
	report, err := ce.RunScenarios(context.Background(), cfg)
	require.NoError(t, err)
	require.Len(t, report.Scenarios, 2)
	assert.Equal(t, "Base", report.Scenarios[0].Name)
	assert.Equal(t, "Scotland", report.Scenarios[1].Name)
	assert.True(t, report.Scenarios[1].Result.Scottish)

	assert.Equal(t, 2, logs.FilterMessageSnippet("take-home").Len())
	assert.Equal(t, 1, logs.FilterMessage("calculated 2 scenarios").Len())
}

func TestRunScenariosNamesFailingScenario(t *testing.T) {
	cfg := &domain.Configuration{Scenarios: []domain.Scenario{
		{Name: "ok", Inputs: domain.TaxInputs{Salary: dec("30000")}},
		{Name: "broken", Inputs: domain.TaxInputs{Salary: dec("30000"), TaxCode: "??"}},
	}}
	_, err := NewCalculationEngine().RunScenarios(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"broken"`)
	assert.ErrorIs(t, err, domain.ErrInvalidTaxCode)
	assert.True(t, domain.IsValidationError(err))
}

func TestSetLoggerNil(t *testing.T) {
	ce := NewCalculationEngine()
	ce.SetLogger(nil)
	assert.IsType(t, NopLogger{}, ce.Logger)
	assert.IsType(t, NopLogger{}, NewZapLogger(nil))
}

func TestNewCalculationEngineWithRates(t *testing.T) {
	ce := NewCalculationEngineWithRates(nil)
	require.NotNil(t, ce.Rates)
	assert.ElementsMatch(t, domain.SupportedTaxYears(), ce.Rates.Years())
}

func TestRunScenariosRecordsAppliedRates(t *testing.T) {
	pa := dec("20000")
	rates, err := NewRateTable().WithOverrides(map[domain.TaxYear]domain.RateOverride{
		domain.TaxYear2025: {PersonalAllowance: &pa},
	})
	require.NoError(t, err)

	cfg := &domain.Configuration{Scenarios: []domain.Scenario{
		{Name: "one", Inputs: domain.TaxInputs{Salary: dec("30000"), TaxYear: "2025/26"}},
		{Name: "two", Inputs: domain.TaxInputs{Salary: dec("40000"), TaxYear: "2025/26"}},
		{Name: "older", Inputs: domain.TaxInputs{Salary: dec("40000"), TaxYear: "2024/25"}},
	}}
	report, err := NewCalculationEngineWithRates(rates).RunScenarios(context.Background(), cfg)
	require.NoError(t, err)
	require.Len(t, report.Rates, 2)

	applied, ok := report.RatesFor(domain.TaxYear2025)
	require.True(t, ok)
	assertDecimal(t, "20000", applied.PersonalAllowance)
	older, ok := report.RatesFor(domain.TaxYear2024)
	require.True(t, ok)
	assertDecimal(t, "12570", older.PersonalAllowance)
}
