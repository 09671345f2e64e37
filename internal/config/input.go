package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
	"github.com/ukcalc/personal-finance/internal/domain"
	"gopkg.in/yaml.v3"
)

var knownPlans = map[domain.StudentLoanPlan]bool{
	domain.Plan1: true, domain.Plan2: true, domain.Plan4: true, domain.Plan5: true, domain.PlanPostgrad: true,
}

var knownSchemes = map[domain.PensionSchemeType]bool{
	domain.SchemeSalarySacrifice:        true,
	domain.SchemeAutoEnrolment:          true,
	domain.SchemeAutoUnbanded:           true,
	domain.SchemeReliefAtSource:         true,
	domain.SchemeReliefAtSourceUnbanded: true,
	domain.SchemePersonal:               true,
}

// InputParser handles parsing of scenario files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads scenarios from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates a scenario document. JSON documents are
// accepted as YAML. Unknown keys are rejected.
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&config); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("configuration validation failed: no scenarios provided")
		}
		return nil, fmt.Errorf("failed to parse scenarios: %w", err)
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &config, nil
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if len(config.Scenarios) == 0 {
		return fmt.Errorf("no scenarios provided")
	}

	seen := make(map[string]bool, len(config.Scenarios))
	for i := range config.Scenarios {
		scenario := &config.Scenarios[i]
		if err := ip.validateScenario(scenario); err != nil {
			return fmt.Errorf("scenario %d validation failed: %w", i, err)
		}
		if seen[scenario.Name] {
			return fmt.Errorf("scenario %d validation failed: duplicate name %q", i, scenario.Name)
		}
		seen[scenario.Name] = true
	}
	return nil
}

// validateScenario validates a single scenario's inputs
func (ip *InputParser) validateScenario(scenario *domain.Scenario) error {
	if scenario.Name == "" {
		return fmt.Errorf("scenario name is required")
	}
	in := &scenario.Inputs
	if in.Salary.IsNegative() {
		return domain.NewValidationError("salary", domain.ErrNegativeIncome)
	}
	if in.Bonus.IsNegative() {
		return domain.NewValidationError("bonus", domain.ErrNegativeIncome)
	}
	if in.TaxYear != "" {
		if _, err := domain.ParseTaxYear(in.TaxYear); err != nil {
			return domain.NewValidationError("tax_year", err)
		}
	}
	for _, plan := range in.StudentLoanPlans {
		if !knownPlans[plan] {
			return domain.NewValidationError("student_loan_plans", fmt.Errorf("%w: %s", domain.ErrUnknownPlan, plan))
		}
	}
	switch in.MarriageAllowance {
	case domain.MarriageNone, domain.MarriageTransferor, domain.MarriageRecipient:
	default:
		return domain.NewValidationError("marriage_allowance", domain.ErrInvalidInput)
	}
	if in.Pension != nil {
		if err := validatePension(in.Pension); err != nil {
			return err
		}
	}
	return nil
}

func validatePension(p *domain.PensionConfig) error {
	if !knownSchemes[p.Scheme] {
		return domain.NewValidationError("pension.scheme", fmt.Errorf("%w: %q", domain.ErrUnknownPensionScheme, p.Scheme))
	}
	if p.Value.IsNegative() {
		return domain.NewValidationError("pension.value", domain.ErrInvalidInput)
	}
	switch p.ValueType {
	case "", domain.ValuePercentage:
		if p.Value.GreaterThan(decimal.NewFromInt(100)) {
			return domain.NewValidationError("pension.value", fmt.Errorf("%w: percentage above 100", domain.ErrInvalidInput))
		}
	case domain.ValueFixed:
	default:
		return domain.NewValidationError("pension.value_type", domain.ErrInvalidInput)
	}
	switch p.Frequency {
	case "", domain.Monthly, domain.Yearly:
	default:
		return domain.NewValidationError("pension.frequency", domain.ErrInvalidInput)
	}
	switch p.EarningsBasis {
	case "", domain.BasisTotal, domain.BasisQualifying:
	default:
		return domain.NewValidationError("pension.earnings_basis", domain.ErrInvalidInput)
	}
	return nil
}

// CreateExampleConfiguration creates an example scenario file
func (ip *InputParser) CreateExampleConfiguration() *domain.Configuration {
	return &domain.Configuration{
		Scenarios: []domain.Scenario{
			{
				Name: "Graduate in London",
				Inputs: domain.TaxInputs{
					Salary:           decimal.NewFromInt(32000),
					StudentLoanPlans: []domain.StudentLoanPlan{domain.Plan2},
					TaxYear:          string(domain.LatestTaxYear),
					Pension: &domain.PensionConfig{
						Scheme:    domain.SchemeAutoEnrolment,
						Value:     decimal.NewFromInt(5),
						ValueType: domain.ValuePercentage,
					},
				},
			},
			{
				Name: "Senior engineer in Edinburgh with bonus",
				Inputs: domain.TaxInputs{
					Salary:   decimal.NewFromInt(85000),
					Bonus:    decimal.NewFromInt(12000),
					Scottish: true,
					TaxYear:  string(domain.LatestTaxYear),
					Pension: &domain.PensionConfig{
						Scheme:       domain.SchemeSalarySacrifice,
						Value:        decimal.NewFromInt(8),
						ValueType:    domain.ValuePercentage,
						IncludeBonus: true,
					},
				},
			},
			{
				Name: "Second job on BR",
				Inputs: domain.TaxInputs{
					Salary:  decimal.NewFromInt(9000),
					TaxCode: "BR",
					TaxYear: string(domain.LatestTaxYear),
				},
			},
		},
	}
}

// WriteExampleConfiguration writes the example scenarios as YAML
func (ip *InputParser) WriteExampleConfiguration(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(ip.CreateExampleConfiguration()); err != nil {
		return fmt.Errorf("failed to encode example: %w", err)
	}
	return enc.Close()
}
