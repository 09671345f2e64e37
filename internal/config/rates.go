package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/ukcalc/personal-finance/internal/domain"
	"gopkg.in/yaml.v3"
)

// rateOverrideFile is the layout of a rates file:
//
//	years:
//	  "2025/26":
//	    personal_allowance: 13000
type rateOverrideFile struct {
	Years map[string]domain.RateOverride `yaml:"years"`
}

// LoadRateOverrides reads per-year rate overrides from a YAML file. Year
// keys are normalised, so "2025-26" and "2025/26" are the same year.
func LoadRateOverrides(filename string) (map[domain.TaxYear]domain.RateOverride, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read rates file %s: %w", filename, err)
	}
	return ParseRateOverrides(data)
}

// ParseRateOverrides decodes a rates document.
func ParseRateOverrides(data []byte) (map[domain.TaxYear]domain.RateOverride, error) {
	var file rateOverrideFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse rates file: %w", err)
	}
	out := make(map[domain.TaxYear]domain.RateOverride, len(file.Years))
	for key, override := range file.Years {
		year, err := domain.ParseTaxYear(key)
		if err != nil {
			return nil, fmt.Errorf("rates file: %w", err)
		}
		if _, dup := out[year]; dup {
			return nil, fmt.Errorf("rates file: year %s given twice", year)
		}
		if err := validateOverride(override); err != nil {
			return nil, fmt.Errorf("rates file %s: %w", year, err)
		}
		out[year] = override
	}
	return out, nil
}

func validateOverride(o domain.RateOverride) error {
	amounts := []struct {
		name  string
		value *decimal.Decimal
	}{
		{"personal_allowance", o.PersonalAllowance},
		{"taper_threshold", o.TaperThreshold},
		{"blind_persons_allowance", o.BlindPersonsAllowance},
		{"marriage_allowance", o.MarriageAllowance},
	}
	for _, a := range amounts {
		if a.value != nil && a.value.IsNegative() {
			return domain.NewValidationError(a.name, domain.ErrInvalidInput)
		}
	}
	for _, bands := range []*domain.TaxBands{o.UKBands, o.ScottishBands} {
		if bands == nil {
			continue
		}
		for _, b := range bands.Bands {
			if b.Name == "" || !b.Width.IsPositive() || b.Rate.IsNegative() {
				return domain.NewValidationError("bands", fmt.Errorf("%w: band %q", domain.ErrInvalidInput, b.Name))
			}
		}
		if bands.Top.Name == "" {
			return domain.NewValidationError("bands.top", domain.ErrInvalidInput)
		}
	}
	return nil
}
