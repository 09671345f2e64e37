package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTaxYear(t *testing.T) {
	tests := []struct {
		key     string
		want    TaxYear
		wantErr bool
	}{
		{"", LatestTaxYear, false},
		{"2024/25", TaxYear2024, false},
		{"2024-25", TaxYear2024, false},
		{"24/25", TaxYear2024, false},
		{" 2025/26 ", TaxYear2025, false},
		{"2023/24", "", true},
		{"2026/27", "", true},
		{"next year", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, err := ParseTaxYear(tt.key)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrUnsupportedTaxYear))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.IsSupported())
		})
	}
	assert.Equal(t, []TaxYear{TaxYear2024, TaxYear2025}, SupportedTaxYears())
}

func TestValidationError(t *testing.T) {
	err := fmt.Errorf("scenario %q: %w", "x", NewValidationError("salary", ErrNegativeIncome))
	assert.True(t, IsValidationError(err))
	assert.True(t, errors.Is(err, ErrNegativeIncome))
	assert.Contains(t, err.Error(), "salary: income cannot be negative")

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "salary", ve.Field)

	assert.False(t, IsValidationError(errors.New("disk full")))
	assert.False(t, IsValidationError(nil))
}

func TestTaxBreakdown(t *testing.T) {
	tb := TaxBreakdown{}
	tb.Add("higher_rate", decimal.NewFromInt(100))
	tb.Add("basic_rate", decimal.NewFromInt(50))
	tb.Add("basic_rate", decimal.NewFromInt(25))

	assert.True(t, tb.Total().Equal(decimal.NewFromInt(175)))
	assert.Equal(t, []string{"basic_rate", "higher_rate"}, tb.Bands())
}

func TestTaxBandsScale(t *testing.T) {
	bands := TaxBands{
		Bands: []TaxBand{{Name: "basic", Width: decimal.NewFromInt(37700), Rate: decimal.RequireFromString("0.2")}},
		Top:   TaxBand{Name: "higher", Rate: decimal.RequireFromString("0.4")},
	}
	scaled := bands.Scale(decimal.NewFromInt(1).Div(decimal.NewFromInt(12)))
	assert.True(t, scaled.Bands[0].Width.Equal(decimal.NewFromInt(3142)), "rounded up to whole pounds")
	assert.True(t, bands.Bands[0].Width.Equal(decimal.NewFromInt(37700)), "original untouched")

	b, ok := scaled.Band("higher")
	require.True(t, ok)
	assert.True(t, b.Rate.Equal(decimal.RequireFromString("0.4")))
	_, ok = scaled.Band("starter")
	assert.False(t, ok)
}

func TestConstantsCloneAndOverride(t *testing.T) {
	c := TaxYearConstants{
		PersonalAllowance: decimal.NewFromInt(12570),
		TaperThreshold:    decimal.NewFromInt(100000),
		TaperRate:         decimal.RequireFromString("0.5"),
		UKBands:           TaxBands{Bands: []TaxBand{{Name: "basic", Width: decimal.NewFromInt(37700)}}},
		StudentLoans:      map[StudentLoanPlan]StudentLoanPlanRule{Plan2: {Threshold: decimal.NewFromInt(28470)}},
	}
	assert.True(t, c.AllowanceLossLimit().Equal(decimal.NewFromInt(125140)))

	clone := c.Clone()
	clone.UKBands.Bands[0].Width = decimal.Zero
	clone.StudentLoans[Plan1] = StudentLoanPlanRule{}
	assert.True(t, c.UKBands.Bands[0].Width.Equal(decimal.NewFromInt(37700)))
	assert.Len(t, c.StudentLoans, 1)

	pa := decimal.NewFromInt(13000)
	out := RateOverride{PersonalAllowance: &pa}.Apply(c)
	assert.True(t, out.PersonalAllowance.Equal(pa))
	assert.True(t, c.PersonalAllowance.Equal(decimal.NewFromInt(12570)))
	assert.True(t, out.TaperThreshold.Equal(c.TaperThreshold))
}

func TestCompoundingPeriods(t *testing.T) {
	assert.Equal(t, 12, CompoundMonthly.PeriodsPerYear())
	assert.Equal(t, 4, CompoundQuarterly.PeriodsPerYear())
	assert.Equal(t, 1, CompoundAnnually.PeriodsPerYear())
	assert.Equal(t, 365, CompoundDaily.PeriodsPerYear())
	assert.Equal(t, 0, CompoundingFrequency("fortnightly").PeriodsPerYear())
}
