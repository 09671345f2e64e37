package calculation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukcalc/personal-finance/internal/domain"
)

func TestLoadIndex(t *testing.T) {
	for _, idx := range []domain.PriceIndex{domain.IndexCPI, domain.IndexRPI} {
		series, err := LoadIndex(idx)
		require.NoError(t, err)
		assert.Equal(t, idx, series.Index)
		years := series.Years()
		require.NotEmpty(t, years)
		assert.Equal(t, 2000, years[0])
		assert.Equal(t, 2024, years[len(years)-1])
	}

	_, err := LoadIndex("hicp")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAdjustForInflation(t *testing.T) {
	res, err := AdjustForInflation(domain.InflationInputs{Amount: dec("100"), FromYear: 2015, ToYear: 2024})
	require.NoError(t, err)
	assert.Equal(t, domain.IndexCPI, res.Index)
	assertDecimal(t, "133.90", res.AdjustedAmount)
	assertDecimal(t, "33.90", res.CumulativeInflation)
	assertDecimal(t, "3.30", res.AnnualisedInflation)

	back, err := AdjustForInflation(domain.InflationInputs{Amount: dec("133.90"), FromYear: 2024, ToYear: 2015})
	require.NoError(t, err)
	assertDecimal(t, "100", back.AdjustedAmount)

	same, err := AdjustForInflation(domain.InflationInputs{Amount: dec("50"), FromYear: 2020, ToYear: 2020, Index: domain.IndexRPI})
	require.NoError(t, err)
	assertDecimal(t, "50", same.AdjustedAmount)
	assertDecimal(t, "0", same.AnnualisedInflation)
}

func TestAdjustForInflationErrors(t *testing.T) {
	tests := []struct {
		name  string
		in    domain.InflationInputs
		field string
	}{
		{"negative amount", domain.InflationInputs{Amount: dec("-1"), FromYear: 2015, ToYear: 2024}, "amount"},
		{"year before data", domain.InflationInputs{Amount: dec("1"), FromYear: 1990, ToYear: 2024}, "from_year"},
		{"year after data", domain.InflationInputs{Amount: dec("1"), FromYear: 2015, ToYear: 2099}, "to_year"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := AdjustForInflation(tt.in)
			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}

	_, err := AdjustForInflation(domain.InflationInputs{Amount: dec("1"), FromYear: 1990, ToYear: 2024})
	assert.ErrorIs(t, err, domain.ErrUnknownIndexYear)
}
