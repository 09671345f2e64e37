package calculation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukcalc/personal-finance/internal/domain"
)

func TestParseTaxCode(t *testing.T) {
	rates := mustRates(t, domain.TaxYear2025)

	tests := []struct {
		name      string
		raw       string
		kind      TaxCodeKind
		region    Region
		emergency bool
		allowance string // expected override, "" for none
		flatRate  string
		flatBand  string
		noTax     bool
	}{
		{name: "empty is standard", raw: "", kind: KindStandard},
		{name: "standard code", raw: "1257L", kind: KindStandard},
		{name: "lower case and spaces", raw: " 1257 l ", kind: KindStandard},
		{name: "bare L", raw: "L", kind: KindStandard},
		{name: "scottish standard", raw: "S1257L", kind: KindStandard, region: RegionScotland},
		{name: "welsh standard", raw: "C1257L", kind: KindStandard, region: RegionWales},
		{name: "personalised", raw: "1100L", kind: KindPersonalised, allowance: "11000"},
		{name: "standard allowance with T suffix is personalised", raw: "1257T", kind: KindPersonalised, allowance: "12570"},
		{name: "marriage recipient", raw: "1383M", kind: KindPersonalised, allowance: "13830"},
		{name: "marriage transferor", raw: "1131N", kind: KindPersonalised, allowance: "11310"},
		{name: "K code", raw: "K475", kind: KindNegative, allowance: "-4750"},
		{name: "scottish K code", raw: "SK100", kind: KindNegative, region: RegionScotland, allowance: "-1000"},
		{name: "BR", raw: "BR", kind: KindExact, flatRate: "0.2", flatBand: BandBasic},
		{name: "D0", raw: "D0", kind: KindExact, flatRate: "0.4", flatBand: BandHigher},
		{name: "D1", raw: "D1", kind: KindExact, flatRate: "0.45", flatBand: BandAdditional},
		{name: "SBR", raw: "SBR", kind: KindExact, region: RegionScotland, flatRate: "0.2", flatBand: BandScottishBasic},
		{name: "SD1", raw: "SD1", kind: KindExact, region: RegionScotland, flatRate: "0.42", flatBand: BandScottishHigher},
		{name: "SD3", raw: "SD3", kind: KindExact, region: RegionScotland, flatRate: "0.48", flatBand: BandScottishTop},
		{name: "CBR", raw: "CBR", kind: KindExact, region: RegionWales, flatRate: "0.2", flatBand: BandBasic},
		{name: "NT", raw: "NT", kind: KindExact, noTax: true},
		{name: "0T", raw: "0T", kind: KindExact, allowance: "0"},
		{name: "S0T", raw: "S0T", kind: KindExact, region: RegionScotland, allowance: "0"},
		{name: "week one", raw: "1257L W1", kind: KindStandard, emergency: true},
		{name: "month one", raw: "1257LM1", kind: KindStandard, emergency: true},
		{name: "X suffix", raw: "1257LX", kind: KindStandard, emergency: true},
		{name: "emergency BR", raw: "BR M1", kind: KindExact, emergency: true, flatRate: "0.2", flatBand: BandBasic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, err := ParseTaxCode(tt.raw, rates)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, code.Kind, "kind")
			assert.Equal(t, tt.region, code.Region, "region")

			s := code.Settings()
			assert.Equal(t, tt.emergency, s.Emergency, "emergency")
			assert.Equal(t, tt.region == RegionScotland, s.ForceScottish, "force scottish")
			assert.Equal(t, tt.noTax, s.NoTax, "no tax")
			assert.Equal(t, tt.kind == KindNegative, s.Negative, "negative")

			if tt.allowance == "" {
				assert.Nil(t, s.AllowanceOverride, "no override expected")
			} else {
				require.NotNil(t, s.AllowanceOverride)
				assertDecimal(t, tt.allowance, *s.AllowanceOverride)
			}
			if tt.flatRate == "" {
				assert.Nil(t, s.FlatRate)
			} else {
				require.NotNil(t, s.FlatRate)
				assertDecimal(t, tt.flatRate, *s.FlatRate)
				assert.Equal(t, tt.flatBand, s.FlatRateBand)
				assert.False(t, s.ApplyAllowance)
			}
		})
	}
}

func TestParseTaxCodeInvalid(t *testing.T) {
	rates := mustRates(t, domain.TaxYear2025)
	for _, raw := range []string{"XYZ", "12A", "K", "L1257", "1257", "S", "KABC", "1257LW2"} {
		t.Run(raw, func(t *testing.T) {
			code, err := ParseTaxCode(raw, rates)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidTaxCode))
			assert.Equal(t, KindUnknown, code.Kind)
		})
	}
}

func TestStandardTaxCode(t *testing.T) {
	assert.Equal(t, "1257L", StandardTaxCode(mustRates(t, domain.TaxYear2025)))
}
