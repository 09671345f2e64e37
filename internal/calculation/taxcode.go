package calculation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/ukcalc/personal-finance/internal/domain"
)

// TaxCodeKind classifies a parsed PAYE tax code.
type TaxCodeKind int

const (
	// KindStandard is the year's standard code (e.g. 1257L) or no code at all.
	KindStandard TaxCodeKind = iota
	// KindExact is one of the fixed codes: BR, D0, D1, NT, 0T and their S/C variants.
	KindExact
	// KindNegative is a K code, which adds to taxable income.
	KindNegative
	// KindPersonalised is <digits><L|M|N|T> with a non-standard allowance.
	KindPersonalised
	// KindUnknown is anything that could not be classified.
	KindUnknown
)

func (k TaxCodeKind) String() string {
	switch k {
	case KindStandard:
		return "standard"
	case KindExact:
		return "exact"
	case KindNegative:
		return "negative"
	case KindPersonalised:
		return "personalised"
	default:
		return "unknown"
	}
}

// Region is the jurisdiction prefix of a tax code.
type Region string

const (
	RegionUK       Region = ""
	RegionScotland Region = "S"
	RegionWales    Region = "C"
)

// TaxCode is a classified tax code.
type TaxCode struct {
	Raw        string
	Normalised string
	Kind       TaxCodeKind
	Region     Region
	Emergency  bool
	// Allowance is set for negative and personalised codes (and 0T).
	Allowance decimal.Decimal
	Suffix    string

	flatBand string
	flatRate decimal.Decimal
	noTax    bool
	zeroT    bool
}

// TaxCodeSettings is what the rest of the calculation needs to know about a code.
type TaxCodeSettings struct {
	ApplyAllowance    bool
	FlatRate          *decimal.Decimal
	FlatRateBand      string
	NoTax             bool
	ForceScottish     bool
	AllowanceOverride *decimal.Decimal
	Emergency         bool
	Negative          bool
}

// exactCode describes a fixed code. band is resolved against the rate table.
type exactCode struct {
	region   Region
	band     string
	scottish bool
	noTax    bool
	zeroT    bool
}

var exactCodes = map[string]exactCode{
	"BR":  {band: BandBasic},
	"D0":  {band: BandHigher},
	"D1":  {band: BandAdditional},
	"NT":  {noTax: true},
	"0T":  {zeroT: true},
	"SBR": {region: RegionScotland, band: BandScottishBasic, scottish: true},
	"SD0": {region: RegionScotland, band: BandScottishIntermediate, scottish: true},
	"SD1": {region: RegionScotland, band: BandScottishHigher, scottish: true},
	"SD2": {region: RegionScotland, band: BandScottishAdvanced, scottish: true},
	"SD3": {region: RegionScotland, band: BandScottishTop, scottish: true},
	"SNT": {region: RegionScotland, noTax: true},
	"S0T": {region: RegionScotland, zeroT: true},
	"CBR": {region: RegionWales, band: BandBasic},
	"CD0": {region: RegionWales, band: BandHigher},
	"CD1": {region: RegionWales, band: BandAdditional},
	"CNT": {region: RegionWales, noTax: true},
	"C0T": {region: RegionWales, zeroT: true},
}

var emergencySuffixes = []string{"W1", "M1", "X"}

// NormaliseTaxCode upper-cases a code and removes whitespace.
func NormaliseTaxCode(raw string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' {
			return -1
		}
		return r
	}, strings.ToUpper(strings.TrimSpace(raw)))
}

// ParseTaxCode classifies raw against rates. An empty code is the standard
// code. Codes that cannot be classified return a KindUnknown code together
// with an error wrapping domain.ErrInvalidTaxCode.
func ParseTaxCode(raw string, rates *domain.TaxYearConstants) (TaxCode, error) {
	code := NormaliseTaxCode(raw)
	if code == "" {
		return TaxCode{Raw: raw, Kind: KindStandard}, nil
	}

	if tc, ok := classifyTaxCode(code, rates); ok {
		tc.Raw = raw
		return tc, nil
	}
	for _, suffix := range emergencySuffixes {
		base := strings.TrimSuffix(code, suffix)
		if base == code || base == "" {
			continue
		}
		if tc, ok := classifyTaxCode(base, rates); ok {
			tc.Raw = raw
			tc.Normalised = code
			tc.Emergency = true
			return tc, nil
		}
	}
	return TaxCode{Raw: raw, Normalised: code, Kind: KindUnknown},
		fmt.Errorf("%w: %q", domain.ErrInvalidTaxCode, raw)
}

func classifyTaxCode(code string, rates *domain.TaxYearConstants) (TaxCode, bool) {
	if ex, ok := exactCodes[code]; ok {
		tc := TaxCode{Normalised: code, Kind: KindExact, Region: ex.region, noTax: ex.noTax, zeroT: ex.zeroT}
		if ex.band != "" {
			bands := rates.UKBands
			if ex.scottish {
				bands = rates.ScottishBands
			}
			band, found := bands.Band(ex.band)
			if !found {
				return TaxCode{}, false
			}
			tc.flatBand = band.Name
			tc.flatRate = band.Rate
		}
		return tc, true
	}

	region, rest := splitRegion(code)

	// Bare suffix, e.g. "L" or "SL", means the standard allowance.
	if rest == "L" {
		return TaxCode{Normalised: code, Kind: KindStandard, Region: region, Suffix: "L"}, true
	}

	if strings.HasPrefix(rest, "K") {
		n, ok := parseDigits(rest[1:])
		if !ok {
			return TaxCode{}, false
		}
		return TaxCode{
			Normalised: code,
			Kind:       KindNegative,
			Region:     region,
			Allowance:  decimal.NewFromInt(n).Mul(decimal.NewFromInt(10)).Neg(),
			Suffix:     "K",
		}, true
	}

	if len(rest) < 2 {
		return TaxCode{}, false
	}
	suffix := rest[len(rest)-1:]
	if !strings.ContainsAny(suffix, "LMNT") {
		return TaxCode{}, false
	}
	n, ok := parseDigits(rest[:len(rest)-1])
	if !ok {
		return TaxCode{}, false
	}
	allowance := decimal.NewFromInt(n).Mul(decimal.NewFromInt(10))
	kind := KindPersonalised
	if suffix == "L" && allowance.Equal(rates.PersonalAllowance) {
		kind = KindStandard
	}
	return TaxCode{Normalised: code, Kind: kind, Region: region, Allowance: allowance, Suffix: suffix}, true
}

func splitRegion(code string) (Region, string) {
	switch {
	case strings.HasPrefix(code, "S"):
		return RegionScotland, code[1:]
	case strings.HasPrefix(code, "C"):
		return RegionWales, code[1:]
	}
	return RegionUK, code
}

func parseDigits(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Settings derives the calculation flags for the code.
func (tc TaxCode) Settings() TaxCodeSettings {
	s := TaxCodeSettings{
		ApplyAllowance: true,
		ForceScottish:  tc.Region == RegionScotland,
		Emergency:      tc.Emergency,
		Negative:       tc.Kind == KindNegative,
	}
	switch tc.Kind {
	case KindExact:
		switch {
		case tc.noTax:
			s.ApplyAllowance = false
			s.NoTax = true
		case tc.zeroT:
			zero := decimal.Zero
			s.AllowanceOverride = &zero
		default:
			rate := tc.flatRate
			s.ApplyAllowance = false
			s.FlatRate = &rate
			s.FlatRateBand = tc.flatBand
		}
	case KindNegative, KindPersonalised:
		allowance := tc.Allowance
		s.AllowanceOverride = &allowance
	}
	return s
}

// String returns the normalised code, or the standard code for the year when empty.
func (tc TaxCode) String() string {
	if tc.Normalised == "" {
		return "standard"
	}
	return tc.Normalised
}

// StandardTaxCode renders the year's standard code, e.g. 1257L.
func StandardTaxCode(rates *domain.TaxYearConstants) string {
	return rates.PersonalAllowance.Div(decimal.NewFromInt(10)).Floor().String() + "L"
}
