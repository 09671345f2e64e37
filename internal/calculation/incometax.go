package calculation

import (
	"github.com/shopspring/decimal"
	"github.com/ukcalc/personal-finance/internal/domain"
	"github.com/ukcalc/personal-finance/pkg/money"
)

// TaxComputation is income tax with its per-band breakdown.
// Breakdown.Total() always equals Total.
type TaxComputation struct {
	Taxable   decimal.Decimal
	Total     decimal.Decimal
	Breakdown domain.TaxBreakdown
}

// TaxableIncome is income less allowance, floored at zero. A negative
// allowance (K code) increases it.
func TaxableIncome(income, allowance decimal.Decimal) decimal.Decimal {
	return money.NonNegative(income.Sub(allowance))
}

// walkBands consumes taxable income through each band in order and charges
// the remainder at the top rate.
func walkBands(taxable decimal.Decimal, bands domain.TaxBands) domain.TaxBreakdown {
	breakdown := domain.TaxBreakdown{}
	remaining := taxable
	for _, band := range bands.Bands {
		if !remaining.IsPositive() {
			return breakdown
		}
		inBand := decimal.Min(remaining, band.Width)
		breakdown.Add(band.Name, inBand.Mul(band.Rate))
		remaining = remaining.Sub(inBand)
	}
	if remaining.IsPositive() {
		breakdown.Add(bands.Top.Name, remaining.Mul(bands.Top.Rate))
	}
	return breakdown
}

// IncomeTax applies rest-of-UK bands to income after allowance.
func IncomeTax(income, allowance decimal.Decimal, bands domain.TaxBands) TaxComputation {
	taxable := TaxableIncome(income, allowance)
	breakdown := walkBands(taxable, bands)
	return TaxComputation{Taxable: taxable, Total: breakdown.Total(), Breakdown: breakdown}
}

// ScottishIncomeTax applies Scottish bands. The starter band only has room
// for income between reference and reference + starter width, so when a tax
// code gives an allowance above reference the starter band shrinks and the
// income that no longer fits is charged at the advanced rate instead.
func ScottishIncomeTax(income, allowance, reference decimal.Decimal, bands domain.TaxBands) TaxComputation {
	taxable := TaxableIncome(income, allowance)
	breakdown := walkBands(taxable, bands)
	correctStarterBand(breakdown, taxable, allowance, reference, bands)
	return TaxComputation{Taxable: taxable, Total: breakdown.Total(), Breakdown: breakdown}
}

// correctStarterBand moves starter-band income that sits below reference +
// starter width out of the starter rate and into the advanced rate.
func correctStarterBand(breakdown domain.TaxBreakdown, taxable, allowance, reference decimal.Decimal, bands domain.TaxBands) {
	if len(bands.Bands) == 0 || !allowance.GreaterThan(reference) {
		return
	}
	starter := bands.Bands[0]
	capacity := money.Clamp(reference.Add(starter.Width).Sub(allowance), decimal.Zero, starter.Width)
	excess := decimal.Min(taxable, starter.Width).Sub(capacity)
	if !excess.IsPositive() {
		return
	}
	advancedRate := bands.Top.Rate
	if adv, ok := bands.Band(BandScottishAdvanced); ok {
		advancedRate = adv.Rate
	}
	breakdown.Add(starter.Name, excess.Mul(starter.Rate).Neg())
	breakdown.Add(BandScottishAdvanced, excess.Mul(advancedRate))
}

// FlatRateTax charges all income at one rate with no allowance (BR, D0, D1 codes).
func FlatRateTax(income, rate decimal.Decimal, band string) TaxComputation {
	taxable := money.NonNegative(income)
	breakdown := domain.TaxBreakdown{}
	if taxable.IsPositive() {
		breakdown.Add(band, taxable.Mul(rate))
	}
	return TaxComputation{Taxable: taxable, Total: breakdown.Total(), Breakdown: breakdown}
}

// incomeTaxRule picks the right calculator for a set of code settings.
type incomeTaxRule struct {
	settings TaxCodeSettings
	scottish bool
	bands    domain.TaxBands
	standard decimal.Decimal
}

func newIncomeTaxRule(settings TaxCodeSettings, scottish bool, rates *domain.TaxYearConstants) incomeTaxRule {
	bands := rates.UKBands
	if scottish {
		bands = rates.ScottishBands
	}
	return incomeTaxRule{settings: settings, scottish: scottish, bands: bands, standard: rates.PersonalAllowance}
}

// differenced reports whether the tax depends on an allowance, so that an
// allowance lost to the bonus has to be separated out.
func (r incomeTaxRule) differenced() bool {
	return !r.settings.NoTax && r.settings.FlatRate == nil
}

// compute returns annual tax. The Scottish starter band is measured from the
// standard allowance only when a tax code overrides the allowance.
func (r incomeTaxRule) compute(income, allowance decimal.Decimal) TaxComputation {
	switch {
	case r.settings.NoTax:
		return TaxComputation{Taxable: decimal.Zero, Total: decimal.Zero, Breakdown: domain.TaxBreakdown{}}
	case r.settings.FlatRate != nil:
		return FlatRateTax(income, *r.settings.FlatRate, r.settings.FlatRateBand)
	case r.scottish:
		reference := allowance
		if r.settings.AllowanceOverride != nil {
			reference = r.standard
		}
		return ScottishIncomeTax(income, allowance, reference, r.bands)
	default:
		return IncomeTax(income, allowance, r.bands)
	}
}

// monthOne is PAYE tax on a single month's pay on a non-cumulative basis:
// a twelfth of the allowance, bands scaled to the month and taxable pay
// rounded down to whole pounds. The Scottish starter correction is applied
// on the same monthly scale.
func (r incomeTaxRule) monthOne(pay, annualAllowance decimal.Decimal) TaxComputation {
	switch {
	case r.settings.NoTax:
		return TaxComputation{Taxable: decimal.Zero, Total: decimal.Zero, Breakdown: domain.TaxBreakdown{}}
	case r.settings.FlatRate != nil:
		return FlatRateTax(money.FloorPound(pay), *r.settings.FlatRate, r.settings.FlatRateBand)
	}
	allowance := money.Monthly(annualAllowance)
	bands := r.bands.Scale(oneTwelfth)
	taxable := money.FloorPound(TaxableIncome(pay, allowance))
	breakdown := walkBands(taxable, bands)
	if r.scottish && r.settings.AllowanceOverride != nil {
		correctStarterBand(breakdown, taxable, allowance, money.Monthly(r.standard), bands)
	}
	return TaxComputation{Taxable: taxable, Total: breakdown.Total(), Breakdown: breakdown}
}
