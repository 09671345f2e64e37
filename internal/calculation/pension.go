package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/ukcalc/personal-finance/internal/domain"
	"github.com/ukcalc/personal-finance/pkg/money"
)

// PensionScheme captures how one scheme type computes a contribution and
// how that contribution interacts with tax and NI.
type PensionScheme interface {
	Type() domain.PensionSchemeType
	// Contribution is the annual gross contribution on gross annual pay.
	Contribution(gross decimal.Decimal, cfg domain.PensionConfig, rates domain.PensionRates) decimal.Decimal
	// AffectsTaxableIncome reports whether the contribution is deducted before income tax.
	AffectsTaxableIncome() bool
	// AffectsNIEligibleIncome reports whether the contribution is deducted before NI.
	AffectsNIEligibleIncome() bool
	// ReliefAtSource reports whether the provider claims basic-rate relief,
	// meaning the member pays the net amount and the gross contribution
	// reduces adjusted net income for the allowance taper.
	ReliefAtSource() bool
	// TakeHomeCost is what the contribution costs out of net pay.
	TakeHomeCost(contribution decimal.Decimal, rates domain.PensionRates) decimal.Decimal
}

type earningsRule int

const (
	// earningsConfigured follows PensionConfig.EarningsBasis, total when unset.
	earningsConfigured earningsRule = iota
	// earningsConfiguredBanded follows PensionConfig.EarningsBasis, qualifying when unset.
	earningsConfiguredBanded
	earningsQualifying
	earningsTotal
)

type pensionScheme struct {
	kind           domain.PensionSchemeType
	earnings       earningsRule
	taxable        bool
	niEligible     bool
	reliefAtSource bool
}

var pensionSchemes = map[domain.PensionSchemeType]pensionScheme{
	domain.SchemeSalarySacrifice:        {kind: domain.SchemeSalarySacrifice, earnings: earningsConfigured, taxable: true, niEligible: true},
	domain.SchemeAutoEnrolment:          {kind: domain.SchemeAutoEnrolment, earnings: earningsQualifying, taxable: true},
	domain.SchemeAutoUnbanded:           {kind: domain.SchemeAutoUnbanded, earnings: earningsTotal, taxable: true},
	domain.SchemeReliefAtSource:         {kind: domain.SchemeReliefAtSource, earnings: earningsConfiguredBanded, reliefAtSource: true},
	domain.SchemeReliefAtSourceUnbanded: {kind: domain.SchemeReliefAtSourceUnbanded, earnings: earningsTotal, reliefAtSource: true},
	domain.SchemePersonal:               {kind: domain.SchemePersonal, earnings: earningsConfigured},
}

// SchemeFor returns the scheme implementation for t.
func SchemeFor(t domain.PensionSchemeType) (PensionScheme, error) {
	s, ok := pensionSchemes[t]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownPensionScheme, t)
	}
	return s, nil
}

func (s pensionScheme) Type() domain.PensionSchemeType { return s.kind }
func (s pensionScheme) AffectsTaxableIncome() bool      { return s.taxable }
func (s pensionScheme) AffectsNIEligibleIncome() bool   { return s.niEligible }
func (s pensionScheme) ReliefAtSource() bool            { return s.reliefAtSource }

func (s pensionScheme) Contribution(gross decimal.Decimal, cfg domain.PensionConfig, rates domain.PensionRates) decimal.Decimal {
	if !cfg.Value.IsPositive() || !gross.IsPositive() {
		return decimal.Zero
	}
	if cfg.ValueType == domain.ValueFixed {
		annual := cfg.Value
		if cfg.Frequency == domain.Monthly {
			annual = money.Annual(annual)
		}
		return decimal.Min(annual, gross)
	}
	return decimal.Min(money.RoundPenny(s.base(gross, cfg, rates).Mul(money.Percent(cfg.Value))), gross)
}

func (s pensionScheme) base(gross decimal.Decimal, cfg domain.PensionConfig, rates domain.PensionRates) decimal.Decimal {
	switch s.earnings {
	case earningsQualifying:
		return QualifyingEarnings(gross, rates)
	case earningsTotal:
		return gross
	case earningsConfiguredBanded:
		if cfg.EarningsBasis == domain.BasisTotal {
			return gross
		}
		return QualifyingEarnings(gross, rates)
	}
	if cfg.EarningsBasis == domain.BasisQualifying {
		return QualifyingEarnings(gross, rates)
	}
	return gross
}

func (s pensionScheme) TakeHomeCost(contribution decimal.Decimal, rates domain.PensionRates) decimal.Decimal {
	if s.reliefAtSource {
		return contribution.Sub(contribution.Mul(rates.ReliefRate))
	}
	return contribution
}

// TaxRelief is the basic-rate relief a relief-at-source provider claims.
func TaxRelief(s PensionScheme, contribution decimal.Decimal, rates domain.PensionRates) decimal.Decimal {
	if !s.ReliefAtSource() {
		return decimal.Zero
	}
	return contribution.Mul(rates.ReliefRate)
}

// QualifyingEarnings is the part of gross pay inside the auto-enrolment band.
func QualifyingEarnings(gross decimal.Decimal, rates domain.PensionRates) decimal.Decimal {
	return money.Clamp(gross, rates.QualifyingLower, rates.QualifyingUpper).Sub(rates.QualifyingLower)
}
