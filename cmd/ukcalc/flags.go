package main

import (
	"github.com/shopspring/decimal"
	"github.com/ukcalc/personal-finance/pkg/money"
)

// decimalValue lets a decimal.Decimal be bound as a command-line flag.
type decimalValue struct {
	d *decimal.Decimal
}

func newDecimalValue(p *decimal.Decimal, def decimal.Decimal) *decimalValue {
	*p = def
	return &decimalValue{d: p}
}

func (v *decimalValue) String() string {
	if v.d == nil {
		return "0"
	}
	return v.d.String()
}

func (v *decimalValue) Set(s string) error {
	d, err := money.Parse(s)
	if err != nil {
		return err
	}
	*v.d = d
	return nil
}

func (v *decimalValue) Type() string { return "decimal" }
