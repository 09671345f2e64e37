package calculation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukcalc/personal-finance/internal/domain"
)

func TestDefaultRetention(t *testing.T) {
	tests := []struct {
		months int
		want   string
	}{
		{12, "58"},
		{24, "58"},
		{30, "58"},
		{36, "53"},
		{48, "49"},
		{59, "49"},
		{60, "43"},
		{84, "43"},
	}
	for _, tt := range tests {
		assertDecimal(t, tt.want, DefaultRetention(tt.months), "%d months", tt.months)
	}
}

func TestCalculatePCP(t *testing.T) {
	res, err := CalculatePCP(domain.PCPInputs{
		CarValue:       dec("20000"),
		DepositPercent: dec("10"),
		TermMonths:     48,
		APR:            dec("9.9"),
	})
	require.NoError(t, err)

	assertDecimal(t, "2000", res.Deposit)
	assertDecimal(t, "18000", res.AmountFinanced)
	assertDecimal(t, "49", res.RetentionPercent)
	assertDecimal(t, "9800", res.BalloonPayment)
	assertDecimal(t, "288.43", res.MonthlyPayment)
	assertDecimal(t, "13844.64", res.TotalMonthlyPayments)
	assertDecimal(t, "25644.64", res.TotalPayable)
	assertDecimal(t, "5644.64", res.TotalInterest)
}

func TestCalculatePCPCustomRetention(t *testing.T) {
	res, err := CalculatePCP(domain.PCPInputs{
		CarValue:         dec("30000"),
		DepositPercent:   dec("20"),
		TermMonths:       36,
		RetentionPercent: dec("40"),
	})
	require.NoError(t, err)
	assertDecimal(t, "12000", res.BalloonPayment)
	// 24,000 financed less 12,000 balloon over 36 months, interest free.
	assertDecimal(t, "333.33", res.MonthlyPayment)
}

func TestCalculatePCPValidation(t *testing.T) {
	tests := []struct {
		name  string
		in    domain.PCPInputs
		field string
	}{
		{"no car value", domain.PCPInputs{TermMonths: 36}, "car_value"},
		{"deposit over 100", domain.PCPInputs{CarValue: dec("1000"), DepositPercent: dec("101"), TermMonths: 36}, "deposit_percent"},
		{"zero term", domain.PCPInputs{CarValue: dec("1000")}, "term_months"},
		{"negative apr", domain.PCPInputs{CarValue: dec("1000"), TermMonths: 36, APR: dec("-1")}, "apr"},
		{"retention over 100", domain.PCPInputs{CarValue: dec("1000"), TermMonths: 36, RetentionPercent: dec("120")}, "retention_percent"},
		{"balloon above financed amount", domain.PCPInputs{CarValue: dec("1000"), DepositPercent: dec("60"), TermMonths: 36}, "deposit_percent"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CalculatePCP(tt.in)
			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestCalculateHP(t *testing.T) {
	tests := []struct {
		name    string
		in      domain.HPInputs
		payment string
		total   string
	}{
		{
			name:    "with interest",
			in:      domain.HPInputs{CarValue: dec("18000"), TermMonths: 48, APR: dec("9.9")},
			payment: "455.66",
			total:   "21871.68",
		},
		{
			name:    "interest free",
			in:      domain.HPInputs{CarValue: dec("15000"), DepositPercent: dec("20"), TermMonths: 48},
			payment: "250",
			total:   "15000",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := CalculateHP(tt.in)
			require.NoError(t, err)
			assertDecimal(t, tt.payment, res.MonthlyPayment)
			assertDecimal(t, tt.total, res.TotalPayable)
			assert.True(t, res.BalloonPayment.IsZero())
		})
	}
}
