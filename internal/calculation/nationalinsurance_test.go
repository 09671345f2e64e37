package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/ukcalc/personal-finance/internal/domain"
	"github.com/ukcalc/personal-finance/pkg/money"
)

func TestNationalInsuranceAnnual(t *testing.T) {
	ni := mustRates(t, domain.TaxYear2024).NationalInsurance

	tests := []struct {
		name   string
		salary string
		want   string
	}{
		{"below primary threshold", "12000", "0"},
		{"at primary threshold", "12570", "0"},
		{"main rate only", "50000", "2994.40"},
		{"at upper earnings limit", "50270", "3016"},
		{"above upper earnings limit", "60000", "3210.60"},
		{"floors each band", "12570.99", "0.07"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertDecimal(t, tt.want, NationalInsuranceAnnual(dec(tt.salary), ni))
		})
	}
}

func TestNationalInsuranceMonthly(t *testing.T) {
	ni := mustRates(t, domain.TaxYear2025).NationalInsurance

	tests := []struct {
		name string
		pay  string
		want string
	}{
		{"at monthly threshold", "1047.50", "0"},
		{"a penny over rounds down to zero", "1047.51", "0"},
		{"main rate", "2500", "116.20"},
		{"across upper limit floors each band", "5000", "267.54"},
		{"bonus month", "15000", "467.54"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertDecimal(t, tt.want, NationalInsuranceMonthly(dec(tt.pay), ni))
		})
	}
}

// Annual NI equals twelve monthly charges to within the per-band flooring.
func TestNationalInsuranceAnnualMatchesMonthly(t *testing.T) {
	ni := mustRates(t, domain.TaxYear2025).NationalInsurance
	tolerance := dec("0.24")

	for salary := int64(0); salary <= 200000; salary += 1234 {
		annual := NationalInsuranceAnnual(decimal.NewFromInt(salary), ni)
		monthly := NationalInsuranceMonthly(money.Monthly(decimal.NewFromInt(salary)), ni)
		diff := annual.Sub(money.Annual(monthly)).Abs()
		assert.True(t, diff.LessThanOrEqual(tolerance), "salary %d: annual %s monthly %s", salary, annual, monthly)
	}

	// Whole-penny monthly figures match exactly.
	exact := NationalInsuranceAnnual(dec("30000"), ni)
	assertDecimal(t, "1394.40", exact)
	assert.True(t, exact.Equal(money.Annual(NationalInsuranceMonthly(dec("2500"), ni))))
}
