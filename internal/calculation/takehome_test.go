package calculation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukcalc/personal-finance/internal/domain"
)

func calculate(t *testing.T, in domain.TaxInputs) *domain.TaxResult {
	t.Helper()
	res, err := NewCalculationEngine().CalculateTaxes(context.Background(), in)
	require.NoError(t, err)
	return res
}

func TestCalculateTaxesBasicRate(t *testing.T) {
	res := calculate(t, domain.TaxInputs{Salary: dec("50000"), TaxYear: "2024/25"})

	assert.Equal(t, domain.TaxYear2024, res.TaxYear)
	assert.Equal(t, "1257L", res.TaxCode)
	assertDecimal(t, "12570", res.Allowance.Total)
	assertDecimal(t, "37430", res.TaxableIncome)
	assertDecimal(t, "7486", res.IncomeTax.Total)
	assertDecimal(t, "2994.40", res.NationalInsurance)
	assertDecimal(t, "10480.40", res.TotalDeductions)
	assertDecimal(t, "39519.60", res.TakeHome.Annual)

	assertDecimal(t, "4166.67", res.RegularMonth.Gross)
	assertDecimal(t, "623.83", res.RegularMonth.IncomeTax)
	assertDecimal(t, "249.53", res.RegularMonth.NationalInsurance)
	assertDecimal(t, "3293.31", res.RegularMonth.TakeHome)
	assertDecimal(t, "3293.31", res.TakeHome.Monthly)
	assertDecimal(t, "759.99", res.TakeHome.Weekly)
	assert.Nil(t, res.BonusMonth)
}

func TestCalculateTaxesScenarios(t *testing.T) {
	tests := []struct {
		name     string
		in       domain.TaxInputs
		tax      string
		ni       string
		loans    string
		takeHome string
	}{
		{
			name:     "scottish taxpayer",
			in:       domain.TaxInputs{Salary: dec("50000"), Scottish: true, TaxYear: "2025/26"},
			tax:      "9013.80",
			ni:       "2994.40",
			loans:    "0",
			takeHome: "37991.80",
		},
		{
			name:     "plan 2 student loan",
			in:       domain.TaxInputs{Salary: dec("30000"), StudentLoanPlans: []domain.StudentLoanPlan{domain.Plan2}, TaxYear: "2025/26"},
			tax:      "3486",
			ni:       "1394.40",
			loans:    "132",
			takeHome: "24987.60",
		},
		{
			name:     "no national insurance",
			in:       domain.TaxInputs{Salary: dec("50000"), NoNI: true, TaxYear: "2025/26"},
			tax:      "7486",
			ni:       "0",
			loans:    "0",
			takeHome: "42514",
		},
		{
			name:     "basic rate code",
			in:       domain.TaxInputs{Salary: dec("30000"), TaxCode: "BR", TaxYear: "2025/26"},
			tax:      "6000",
			ni:       "1394.40",
			loans:    "0",
			takeHome: "22605.60",
		},
		{
			name:     "K code",
			in:       domain.TaxInputs{Salary: dec("30000"), TaxCode: "K100", TaxYear: "2025/26"},
			tax:      "6200",
			ni:       "1394.40",
			loans:    "0",
			takeHome: "22405.60",
		},
		{
			name:     "emergency code taxed month one",
			in:       domain.TaxInputs{Salary: dec("36000"), TaxCode: "1257L W1", TaxYear: "2025/26"},
			tax:      "4684.80",
			ni:       "1874.40",
			loans:    "0",
			takeHome: "29440.80",
		},
		{
			name:     "zero salary",
			in:       domain.TaxInputs{TaxYear: "2025/26"},
			tax:      "0",
			ni:       "0",
			loans:    "0",
			takeHome: "0",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := calculate(t, tt.in)
			assertDecimal(t, tt.tax, res.IncomeTax.Total, "tax")
			assertDecimal(t, tt.ni, res.NationalInsurance, "ni")
			assertDecimal(t, tt.loans, res.StudentLoan.Annual, "loans")
			assertDecimal(t, tt.takeHome, res.TakeHome.Annual, "take-home")
			assert.True(t, res.IncomeTax.Breakdown.Total().Equal(res.IncomeTax.Total) || res.IncomeTax.Total.IsZero(),
				"breakdown sums to total")
		})
	}
}

func TestCalculateTaxesEmergencyMonth(t *testing.T) {
	res := calculate(t, domain.TaxInputs{Salary: dec("36000"), TaxCode: "1257L W1", TaxYear: "2025/26"})
	assertDecimal(t, "390.40", res.RegularMonth.IncomeTax)
	assert.Equal(t, "1257LW1", res.TaxCode)
}

func TestCalculateTaxesPensions(t *testing.T) {
	tests := []struct {
		name     string
		pension  domain.PensionConfig
		cost     string
		relief   string
		takeHome string
	}{
		{
			name:     "salary sacrifice",
			pension:  domain.PensionConfig{Scheme: domain.SchemeSalarySacrifice, Value: dec("5")},
			cost:     "2000",
			relief:   "0",
			takeHome: "30879.60",
		},
		{
			name:     "auto-enrolment net pay",
			pension:  domain.PensionConfig{Scheme: domain.SchemeAutoEnrolment, Value: dec("5")},
			cost:     "1688",
			relief:   "0",
			takeHome: "30969.20",
		},
		{
			name:     "relief at source",
			pension:  domain.PensionConfig{Scheme: domain.SchemeReliefAtSource, Value: dec("5")},
			cost:     "1350.40",
			relief:   "337.60",
			takeHome: "30968.80",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.pension
			res := calculate(t, domain.TaxInputs{Salary: dec("40000"), TaxYear: "2025/26", Pension: &p})
			assertDecimal(t, tt.cost, res.Pension.TakeHomeCost, "cost")
			assertDecimal(t, tt.relief, res.Pension.TaxRelief, "relief")
			assertDecimal(t, tt.takeHome, res.TakeHome.Annual, "take-home")
			assert.Equal(t, tt.pension.Scheme, res.Pension.Scheme)
		})
	}
}

func TestCalculateTaxesBonusMonth(t *testing.T) {
	res := calculate(t, domain.TaxInputs{
		Salary:           dec("60000"),
		Bonus:            dec("10000"),
		StudentLoanPlans: []domain.StudentLoanPlan{domain.Plan2},
		TaxYear:          "2025/26",
	})
	require.NotNil(t, res.BonusMonth)

	assertDecimal(t, "15432", res.IncomeTax.Total)
	assertDecimal(t, "952.67", res.RegularMonth.IncomeTax)
	assertDecimal(t, "4952.63", res.BonusMonth.IncomeTax)
	assertDecimal(t, "267.54", res.RegularMonth.NationalInsurance)
	assertDecimal(t, "467.54", res.BonusMonth.NationalInsurance)
	assertDecimal(t, "3410.48", res.NationalInsurance)
	assertDecimal(t, "236", res.RegularMonth.StudentLoan)
	assertDecimal(t, "1136", res.BonusMonth.StudentLoan)
	assertDecimal(t, "5000", res.RegularMonth.Gross)
	assertDecimal(t, "15000", res.BonusMonth.Gross)
	assertDecimal(t, "0", res.IncomeTax.AllowanceLossTax)

	// Eleven regular months plus the bonus month make up the year.
	for name, pair := range map[string][3]string{
		"gross":     {res.RegularMonth.Gross.String(), res.BonusMonth.Gross.String(), res.Gross.Total.String()},
		"tax":       {res.RegularMonth.IncomeTax.String(), res.BonusMonth.IncomeTax.String(), res.IncomeTax.Total.String()},
		"ni":        {res.RegularMonth.NationalInsurance.String(), res.BonusMonth.NationalInsurance.String(), res.NationalInsurance.String()},
		"loans":     {res.RegularMonth.StudentLoan.String(), res.BonusMonth.StudentLoan.String(), res.StudentLoan.Annual.String()},
		"take-home": {res.RegularMonth.TakeHome.String(), res.BonusMonth.TakeHome.String(), res.TakeHome.Annual.String()},
	} {
		sum := dec(pair[0]).Mul(eleven).Add(dec(pair[1]))
		assertDecimal(t, pair[2], sum, name)
	}
}

func TestCalculateTaxesBonusAllowanceLoss(t *testing.T) {
	res := calculate(t, domain.TaxInputs{Salary: dec("95000"), Bonus: dec("15000"), TaxYear: "2025/26"})
	assertDecimal(t, "7570", res.Allowance.Total)
	assertDecimal(t, "5000", res.Allowance.TaperReduction)
	assertDecimal(t, "33432", res.IncomeTax.Total)
	assertDecimal(t, "2000", res.IncomeTax.AllowanceLossTax)
}

func TestCalculateTaxesValidation(t *testing.T) {
	tests := []struct {
		name  string
		in    domain.TaxInputs
		field string
		err   error
	}{
		{"negative salary", domain.TaxInputs{Salary: dec("-1")}, "salary", domain.ErrNegativeIncome},
		{"negative bonus", domain.TaxInputs{Bonus: dec("-1")}, "bonus", domain.ErrNegativeIncome},
		{"unsupported year", domain.TaxInputs{TaxYear: "2019/20"}, "tax_year", domain.ErrUnsupportedTaxYear},
		{"unknown plan", domain.TaxInputs{StudentLoanPlans: []domain.StudentLoanPlan{"plan3"}}, "student_loan_plans", domain.ErrUnknownPlan},
		{"bad marriage allowance", domain.TaxInputs{MarriageAllowance: "both"}, "marriage_allowance", domain.ErrInvalidInput},
		{"bad tax code", domain.TaxInputs{TaxCode: "QQ12"}, "tax_code", domain.ErrInvalidTaxCode},
		{"unknown scheme", domain.TaxInputs{Pension: &domain.PensionConfig{Scheme: "stakeholder"}}, "pension.scheme", domain.ErrUnknownPensionScheme},
		{
			"bad value type",
			domain.TaxInputs{Pension: &domain.PensionConfig{Scheme: domain.SchemePersonal, ValueType: "ratio"}},
			"pension.value_type", domain.ErrInvalidInput,
		},
		{
			"percentage above 100",
			domain.TaxInputs{Salary: dec("30000"), Pension: &domain.PensionConfig{Scheme: domain.SchemeSalarySacrifice, Value: dec("150")}},
			"pension.value", domain.ErrInvalidInput,
		},
		{
			"bad earnings basis",
			domain.TaxInputs{Pension: &domain.PensionConfig{Scheme: domain.SchemeSalarySacrifice, Value: dec("5"), EarningsBasis: "gross"}},
			"pension.earnings_basis", domain.ErrInvalidInput,
		},
		{
			"bad frequency",
			domain.TaxInputs{Pension: &domain.PensionConfig{Scheme: domain.SchemePersonal, Frequency: "weekly"}},
			"pension.frequency", domain.ErrInvalidInput,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCalculationEngine().CalculateTaxes(context.Background(), tt.in)
			require.Error(t, err)

			var ve *domain.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.field, ve.Field)
			assert.True(t, errors.Is(err, tt.err))
			assert.True(t, domain.IsValidationError(err))
		})
	}
}

func TestCalculateTaxesCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewCalculationEngine().CalculateTaxes(ctx, domain.TaxInputs{Salary: dec("30000")})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDefaultTaxYear(t *testing.T) {
	t.Cleanup(func() { SetNowFunc(time.Now) })

	tests := []struct {
		name string
		now  time.Time
		want domain.TaxYear
	}{
		{"inside 2024/25", time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), domain.TaxYear2024},
		{"5 April belongs to the earlier year", time.Date(2025, time.April, 5, 12, 0, 0, 0, time.UTC), domain.TaxYear2024},
		{"6 April starts the next year", time.Date(2025, time.April, 6, 0, 0, 0, 0, time.UTC), domain.TaxYear2025},
		{"unsupported future year falls back", time.Date(2031, time.January, 1, 0, 0, 0, 0, time.UTC), domain.LatestTaxYear},
		{"unsupported past year falls back", time.Date(2015, time.January, 1, 0, 0, 0, 0, time.UTC), domain.LatestTaxYear},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetNowFunc(func() time.Time { return tt.now })
			assert.Equal(t, tt.want, DefaultTaxYear())
		})
	}

	SetNowFunc(func() time.Time { return time.Date(2024, time.September, 1, 0, 0, 0, 0, time.UTC) })
	res := calculate(t, domain.TaxInputs{Salary: dec("30000")})
	assert.Equal(t, domain.TaxYear2024, res.TaxYear)

	ce := NewCalculationEngine()
	ce.DefaultYear = domain.TaxYear2025
	res, err := ce.CalculateTaxes(context.Background(), domain.TaxInputs{Salary: dec("30000")})
	require.NoError(t, err)
	assert.Equal(t, domain.TaxYear2025, res.TaxYear)
}
