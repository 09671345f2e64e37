package integration

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukcalc/personal-finance/internal/calculation"
	"github.com/ukcalc/personal-finance/internal/domain"
	"github.com/ukcalc/personal-finance/internal/server"
)

func TestServerTakeHomeMatchesEngine(t *testing.T) {
	ts := httptest.NewServer(server.New(calculation.NewCalculationEngine(), nil).Handler())
	defer ts.Close()

	for _, sc := range loadReport(t).Scenarios {
		if sc.Name != "Graduate with plan 2" {
			continue
		}
		resp, err := http.Post(ts.URL+"/api/takehome", "application/json",
			strings.NewReader(`{"salary": "30000", "student_loan_plans": ["plan2"], "tax_year": "2025/26"}`))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.NotEmpty(t, resp.Header.Get(server.RequestIDHeader))

		var got domain.TaxResult
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.True(t, got.TakeHome.Annual.Equal(sc.Result.TakeHome.Annual))
		assert.True(t, got.StudentLoan.Annual.Equal(decimal.NewFromInt(132)))
	}
}
