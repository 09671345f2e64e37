package output

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/ukcalc/personal-finance/internal/domain"
)

// Recommendation encapsulates the selection result of the best scenario.
type Recommendation struct {
	ScenarioName     string
	Baseline         string
	AnnualTakeHome   decimal.Decimal
	TakeHomeChange   decimal.Decimal
	PercentageChange decimal.Decimal
}

// AnalyzeScenarios picks the scenario with the highest annual take-home and
// compares it with the first scenario in the report.
func AnalyzeScenarios(report *domain.TakeHomeReport) Recommendation {
	type ranked struct {
		name     string
		takeHome decimal.Decimal
	}
	var ranks []ranked
	for _, sc := range report.Scenarios {
		if sc.Result == nil {
			continue
		}
		ranks = append(ranks, ranked{sc.Name, sc.Result.TakeHome.Annual})
	}
	if len(ranks) == 0 {
		return Recommendation{}
	}
	baseline := ranks[0]
	sort.SliceStable(ranks, func(i, j int) bool { return ranks[i].takeHome.GreaterThan(ranks[j].takeHome) })
	best := ranks[0]
	delta := best.takeHome.Sub(baseline.takeHome)
	pct := decimal.Zero
	if !baseline.takeHome.IsZero() {
		pct = delta.Div(baseline.takeHome).Mul(decimalHundred)
	}
	return Recommendation{
		ScenarioName:     best.name,
		Baseline:         baseline.name,
		AnnualTakeHome:   best.takeHome,
		TakeHomeChange:   delta,
		PercentageChange: pct,
	}
}
