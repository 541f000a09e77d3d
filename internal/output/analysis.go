package output

import (
	"sort"

	"github.com/capexplan/capex-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// Recommendation encapsulates the selection result of the best scenario.
type Recommendation struct {
	ScenarioName string
	NPV          decimal.Decimal
	IRR          decimal.Decimal
	IRRConverged bool
	// NPVMargin is the NPV lead over the runner-up (zero with a single scenario).
	NPVMargin decimal.Decimal
	Viable    bool // NPV is non-negative
}

// AnalyzeScenarios picks the scenario with the highest NPV. Ties keep configuration order.
func AnalyzeScenarios(report *domain.PortfolioReport) Recommendation {
	if len(report.Scenarios) == 0 {
		return Recommendation{}
	}
	ranked := append([]domain.ScenarioSummary(nil), report.Scenarios...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Result.NPV.GreaterThan(ranked[j].Result.NPV)
	})

	best := ranked[0]
	rec := Recommendation{
		ScenarioName: best.Name,
		NPV:          best.Result.NPV,
		IRR:          best.Result.IRR,
		IRRConverged: best.Result.IRRConverged,
		Viable:       !best.Result.NPV.IsNegative(),
	}
	if len(ranked) > 1 {
		rec.NPVMargin = best.Result.NPV.Sub(ranked[1].Result.NPV)
	}
	return rec
}
