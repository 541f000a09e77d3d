package calculation

import (
	"github.com/capexplan/capex-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// LocatePayback finds the first fractional year at which a cumulative cash position turns
// non-negative. cumulative[y] is the position at the end of 0-based year y and flows[y] the
// flow of that year. Within the crossing year the position is interpolated linearly.
//
// When no crossing occurs, or the crossing year's flow is not positive (inconsistent input),
// the result is not reached and Years equals the horizon length.
func LocatePayback(cumulative, flows []decimal.Decimal) domain.Payback {
	notReached := domain.Payback{Years: decimal.NewFromInt(int64(len(cumulative)))}

	for y, cum := range cumulative {
		if cum.IsNegative() {
			continue
		}
		if y >= len(flows) {
			return notReached
		}

		flow := flows[y]
		prev := cum.Sub(flow)
		if !prev.IsNegative() {
			return domain.Payback{Years: decimal.NewFromInt(int64(y)), Reached: true}
		}
		if !flow.IsPositive() {
			return notReached
		}

		fraction := prev.Abs().Div(flow)
		return domain.Payback{Years: decimal.NewFromInt(int64(y)).Add(fraction), Reached: true}
	}

	return notReached
}
