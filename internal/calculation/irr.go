package calculation

import (
	"math"

	"github.com/capexplan/capex-calculator/internal/domain"
)

const (
	DefaultIRRGuess         = 0.10
	DefaultIRRMaxIterations = 200
	DefaultIRRTolerance     = 1e-7

	// derivative magnitude below which a Newton step is not attempted
	irrDerivativeFloor = 1e-12

	// Rates leaving [irrRateFloor, irrRateCeiling] are reset to irrLowReset / irrHighReset.
	irrRateFloor   = -0.99
	irrRateCeiling = 5.0
	irrLowReset    = -0.5
	irrHighReset   = 2.0
)

// IRRConfig tunes the Newton-Raphson solver. A nil Guess starts from DefaultIRRGuess;
// non-positive MaxIterations and Tolerance select their defaults.
type IRRConfig struct {
	Guess         *float64
	MaxIterations int
	Tolerance     float64
}

// WithGuess returns a copy of c starting from guess, zero included.
func (c IRRConfig) WithGuess(guess float64) IRRConfig {
	c.Guess = &guess
	return c
}

func (c IRRConfig) withDefaults() IRRConfig {
	if c.Guess == nil {
		c = c.WithGuess(DefaultIRRGuess)
	}
	if c.MaxIterations <= 0 {
		c.MaxIterations = DefaultIRRMaxIterations
	}
	if c.Tolerance <= 0 {
		c.Tolerance = DefaultIRRTolerance
	}
	return c
}

// SolveIRR finds the rate r for which the NPV of flows is zero, where flows[0] is the
// year-0 investment. The returned rate is the last iterate; Converged is true only when
// |NPV(rate)| fell below the tolerance.
func SolveIRR(flows []float64, cfg IRRConfig) domain.IRRResult {
	cfg = cfg.withDefaults()
	rate := *cfg.Guess
	if len(flows) < 2 {
		return domain.IRRResult{Rate: rate}
	}

	for i := 0; i < cfg.MaxIterations; i++ {
		npv, dnpv := npvAndDerivative(flows, rate)
		if math.Abs(npv) < cfg.Tolerance {
			return domain.IRRResult{Rate: rate, Converged: true, Iterations: i + 1}
		}
		if math.Abs(dnpv) < irrDerivativeFloor {
			return domain.IRRResult{Rate: rate, Iterations: i + 1}
		}

		next := rate - npv/dnpv
		if math.IsNaN(next) || math.IsInf(next, 0) {
			return domain.IRRResult{Rate: rate, Iterations: i + 1}
		}
		if next < irrRateFloor {
			next = irrLowReset
		} else if next > irrRateCeiling {
			next = irrHighReset
		}
		rate = next
	}

	// the final update may have landed on the root
	converged := math.Abs(NPVAt(flows, rate)) < cfg.Tolerance
	return domain.IRRResult{Rate: rate, Converged: converged, Iterations: cfg.MaxIterations}
}

// NPVAt discounts flows at rate with flows[0] undiscounted.
func NPVAt(flows []float64, rate float64) float64 {
	npv, _ := npvAndDerivative(flows, rate)
	return npv
}

func npvAndDerivative(flows []float64, rate float64) (npv, dnpv float64) {
	base := 1 + rate
	for t, flow := range flows {
		denom := math.Pow(base, float64(t))
		npv += flow / denom
		if t > 0 {
			dnpv -= float64(t) * flow / (denom * base)
		}
	}
	return npv, dnpv
}
