package calculation

import (
	"math"
	"sort"

	"github.com/capexplan/capex-calculator/internal/domain"
)

// DefaultPerturbation is the relative swing applied to each parameter in a tornado analysis.
const DefaultPerturbation = 0.20

// CostModel maps a parameter vector to an annualized total cost of ownership
type CostModel func(domain.ParameterVector) float64

// RunSensitivity perturbs each described parameter by ±perturbation around its nominal value,
// holding every other parameter at nominal, and ranks the parameters by the absolute spread of
// the cost model between the low and high cases (largest first).
//
// Parameters that are absent from nominal or have a zero nominal value are skipped.
func RunSensitivity(nominal domain.ParameterVector, descriptors []domain.ParameterDescriptor, model CostModel, perturbation float64) []domain.SensitivityResult {
	if perturbation <= 0 {
		perturbation = DefaultPerturbation
	}
	base := model(nominal)

	results := make([]domain.SensitivityResult, 0, len(descriptors))
	for _, d := range descriptors {
		value, ok := nominal[d.Name]
		if !ok || value == 0 {
			continue
		}

		low, high := perturbedRange(d, value, perturbation)
		lowTCO := model(nominal.With(d.Name, low))
		highTCO := model(nominal.With(d.Name, high))

		results = append(results, domain.SensitivityResult{
			Name:           d.Name,
			Label:          d.DisplayLabel(),
			NominalValue:   value,
			LowValue:       low,
			HighValue:      high,
			NominalTCO:     base,
			LowTCO:         lowTCO,
			HighTCO:        highTCO,
			DeltaLowPct:    percentChange(lowTCO, base),
			DeltaHighPct:   percentChange(highTCO, base),
			AbsoluteSpread: math.Abs(highTCO - lowTCO),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].AbsoluteSpread > results[j].AbsoluteSpread
	})
	return results
}

// SkippedParameters lists the descriptors RunSensitivity would not perturb for nominal.
func SkippedParameters(nominal domain.ParameterVector, descriptors []domain.ParameterDescriptor) []string {
	var skipped []string
	for _, d := range descriptors {
		if v, ok := nominal[d.Name]; !ok || v == 0 {
			skipped = append(skipped, d.Name)
		}
	}
	return skipped
}

func perturbedRange(d domain.ParameterDescriptor, value, perturbation float64) (low, high float64) {
	step := perturbation
	if d.Scale > 0 {
		step *= d.Scale
	}
	low = value * (1 - step)
	high = value * (1 + step)
	if d.Floor != nil {
		low = math.Max(*d.Floor, low)
	}
	if d.Ceiling != nil {
		high = math.Min(*d.Ceiling, high)
	}
	return low, high
}

func percentChange(value, base float64) float64 {
	if base == 0 {
		return 0
	}
	return (value - base) / base * 100
}
