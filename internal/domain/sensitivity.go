package domain

// ParameterVector holds the named inputs of a reduced-form cost model
type ParameterVector map[string]float64

// Clone returns an independent copy of the vector.
func (pv ParameterVector) Clone() ParameterVector {
	out := make(ParameterVector, len(pv))
	for k, v := range pv {
		out[k] = v
	}
	return out
}

// With returns a copy of the vector with a single parameter replaced.
func (pv ParameterVector) With(name string, value float64) ParameterVector {
	out := pv.Clone()
	out[name] = value
	return out
}

// ParameterDescriptor declares how a parameter may be perturbed in a tornado analysis.
// Floor and Ceiling clamp the perturbed values; Scale multiplies the global perturbation
// (zero means 1).
type ParameterDescriptor struct {
	Name    string   `yaml:"name" json:"name"`
	Label   string   `yaml:"label" json:"label"`
	Floor   *float64 `yaml:"floor,omitempty" json:"floor,omitempty"`
	Ceiling *float64 `yaml:"ceiling,omitempty" json:"ceiling,omitempty"`
	Scale   float64  `yaml:"scale,omitempty" json:"scale,omitempty"`
}

// DisplayLabel returns the label, falling back to the parameter name.
func (pd ParameterDescriptor) DisplayLabel() string {
	if pd.Label != "" {
		return pd.Label
	}
	return pd.Name
}

// SensitivityResult is one bar of a tornado chart
type SensitivityResult struct {
	Name  string `json:"name"`
	Label string `json:"label"`

	NominalValue float64 `json:"nominal_value"`
	LowValue     float64 `json:"low_value"`
	HighValue    float64 `json:"high_value"`

	NominalTCO float64 `json:"nominal_tco"`
	LowTCO     float64 `json:"low_tco"`
	HighTCO    float64 `json:"high_tco"`

	DeltaLowPct  float64 `json:"delta_low_pct"`
	DeltaHighPct float64 `json:"delta_high_pct"`

	AbsoluteSpread float64 `json:"absolute_spread"`
}

// SensitivityConfig configures the tornado analysis of a configuration file
type SensitivityConfig struct {
	Perturbation float64               `yaml:"perturbation" json:"perturbation"`
	Nominal      ParameterVector       `yaml:"nominal" json:"nominal"`
	Parameters   []ParameterDescriptor `yaml:"parameters,omitempty" json:"parameters,omitempty"`
}
