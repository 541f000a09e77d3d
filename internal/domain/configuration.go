package domain

// ProjectScenario is a named set of project assumptions with an optional tax incentive package
type ProjectScenario struct {
	Name         string               `yaml:"name" json:"name"`
	Assumptions  FinancialAssumptions `yaml:"assumptions" json:"assumptions"`
	TaxIncentive *TaxIncentive        `yaml:"tax_incentive,omitempty" json:"tax_incentive,omitempty"`
}

// NamedContract is a revenue contract with a display name
type NamedContract struct {
	Name     string          `yaml:"name" json:"name"`
	Contract RevenueContract `yaml:"contract" json:"contract"`
}

// Configuration represents the complete input configuration
type Configuration struct {
	Scenarios        []ProjectScenario  `yaml:"scenarios" json:"scenarios"`
	RevenueContracts []NamedContract    `yaml:"revenue_contracts,omitempty" json:"revenue_contracts,omitempty"`
	Sensitivity      *SensitivityConfig `yaml:"sensitivity,omitempty" json:"sensitivity,omitempty"`
}
