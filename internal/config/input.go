package config

import (
	"fmt"
	"os"

	"github.com/capexplan/capex-calculator/internal/calculation"
	"github.com/capexplan/capex-calculator/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of input configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads configuration from a YAML file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if len(config.Scenarios) == 0 && len(config.RevenueContracts) == 0 {
		return fmt.Errorf("no scenarios or revenue contracts provided")
	}

	seen := make(map[string]bool, len(config.Scenarios))
	for i := range config.Scenarios {
		scenario := &config.Scenarios[i]
		if err := ip.validateScenario(scenario); err != nil {
			return fmt.Errorf("scenario %d validation failed: %w", i, err)
		}
		if seen[scenario.Name] {
			return fmt.Errorf("duplicate scenario name %q", scenario.Name)
		}
		seen[scenario.Name] = true
	}

	seen = make(map[string]bool, len(config.RevenueContracts))
	for i := range config.RevenueContracts {
		contract := &config.RevenueContracts[i]
		if contract.Name == "" {
			return fmt.Errorf("revenue contract %d validation failed: contract name is required", i)
		}
		if err := calculation.ValidateContract(&contract.Contract); err != nil {
			return fmt.Errorf("revenue contract %d validation failed: %w", i, err)
		}
		if seen[contract.Name] {
			return fmt.Errorf("duplicate revenue contract name %q", contract.Name)
		}
		seen[contract.Name] = true
	}

	if config.Sensitivity != nil {
		if err := ip.validateSensitivity(config.Sensitivity); err != nil {
			return fmt.Errorf("sensitivity validation failed: %w", err)
		}
	}

	return nil
}

// validateScenario validates a single scenario
func (ip *InputParser) validateScenario(scenario *domain.ProjectScenario) error {
	if scenario.Name == "" {
		return fmt.Errorf("scenario name is required")
	}
	if err := calculation.ValidateAssumptions(&scenario.Assumptions); err != nil {
		return err
	}
	if scenario.TaxIncentive != nil {
		in := domain.TaxScenarioInput{
			Assumptions:  scenario.Assumptions,
			Incentive:    *scenario.TaxIncentive,
			StandardRate: scenario.Assumptions.TaxRate,
		}
		if err := calculation.ValidateIncentive(&in); err != nil {
			return err
		}
	}
	return nil
}

// validateSensitivity validates the tornado analysis block
func (ip *InputParser) validateSensitivity(sc *domain.SensitivityConfig) error {
	if sc.Perturbation < 0 || sc.Perturbation >= 1 {
		return fmt.Errorf("perturbation must be between 0 and 1, got %g", sc.Perturbation)
	}
	if len(sc.Nominal) == 0 {
		return fmt.Errorf("nominal parameter values are required")
	}
	for _, d := range sc.Parameters {
		if d.Name == "" {
			return fmt.Errorf("parameter name is required")
		}
		if d.Floor != nil && d.Ceiling != nil && *d.Floor > *d.Ceiling {
			return fmt.Errorf("parameter %s: floor %g is above ceiling %g", d.Name, *d.Floor, *d.Ceiling)
		}
		if d.Scale < 0 {
			return fmt.Errorf("parameter %s: scale cannot be negative", d.Name)
		}
	}
	return nil
}

// CreateExampleConfiguration creates an example configuration file
func (ip *InputParser) CreateExampleConfiguration() *domain.Configuration {
	d := decimal.RequireFromString
	ramp := []decimal.Decimal{d("0.25"), d("0.5"), d("0.7"), d("0.85"), d("0.95")}

	base := domain.FinancialAssumptions{
		Capex:               d("50000000"),
		AnnualOpex:          d("5000000"),
		RevenueRatePerMonth: d("150"),
		Capacity:            d("2000"),
		DiscountRate:        d("0.10"),
		HorizonYears:        10,
		RevenueEscalation:   d("0.03"),
		OpexEscalation:      d("0.04"),
		OccupancyRamp:       ramp,
		TaxRate:             d("0.25"),
		DepreciationYears:   15,
	}

	expansion := base
	expansion.Capex = d("65000000")
	expansion.Capacity = d("3000")
	expansion.HorizonYears = 15

	return &domain.Configuration{
		Scenarios: []domain.ProjectScenario{
			{Name: "Phase 1 Build", Assumptions: base},
			{
				Name:        "Phase 1 Build with Tax Holiday",
				Assumptions: base,
				TaxIncentive: &domain.TaxIncentive{
					HolidayYears:           5,
					HolidayRate:            d("0"),
					ImportDutyExemptionPct: d("0.05"),
					LandSubsidyPct:         d("0.02"),
				},
			},
			{Name: "Full Campus", Assumptions: expansion},
		},
		RevenueContracts: []domain.NamedContract{
			{
				Name: "Anchor Tenant",
				Contract: domain.RevenueContract{
					TotalCapacity:       d("500"),
					TermYears:           5,
					SetupFeePerUnit:     d("250"),
					FitOutFee:           d("150000"),
					CrossConnectFee:     d("12000"),
					MonthlyRatePerUnit:  d("180"),
					AncillaryMonthlyFee: d("4000"),
					Escalation:          d("0.03"),
					TakeOrPayFraction:   d("0.6"),
					OccupancyRamp:       []decimal.Decimal{d("0.3"), d("0.55"), d("0.8"), d("0.9")},
				},
			},
		},
		Sensitivity: &domain.SensitivityConfig{
			Perturbation: calculation.DefaultPerturbation,
			Nominal: domain.ParameterVector{
				calculation.ParamHeadcount:         45,
				calculation.ParamAverageSalary:     62000,
				calculation.ParamTurnoverRate:      0.12,
				calculation.ParamReplacementCost:   0.5,
				calculation.ParamMaintenanceRate:   0.025,
				calculation.ParamITLoadKW:          4000,
				calculation.ParamPUE:               1.45,
				calculation.ParamElectricityRate:   0.09,
				calculation.ParamCapex:             50000000,
				calculation.ParamAmortizationYears: 15,
				calculation.ParamDiscountRate:      0.10,
				calculation.ParamTaxRate:           0.25,
			},
		},
	}
}
