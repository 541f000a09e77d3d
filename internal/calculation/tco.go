package calculation

import (
	"math"

	"github.com/capexplan/capex-calculator/internal/domain"
)

// Parameter names understood by AnnualizedTCO
const (
	ParamHeadcount         = "headcount"
	ParamAverageSalary     = "average_salary"
	ParamTurnoverRate      = "turnover_rate"
	ParamReplacementCost   = "replacement_cost_factor" // cost of replacing a leaver, as a fraction of salary
	ParamMaintenanceRate   = "maintenance_rate"        // annual maintenance as a fraction of capex
	ParamITLoadKW          = "it_load_kw"
	ParamPUE               = "pue"
	ParamElectricityRate   = "electricity_rate" // per kWh
	ParamCapex             = "capex"
	ParamAmortizationYears = "amortization_years"
	ParamDiscountRate      = "discount_rate"
	ParamTaxRate           = "tax_rate"
)

const hoursPerYear = 8760

// AnnualizedTCO is a closed-form approximation of the yearly cost of running a facility:
// staffing, staff turnover, maintenance, energy and capex amortized at the discount rate less
// the depreciation tax shield. It is deliberately cheaper than a full cash flow projection.
// Missing parameters count as zero.
func AnnualizedTCO(v domain.ParameterVector) float64 {
	headcount := v[ParamHeadcount]
	salary := v[ParamAverageSalary]

	staffing := headcount * salary
	turnover := headcount * v[ParamTurnoverRate] * salary * v[ParamReplacementCost]
	maintenance := v[ParamCapex] * v[ParamMaintenanceRate]
	energy := v[ParamITLoadKW] * v[ParamPUE] * hoursPerYear * v[ParamElectricityRate]
	capital := amortizedCapex(v[ParamCapex], v[ParamDiscountRate], v[ParamAmortizationYears], v[ParamTaxRate])

	return staffing + turnover + maintenance + energy + capital
}

// amortizedCapex spreads capex with the capital recovery factor and subtracts the
// straight-line depreciation tax shield.
func amortizedCapex(capex, rate, years, taxRate float64) float64 {
	if capex == 0 || years <= 0 {
		return 0
	}
	crf := 1 / years
	if rate != 0 {
		crf = rate / (1 - math.Pow(1+rate, -years))
	}
	shield := capex / years * taxRate
	return capex*crf - shield
}

// DefaultTCODescriptors is the perturbation table for AnnualizedTCO.
func DefaultTCODescriptors() []domain.ParameterDescriptor {
	zero, one, minYears := 0.0, 1.0, 1.0
	return []domain.ParameterDescriptor{
		{Name: ParamHeadcount, Label: "Headcount", Floor: &one},
		{Name: ParamAverageSalary, Label: "Average salary"},
		{Name: ParamTurnoverRate, Label: "Staff turnover rate", Floor: &zero, Ceiling: &one},
		{Name: ParamReplacementCost, Label: "Replacement cost factor", Floor: &zero},
		{Name: ParamMaintenanceRate, Label: "Maintenance rate", Floor: &zero},
		{Name: ParamITLoadKW, Label: "IT load (kW)"},
		{Name: ParamPUE, Label: "PUE", Floor: &one},
		{Name: ParamElectricityRate, Label: "Electricity rate", Floor: &zero},
		{Name: ParamCapex, Label: "Capex"},
		{Name: ParamAmortizationYears, Label: "Amortization period", Floor: &minYears},
		{Name: ParamDiscountRate, Label: "Discount rate (WACC)", Floor: &zero},
		{Name: ParamTaxRate, Label: "Tax rate", Floor: &zero, Ceiling: &one},
	}
}
