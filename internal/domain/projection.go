package domain

import (
	"github.com/shopspring/decimal"
)

// YearRecord represents one projection year of the cash flow ledger
type YearRecord struct {
	Year      int             `json:"year"` // 1-based
	Occupancy decimal.Decimal `json:"occupancy"`

	Revenue       decimal.Decimal `json:"revenue"`
	Opex          decimal.Decimal `json:"opex"`
	Depreciation  decimal.Decimal `json:"depreciation"`
	EBITDA        decimal.Decimal `json:"ebitda"`
	TaxableIncome decimal.Decimal `json:"taxable_income"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
	Tax           decimal.Decimal `json:"tax"`
	NetIncome     decimal.Decimal `json:"net_income"`
	FreeCashFlow  decimal.Decimal `json:"free_cash_flow"`

	CumulativeCashFlow           decimal.Decimal `json:"cumulative_cash_flow"`
	DiscountFactor               decimal.Decimal `json:"discount_factor"`
	DiscountedCashFlow           decimal.Decimal `json:"discounted_cash_flow"`
	CumulativeDiscountedCashFlow decimal.Decimal `json:"cumulative_discounted_cash_flow"`
}

// CashflowSeries is the chronological ledger plus the year-0 investment outflow
type CashflowSeries struct {
	Investment decimal.Decimal `json:"investment"` // positive amount spent in year 0
	Years      []YearRecord    `json:"years"`
}

// Flows returns the raw cash flow series with the investment as a negative flow at index 0.
func (cs *CashflowSeries) Flows() []float64 {
	flows := make([]float64, len(cs.Years)+1)
	flows[0] = cs.Investment.Neg().InexactFloat64()
	for i, y := range cs.Years {
		flows[i+1] = y.FreeCashFlow.InexactFloat64()
	}
	return flows
}

// FreeCashFlows returns the per-year free cash flow column.
func (cs *CashflowSeries) FreeCashFlows() []decimal.Decimal {
	out := make([]decimal.Decimal, len(cs.Years))
	for i, y := range cs.Years {
		out[i] = y.FreeCashFlow
	}
	return out
}

// DiscountedCashFlows returns the per-year discounted free cash flow column.
func (cs *CashflowSeries) DiscountedCashFlows() []decimal.Decimal {
	out := make([]decimal.Decimal, len(cs.Years))
	for i, y := range cs.Years {
		out[i] = y.DiscountedCashFlow
	}
	return out
}

// CumulativeCashFlows returns the running simple cash position per year.
func (cs *CashflowSeries) CumulativeCashFlows() []decimal.Decimal {
	out := make([]decimal.Decimal, len(cs.Years))
	for i, y := range cs.Years {
		out[i] = y.CumulativeCashFlow
	}
	return out
}

// CumulativeDiscountedCashFlows returns the running discounted cash position per year.
func (cs *CashflowSeries) CumulativeDiscountedCashFlows() []decimal.Decimal {
	out := make([]decimal.Decimal, len(cs.Years))
	for i, y := range cs.Years {
		out[i] = y.CumulativeDiscountedCashFlow
	}
	return out
}

// Payback is a fractional payback period. Reached is false when the cumulative position never
// turns non-negative within the horizon; Years then holds the horizon length.
type Payback struct {
	Years   decimal.Decimal `json:"years"`
	Reached bool            `json:"reached"`
}

// IRRResult is the tagged outcome of the internal rate of return solver
type IRRResult struct {
	Rate       float64 `json:"rate"`
	Converged  bool    `json:"converged"`
	Iterations int     `json:"iterations"`
}

// FinancialResult aggregates the investment metrics of one projection
type FinancialResult struct {
	NPV                decimal.Decimal `json:"npv"`
	IRR                decimal.Decimal `json:"irr"` // percent
	IRRConverged       bool            `json:"irr_converged"`
	IRRIterations      int             `json:"irr_iterations"`
	ROI                decimal.Decimal `json:"roi"` // percent
	SimplePayback      Payback         `json:"simple_payback"`
	DiscountedPayback  Payback         `json:"discounted_payback"`
	ProfitabilityIndex decimal.Decimal `json:"profitability_index"`
	TotalRevenue       decimal.Decimal `json:"total_revenue"`
	TotalProfit        decimal.Decimal `json:"total_profit"`
	AnnualDepreciation decimal.Decimal `json:"annual_depreciation"`
	BreakEvenOccupancy decimal.Decimal `json:"break_even_occupancy"`
	Series             CashflowSeries  `json:"series"`
}

// RevenueYear is one contract year of the revenue ledger
type RevenueYear struct {
	Year               int             `json:"year"` // 1-based
	ActualOccupancy    decimal.Decimal `json:"actual_occupancy"`
	EffectiveOccupancy decimal.Decimal `json:"effective_occupancy"`
	FloorApplied       bool            `json:"floor_applied"`
	BilledCapacity     decimal.Decimal `json:"billed_capacity"`
	EscalatedRate      decimal.Decimal `json:"escalated_rate"`
	CapacityRevenue    decimal.Decimal `json:"capacity_revenue"`
	AncillaryRevenue   decimal.Decimal `json:"ancillary_revenue"`
	RecurringRevenue   decimal.Decimal `json:"recurring_revenue"`
	OneTimeRevenue     decimal.Decimal `json:"one_time_revenue"`
	TotalRevenue       decimal.Decimal `json:"total_revenue"`
	CumulativeRevenue  decimal.Decimal `json:"cumulative_revenue"`
	TakeOrPayUplift    decimal.Decimal `json:"take_or_pay_uplift"`
}

// RevenueResult holds the contract revenue ledger plus lifetime totals
type RevenueResult struct {
	Years                []RevenueYear   `json:"years"`
	TotalRecurring       decimal.Decimal `json:"total_recurring"`
	TotalOneTime         decimal.Decimal `json:"total_one_time"`
	LifetimeRevenue      decimal.Decimal `json:"lifetime_revenue"`
	TakeOrPayUplift      decimal.Decimal `json:"take_or_pay_uplift"`
	BlendedEffectiveRate decimal.Decimal `json:"blended_effective_rate"` // per unit per month
}

// TaxYear compares the tax paid in one year with and without the incentive
type TaxYear struct {
	Year                int             `json:"year"`
	RateWithIncentive   decimal.Decimal `json:"rate_with_incentive"`
	TaxWithIncentive    decimal.Decimal `json:"tax_with_incentive"`
	TaxWithoutIncentive decimal.Decimal `json:"tax_without_incentive"`
	Savings             decimal.Decimal `json:"savings"`
	DiscountedSavings   decimal.Decimal `json:"discounted_savings"`
}

// TaxBranch is one side of the tax incentive comparison
type TaxBranch struct {
	NPV      decimal.Decimal `json:"npv"`
	IRR      IRRResult       `json:"irr"`
	TotalTax decimal.Decimal `json:"total_tax"`
	Series   CashflowSeries  `json:"series"`
}

// TaxScenarioResult reports the value of a tax incentive package
type TaxScenarioResult struct {
	WithIncentive    TaxBranch `json:"with_incentive"`
	WithoutIncentive TaxBranch `json:"without_incentive"`
	Years            []TaxYear `json:"years"`

	TaxSavingsNPV       decimal.Decimal `json:"tax_savings_npv"`
	ImportDutyExemption decimal.Decimal `json:"import_duty_exemption"`
	LandSubsidy         decimal.Decimal `json:"land_subsidy"`
	TotalIncentiveValue decimal.Decimal `json:"total_incentive_value"`

	NPVDelta      decimal.Decimal `json:"npv_delta"`
	IRRDelta      decimal.Decimal `json:"irr_delta"`       // percentage points, zero unless IRRDeltaValid
	IRRDeltaValid bool            `json:"irr_delta_valid"` // both branch IRRs converged
	TotalTaxDelta decimal.Decimal `json:"total_tax_delta"`
}

// ScenarioSummary is the evaluated outcome of one configured project scenario
type ScenarioSummary struct {
	Name             string             `json:"name"`
	Result           FinancialResult    `json:"result"`
	BreakEven        *BreakEvenResult   `json:"break_even,omitempty"`
	TaxComparison    *TaxScenarioResult `json:"tax_comparison,omitempty"`
	AssumptionsNotes []string           `json:"assumptions"`
}

// BreakEvenResult is the flat occupancy at which a project's NPV reaches zero
type BreakEvenResult struct {
	Occupancy  decimal.Decimal `json:"occupancy"`
	Reached    bool            `json:"reached"`
	NPV        decimal.Decimal `json:"npv"`
	Iterations int             `json:"iterations"`
}

// ContractSummary is the evaluated outcome of one configured revenue contract
type ContractSummary struct {
	Name   string        `json:"name"`
	Result RevenueResult `json:"result"`
}

// PortfolioReport collects everything evaluated from one configuration file
type PortfolioReport struct {
	RunID       string              `json:"run_id"`
	Scenarios   []ScenarioSummary   `json:"scenarios"`
	Contracts   []ContractSummary   `json:"contracts"`
	Sensitivity []SensitivityResult `json:"sensitivity,omitempty"`
	BaseTCO     float64             `json:"base_tco,omitempty"`
}
