package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DefaultOccupancy is used for every projection year beyond the end of an occupancy ramp.
var DefaultOccupancy = decimal.NewFromFloat(0.95)

// FinancialAssumptions holds the static inputs of a capital project projection
type FinancialAssumptions struct {
	Capex               decimal.Decimal   `yaml:"capex" json:"capex"`
	AnnualOpex          decimal.Decimal   `yaml:"annual_opex" json:"annual_opex"`
	RevenueRatePerMonth decimal.Decimal   `yaml:"revenue_rate_per_month" json:"revenue_rate_per_month"` // per unit of capacity
	Capacity            decimal.Decimal   `yaml:"capacity" json:"capacity"`
	DiscountRate        decimal.Decimal   `yaml:"discount_rate" json:"discount_rate"` // WACC / hurdle rate
	HorizonYears        int               `yaml:"horizon_years" json:"horizon_years"`
	RevenueEscalation   decimal.Decimal   `yaml:"revenue_escalation" json:"revenue_escalation"`
	OpexEscalation      decimal.Decimal   `yaml:"opex_escalation" json:"opex_escalation"`
	OccupancyRamp       []decimal.Decimal `yaml:"occupancy_ramp" json:"occupancy_ramp"`
	TaxRate             decimal.Decimal   `yaml:"tax_rate" json:"tax_rate"`
	DepreciationYears   int               `yaml:"depreciation_years" json:"depreciation_years"` // straight-line period
}

// OccupancyFor returns the occupancy fraction for a 0-based projection year.
func (fa *FinancialAssumptions) OccupancyFor(year int) decimal.Decimal {
	return rampAt(fa.OccupancyRamp, year)
}

// WithFlatOccupancy returns a copy of the assumptions using the same occupancy every year.
func (fa FinancialAssumptions) WithFlatOccupancy(occupancy decimal.Decimal) FinancialAssumptions {
	ramp := make([]decimal.Decimal, fa.HorizonYears)
	for i := range ramp {
		ramp[i] = occupancy
	}
	fa.OccupancyRamp = ramp
	return fa
}

// GenerateAssumptions lists the headline assumptions in human readable form for reports
func (fa *FinancialAssumptions) GenerateAssumptions() []string {
	return []string{
		fmt.Sprintf("Discount rate (WACC): %.1f%%", pct(fa.DiscountRate)),
		fmt.Sprintf("Revenue escalation: %.1f%% annually", pct(fa.RevenueEscalation)),
		fmt.Sprintf("Opex escalation: %.1f%% annually", pct(fa.OpexEscalation)),
		fmt.Sprintf("Corporate tax rate: %.1f%%", pct(fa.TaxRate)),
		fmt.Sprintf("Straight-line depreciation over %d years", fa.DepreciationYears),
		fmt.Sprintf("Occupancy beyond ramp: %.0f%%", pct(DefaultOccupancy)),
		"No maintenance capex modeled (free cash flow equals net income)",
	}
}

// RevenueContract describes a take-or-pay capacity contract
type RevenueContract struct {
	TotalCapacity decimal.Decimal `yaml:"total_capacity" json:"total_capacity"`
	TermYears     int             `yaml:"term_years" json:"term_years"`

	// Non-recurring charges, billed once in the first contract year
	SetupFeePerUnit decimal.Decimal `yaml:"setup_fee_per_unit" json:"setup_fee_per_unit"`
	FitOutFee       decimal.Decimal `yaml:"fit_out_fee" json:"fit_out_fee"`
	CrossConnectFee decimal.Decimal `yaml:"cross_connect_fee" json:"cross_connect_fee"`

	// Recurring charges
	MonthlyRatePerUnit  decimal.Decimal `yaml:"monthly_rate_per_unit" json:"monthly_rate_per_unit"`
	AncillaryMonthlyFee decimal.Decimal `yaml:"ancillary_monthly_fee" json:"ancillary_monthly_fee"`
	Escalation          decimal.Decimal `yaml:"escalation" json:"escalation"`

	TakeOrPayFraction decimal.Decimal   `yaml:"take_or_pay_fraction" json:"take_or_pay_fraction"`
	OccupancyRamp     []decimal.Decimal `yaml:"occupancy_ramp" json:"occupancy_ramp"`
}

// OccupancyFor returns the actual (pre-floor) occupancy for a 0-based contract year.
func (rc *RevenueContract) OccupancyFor(year int) decimal.Decimal {
	return rampAt(rc.OccupancyRamp, year)
}

// OneTimeCharge is the total non-recurring charge of the contract.
func (rc *RevenueContract) OneTimeCharge() decimal.Decimal {
	return rc.SetupFeePerUnit.Mul(rc.TotalCapacity).Add(rc.FitOutFee).Add(rc.CrossConnectFee)
}

// TaxIncentive describes a tax holiday plus one-time incentives expressed as fractions of capex
type TaxIncentive struct {
	HolidayYears           int             `yaml:"holiday_years" json:"holiday_years"`
	HolidayRate            decimal.Decimal `yaml:"holiday_rate" json:"holiday_rate"`
	ImportDutyExemptionPct decimal.Decimal `yaml:"import_duty_exemption_pct" json:"import_duty_exemption_pct"`
	LandSubsidyPct         decimal.Decimal `yaml:"land_subsidy_pct" json:"land_subsidy_pct"`
}

// TaxScenarioInput is the input of a with/without incentive comparison.
// StandardRate applies to every year of the baseline branch and to post-holiday years of the incentive branch.
type TaxScenarioInput struct {
	Assumptions  FinancialAssumptions `yaml:"assumptions" json:"assumptions"`
	Incentive    TaxIncentive         `yaml:"incentive" json:"incentive"`
	StandardRate decimal.Decimal      `yaml:"standard_rate" json:"standard_rate"`
}

func rampAt(ramp []decimal.Decimal, year int) decimal.Decimal {
	if year >= 0 && year < len(ramp) {
		return ramp[year]
	}
	return DefaultOccupancy
}

func pct(d decimal.Decimal) float64 {
	return d.Mul(decimal.NewFromInt(100)).InexactFloat64()
}
