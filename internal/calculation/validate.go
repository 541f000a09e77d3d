package calculation

import (
	"fmt"

	"github.com/capexplan/capex-calculator/internal/domain"
	"github.com/capexplan/capex-calculator/pkg/money"
	"github.com/shopspring/decimal"
)

var minusOne = decimal.NewFromInt(-1)

// ValidateAssumptions rejects assumptions that would otherwise produce NaN or Infinity downstream.
func ValidateAssumptions(a *domain.FinancialAssumptions) error {
	if !a.Capex.IsPositive() {
		return fmt.Errorf("%w: capex must be positive, got %s", ErrInvalidAssumptions, a.Capex)
	}
	if a.DepreciationYears <= 0 {
		return fmt.Errorf("%w: depreciation years must be positive, got %d", ErrInvalidAssumptions, a.DepreciationYears)
	}
	if a.HorizonYears <= 0 {
		return fmt.Errorf("%w: horizon years must be positive, got %d", ErrInvalidAssumptions, a.HorizonYears)
	}
	if a.DiscountRate.LessThanOrEqual(minusOne) {
		return fmt.Errorf("%w: discount rate must be greater than -100%%, got %s", ErrInvalidAssumptions, a.DiscountRate)
	}
	for i, occ := range a.OccupancyRamp {
		if !money.InUnitInterval(occ) {
			return fmt.Errorf("%w: occupancy ramp year %d must be between 0 and 1, got %s", ErrInvalidAssumptions, i+1, occ)
		}
	}
	return nil
}

// ValidateContract rejects revenue contracts that cannot be projected.
func ValidateContract(c *domain.RevenueContract) error {
	if c.TermYears <= 0 {
		return fmt.Errorf("%w: term years must be positive, got %d", ErrInvalidContract, c.TermYears)
	}
	if !c.TotalCapacity.IsPositive() {
		return fmt.Errorf("%w: total capacity must be positive, got %s", ErrInvalidContract, c.TotalCapacity)
	}
	if !money.InUnitInterval(c.TakeOrPayFraction) {
		return fmt.Errorf("%w: take-or-pay fraction must be between 0 and 1, got %s", ErrInvalidContract, c.TakeOrPayFraction)
	}
	if c.Escalation.LessThanOrEqual(minusOne) {
		return fmt.Errorf("%w: escalation must be greater than -100%%, got %s", ErrInvalidContract, c.Escalation)
	}
	for i, occ := range c.OccupancyRamp {
		if !money.InUnitInterval(occ) {
			return fmt.Errorf("%w: occupancy ramp year %d must be between 0 and 1, got %s", ErrInvalidContract, i+1, occ)
		}
	}
	return nil
}

// ValidateIncentive rejects incentive packages with out-of-range rates.
func ValidateIncentive(in *domain.TaxScenarioInput) error {
	inc := in.Incentive
	if inc.HolidayYears < 0 {
		return fmt.Errorf("%w: holiday years cannot be negative, got %d", ErrInvalidIncentive, inc.HolidayYears)
	}
	checks := []struct {
		name  string
		value decimal.Decimal
	}{
		{"holiday rate", inc.HolidayRate},
		{"standard rate", in.StandardRate},
		{"import duty exemption", inc.ImportDutyExemptionPct},
		{"land subsidy", inc.LandSubsidyPct},
	}
	for _, c := range checks {
		if !money.InUnitInterval(c.value) {
			return fmt.Errorf("%w: %s must be between 0 and 1, got %s", ErrInvalidIncentive, c.name, c.value)
		}
	}
	return nil
}
