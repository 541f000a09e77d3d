package calculation

import (
	"github.com/capexplan/capex-calculator/internal/domain"
	"github.com/capexplan/capex-calculator/pkg/money"
	"github.com/shopspring/decimal"
)

// ProjectRevenue builds the contract revenue ledger. Billed capacity never falls below the
// take-or-pay floor; the one-time charges are billed in the first contract year only.
func ProjectRevenue(c domain.RevenueContract) (*domain.RevenueResult, error) {
	if err := ValidateContract(&c); err != nil {
		return nil, err
	}

	oneTime := c.OneTimeCharge()
	ancillaryAnnual := money.Annual(c.AncillaryMonthlyFee)

	result := &domain.RevenueResult{Years: make([]domain.RevenueYear, 0, c.TermYears)}
	cumulative := decimal.Zero

	for y := 0; y < c.TermYears; y++ {
		actual := c.OccupancyFor(y)
		effective := money.Max(c.TakeOrPayFraction, actual)
		floorApplied := c.TakeOrPayFraction.GreaterThan(actual)

		growth := money.GrowthFactor(c.Escalation, y)
		rate := c.MonthlyRatePerUnit.Mul(growth)
		billed := effective.Mul(c.TotalCapacity)

		capacityRevenue := money.Annual(billed.Mul(rate))
		ancillary := ancillaryAnnual.Mul(growth)
		recurring := capacityRevenue.Add(ancillary)

		uplift := decimal.Zero
		if floorApplied {
			uplift = money.Annual(effective.Sub(actual).Mul(c.TotalCapacity).Mul(rate))
		}

		yearOneTime := decimal.Zero
		if y == 0 {
			yearOneTime = oneTime
		}

		total := recurring.Add(yearOneTime)
		cumulative = cumulative.Add(total)

		result.Years = append(result.Years, domain.RevenueYear{
			Year:               y + 1,
			ActualOccupancy:    actual,
			EffectiveOccupancy: effective,
			FloorApplied:       floorApplied,
			BilledCapacity:     billed,
			EscalatedRate:      rate,
			CapacityRevenue:    capacityRevenue,
			AncillaryRevenue:   ancillary,
			RecurringRevenue:   recurring,
			OneTimeRevenue:     yearOneTime,
			TotalRevenue:       total,
			CumulativeRevenue:  cumulative,
			TakeOrPayUplift:    uplift,
		})

		result.TotalRecurring = result.TotalRecurring.Add(recurring)
		result.TakeOrPayUplift = result.TakeOrPayUplift.Add(uplift)
	}

	result.TotalOneTime = oneTime
	result.LifetimeRevenue = cumulative

	contractMonths := decimal.NewFromInt(int64(c.TermYears * 12))
	result.BlendedEffectiveRate = cumulative.Div(contractMonths.Mul(c.TotalCapacity))

	return result, nil
}
