package calculation

import (
	"github.com/capexplan/capex-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// CompareTaxScenarios projects the same project twice, once with the tax holiday applied to
// its first HolidayYears and once at the standard rate throughout, and values the incentive.
func CompareTaxScenarios(in domain.TaxScenarioInput) (*domain.TaxScenarioResult, error) {
	return compareTaxScenarios(&in, IRRConfig{})
}

func compareTaxScenarios(in *domain.TaxScenarioInput, irrCfg IRRConfig) (*domain.TaxScenarioResult, error) {
	a := &in.Assumptions
	if err := ValidateAssumptions(a); err != nil {
		return nil, err
	}
	if err := ValidateIncentive(in); err != nil {
		return nil, err
	}

	holidayYears := in.Incentive.HolidayYears
	holidayRate := in.Incentive.HolidayRate
	withRate := func(year int) decimal.Decimal {
		if year < holidayYears {
			return holidayRate
		}
		return in.StandardRate
	}

	with := taxBranch(buildSeries(a, withRate), irrCfg)
	without := taxBranch(buildSeries(a, flatTaxRate(in.StandardRate)), irrCfg)

	years := make([]domain.TaxYear, len(with.Series.Years))
	savingsNPV := decimal.Zero
	for i := range with.Series.Years {
		w := with.Series.Years[i]
		wo := without.Series.Years[i]
		savings := wo.Tax.Sub(w.Tax)
		discounted := savings.Div(w.DiscountFactor)
		savingsNPV = savingsNPV.Add(discounted)
		years[i] = domain.TaxYear{
			Year:                w.Year,
			RateWithIncentive:   w.TaxRate,
			TaxWithIncentive:    w.Tax,
			TaxWithoutIncentive: wo.Tax,
			Savings:             savings,
			DiscountedSavings:   discounted,
		}
	}

	irrDelta := decimal.Zero
	irrDeltaValid := with.IRR.Converged && without.IRR.Converged
	if irrDeltaValid {
		irrDelta = ratePercent(with.IRR.Rate).Sub(ratePercent(without.IRR.Rate))
	}

	importDuty := a.Capex.Mul(in.Incentive.ImportDutyExemptionPct)
	landSubsidy := a.Capex.Mul(in.Incentive.LandSubsidyPct)

	return &domain.TaxScenarioResult{
		WithIncentive:       with,
		WithoutIncentive:    without,
		Years:               years,
		TaxSavingsNPV:       savingsNPV,
		ImportDutyExemption: importDuty,
		LandSubsidy:         landSubsidy,
		TotalIncentiveValue: savingsNPV.Add(importDuty).Add(landSubsidy),
		NPVDelta:            with.NPV.Sub(without.NPV),
		IRRDelta:            irrDelta,
		IRRDeltaValid:       irrDeltaValid,
		TotalTaxDelta:       with.TotalTax.Sub(without.TotalTax),
	}, nil
}

func taxBranch(series domain.CashflowSeries, irrCfg IRRConfig) domain.TaxBranch {
	totalTax := decimal.Zero
	for _, y := range series.Years {
		totalTax = totalTax.Add(y.Tax)
	}
	return domain.TaxBranch{
		NPV:      seriesNPV(&series),
		IRR:      SolveIRR(series.Flows(), irrCfg),
		TotalTax: totalTax,
		Series:   series,
	}
}
