package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/capexplan/capex-calculator/internal/domain"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// ConsoleFormatter renders the full portfolio report as console tables.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string      { return "console" }
func (c ConsoleFormatter) Extension() string { return "txt" }

func (c ConsoleFormatter) Format(report *domain.PortfolioReport) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "CAPITAL PROJECT FINANCIAL ANALYSIS")
	fmt.Fprintln(&buf, strings.Repeat("=", 60))
	fmt.Fprintf(&buf, "Run: %s\n\n", report.RunID)

	for i := range report.Scenarios {
		writeScenario(&buf, &report.Scenarios[i])
	}

	if len(report.Scenarios) > 1 {
		fmt.Fprintln(&buf, renderComparison(report.Scenarios))
		fmt.Fprintln(&buf)
	}

	for i := range report.Contracts {
		writeContract(&buf, &report.Contracts[i])
	}

	if len(report.Sensitivity) > 0 {
		fmt.Fprintf(&buf, "Annualized TCO (nominal): %s\n", FormatFloatCurrency(report.BaseTCO))
		fmt.Fprintln(&buf, renderTornado(report.Sensitivity))
		fmt.Fprintln(&buf)
	}

	if rec := AnalyzeScenarios(report); rec.ScenarioName != "" {
		verdict := "does not recover its cost of capital"
		if rec.Viable {
			verdict = "creates value"
		}
		fmt.Fprintf(&buf, "Recommended: %s (NPV %s, IRR %s, %s)\n",
			rec.ScenarioName, FormatCurrency(rec.NPV), FormatIRR(rec.IRR, rec.IRRConverged), verdict)
	}
	return buf.Bytes(), nil
}

func newTable(title string) table.Writer {
	tw := table.NewWriter()
	tw.SetTitle(title)
	tw.SetStyle(table.StyleRounded)
	return tw
}

// rightAlign right-aligns every column from the given 1-based column onwards.
func rightAlign(tw table.Writer, from, columns int) {
	configs := make([]table.ColumnConfig, 0, columns)
	for n := from; n <= columns; n++ {
		configs = append(configs, table.ColumnConfig{Number: n, Align: text.AlignRight})
	}
	tw.SetColumnConfigs(configs)
}

func writeScenario(buf *bytes.Buffer, sc *domain.ScenarioSummary) {
	r := &sc.Result

	metrics := newTable(sc.Name)
	metrics.AppendHeader(table.Row{"Metric", "Value"})
	irr := FormatIRR(r.IRR, r.IRRConverged)
	if !r.IRRConverged {
		irr = fmt.Sprintf("n/a (not converged after %d iterations)", r.IRRIterations)
	}
	rows := []table.Row{
		{"Net present value", FormatCurrency(r.NPV)},
		{"Internal rate of return", irr},
		{"Return on investment", FormatPercentage(r.ROI)},
		{"Simple payback", FormatYears(r.SimplePayback.Years, r.SimplePayback.Reached)},
		{"Discounted payback", FormatYears(r.DiscountedPayback.Years, r.DiscountedPayback.Reached)},
		{"Profitability index", r.ProfitabilityIndex.StringFixed(3)},
		{"Total revenue", FormatCurrency(r.TotalRevenue)},
		{"Total profit", FormatCurrency(r.TotalProfit)},
		{"Annual depreciation", FormatCurrency(r.AnnualDepreciation)},
		{"Break-even occupancy (cost cover)", FormatFraction(r.BreakEvenOccupancy)},
	}
	if be := sc.BreakEven; be != nil {
		if be.Reached {
			rows = append(rows, table.Row{"Break-even occupancy (NPV = 0)", FormatFraction(be.Occupancy)})
		} else {
			rows = append(rows, table.Row{"Break-even occupancy (NPV = 0)", "not reached at 100%"})
		}
	}
	metrics.AppendRows(rows)
	rightAlign(metrics, 2, 2)
	fmt.Fprintln(buf, metrics.Render())
	fmt.Fprintln(buf)

	ledger := newTable(sc.Name + ": annual cash flows")
	ledger.AppendHeader(table.Row{"Year", "Occupancy", "Revenue", "Opex", "EBITDA", "Tax", "Free Cash Flow", "Cumulative", "Discounted", "Cum. Discounted"})
	for _, y := range r.Series.Years {
		ledger.AppendRow(table.Row{
			y.Year,
			FormatFraction(y.Occupancy),
			FormatCurrency(y.Revenue),
			FormatCurrency(y.Opex),
			FormatCurrency(y.EBITDA),
			FormatCurrency(y.Tax),
			FormatCurrency(y.FreeCashFlow),
			FormatCurrency(y.CumulativeCashFlow),
			FormatCurrency(y.DiscountedCashFlow),
			FormatCurrency(y.CumulativeDiscountedCashFlow),
		})
	}
	rightAlign(ledger, 1, 10)
	fmt.Fprintln(buf, ledger.Render())
	fmt.Fprintln(buf)

	if tc := sc.TaxComparison; tc != nil {
		fmt.Fprintln(buf, renderTaxComparison(sc.Name, tc))
		fmt.Fprintln(buf)
	}

	if len(sc.AssumptionsNotes) > 0 {
		fmt.Fprintln(buf, "Assumptions:")
		for _, note := range sc.AssumptionsNotes {
			fmt.Fprintf(buf, "  - %s\n", note)
		}
		fmt.Fprintln(buf)
	}
}

func renderTaxComparison(name string, tc *domain.TaxScenarioResult) string {
	tw := newTable(name + ": tax incentive")
	tw.AppendHeader(table.Row{"Year", "Rate", "Tax (incentive)", "Tax (standard)", "Savings", "Discounted Savings"})
	for _, y := range tc.Years {
		tw.AppendRow(table.Row{
			y.Year,
			FormatFraction(y.RateWithIncentive),
			FormatCurrency(y.TaxWithIncentive),
			FormatCurrency(y.TaxWithoutIncentive),
			FormatCurrency(y.Savings),
			FormatCurrency(y.DiscountedSavings),
		})
	}
	tw.AppendFooter(table.Row{"", "", "", "Savings NPV", "", FormatCurrency(tc.TaxSavingsNPV)})
	tw.AppendFooter(table.Row{"", "", "", "Import duty", "", FormatCurrency(tc.ImportDutyExemption)})
	tw.AppendFooter(table.Row{"", "", "", "Land subsidy", "", FormatCurrency(tc.LandSubsidy)})
	tw.AppendFooter(table.Row{"", "", "", "Total incentive", "", FormatCurrency(tc.TotalIncentiveValue)})
	tw.AppendFooter(table.Row{"", "", "", "NPV delta", "", FormatCurrency(tc.NPVDelta)})
	tw.AppendFooter(table.Row{"", "", "", "IRR delta", "", FormatIRR(tc.IRRDelta, tc.IRRDeltaValid)})
	rightAlign(tw, 1, 6)
	return tw.Render()
}

func renderComparison(scenarios []domain.ScenarioSummary) string {
	tw := newTable("Scenario comparison")
	tw.AppendHeader(table.Row{"Scenario", "NPV", "IRR", "ROI", "Payback", "PI"})
	for _, sc := range scenarios {
		r := sc.Result
		tw.AppendRow(table.Row{
			sc.Name,
			FormatCurrency(r.NPV),
			FormatIRR(r.IRR, r.IRRConverged),
			FormatPercentage(r.ROI),
			FormatYears(r.SimplePayback.Years, r.SimplePayback.Reached),
			r.ProfitabilityIndex.StringFixed(3),
		})
	}
	rightAlign(tw, 2, 6)
	return tw.Render()
}

func writeContract(buf *bytes.Buffer, cs *domain.ContractSummary) {
	r := &cs.Result
	tw := newTable(cs.Name + ": contract revenue")
	tw.AppendHeader(table.Row{"Year", "Actual", "Billed", "Floor", "Rate", "Recurring", "One-time", "Total", "Cumulative"})
	for _, y := range r.Years {
		floor := ""
		if y.FloorApplied {
			floor = "yes"
		}
		tw.AppendRow(table.Row{
			y.Year,
			FormatFraction(y.ActualOccupancy),
			y.BilledCapacity.StringFixed(2),
			floor,
			FormatCurrency(y.EscalatedRate),
			FormatCurrency(y.RecurringRevenue),
			FormatCurrency(y.OneTimeRevenue),
			FormatCurrency(y.TotalRevenue),
			FormatCurrency(y.CumulativeRevenue),
		})
	}
	rightAlign(tw, 1, 9)
	fmt.Fprintln(buf, tw.Render())
	fmt.Fprintf(buf, "Lifetime revenue: %s (one-time %s, take-or-pay uplift %s)\n",
		FormatCurrency(r.LifetimeRevenue), FormatCurrency(r.TotalOneTime), FormatCurrency(r.TakeOrPayUplift))
	fmt.Fprintf(buf, "Blended effective rate: %s per unit per month\n\n", FormatCurrency(r.BlendedEffectiveRate))
}

func renderTornado(results []domain.SensitivityResult) string {
	tw := newTable("TCO sensitivity (tornado)")
	tw.AppendHeader(table.Row{"Parameter", "Low", "High", "TCO Low", "TCO High", "Δ Low", "Δ High", "Spread"})
	for _, r := range results {
		tw.AppendRow(table.Row{
			r.Label,
			floatToString(roundTo(r.LowValue, 4)),
			floatToString(roundTo(r.HighValue, 4)),
			FormatFloatCurrency(r.LowTCO),
			FormatFloatCurrency(r.HighTCO),
			fmt.Sprintf("%+.2f%%", r.DeltaLowPct),
			fmt.Sprintf("%+.2f%%", r.DeltaHighPct),
			FormatFloatCurrency(r.AbsoluteSpread),
		})
	}
	rightAlign(tw, 2, 8)
	return tw.Render()
}

// ConsoleSummaryFormatter provides a concise one-line-per-item summary.
type ConsoleSummaryFormatter struct{}

func (c ConsoleSummaryFormatter) Name() string      { return "console-lite" }
func (c ConsoleSummaryFormatter) Extension() string { return "txt" }

func (c ConsoleSummaryFormatter) Format(report *domain.PortfolioReport) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "CAPITAL PROJECT SUMMARY")
	fmt.Fprintln(&buf, "================================")
	for _, sc := range report.Scenarios {
		r := sc.Result
		fmt.Fprintf(&buf, "%s: NPV=%s IRR=%s ROI=%s Payback=%s PI=%s\n",
			sc.Name,
			FormatCurrency(r.NPV),
			FormatIRR(r.IRR, r.IRRConverged),
			FormatPercentage(r.ROI),
			FormatYears(r.SimplePayback.Years, r.SimplePayback.Reached),
			r.ProfitabilityIndex.StringFixed(3))
		if sc.TaxComparison != nil {
			fmt.Fprintf(&buf, "  Incentive value=%s NPV delta=%s\n",
				FormatCurrency(sc.TaxComparison.TotalIncentiveValue), FormatCurrency(sc.TaxComparison.NPVDelta))
		}
	}
	for _, cs := range report.Contracts {
		fmt.Fprintf(&buf, "%s: Lifetime=%s Uplift=%s BlendedRate=%s\n",
			cs.Name,
			FormatCurrency(cs.Result.LifetimeRevenue),
			FormatCurrency(cs.Result.TakeOrPayUplift),
			FormatCurrency(cs.Result.BlendedEffectiveRate))
	}
	if len(report.Sensitivity) > 0 {
		top := report.Sensitivity[0]
		fmt.Fprintf(&buf, "TCO=%s Top driver: %s (spread %s)\n",
			FormatFloatCurrency(report.BaseTCO), top.Label, FormatFloatCurrency(top.AbsoluteSpread))
	}
	if rec := AnalyzeScenarios(report); rec.ScenarioName != "" {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "Recommended: %s (NPV lead %s)\n", rec.ScenarioName, FormatCurrency(rec.NPVMargin))
	}
	return buf.Bytes(), nil
}
