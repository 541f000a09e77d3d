package output

import (
	"bytes"
	"encoding/csv"

	"github.com/capexplan/capex-calculator/internal/domain"
)

// CSVSummarizer implements the summary CSV output (one row per scenario, configuration order).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string      { return "csv" }
func (c CSVSummarizer) Extension() string { return "csv" }

func (c CSVSummarizer) Format(report *domain.PortfolioReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "NPV", "IRRPercent", "IRRConverged", "ROIPercent", "SimplePayback", "SimplePaybackReached", "DiscountedPayback", "DiscountedPaybackReached", "ProfitabilityIndex", "TotalRevenue", "TotalProfit", "BreakEvenOccupancy", "NPVBreakEvenOccupancy", "TaxIncentiveValue"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, sc := range report.Scenarios {
		r := sc.Result
		irr, npvBreakEven, incentive := "", "", ""
		if r.IRRConverged {
			irr = r.IRR.StringFixed(4)
		}
		if sc.BreakEven != nil && sc.BreakEven.Reached {
			npvBreakEven = sc.BreakEven.Occupancy.StringFixed(4)
		}
		if sc.TaxComparison != nil {
			incentive = sc.TaxComparison.TotalIncentiveValue.StringFixed(2)
		}
		row := []string{
			sc.Name,
			r.NPV.StringFixed(2),
			irr,
			boolToString(r.IRRConverged),
			r.ROI.StringFixed(4),
			r.SimplePayback.Years.StringFixed(4),
			boolToString(r.SimplePayback.Reached),
			r.DiscountedPayback.Years.StringFixed(4),
			boolToString(r.DiscountedPayback.Reached),
			r.ProfitabilityIndex.StringFixed(4),
			r.TotalRevenue.StringFixed(2),
			r.TotalProfit.StringFixed(2),
			r.BreakEvenOccupancy.StringFixed(4),
			npvBreakEven,
			incentive,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
