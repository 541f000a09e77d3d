package output

import (
	"bytes"
	"encoding/csv"

	"github.com/capexplan/capex-calculator/internal/domain"
)

// CSVLedgerExporter writes the year-by-year cash flow ledger of every scenario.
type CSVLedgerExporter struct{}

func (c CSVLedgerExporter) Name() string      { return "ledger-csv" }
func (c CSVLedgerExporter) Extension() string { return "csv" }

func (c CSVLedgerExporter) Format(report *domain.PortfolioReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "Year", "Occupancy", "Revenue", "Opex", "Depreciation", "EBITDA", "TaxableIncome", "TaxRate", "Tax", "NetIncome", "FreeCashFlow", "CumulativeCashFlow", "DiscountFactor", "DiscountedCashFlow", "CumulativeDiscountedCashFlow"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, sc := range report.Scenarios {
		for _, yr := range sc.Result.Series.Years {
			row := []string{
				sc.Name,
				intToString(yr.Year),
				yr.Occupancy.String(),
				yr.Revenue.StringFixed(2),
				yr.Opex.StringFixed(2),
				yr.Depreciation.StringFixed(2),
				yr.EBITDA.StringFixed(2),
				yr.TaxableIncome.StringFixed(2),
				yr.TaxRate.String(),
				yr.Tax.StringFixed(2),
				yr.NetIncome.StringFixed(2),
				yr.FreeCashFlow.StringFixed(2),
				yr.CumulativeCashFlow.StringFixed(2),
				yr.DiscountFactor.StringFixed(6),
				yr.DiscountedCashFlow.StringFixed(2),
				yr.CumulativeDiscountedCashFlow.StringFixed(2),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// CSVSensitivityExporter writes the tornado analysis, widest swing first.
type CSVSensitivityExporter struct{}

func (c CSVSensitivityExporter) Name() string      { return "sensitivity-csv" }
func (c CSVSensitivityExporter) Extension() string { return "csv" }

func (c CSVSensitivityExporter) Format(report *domain.PortfolioReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Parameter", "Label", "Nominal", "Low", "High", "NominalTCO", "LowTCO", "HighTCO", "DeltaLowPercent", "DeltaHighPercent", "Spread"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, r := range report.Sensitivity {
		row := []string{
			r.Name,
			r.Label,
			floatToString(r.NominalValue),
			floatToString(r.LowValue),
			floatToString(r.HighValue),
			floatToString(r.NominalTCO),
			floatToString(r.LowTCO),
			floatToString(r.HighTCO),
			floatToString(r.DeltaLowPct),
			floatToString(r.DeltaHighPct),
			floatToString(r.AbsoluteSpread),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
