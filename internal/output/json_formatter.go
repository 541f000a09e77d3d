package output

import (
	"encoding/json"

	"github.com/capexplan/capex-calculator/internal/domain"
)

// JSONFormatter serializes the portfolio report as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string      { return "json" }
func (j JSONFormatter) Extension() string { return "json" }

func (j JSONFormatter) Format(report *domain.PortfolioReport) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}
