package calculation

import (
	"context"
	"fmt"

	"github.com/capexplan/capex-calculator/internal/domain"
	"golang.org/x/sync/errgroup"
)

// DefaultWorkers bounds how many scenarios RunScenarios evaluates at once.
const DefaultWorkers = 4

// CalculationEngine orchestrates project, contract and sensitivity evaluations
type CalculationEngine struct {
	IRR     IRRConfig // solver settings used for every projection
	Workers int       // concurrent evaluations in RunScenarios
	Debug   bool      // Enable debug output for detailed calculations
	Logger  Logger
}

// NewCalculationEngine creates a new calculation engine
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{
		Workers: DefaultWorkers,
		Logger:  NopLogger{},
	}
}

// SetLogger sets the logger for the calculation engine. If nil is provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// RunScenario evaluates a single project scenario: projection, break-even search and,
// when an incentive package is configured, the tax comparison.
func (ce *CalculationEngine) RunScenario(ctx context.Context, scenario *domain.ProjectScenario) (*domain.ScenarioSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, err := projectCashflows(&scenario.Assumptions, ce.IRR)
	if err != nil {
		return nil, err
	}
	if !result.IRRConverged {
		ce.Logger.Warnf("scenario %q: IRR did not converge after %d iterations (last rate %s%%)",
			scenario.Name, result.IRRIterations, result.IRR.StringFixed(4))
	}

	breakEven, err := ce.CalculateBreakEvenOccupancy(scenario.Assumptions)
	if err != nil {
		return nil, fmt.Errorf("break-even occupancy: %w", err)
	}

	summary := &domain.ScenarioSummary{
		Name:             scenario.Name,
		Result:           *result,
		BreakEven:        breakEven,
		AssumptionsNotes: scenario.Assumptions.GenerateAssumptions(),
	}

	if scenario.TaxIncentive != nil {
		in := domain.TaxScenarioInput{
			Assumptions:  scenario.Assumptions,
			Incentive:    *scenario.TaxIncentive,
			StandardRate: scenario.Assumptions.TaxRate,
		}
		comparison, err := compareTaxScenarios(&in, ce.IRR)
		if err != nil {
			return nil, fmt.Errorf("tax comparison: %w", err)
		}
		summary.TaxComparison = comparison
	}

	if ce.Debug {
		ce.Logger.Debugf("scenario %q: NPV=%s IRR=%s%% payback=%s years PI=%s",
			scenario.Name,
			result.NPV.StringFixed(2),
			result.IRR.StringFixed(2),
			result.SimplePayback.Years.StringFixed(2),
			result.ProfitabilityIndex.StringFixed(3))
	}

	return summary, nil
}

// RunScenarios evaluates every scenario and contract of a configuration concurrently, then the
// sensitivity analysis. Output order follows the configuration order.
func (ce *CalculationEngine) RunScenarios(ctx context.Context, config *domain.Configuration) (*domain.PortfolioReport, error) {
	report := &domain.PortfolioReport{
		RunID:     runIDFunc(),
		Scenarios: make([]domain.ScenarioSummary, len(config.Scenarios)),
		Contracts: make([]domain.ContractSummary, len(config.RevenueContracts)),
	}

	workers := ce.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	ce.Logger.Infof("run %s: evaluating %d scenarios and %d contracts with %d workers",
		report.RunID, len(config.Scenarios), len(config.RevenueContracts), workers)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range config.Scenarios {
		scenario := &config.Scenarios[i]
		g.Go(func() error {
			summary, err := ce.RunScenario(gctx, scenario)
			if err != nil {
				return fmt.Errorf("scenario %q: %w", scenario.Name, err)
			}
			report.Scenarios[i] = *summary
			return nil
		})
	}

	for i := range config.RevenueContracts {
		contract := &config.RevenueContracts[i]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			result, err := ProjectRevenue(contract.Contract)
			if err != nil {
				return fmt.Errorf("contract %q: %w", contract.Name, err)
			}
			report.Contracts[i] = domain.ContractSummary{Name: contract.Name, Result: *result}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if sc := config.Sensitivity; sc != nil {
		report.BaseTCO, report.Sensitivity = ce.RunTCOSensitivity(sc)
	}

	return report, nil
}

// RunTCOSensitivity runs the tornado analysis of the reduced-form TCO model. Descriptors default
// to DefaultTCODescriptors when none are configured.
func (ce *CalculationEngine) RunTCOSensitivity(sc *domain.SensitivityConfig) (float64, []domain.SensitivityResult) {
	descriptors := sc.Parameters
	if len(descriptors) == 0 {
		descriptors = DefaultTCODescriptors()
	}
	for _, name := range SkippedParameters(sc.Nominal, descriptors) {
		ce.Logger.Debugf("sensitivity: skipping %s (zero or missing nominal value)", name)
	}
	return AnnualizedTCO(sc.Nominal), RunSensitivity(sc.Nominal, descriptors, AnnualizedTCO, sc.Perturbation)
}
