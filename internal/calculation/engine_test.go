package calculation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/capexplan/capex-calculator/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	mu    sync.Mutex
	warns []string
	debug []string
}

func (l *recordingLogger) Debugf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.debug = append(l.debug, fmt.Sprintf(format, args...))
}
func (l *recordingLogger) Infof(format string, args ...any) {}
func (l *recordingLogger) Warnf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, fmt.Sprintf(format, args...))
}
func (l *recordingLogger) Errorf(format string, args ...any) {}

func portfolioConfig() *domain.Configuration {
	incentive := &domain.TaxIncentive{HolidayYears: 3, HolidayRate: dec("0"), ImportDutyExemptionPct: dec("0.1")}
	taxed := flatAssumptions()
	taxed.TaxRate = dec("0.25")
	return &domain.Configuration{
		Scenarios: []domain.ProjectScenario{
			{Name: "Reference", Assumptions: referenceAssumptions()},
			{Name: "Flat", Assumptions: flatAssumptions()},
			{Name: "Flat with holiday", Assumptions: taxed, TaxIncentive: incentive},
		},
		RevenueContracts: []domain.NamedContract{
			{Name: "Anchor tenant", Contract: colocationContract()},
		},
		Sensitivity: &domain.SensitivityConfig{Perturbation: 0.2, Nominal: nominalTCOVector()},
	}
}

func withRunID(t *testing.T, id string) {
	t.Helper()
	SetRunIDFunc(func() string { return id })
	t.Cleanup(func() { SetRunIDFunc(defaultRunID) })
}

var defaultRunID = runIDFunc

func TestRunScenarios_Portfolio(t *testing.T) {
	withRunID(t, "run-1")
	ce := NewCalculationEngine()

	report, err := ce.RunScenarios(context.Background(), portfolioConfig())
	require.NoError(t, err)

	assert.Equal(t, "run-1", report.RunID)
	require.Len(t, report.Scenarios, 3)
	assert.Equal(t, "Reference", report.Scenarios[0].Name)
	assert.Equal(t, "Flat", report.Scenarios[1].Name)
	assert.Equal(t, "Flat with holiday", report.Scenarios[2].Name)

	assert.Nil(t, report.Scenarios[0].TaxComparison)
	require.NotNil(t, report.Scenarios[2].TaxComparison)
	assert.True(t, report.Scenarios[2].TaxComparison.ImportDutyExemption.Equal(dec("100000")))
	assert.NotEmpty(t, report.Scenarios[0].AssumptionsNotes)

	require.Len(t, report.Contracts, 1)
	assert.Equal(t, "Anchor tenant", report.Contracts[0].Name)
	assert.True(t, report.Contracts[0].Result.LifetimeRevenue.Equal(dec("2015600")))

	assert.InDelta(t, 751400, report.BaseTCO, 1e-6)
	assert.Len(t, report.Sensitivity, 11)
}

func TestRunScenarios_ParallelMatchesSequential(t *testing.T) {
	sequential := NewCalculationEngine()
	sequential.Workers = 1
	parallel := NewCalculationEngine()
	parallel.Workers = 8

	a, err := sequential.RunScenarios(context.Background(), portfolioConfig())
	require.NoError(t, err)
	b, err := parallel.RunScenarios(context.Background(), portfolioConfig())
	require.NoError(t, err)

	require.Len(t, b.Scenarios, len(a.Scenarios))
	for i := range a.Scenarios {
		assert.Equal(t, a.Scenarios[i].Name, b.Scenarios[i].Name)
		assert.True(t, a.Scenarios[i].Result.NPV.Equal(b.Scenarios[i].Result.NPV), "scenario %d", i)
		assert.True(t, a.Scenarios[i].Result.IRR.Equal(b.Scenarios[i].Result.IRR), "scenario %d", i)
	}
	assert.Equal(t, a.Sensitivity, b.Sensitivity)
}

func TestRunScenarios_Errors(t *testing.T) {
	cfg := portfolioConfig()
	cfg.Scenarios[1].Assumptions.Capex = dec("0")
	_, err := NewCalculationEngine().RunScenarios(context.Background(), cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidAssumptions))
	assert.Contains(t, err.Error(), `scenario "Flat"`)

	cfg = portfolioConfig()
	cfg.RevenueContracts[0].Contract.TermYears = 0
	_, err = NewCalculationEngine().RunScenarios(context.Background(), cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidContract))
	assert.Contains(t, err.Error(), `contract "Anchor tenant"`)
}

func TestRunScenarios_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewCalculationEngine().RunScenarios(ctx, portfolioConfig())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunScenario_WarnsWhenIRRDoesNotConverge(t *testing.T) {
	// no revenue at all, every flow is negative
	a := flatAssumptions()
	a.RevenueRatePerMonth = dec("0")

	logger := &recordingLogger{}
	ce := NewCalculationEngine()
	ce.SetLogger(logger)

	summary, err := ce.RunScenario(context.Background(), &domain.ProjectScenario{Name: "Dark site", Assumptions: a})
	require.NoError(t, err)
	assert.False(t, summary.Result.IRRConverged)
	require.Len(t, logger.warns, 1)
	assert.Contains(t, logger.warns[0], `"Dark site"`)

	require.NotNil(t, summary.BreakEven)
	assert.False(t, summary.BreakEven.Reached)
	assert.True(t, summary.BreakEven.Occupancy.Equal(dec("1")))
}

func TestSetLogger_Nil(t *testing.T) {
	ce := NewCalculationEngine()
	ce.SetLogger(nil)
	assert.Equal(t, NopLogger{}, ce.Logger)
}

func TestCalculateBreakEvenOccupancy(t *testing.T) {
	ce := NewCalculationEngine()
	res, err := ce.CalculateBreakEvenOccupancy(flatAssumptions())
	require.NoError(t, err)

	assert.True(t, res.Reached)
	assert.InDelta(t, 0.6634316, res.Occupancy.InexactFloat64(), 1e-6)
	assert.InDelta(t, 0, res.NPV.InexactFloat64(), breakEvenNPVTolerance)
	assert.Greater(t, res.Iterations, 0)
	assert.LessOrEqual(t, res.Iterations, breakEvenMaxIterations)

	// zero-value assumptions are rejected before searching
	_, err = ce.CalculateBreakEvenOccupancy(domain.FinancialAssumptions{})
	assert.ErrorIs(t, err, ErrInvalidAssumptions)
}

func TestCalculateBreakEvenOccupancy_Unreachable(t *testing.T) {
	a := flatAssumptions()
	a.Capex = dec("100000000")
	res, err := NewCalculationEngine().CalculateBreakEvenOccupancy(a)
	require.NoError(t, err)
	assert.False(t, res.Reached)
	assert.True(t, res.Occupancy.Equal(dec("1")))
	assert.True(t, res.NPV.IsNegative())
}
