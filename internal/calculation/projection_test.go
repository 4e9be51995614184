package calculation

import (
	"context"
	"math"
	"testing"

	"github.com/rpgo/portfolio-simulator/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeterministicGrowthProjection(t *testing.T) {
	state := domain.GrowthState{SimulationParams: domain.SimulationParams{
		InitialValue:   dec(100000),
		ExpectedReturn: dec(0.07),
		DurationYears:  10,
	}}

	res, err := newTestEngine().RunDeterministicProjection(state)
	require.NoError(t, err)
	require.Len(t, res.Rows, 10)
	assert.Equal(t, domain.ModeGrowth, res.Mode)
	assert.InDelta(t, 196715.14, res.EndingValue, 0.01)
	assert.InDelta(t, 107000, res.Rows[0].EndBalance, 1e-6)
	assert.InDelta(t, 7000, res.Rows[0].Growth, 1e-6)
	assert.InDelta(t, math.Pow(1.07, 10), res.Rows[9].PerformanceIndex, 1e-9)
	assert.Equal(t, 0, res.DepletionYear)

	for i := 1; i < len(res.Rows); i++ {
		assert.Equal(t, res.Rows[i-1].EndBalance, res.Rows[i].StartBalance)
	}
}

func TestDeterministicProjectionCapsRunawayGrowth(t *testing.T) {
	basis := decPtr(50000)
	state := domain.GrowthState{SimulationParams: domain.SimulationParams{
		InitialValue:      dec(100000),
		StartingCostBasis: basis,
		ExpectedReturn:    dec(5000),
		DurationYears:     100,
		Tax:               domain.TaxConfig{Enabled: true, Rate: dec(0.15), Type: domain.TaxCapitalGains},
	}}

	res, err := newTestEngine().RunDeterministicProjection(state)
	require.NoError(t, err)
	require.Len(t, res.Rows, 100)
	for _, v := range []float64{res.EndingValue, res.PreTaxEndingValue, res.TotalInvested} {
		assert.False(t, math.IsInf(v, 0) || math.IsNaN(v), "value %v", v)
	}
	assert.Equal(t, MaxValue, res.PreTaxEndingValue)
	for _, row := range res.Rows {
		assert.False(t, math.IsNaN(row.NetValue) || math.IsInf(row.Growth, 0), "row %+v", row)
	}
}

func TestDeterministicWithdrawalDepletes(t *testing.T) {
	state := domain.WithdrawalState{SimulationParams: domain.SimulationParams{
		InitialValue:      dec(10000),
		DurationYears:     5,
		CashFlow:          dec(4000),
		CashFlowFrequency: domain.Annually,
	}}

	res, err := newTestEngine().RunDeterministicProjection(state)
	require.NoError(t, err)
	assert.Equal(t, 3, res.DepletionYear)
	assert.Equal(t, 0.0, res.EndingValue)
	assert.InDelta(t, 4000, res.Rows[0].CashFlow, 1e-9)
	assert.InDelta(t, 2000, res.Rows[2].CashFlow, 1e-9)
	assert.Equal(t, 0.0, res.Rows[4].CashFlow)
	for _, row := range res.Rows {
		assert.GreaterOrEqual(t, row.EndBalance, 0.0)
	}
}

func TestDeterministicProjectionRejectsInvalidInput(t *testing.T) {
	_, err := newTestEngine().RunDeterministicProjection(domain.GrowthState{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = newTestEngine().RunDeterministicProjection(nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// The stochastic engine with no volatility and one path must agree with the
// deterministic projection for every tax treatment and both modes.
func TestZeroVolatilityMatchesProjection(t *testing.T) {
	taxes := []domain.TaxConfig{
		{},
		{Enabled: true, Rate: dec(0.15), Type: domain.TaxCapitalGains},
		{Enabled: true, Rate: dec(0.24), Type: domain.TaxIncome},
		{Enabled: true, Rate: dec(0.22), Type: domain.TaxDeferred},
	}
	for _, mode := range []domain.Mode{domain.ModeGrowth, domain.ModeWithdrawal} {
		for _, tax := range taxes {
			p := domain.SimulationParams{
				InitialValue:      dec(250000),
				StartingCostBasis: decPtr(180000),
				ExpectedReturn:    dec(0.06),
				DurationYears:     25,
				CashFlow:          dec(900),
				CashFlowFrequency: domain.Monthly,
				InflationRate:     dec(0.03),
				NumPaths:          1,
				Tax:               tax,
				RateMode:          domain.RateNominal,
			}

			sim, err := newTestEngine().RunStochasticSimulation(context.Background(), p, mode, "0")
			require.NoError(t, err)
			proj, err := newTestEngine().RunDeterministicProjection(domain.NewProjectionState(mode, p))
			require.NoError(t, err)

			assert.InEpsilon(t, proj.EndingValue, sim.Ending.Median, 1e-6, "%s %s", mode, tax.Type)
			assert.InEpsilon(t, proj.PreTaxEndingValue, sim.PreTaxEnding.Median, 1e-6, "%s %s", mode, tax.Type)
		}
	}
}

func TestSensitivitySweep(t *testing.T) {
	p := testParams()
	p.NumPaths = 200

	res, err := newTestEngine().RunSensitivity(context.Background(), p, domain.ModeWithdrawal, "sweep", nil)
	require.NoError(t, err)
	require.Len(t, res.Rows, 5)
	assert.Equal(t, domain.Seed("sweep"), res.Seed)

	labels := []string{"-20%", "-10%", "base", "+10%", "+20%"}
	for i, row := range res.Rows {
		assert.Equal(t, labels[i], row.Label)
		assert.InDelta(t, 500*(1+row.Multiplier), row.CashFlow, 1e-9)
		if i > 0 {
			prev := res.Rows[i-1]
			assert.LessOrEqual(t, row.SuccessRate, prev.SuccessRate)
			assert.LessOrEqual(t, row.MedianEndingValue, prev.MedianEndingValue)
			assert.Less(t, row.DeterministicEnding, prev.DeterministicEnding)
		}
	}

	base, err := newTestEngine().RunStochasticSimulation(context.Background(), p, domain.ModeWithdrawal, "sweep")
	require.NoError(t, err)
	assert.Equal(t, base.Ending.Median, res.Rows[2].MedianEndingValue)
	assert.Equal(t, base.Summary.SolventRate, res.Rows[2].SuccessRate)
}

func TestSensitivityRejectsBadMultiplier(t *testing.T) {
	_, err := newTestEngine().RunSensitivity(context.Background(), testParams(), domain.ModeGrowth, "1", []float64{-1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	p := testParams()
	p.DurationYears = 0
	_, err = newTestEngine().RunSensitivity(context.Background(), p, domain.ModeGrowth, "1", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSuccessRateByMode(t *testing.T) {
	s := domain.SummaryStats{GoalProbability: 0.4, ProfitableRate: 0.7, SolventRate: 0.9}
	assert.Equal(t, 0.9, SuccessRate(domain.ModeWithdrawal, s))
	assert.Equal(t, 0.7, SuccessRate(domain.ModeGrowth, s))
	s.HasGoal = true
	assert.Equal(t, 0.4, SuccessRate(domain.ModeGrowth, s))
}
