package calculation

import (
	"context"
	"fmt"
	"math"

	"github.com/rpgo/portfolio-simulator/internal/domain"
	"github.com/shopspring/decimal"
)

// RunSensitivity re-runs the simulation with the cash flow scaled by each
// multiplier (0.10 means +10%). Every variant shares one seed so differences
// come from the cash flow alone. Nil multipliers use the default sweep.
func (e *Engine) RunSensitivity(ctx context.Context, params domain.SimulationParams, mode domain.Mode, seed domain.Seed, multipliers []float64) (*domain.SensitivityResult, error) {
	mode, err := domain.ParseMode(string(mode))
	if err != nil {
		return nil, err
	}
	if _, err := prepare(params); err != nil {
		return nil, fmt.Errorf("rejected sensitivity parameters: %w", err)
	}
	if len(multipliers) == 0 {
		multipliers = domain.DefaultSensitivityMultipliers
	}
	for _, m := range multipliers {
		if m <= -1 || math.IsNaN(m) || math.IsInf(m, 0) {
			return nil, fmt.Errorf("%w: cash flow multiplier %v would make the cash flow negative", domain.ErrInvalidInput, m)
		}
	}
	if seed == "" {
		seed = seedFunc()
	}

	out := &domain.SensitivityResult{Mode: mode, Seed: seed, Rows: make([]domain.SensitivityRow, 0, len(multipliers))}
	for _, m := range multipliers {
		variant := params
		variant.CashFlow = params.CashFlow.Mul(decimal.NewFromFloat(1 + m))

		sim, err := e.RunStochasticSimulation(ctx, variant, mode, seed)
		if err != nil {
			return nil, fmt.Errorf("sensitivity variant %s: %w", sensitivityLabel(m), err)
		}
		proj, err := e.RunDeterministicProjection(domain.NewProjectionState(mode, variant))
		if err != nil {
			return nil, fmt.Errorf("sensitivity variant %s: %w", sensitivityLabel(m), err)
		}

		out.Rows = append(out.Rows, domain.SensitivityRow{
			Label:               sensitivityLabel(m),
			Multiplier:          m,
			CashFlow:            variant.CashFlow.InexactFloat64(),
			SuccessRate:         SuccessRate(mode, sim.Summary),
			MedianEndingValue:   sim.Ending.Median,
			DeterministicEnding: proj.EndingValue,
		})
	}
	return out, nil
}

// SuccessRate is the headline rate for a mode: solvency when withdrawing,
// otherwise goal probability when a goal is set, else the profitable rate.
func SuccessRate(mode domain.Mode, s domain.SummaryStats) float64 {
	switch {
	case mode == domain.ModeWithdrawal:
		return s.SolventRate
	case s.HasGoal:
		return s.GoalProbability
	}
	return s.ProfitableRate
}

func sensitivityLabel(m float64) string {
	if m == 0 {
		return "base"
	}
	return fmt.Sprintf("%+.0f%%", m*100)
}
