package calculation

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/rpgo/portfolio-simulator/internal/domain"
)

// RunStochasticSimulation simulates params.NumPaths trajectories and reduces
// them to a SimulationResult. An empty seed is replaced by a fresh one, which
// is reported in the result so the run can be replayed.
func (e *Engine) RunStochasticSimulation(ctx context.Context, params domain.SimulationParams, mode domain.Mode, seed domain.Seed) (*domain.SimulationResult, error) {
	mode, err := domain.ParseMode(string(mode))
	if err != nil {
		return nil, err
	}
	p, err := prepare(params)
	if err != nil {
		return nil, fmt.Errorf("rejected simulation parameters: %w", err)
	}
	if seed == "" {
		seed = seedFunc()
	}

	sp := NewStepParams(p, mode)
	plan := NewRecordingPlan(sp.TotalSteps, p.NumPaths, e.options.MaxChartSteps, e.options.MaxRecordedPoints)
	exec := e.executor
	if exec == nil {
		exec = e.selectExecutor(p.NumPaths)
	}
	e.logger.Debugf("simulating %d paths over %d steps (record every %d, %d records) with %s executor, seed %q",
		p.NumPaths, sp.TotalSteps, plan.Frequency, plan.Records(), exec.Name(), seed)

	bufs := NewRecordBuffers(plan.Records(), p.NumPaths)
	outcomes := make([]ScenarioOutcome, p.NumPaths)
	runSeed := seed.Uint64()
	err = exec.Execute(ctx, p.NumPaths, func(i int) {
		outcomes[i] = RunScenario(sp, plan, NewVariateSource(runSeed, i), bufs.Column(i))
	})
	if err != nil {
		return nil, fmt.Errorf("simulation interrupted: %w", err)
	}

	res := &domain.SimulationResult{
		RunID:           runID(p, mode, seed),
		Seed:            seed,
		Mode:            mode,
		Strategy:        exec.Name(),
		NumPaths:        p.NumPaths,
		StepsPerYear:    p.StepsPerYear,
		TotalSteps:      sp.TotalSteps,
		RecordFrequency: plan.Frequency,
		InitialValue:    sp.InitialValue,
	}
	if err := newReducer(sp, plan, p.NumPaths).reduce(res, outcomes, bufs); err != nil {
		e.logger.Errorf("simulation %s could not be reduced: %v", res.RunID, err)
		return nil, fmt.Errorf("failed to reduce simulation: %w", err)
	}
	e.logger.Infof("simulation %s complete: median ending %.2f, solvent %.1f%%",
		res.RunID, res.Ending.Median, res.Summary.SolventRate*100)
	return res, nil
}

// runID names a run by its inputs so that replays share an identifier.
func runID(p domain.SimulationParams, mode domain.Mode, seed domain.Seed) string {
	payload, err := json.Marshal(struct {
		Mode   domain.Mode             `json:"mode"`
		Seed   domain.Seed             `json:"seed"`
		Params domain.SimulationParams `json:"params"`
	}{mode, seed, p})
	if err != nil {
		return uuid.NewString()
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, payload).String()
}
