package calculation

import (
	"math"
	"slices"

	"github.com/rpgo/portfolio-simulator/internal/domain"
)

// LossThresholds are the loss magnitudes of the loss table.
var LossThresholds = []float64{0, 0.025, 0.05, 0.10, 0.15, 0.20, 0.30, 0.50}

// ExceedanceThresholds are the annualised returns reported as exceedance
// probabilities.
var ExceedanceThresholds = []float64{0.05, 0.08, 0.10, 0.12, 0.15, 0.20, 0.25, 0.30}

// Display hint thresholds.
const (
	logScaleSpreadRatio  = 15.0
	logScaleGrowthRatio  = 20.0
	logScaleReturnSpread = 0.5
)

// reducer folds scenario outcomes and record buffers into a result.
type reducer struct {
	sp       *StepParams
	plan     RecordingPlan
	numPaths int
	scratch  []float64
}

func newReducer(sp *StepParams, plan RecordingPlan, numPaths int) *reducer {
	return &reducer{sp: sp, plan: plan, numPaths: numPaths, scratch: make([]float64, numPaths)}
}

// reduce fills every statistical field of res. Buffers are consumed one at a
// time and released as soon as their bands are built.
func (r *reducer) reduce(res *domain.SimulationResult, outcomes []ScenarioOutcome, bufs *RecordBuffers) error {
	r.reduceOutcomes(res, outcomes)

	if err := bufs.consume(netBuffer, func(row func(int) []float64) {
		res.ValueBands = r.valueBands(row)
	}); err != nil {
		return err
	}
	if err := bufs.consume(grossBuffer, func(row func(int) []float64) {
		res.GrossValueBands = r.valueBands(row)
	}); err != nil {
		return err
	}
	if err := bufs.consume(perfBuffer, func(row func(int) []float64) {
		res.ReturnBands, res.ReturnExceedance = r.returnBands(row)
	}); err != nil {
		return err
	}

	res.DisplayHints = r.displayHints(res)
	return nil
}

func (r *reducer) reduceOutcomes(res *domain.SimulationResult, outcomes []ScenarioOutcome) {
	n := len(outcomes)
	ending := make([]float64, n)
	preTax := make([]float64, n)
	drawdowns := make([]float64, n)
	var goal, profitable, solvent, depleted int
	var invested float64

	for i, o := range outcomes {
		ending[i] = o.EndingValue
		preTax[i] = o.PreTaxEndingValue
		drawdowns[i] = o.MaxDrawdown
		invested += o.TotalInvested
		if o.GoalReached {
			goal++
		}
		if o.Profitable {
			profitable++
		}
		if o.Solvent {
			solvent++
		}
		if o.DepletedAtStep >= 0 {
			depleted++
		}
	}

	res.Ending = endingStats(sortInPlace(ending))
	res.PreTaxEnding = endingStats(sortInPlace(preTax))
	res.LossTable = lossTable(outcomes, r.sp.InitialValue)

	sortInPlace(drawdowns)
	res.Summary = domain.SummaryStats{
		GoalProbability:   fraction(goal, n),
		HasGoal:           r.sp.HasGoal,
		ProfitableRate:    fraction(profitable, n),
		SolventRate:       fraction(solvent, n),
		DepletionRate:     fraction(depleted, n),
		MedianMaxDrawdown: Percentile(drawdowns, 0.5),
	}
	if n > 0 {
		res.Summary.WorstMaxDrawdown = drawdowns[n-1]
		res.Summary.MeanTotalInvested = invested / float64(n)
	}
}

// lossTable counts, per threshold, scenarios that ever fell (intra-period) or
// ended (end-of-period) strictly below initial*(1-threshold).
func lossTable(outcomes []ScenarioOutcome, initial float64) []domain.LossProbability {
	table := make([]domain.LossProbability, len(LossThresholds))
	n := len(outcomes)
	for i, th := range LossThresholds {
		floor := initial * (1 - th)
		var intra, end int
		for _, o := range outcomes {
			if o.LowestValue < floor {
				intra++
			}
			if o.EndingValue < floor {
				end++
			}
		}
		table[i] = domain.LossProbability{
			Threshold:   th,
			IntraPeriod: fraction(intra, n),
			EndOfPeriod: fraction(end, n),
		}
	}
	return table
}

func (r *reducer) year(step int) float64 {
	return float64(step) / float64(r.sp.StepsPerYear)
}

func (r *reducer) valueBands(row func(int) []float64) []domain.PercentileBand {
	bands := make([]domain.PercentileBand, len(r.plan.Steps))
	for rec, step := range r.plan.Steps {
		copy(r.scratch, row(rec))
		bands[rec] = percentileBand(sortInPlace(r.scratch), step, r.year(step))
	}
	return bands
}

// returnBands converts performance multiples into CAGR bands for every
// recorded step after the start, plus one exceedance row per elapsed year.
func (r *reducer) returnBands(row func(int) []float64) ([]domain.PercentileBand, []domain.ExceedanceRow) {
	bands := make([]domain.PercentileBand, 0, len(r.plan.Steps)-1)
	var rows []domain.ExceedanceRow
	lastWholeYear := 0
	last := len(r.plan.Steps) - 1

	for rec := 1; rec <= last; rec++ {
		step := r.plan.Steps[rec]
		years := r.year(step)
		for i, perf := range row(rec) {
			r.scratch[i] = CAGR(perf, years)
		}
		sorted := sortInPlace(r.scratch)
		bands = append(bands, percentileBand(sorted, step, years))

		whole := step / r.sp.StepsPerYear
		if whole > lastWholeYear || rec == last {
			lastWholeYear = whole
			rows = append(rows, exceedanceRow(sorted, years))
		}
	}
	return bands, rows
}

// exceedanceRow reports the share of sorted CAGRs at or above each threshold.
func exceedanceRow(sorted []float64, years float64) domain.ExceedanceRow {
	row := domain.ExceedanceRow{
		Year:          years,
		Thresholds:    append([]float64(nil), ExceedanceThresholds...),
		Probabilities: make([]float64, len(ExceedanceThresholds)),
	}
	n := len(sorted)
	for i, th := range ExceedanceThresholds {
		below, _ := slices.BinarySearch(sorted, th)
		row.Probabilities[i] = fraction(n-below, n)
	}
	return row
}

func (r *reducer) displayHints(res *domain.SimulationResult) domain.DisplayHints {
	var hints domain.DisplayHints
	e := res.Ending
	if e.P5 > 0 && e.P95/e.P5 > logScaleSpreadRatio {
		hints.LogScaleValue = true
	}
	if r.sp.InitialValue > 0 && e.P90/r.sp.InitialValue > logScaleGrowthRatio {
		hints.LogScaleValue = true
	}
	if n := len(res.ReturnBands); n > 0 {
		final := res.ReturnBands[n-1]
		if spread := final.P90 - final.P10; !math.IsNaN(spread) && spread > logScaleReturnSpread {
			hints.LogScaleReturn = true
		}
	}
	return hints
}
