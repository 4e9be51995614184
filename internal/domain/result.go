package domain

// EndingStats summarises the distribution of ending values across scenarios.
type EndingStats struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	P5     float64 `json:"p5"`
	P10    float64 `json:"p10"`
	P25    float64 `json:"p25"`
	P75    float64 `json:"p75"`
	P90    float64 `json:"p90"`
	P95    float64 `json:"p95"`
	Best   float64 `json:"best"`
	Worst  float64 `json:"worst"`
}

// PercentileBand is the p10..p90 spread of one metric at one recorded step.
type PercentileBand struct {
	Step int     `json:"step"`
	Year float64 `json:"year"`
	P10  float64 `json:"p10"`
	P25  float64 `json:"p25"`
	P50  float64 `json:"p50"`
	P75  float64 `json:"p75"`
	P90  float64 `json:"p90"`
}

// Ordered reports whether the band's percentiles are non-decreasing.
func (b PercentileBand) Ordered() bool {
	return b.P10 <= b.P25 && b.P25 <= b.P50 && b.P50 <= b.P75 && b.P75 <= b.P90
}

// ExceedanceRow holds, for one year, the share of scenarios whose annualised
// return met or exceeded each threshold.
type ExceedanceRow struct {
	Year          float64   `json:"year"`
	Thresholds    []float64 `json:"thresholds"`
	Probabilities []float64 `json:"probabilities"`
}

// LossProbability is one row of the loss table.
type LossProbability struct {
	Threshold   float64 `json:"threshold"`
	IntraPeriod float64 `json:"intra_period"` // ever dropped below initial*(1-threshold)
	EndOfPeriod float64 `json:"end_of_period"`
}

// SummaryStats are the scalar run-level rates.
type SummaryStats struct {
	GoalProbability   float64 `json:"goal_probability"`
	HasGoal           bool    `json:"has_goal"`
	ProfitableRate    float64 `json:"profitable_rate"`
	SolventRate       float64 `json:"solvent_rate"`
	DepletionRate     float64 `json:"depletion_rate"`
	MedianMaxDrawdown float64 `json:"median_max_drawdown"`
	WorstMaxDrawdown  float64 `json:"worst_max_drawdown"`
	MeanTotalInvested float64 `json:"mean_total_invested"`
}

// DisplayHints are presentation suggestions only.
type DisplayHints struct {
	LogScaleValue  bool `json:"log_scale_value"`
	LogScaleReturn bool `json:"log_scale_return"`
}

// SimulationResult is the immutable output of a stochastic run.
type SimulationResult struct {
	RunID           string  `json:"run_id"`
	Seed            Seed    `json:"seed"`
	Mode            Mode    `json:"mode"`
	Strategy        string  `json:"strategy"`
	NumPaths        int     `json:"num_paths"`
	StepsPerYear    int     `json:"steps_per_year"`
	TotalSteps      int     `json:"total_steps"`
	RecordFrequency int     `json:"record_frequency"`
	InitialValue    float64 `json:"initial_value"`

	Ending       EndingStats `json:"ending"`
	PreTaxEnding EndingStats `json:"pre_tax_ending"`

	ValueBands       []PercentileBand  `json:"value_bands"`
	GrossValueBands  []PercentileBand  `json:"gross_value_bands"`
	ReturnBands      []PercentileBand  `json:"return_bands"`
	ReturnExceedance []ExceedanceRow   `json:"return_exceedance"`
	LossTable        []LossProbability `json:"loss_table"`

	Summary      SummaryStats `json:"summary"`
	DisplayHints DisplayHints `json:"display_hints"`
}

// FinalValueBand returns the last net value band, or false if none was recorded.
func (r *SimulationResult) FinalValueBand() (PercentileBand, bool) {
	if r == nil || len(r.ValueBands) == 0 {
		return PercentileBand{}, false
	}
	return r.ValueBands[len(r.ValueBands)-1], true
}
