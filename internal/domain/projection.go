package domain

// ProjectionState is the input of a deterministic projection. GrowthState and
// WithdrawalState are the two variants.
type ProjectionState interface {
	Mode() Mode
	Inputs() SimulationParams
}

// GrowthState projects an accumulating portfolio; cash flows are contributions.
type GrowthState struct {
	SimulationParams `yaml:",inline"`
}

func (GrowthState) Mode() Mode                 { return ModeGrowth }
func (s GrowthState) Inputs() SimulationParams { return s.SimulationParams }

// WithdrawalState projects a portfolio in drawdown; cash flows are net spending.
type WithdrawalState struct {
	SimulationParams `yaml:",inline"`
}

func (WithdrawalState) Mode() Mode                 { return ModeWithdrawal }
func (s WithdrawalState) Inputs() SimulationParams { return s.SimulationParams }

// NewProjectionState wraps params in the state variant for mode.
func NewProjectionState(mode Mode, p SimulationParams) ProjectionState {
	if mode == ModeWithdrawal {
		return WithdrawalState{SimulationParams: p}
	}
	return GrowthState{SimulationParams: p}
}

// ProjectionRow is one year of a deterministic projection.
type ProjectionRow struct {
	Year             int     `json:"year"`
	StartBalance     float64 `json:"start_balance"`
	CashFlow         float64 `json:"cash_flow"` // contributed, or net delivered in withdrawal mode
	Growth           float64 `json:"growth"`
	TaxPaid          float64 `json:"tax_paid"`
	EndBalance       float64 `json:"end_balance"`
	NetValue         float64 `json:"net_value"`
	CostBasis        float64 `json:"cost_basis"`
	PerformanceIndex float64 `json:"performance_index"`
}

// ProjectionResult is the output of a deterministic projection.
type ProjectionResult struct {
	Mode              Mode            `json:"mode"`
	Rows              []ProjectionRow `json:"rows"`
	EndingValue       float64         `json:"ending_value"`
	PreTaxEndingValue float64         `json:"pre_tax_ending_value"`
	TotalInvested     float64         `json:"total_invested"`
	DepletionYear     int             `json:"depletion_year"` // 0 when never depleted
}

// SensitivityRow is the outcome of one cash-flow variant.
type SensitivityRow struct {
	Label               string  `json:"label"`
	Multiplier          float64 `json:"multiplier"`
	CashFlow            float64 `json:"cash_flow"`
	SuccessRate         float64 `json:"success_rate"`
	MedianEndingValue   float64 `json:"median_ending_value"`
	DeterministicEnding float64 `json:"deterministic_ending"`
}

// SensitivityResult collects a cash-flow sweep.
type SensitivityResult struct {
	Mode Mode             `json:"mode"`
	Seed Seed             `json:"seed"`
	Rows []SensitivityRow `json:"rows"`
}

// DefaultSensitivityMultipliers are the cash-flow variations swept by default.
var DefaultSensitivityMultipliers = []float64{-0.20, -0.10, 0, 0.10, 0.20}
