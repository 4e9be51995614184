package domain

import (
	"errors"
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidInput is returned (wrapped) when simulation parameters are rejected
// before any scenario runs.
var ErrInvalidInput = errors.New("invalid input")

// MaxTaxRate caps the tax rate so gross-up divisions stay finite.
var MaxTaxRate = decimal.NewFromFloat(0.99)

// Mode selects whether cash flows are contributions or withdrawals.
type Mode string

const (
	ModeGrowth     Mode = "growth"
	ModeWithdrawal Mode = "withdrawal"
)

// ParseMode resolves a user supplied mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeGrowth, "accumulation", "contribution":
		return ModeGrowth, nil
	case ModeWithdrawal, "decumulation", "retirement":
		return ModeWithdrawal, nil
	}
	return "", fmt.Errorf("%w: unknown mode %q (want growth or withdrawal)", ErrInvalidInput, s)
}

// TaxType describes when and how tax is charged on the account.
type TaxType string

const (
	TaxCapitalGains TaxType = "capital_gains"
	TaxIncome       TaxType = "income"
	TaxDeferred     TaxType = "tax_deferred"
)

// RateMode selects how the annual return is converted to a per-step rate.
type RateMode string

const (
	// RateEffective treats the expected return as the effective annual yield.
	RateEffective RateMode = "effective"
	// RateNominal treats the expected return as a nominal rate compounded each step.
	RateNominal RateMode = "nominal"
)

// Frequency is how often the periodic cash flow happens.
type Frequency string

const (
	Weekly    Frequency = "weekly"
	Biweekly  Frequency = "biweekly"
	Monthly   Frequency = "monthly"
	Quarterly Frequency = "quarterly"
	Annually  Frequency = "annually"
)

// PeriodsPerYear returns the number of cash flows per year, or 0 if unknown.
func (f Frequency) PeriodsPerYear() int {
	switch f {
	case Weekly:
		return 52
	case Biweekly:
		return 26
	case Monthly:
		return 12
	case Quarterly:
		return 4
	case Annually:
		return 1
	}
	return 0
}

// SupportedStepsPerYear lists the time resolutions the stepper accepts.
var SupportedStepsPerYear = []int{1, 4, 12, 26, 52, 252}

// TaxConfig holds the account's tax treatment.
type TaxConfig struct {
	Enabled bool            `yaml:"enabled" json:"enabled"`
	Rate    decimal.Decimal `yaml:"rate" json:"rate"`
	Type    TaxType         `yaml:"type" json:"type"`
}

// EffectiveRate returns the clamped tax rate, or zero when tax is disabled.
func (tc TaxConfig) EffectiveRate() decimal.Decimal {
	if !tc.Enabled {
		return decimal.Zero
	}
	if tc.Rate.GreaterThan(MaxTaxRate) {
		return MaxTaxRate
	}
	if tc.Rate.IsNegative() {
		return decimal.Zero
	}
	return tc.Rate
}

// SimulationParams is the complete input of one simulation run.
type SimulationParams struct {
	InitialValue      decimal.Decimal  `yaml:"initial_value" json:"initial_value"`
	StartingCostBasis *decimal.Decimal `yaml:"starting_cost_basis,omitempty" json:"starting_cost_basis,omitempty"` // defaults to InitialValue
	ExpectedReturn    decimal.Decimal  `yaml:"expected_return" json:"expected_return"`
	Volatility        decimal.Decimal  `yaml:"volatility" json:"volatility"`
	DurationYears     int              `yaml:"duration_years" json:"duration_years"`
	CashFlow          decimal.Decimal  `yaml:"cash_flow" json:"cash_flow"`
	CashFlowFrequency Frequency        `yaml:"cash_flow_frequency" json:"cash_flow_frequency"`
	InflationRate     decimal.Decimal  `yaml:"inflation_rate" json:"inflation_rate"`
	ExcludeInflation  bool             `yaml:"exclude_inflation" json:"exclude_inflation"`
	NumPaths          int              `yaml:"num_paths" json:"num_paths"`
	Goal              *decimal.Decimal `yaml:"goal,omitempty" json:"goal,omitempty"`
	Tax               TaxConfig        `yaml:"tax" json:"tax"`
	RateMode          RateMode         `yaml:"rate_mode" json:"rate_mode"`
	StepsPerYear      int              `yaml:"steps_per_year" json:"steps_per_year"`
}

// WithDefaults returns a copy with optional fields filled in.
func (p SimulationParams) WithDefaults() SimulationParams {
	if p.StartingCostBasis == nil {
		basis := p.InitialValue
		p.StartingCostBasis = &basis
	}
	if p.CashFlowFrequency == "" {
		p.CashFlowFrequency = Monthly
	}
	if p.NumPaths == 0 {
		p.NumPaths = 1000
	}
	if p.RateMode == "" {
		p.RateMode = RateEffective
	}
	if p.StepsPerYear == 0 {
		p.StepsPerYear = 12
	}
	if p.Tax.Enabled && p.Tax.Type == "" {
		p.Tax.Type = TaxCapitalGains
	}
	return p
}

// CostBasis returns the starting cost basis, defaulting to the initial value.
func (p SimulationParams) CostBasis() decimal.Decimal {
	if p.StartingCostBasis == nil {
		return p.InitialValue
	}
	return *p.StartingCostBasis
}

// HasGoal reports whether a positive portfolio goal was supplied.
func (p SimulationParams) HasGoal() bool {
	return p.Goal != nil && p.Goal.IsPositive()
}

// Validate checks the parameter invariants. Call it on the defaulted params.
func (p SimulationParams) Validate() error {
	if !p.InitialValue.IsPositive() {
		return fmt.Errorf("%w: initial value must be positive, got %s", ErrInvalidInput, p.InitialValue.String())
	}
	basis := p.CostBasis()
	if basis.IsNegative() || basis.GreaterThan(p.InitialValue) {
		return fmt.Errorf("%w: starting cost basis must be between 0 and the initial value", ErrInvalidInput)
	}
	if p.ExpectedReturn.LessThanOrEqual(decimal.NewFromInt(-1)) {
		return fmt.Errorf("%w: expected return must be greater than -100%%", ErrInvalidInput)
	}
	if p.Volatility.IsNegative() {
		return fmt.Errorf("%w: volatility cannot be negative", ErrInvalidInput)
	}
	if p.DurationYears < 1 || p.DurationYears > 100 {
		return fmt.Errorf("%w: duration must be between 1 and 100 years, got %d", ErrInvalidInput, p.DurationYears)
	}
	if p.CashFlow.IsNegative() {
		return fmt.Errorf("%w: cash flow amount cannot be negative", ErrInvalidInput)
	}
	if p.InflationRate.LessThanOrEqual(decimal.NewFromInt(-1)) {
		return fmt.Errorf("%w: inflation rate must be greater than -100%%", ErrInvalidInput)
	}
	if p.NumPaths < 1 {
		return fmt.Errorf("%w: number of paths must be at least 1", ErrInvalidInput)
	}
	if p.Goal != nil && p.Goal.IsNegative() {
		return fmt.Errorf("%w: goal cannot be negative", ErrInvalidInput)
	}
	if err := p.validateTax(); err != nil {
		return err
	}
	switch p.RateMode {
	case RateEffective, RateNominal:
	default:
		return fmt.Errorf("%w: rate mode must be 'effective' or 'nominal'", ErrInvalidInput)
	}
	return p.validateSchedule()
}

func (p SimulationParams) validateTax() error {
	if !p.Tax.Enabled {
		return nil
	}
	if p.Tax.Rate.IsNegative() || p.Tax.Rate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("%w: tax rate must be between 0 and 1", ErrInvalidInput)
	}
	switch p.Tax.Type {
	case TaxCapitalGains, TaxIncome, TaxDeferred:
		return nil
	}
	return fmt.Errorf("%w: tax type must be 'capital_gains', 'income', or 'tax_deferred'", ErrInvalidInput)
}

func (p SimulationParams) validateSchedule() error {
	supported := false
	for _, s := range SupportedStepsPerYear {
		if s == p.StepsPerYear {
			supported = true
			break
		}
	}
	if !supported {
		return fmt.Errorf("%w: steps per year must be one of %v", ErrInvalidInput, SupportedStepsPerYear)
	}
	periods := p.CashFlowFrequency.PeriodsPerYear()
	if periods == 0 {
		return fmt.Errorf("%w: unknown cash flow frequency %q", ErrInvalidInput, p.CashFlowFrequency)
	}
	if periods < p.StepsPerYear && p.StepsPerYear%periods != 0 {
		return fmt.Errorf("%w: %s cash flows do not line up with %d steps per year", ErrInvalidInput, p.CashFlowFrequency, p.StepsPerYear)
	}
	return nil
}

// Seed identifies a reproducible run. Integers are written in base 10.
type Seed string

// SeedFromInt converts an integer seed.
func SeedFromInt(n int64) Seed { return Seed(strconv.FormatInt(n, 10)) }

// Uint64 maps the seed onto the generator's key space. Numeric seeds map to
// their own value so that short shared links stay readable.
func (s Seed) Uint64() uint64 {
	str := strings.TrimSpace(string(s))
	if u, err := strconv.ParseUint(str, 10, 64); err == nil {
		return u
	}
	if i, err := strconv.ParseInt(str, 10, 64); err == nil {
		return uint64(i)
	}
	h := fnv.New64a()
	_, _ = h.Write([]byte(str))
	return h.Sum64()
}
