package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validParams() SimulationParams {
	return SimulationParams{
		InitialValue:   decimal.NewFromInt(100000),
		ExpectedReturn: decimal.NewFromFloat(0.07),
		Volatility:     decimal.NewFromFloat(0.15),
		DurationYears:  20,
		CashFlow:       decimal.NewFromInt(500),
	}.WithDefaults()
}

func TestParseMode(t *testing.T) {
	cases := map[string]Mode{
		"growth":       ModeGrowth,
		" Growth ":     ModeGrowth,
		"accumulation": ModeGrowth,
		"withdrawal":   ModeWithdrawal,
		"RETIREMENT":   ModeWithdrawal,
		"decumulation": ModeWithdrawal,
	}
	for in, want := range cases {
		got, err := ParseMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseMode("sideways")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestWithDefaults(t *testing.T) {
	p := SimulationParams{
		InitialValue: decimal.NewFromInt(250),
		Tax:          TaxConfig{Enabled: true, Rate: decimal.NewFromFloat(0.2)},
	}.WithDefaults()

	require.NotNil(t, p.StartingCostBasis)
	assert.True(t, p.StartingCostBasis.Equal(decimal.NewFromInt(250)))
	assert.Equal(t, Monthly, p.CashFlowFrequency)
	assert.Equal(t, 1000, p.NumPaths)
	assert.Equal(t, RateEffective, p.RateMode)
	assert.Equal(t, 12, p.StepsPerYear)
	assert.Equal(t, TaxCapitalGains, p.Tax.Type)

	explicit := SimulationParams{NumPaths: 7, StepsPerYear: 52, CashFlowFrequency: Weekly}.WithDefaults()
	assert.Equal(t, 7, explicit.NumPaths)
	assert.Equal(t, 52, explicit.StepsPerYear)
	assert.Equal(t, Weekly, explicit.CashFlowFrequency)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *SimulationParams)
		wantErr string
	}{
		{name: "valid", mutate: func(*SimulationParams) {}},
		{name: "zero initial value", mutate: func(p *SimulationParams) { p.InitialValue = decimal.Zero }, wantErr: "initial value must be positive"},
		{name: "basis above initial", mutate: func(p *SimulationParams) {
			b := decimal.NewFromInt(200000)
			p.StartingCostBasis = &b
		}, wantErr: "starting cost basis"},
		{name: "return at -100%", mutate: func(p *SimulationParams) { p.ExpectedReturn = decimal.NewFromInt(-1) }, wantErr: "expected return"},
		{name: "negative volatility", mutate: func(p *SimulationParams) { p.Volatility = decimal.NewFromFloat(-0.1) }, wantErr: "volatility"},
		{name: "zero duration", mutate: func(p *SimulationParams) { p.DurationYears = 0 }, wantErr: "duration"},
		{name: "negative cash flow", mutate: func(p *SimulationParams) { p.CashFlow = decimal.NewFromInt(-1) }, wantErr: "cash flow amount"},
		{name: "no paths", mutate: func(p *SimulationParams) { p.NumPaths = -3 }, wantErr: "number of paths"},
		{name: "negative goal", mutate: func(p *SimulationParams) {
			g := decimal.NewFromInt(-5)
			p.Goal = &g
		}, wantErr: "goal"},
		{name: "tax rate above one", mutate: func(p *SimulationParams) {
			p.Tax = TaxConfig{Enabled: true, Rate: decimal.NewFromFloat(1.5), Type: TaxIncome}
		}, wantErr: "tax rate"},
		{name: "unknown tax type", mutate: func(p *SimulationParams) {
			p.Tax = TaxConfig{Enabled: true, Rate: decimal.NewFromFloat(0.1), Type: "wealth"}
		}, wantErr: "tax type"},
		{name: "unknown rate mode", mutate: func(p *SimulationParams) { p.RateMode = "simple" }, wantErr: "rate mode"},
		{name: "unsupported steps", mutate: func(p *SimulationParams) { p.StepsPerYear = 7 }, wantErr: "steps per year"},
		{name: "unknown frequency", mutate: func(p *SimulationParams) { p.CashFlowFrequency = "hourly" }, wantErr: "unknown cash flow frequency"},
		{name: "misaligned frequency", mutate: func(p *SimulationParams) {
			p.StepsPerYear = 52
			p.CashFlowFrequency = Monthly
		}, wantErr: "do not line up"},
		{name: "weekly flows on monthly steps", mutate: func(p *SimulationParams) { p.CashFlowFrequency = Weekly }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validParams()
			tt.mutate(&p)
			err := p.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.True(t, errors.Is(err, ErrInvalidInput))
		})
	}
}

func TestEffectiveTaxRate(t *testing.T) {
	assert.True(t, TaxConfig{Rate: decimal.NewFromFloat(0.3)}.EffectiveRate().IsZero(), "disabled tax")
	assert.True(t, TaxConfig{Enabled: true, Rate: decimal.NewFromInt(1)}.EffectiveRate().Equal(MaxTaxRate))
	assert.True(t, TaxConfig{Enabled: true, Rate: decimal.NewFromFloat(0.25)}.EffectiveRate().Equal(decimal.NewFromFloat(0.25)))
}

func TestGoalAndBasis(t *testing.T) {
	p := validParams()
	assert.False(t, p.HasGoal())
	zero := decimal.Zero
	p.Goal = &zero
	assert.False(t, p.HasGoal(), "a zero goal is no goal")
	goal := decimal.NewFromInt(1)
	p.Goal = &goal
	assert.True(t, p.HasGoal())

	p.StartingCostBasis = nil
	assert.True(t, p.CostBasis().Equal(p.InitialValue))
}

func TestSeed(t *testing.T) {
	assert.Equal(t, uint64(42), Seed("42").Uint64())
	assert.Equal(t, uint64(42), SeedFromInt(42).Uint64())
	assert.Equal(t, uint64(1<<64-1), Seed("-1").Uint64())
	assert.Equal(t, Seed("retire-2040").Uint64(), Seed(" retire-2040 ").Uint64())
	assert.NotEqual(t, Seed("a").Uint64(), Seed("b").Uint64())
}

func TestProjectionStateVariants(t *testing.T) {
	p := validParams()
	g := NewProjectionState(ModeGrowth, p)
	w := NewProjectionState(ModeWithdrawal, p)
	assert.IsType(t, GrowthState{}, g)
	assert.IsType(t, WithdrawalState{}, w)
	assert.Equal(t, ModeWithdrawal, w.Mode())
	assert.Equal(t, p.DurationYears, g.Inputs().DurationYears)

	sf := ScenarioFile{Mode: ModeWithdrawal, Params: p}
	assert.Equal(t, ModeWithdrawal, sf.ProjectionState().Mode())
}

func TestPercentileBandOrdered(t *testing.T) {
	assert.True(t, PercentileBand{P10: 1, P25: 2, P50: 2, P75: 3, P90: 4}.Ordered())
	assert.False(t, PercentileBand{P10: 2, P25: 1}.Ordered())

	var r *SimulationResult
	_, ok := r.FinalValueBand()
	assert.False(t, ok)
	r = &SimulationResult{ValueBands: []PercentileBand{{Step: 0}, {Step: 12}}}
	last, ok := r.FinalValueBand()
	assert.True(t, ok)
	assert.Equal(t, 12, last.Step)
}
