package calculation

import (
	"math"

	"github.com/rpgo/portfolio-simulator/internal/domain"
)

// MaxValue caps every balance and growth factor so that sums across scenarios
// stay finite under extreme compounding.
const MaxValue = 1e300

// bounded clamps v to MaxValue.
func bounded(v float64) float64 {
	if v > MaxValue {
		return MaxValue
	}
	return v
}

// StepParams is the read-only parameter block shared by every scenario of a
// run. All money and rates are float64 here; decimals stay at the edges.
type StepParams struct {
	Mode         domain.Mode
	InitialValue float64
	InitialBasis float64
	StepsPerYear int
	TotalSteps   int
	Years        int

	dt     float64
	sqrtDt float64
	sigma  float64
	// drift drives the main trajectory; preTaxDrift drives the shadow
	// trajectory and the performance index. They differ only under income tax.
	drift       float64
	preTaxDrift float64

	TaxType domain.TaxType
	TaxRate float64 // zero when tax is disabled

	cashFlowEvery    int     // steps between cash flows
	cashFlowAmount   float64 // amount per application before escalation
	Inflation        float64
	ExcludeInflation bool

	Goal    float64
	HasGoal bool
}

// NewStepParams converts validated params into the per-step parameter block.
func NewStepParams(p domain.SimulationParams, mode domain.Mode) *StepParams {
	steps := p.StepsPerYear
	r := p.ExpectedReturn.InexactFloat64()
	taxRate := p.Tax.EffectiveRate().InexactFloat64()

	sp := &StepParams{
		Mode:             mode,
		InitialValue:     p.InitialValue.InexactFloat64(),
		InitialBasis:     p.CostBasis().InexactFloat64(),
		StepsPerYear:     steps,
		TotalSteps:       p.DurationYears * steps,
		Years:            p.DurationYears,
		dt:               1 / float64(steps),
		sqrtDt:           math.Sqrt(1 / float64(steps)),
		sigma:            p.Volatility.InexactFloat64(),
		TaxRate:          taxRate,
		Inflation:        p.InflationRate.InexactFloat64(),
		ExcludeInflation: p.ExcludeInflation,
		HasGoal:          p.HasGoal(),
	}
	if p.Tax.Enabled {
		sp.TaxType = p.Tax.Type
	}
	if sp.HasGoal {
		sp.Goal = p.Goal.InexactFloat64()
	}

	sp.preTaxDrift = annualDrift(r, p.RateMode, steps)
	sp.drift = sp.preTaxDrift
	if sp.TaxType == domain.TaxIncome {
		sp.drift = annualDrift(r*(1-taxRate), p.RateMode, steps)
	}

	amount := p.CashFlow.InexactFloat64()
	periods := p.CashFlowFrequency.PeriodsPerYear()
	if periods >= steps {
		sp.cashFlowEvery = 1
		sp.cashFlowAmount = amount * float64(periods) / float64(steps)
	} else {
		sp.cashFlowEvery = steps / periods
		sp.cashFlowAmount = amount
	}
	return sp
}

// annualDrift is the continuous log drift per year for annual return r.
func annualDrift(r float64, mode domain.RateMode, stepsPerYear int) float64 {
	if mode == domain.RateNominal {
		s := float64(stepsPerYear)
		return s * math.Log1p(r/s)
	}
	return math.Log1p(r)
}

// PathState is the mutable state of one scenario. It never leaves the
// scenario that owns it.
type PathState struct {
	Step        int
	Gross       float64 // main trajectory before liquidation tax
	PreTax      float64 // shadow trajectory at the pre-tax rate
	Basis       float64
	Invested    float64
	Performance float64
	Peak        float64
	MaxDrawdown float64
	Lowest      float64
	Escalation  float64
	DepletedAt  int
}

// StepFlows are the money movements of one step, used by the projection tables.
type StepFlows struct {
	Growth   float64
	CashFlow float64 // contributed, or net delivered to the holder
	TaxPaid  float64
}

// NewPathState returns the state at step 0.
func (sp *StepParams) NewPathState() PathState {
	st := PathState{
		Gross:       sp.InitialValue,
		PreTax:      sp.InitialValue,
		Basis:       sp.InitialBasis,
		Invested:    sp.InitialValue,
		Performance: 1,
		Lowest:      math.Inf(1),
		Escalation:  1,
		DepletedAt:  -1,
	}
	st.Peak = sp.NetValue(st.Gross, st.Basis)
	return st
}

// NetValue is the liquidation value of a gross balance after tax.
func (sp *StepParams) NetValue(gross, basis float64) float64 {
	if gross <= 0 {
		return 0
	}
	switch sp.TaxType {
	case domain.TaxCapitalGains:
		if gross > basis {
			return basis + (1-sp.TaxRate)*(gross-basis)
		}
		return gross
	case domain.TaxDeferred:
		return gross * (1 - sp.TaxRate)
	}
	return gross
}

// PreTaxValue is the value the holder would have without tax.
func (sp *StepParams) PreTaxValue(st *PathState) float64 {
	if sp.TaxType == domain.TaxIncome {
		return st.PreTax
	}
	return st.Gross
}

// Advance moves st forward one step with the standard normal draw z.
func (sp *StepParams) Advance(st *PathState, z float64) StepFlows {
	st.Step++
	k := st.Step
	if k > 1 && (k-1)%sp.StepsPerYear == 0 && !sp.ExcludeInflation {
		st.Escalation = bounded(st.Escalation * (1 + sp.Inflation))
	}

	shock := sp.sigma * sp.sqrtDt * z
	g := bounded(math.Exp(sp.drift*sp.dt + shock))
	gPre := g
	if sp.drift != sp.preTaxDrift {
		gPre = bounded(math.Exp(sp.preTaxDrift*sp.dt + shock))
	}

	var flows StepFlows
	before := st.Gross
	st.Gross = bounded(st.Gross * g)
	st.PreTax = bounded(st.PreTax * gPre)
	st.Performance = bounded(st.Performance * gPre)
	flows.Growth = st.Gross - before
	if sp.TaxType == domain.TaxIncome {
		flows.TaxPaid = bounded(before*gPre) - st.Gross
	}

	if sp.cashFlowAmount > 0 && k%sp.cashFlowEvery == 0 {
		amount := bounded(sp.cashFlowAmount * st.Escalation)
		if sp.Mode == domain.ModeWithdrawal {
			delivered, tax := sp.withdraw(st, amount)
			flows.CashFlow = delivered
			flows.TaxPaid += tax
		} else {
			st.Gross = bounded(st.Gross + amount)
			st.PreTax = bounded(st.PreTax + amount)
			st.Basis = bounded(st.Basis + amount)
			st.Invested = bounded(st.Invested + amount)
			flows.CashFlow = amount
		}
	}

	sp.track(st)
	return flows
}

// withdraw takes enough gross balance to deliver amount after tax, clamped to
// the balance. It returns the net amount delivered and the tax withheld.
func (sp *StepParams) withdraw(st *PathState, amount float64) (delivered, tax float64) {
	if st.PreTax > 0 {
		st.PreTax = math.Max(0, st.PreTax-amount)
	}
	v := st.Gross
	if v <= 0 {
		st.Gross = 0
		return 0, 0
	}

	var effRate float64
	switch sp.TaxType {
	case domain.TaxCapitalGains:
		effRate = sp.TaxRate * math.Max(0, 1-st.Basis/v)
	case domain.TaxDeferred:
		effRate = sp.TaxRate
	}
	gross := amount / (1 - effRate)
	if gross >= v {
		gross = v
	}

	if sp.TaxType == domain.TaxCapitalGains {
		st.Basis -= st.Basis * (gross / v)
	}
	st.Gross = v - gross
	if gross == v {
		st.Gross = 0
		st.Basis = 0
	}
	tax = gross * effRate
	return gross - tax, tax
}

// track updates peak, drawdown, trough and depletion after a step.
func (sp *StepParams) track(st *PathState) {
	net := sp.NetValue(st.Gross, st.Basis)
	if net > st.Peak {
		st.Peak = net
	}
	if st.Peak > 0 {
		dd := (st.Peak - net) / st.Peak
		if dd > st.MaxDrawdown {
			st.MaxDrawdown = math.Min(dd, 1)
		}
	}
	if net < st.Lowest {
		st.Lowest = net
	}
	if st.DepletedAt < 0 && sp.Mode == domain.ModeWithdrawal && st.Gross <= 0 {
		st.DepletedAt = st.Step
	}
}
