package calculation

import (
	"fmt"

	"github.com/rpgo/portfolio-simulator/internal/domain"
)

// RunDeterministicProjection runs the zero-volatility path for a growth or
// withdrawal state and tabulates it by year. It draws no random numbers.
func (e *Engine) RunDeterministicProjection(state domain.ProjectionState) (*domain.ProjectionResult, error) {
	if state == nil {
		return nil, fmt.Errorf("%w: projection state is required", domain.ErrInvalidInput)
	}
	p, err := prepare(state.Inputs())
	if err != nil {
		return nil, fmt.Errorf("rejected projection parameters: %w", err)
	}
	res := project(NewStepParams(p, state.Mode()))
	e.logger.Debugf("%s projection over %d years ends at %.2f", res.Mode, len(res.Rows), res.EndingValue)
	return res, nil
}

// project walks the stepper with every draw at its mean.
func project(sp *StepParams) *domain.ProjectionResult {
	st := sp.NewPathState()
	res := &domain.ProjectionResult{
		Mode: sp.Mode,
		Rows: make([]domain.ProjectionRow, 0, sp.Years),
	}
	var src zeroSource

	for year := 1; year <= sp.Years; year++ {
		row := domain.ProjectionRow{Year: year, StartBalance: st.Gross}
		for i := 0; i < sp.StepsPerYear; i++ {
			flows := sp.Advance(&st, src.Normal())
			row.Growth += flows.Growth
			row.CashFlow += flows.CashFlow
			row.TaxPaid += flows.TaxPaid
		}
		row.EndBalance = st.Gross
		row.NetValue = sp.NetValue(st.Gross, st.Basis)
		row.CostBasis = st.Basis
		row.PerformanceIndex = st.Performance
		res.Rows = append(res.Rows, row)

		if res.DepletionYear == 0 && st.DepletedAt >= 0 {
			res.DepletionYear = year
		}
	}

	res.EndingValue = sp.NetValue(st.Gross, st.Basis)
	res.PreTaxEndingValue = sp.PreTaxValue(&st)
	res.TotalInvested = st.Invested
	return res
}
