package output

import (
	"math"

	"github.com/rpgo/portfolio-simulator/internal/domain"
	money "github.com/rpgo/portfolio-simulator/pkg/decimal"
	"github.com/shopspring/decimal"
)

// SafeDecimal converts a simulation value for presentation. NaN becomes zero
// and infinities are clamped to ±money.MaxAmount.
func SafeDecimal(v float64) decimal.Decimal { return money.FromFloat(v) }

// FormatCurrency formats a decimal as USD with thousands separators and 2 decimals.
func FormatCurrency(amount decimal.Decimal) string {
	return money.NewMoneyFromDecimal(amount).Format()
}

// FormatPercentage formats a decimal as a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

func currency(v float64) string { return money.NewMoney(v).Format() }

// percent renders a fraction (0.25) as "25.00%".
func percent(fraction float64) string { return FormatPercentage(SafeDecimal(fraction * 100)) }

func finite(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v > money.MaxAmount:
		return money.MaxAmount
	case v < -money.MaxAmount:
		return -money.MaxAmount
	}
	return v
}

func sanitizeStats(s domain.EndingStats) domain.EndingStats {
	return domain.EndingStats{
		Mean: finite(s.Mean), Median: finite(s.Median),
		P5: finite(s.P5), P10: finite(s.P10), P25: finite(s.P25),
		P75: finite(s.P75), P90: finite(s.P90), P95: finite(s.P95),
		Best: finite(s.Best), Worst: finite(s.Worst),
	}
}

func sanitizeBands(bands []domain.PercentileBand) []domain.PercentileBand {
	out := make([]domain.PercentileBand, len(bands))
	for i, b := range bands {
		out[i] = domain.PercentileBand{
			Step: b.Step, Year: b.Year,
			P10: finite(b.P10), P25: finite(b.P25), P50: finite(b.P50),
			P75: finite(b.P75), P90: finite(b.P90),
		}
	}
	return out
}

// sanitizeResult returns a copy of r that encoding/json can always marshal.
func sanitizeResult(r *domain.SimulationResult) *domain.SimulationResult {
	if r == nil {
		return nil
	}
	out := *r
	out.InitialValue = finite(r.InitialValue)
	out.Ending = sanitizeStats(r.Ending)
	out.PreTaxEnding = sanitizeStats(r.PreTaxEnding)
	out.ValueBands = sanitizeBands(r.ValueBands)
	out.GrossValueBands = sanitizeBands(r.GrossValueBands)
	out.ReturnBands = sanitizeBands(r.ReturnBands)
	out.Summary.MeanTotalInvested = finite(r.Summary.MeanTotalInvested)
	return &out
}

// sanitizeProjection returns a copy of r that encoding/json can always marshal.
func sanitizeProjection(r *domain.ProjectionResult) *domain.ProjectionResult {
	if r == nil {
		return nil
	}
	out := *r
	out.EndingValue = finite(r.EndingValue)
	out.PreTaxEndingValue = finite(r.PreTaxEndingValue)
	out.TotalInvested = finite(r.TotalInvested)
	out.Rows = make([]domain.ProjectionRow, len(r.Rows))
	for i, row := range r.Rows {
		out.Rows[i] = domain.ProjectionRow{
			Year:             row.Year,
			StartBalance:     finite(row.StartBalance),
			CashFlow:         finite(row.CashFlow),
			Growth:           finite(row.Growth),
			TaxPaid:          finite(row.TaxPaid),
			EndBalance:       finite(row.EndBalance),
			NetValue:         finite(row.NetValue),
			CostBasis:        finite(row.CostBasis),
			PerformanceIndex: finite(row.PerformanceIndex),
		}
	}
	return &out
}

// sanitizeSensitivity returns a copy of r that encoding/json can always marshal.
func sanitizeSensitivity(r *domain.SensitivityResult) *domain.SensitivityResult {
	if r == nil {
		return nil
	}
	out := *r
	out.Rows = make([]domain.SensitivityRow, len(r.Rows))
	for i, row := range r.Rows {
		row.CashFlow = finite(row.CashFlow)
		row.SuccessRate = finite(row.SuccessRate)
		row.MedianEndingValue = finite(row.MedianEndingValue)
		row.DeterministicEnding = finite(row.DeterministicEnding)
		out.Rows[i] = row
	}
	return &out
}

// yearlyBands picks the first band at or after every `every`-th whole year,
// plus the final band.
func yearlyBands(bands []domain.PercentileBand, every int) []domain.PercentileBand {
	if every < 1 {
		every = 1
	}
	var out []domain.PercentileBand
	next := 0.0
	for i, b := range bands {
		last := i == len(bands)-1
		if b.Year >= next || last {
			out = append(out, b)
			for next <= b.Year {
				next += float64(every)
			}
		}
	}
	return out
}

// yearStride keeps console tables to roughly maxRows rows.
func yearStride(years float64, maxRows int) int {
	if years <= float64(maxRows) {
		return 1
	}
	return int(math.Ceil(years / float64(maxRows)))
}
