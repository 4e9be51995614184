package calculation

import (
	"math"
	"slices"

	"github.com/rpgo/portfolio-simulator/internal/domain"
)

// Percentile linearly interpolates between the two nearest order statistics
// of sorted at index p*(n-1). It returns 0 for an empty slice.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	switch {
	case n == 0:
		return 0
	case n == 1 || p <= 0:
		return sorted[0]
	case p >= 1:
		return sorted[n-1]
	}
	idx := p * float64(n-1)
	lo := int(math.Floor(idx))
	hi := int(math.Ceil(idx))
	if lo == hi {
		return sorted[lo]
	}
	frac := idx - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

// Mean returns the arithmetic mean, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// sortInPlace sorts scratch and returns it.
func sortInPlace(scratch []float64) []float64 {
	slices.Sort(scratch)
	return scratch
}

func endingStats(sorted []float64) domain.EndingStats {
	if len(sorted) == 0 {
		return domain.EndingStats{}
	}
	return domain.EndingStats{
		Mean:   Mean(sorted),
		Median: Percentile(sorted, 0.50),
		P5:     Percentile(sorted, 0.05),
		P10:    Percentile(sorted, 0.10),
		P25:    Percentile(sorted, 0.25),
		P75:    Percentile(sorted, 0.75),
		P90:    Percentile(sorted, 0.90),
		P95:    Percentile(sorted, 0.95),
		Best:   sorted[len(sorted)-1],
		Worst:  sorted[0],
	}
}

func percentileBand(sorted []float64, step int, year float64) domain.PercentileBand {
	return domain.PercentileBand{
		Step: step,
		Year: year,
		P10:  Percentile(sorted, 0.10),
		P25:  Percentile(sorted, 0.25),
		P50:  Percentile(sorted, 0.50),
		P75:  Percentile(sorted, 0.75),
		P90:  Percentile(sorted, 0.90),
	}
}

// CAGR annualises a performance multiple over years.
func CAGR(performance, years float64) float64 {
	if years <= 0 || performance <= 0 {
		return 0
	}
	return bounded(math.Pow(performance, 1/years)) - 1
}

// fraction returns count/total, or 0 when total is 0.
func fraction(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total)
}
