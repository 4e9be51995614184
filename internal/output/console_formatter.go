package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/rpgo/portfolio-simulator/internal/domain"
)

// ConsoleFormatter provides a concise console summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(result *domain.SimulationResult) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("no simulation result to format")
	}
	var buf bytes.Buffer
	writeHeader(&buf, result)
	writeEnding(&buf, "ENDING VALUE", result.Ending)
	writeSummary(&buf, result)

	fmt.Fprintln(&buf, "VALUE BANDS")
	years := float64(result.TotalSteps) / float64(max(result.StepsPerYear, 1))
	writeBands(&buf, yearlyBands(result.ValueBands, yearStride(years, 10)), currency)
	fmt.Fprintln(&buf)

	writeLossTable(&buf, result.LossTable)
	if n := len(result.ReturnExceedance); n > 0 {
		fmt.Fprintln(&buf, "ANNUALISED RETURN EXCEEDANCE (final year)")
		writeExceedance(&buf, result.ReturnExceedance[n-1:])
		fmt.Fprintln(&buf)
	}
	writeHints(&buf, result.DisplayHints)
	return buf.Bytes(), nil
}

func (c ConsoleFormatter) FormatProjection(result *domain.ProjectionResult) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("no projection result to format")
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "DETERMINISTIC PROJECTION (%s)\n", result.Mode)
	fmt.Fprintln(&buf, strings.Repeat("=", 32))
	fmt.Fprintf(&buf, "%-6s %16s %14s %14s %12s %16s %16s\n",
		"Year", "Start", "Cash Flow", "Growth", "Tax", "End", "Net")
	for _, row := range result.Rows {
		fmt.Fprintf(&buf, "%-6d %16s %14s %14s %12s %16s %16s\n",
			row.Year,
			currency(row.StartBalance),
			currency(row.CashFlow),
			currency(row.Growth),
			currency(row.TaxPaid),
			currency(row.EndBalance),
			currency(row.NetValue),
		)
	}
	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "Ending value (after tax): %s\n", currency(result.EndingValue))
	fmt.Fprintf(&buf, "Ending value (pre-tax):   %s\n", currency(result.PreTaxEndingValue))
	fmt.Fprintf(&buf, "Total invested:           %s\n", currency(result.TotalInvested))
	if result.DepletionYear > 0 {
		fmt.Fprintf(&buf, "Portfolio depleted in year %d\n", result.DepletionYear)
	}
	return buf.Bytes(), nil
}

func (c ConsoleFormatter) FormatSensitivity(result *domain.SensitivityResult) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("no sensitivity result to format")
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "CASH FLOW SENSITIVITY (%s, seed %s)\n", result.Mode, result.Seed)
	fmt.Fprintln(&buf, strings.Repeat("=", 32))
	fmt.Fprintf(&buf, "%-8s %14s %10s %18s %18s\n", "Variant", "Cash Flow", "Success", "Median Ending", "Deterministic")
	for _, row := range result.Rows {
		fmt.Fprintf(&buf, "%-8s %14s %10s %18s %18s\n",
			row.Label,
			currency(row.CashFlow),
			percent(row.SuccessRate),
			currency(row.MedianEndingValue),
			currency(row.DeterministicEnding),
		)
	}
	return buf.Bytes(), nil
}

func writeHeader(w io.Writer, r *domain.SimulationResult) {
	fmt.Fprintln(w, "PORTFOLIO SIMULATION SUMMARY")
	fmt.Fprintln(w, "================================")
	fmt.Fprintf(w, "Run ID:   %s\n", r.RunID)
	fmt.Fprintf(w, "Seed:     %s\n", r.Seed)
	fmt.Fprintf(w, "Mode:     %s (%d paths, %d steps at %d/yr, %s)\n",
		r.Mode, r.NumPaths, r.TotalSteps, r.StepsPerYear, r.Strategy)
	fmt.Fprintf(w, "Initial:  %s\n", currency(r.InitialValue))
	fmt.Fprintln(w)
}

func writeEnding(w io.Writer, title string, s domain.EndingStats) {
	fmt.Fprintln(w, title)
	rows := []struct {
		label string
		value float64
	}{
		{"Mean", s.Mean}, {"Median", s.Median},
		{"P5", s.P5}, {"P10", s.P10}, {"P25", s.P25},
		{"P75", s.P75}, {"P90", s.P90}, {"P95", s.P95},
		{"Best", s.Best}, {"Worst", s.Worst},
	}
	for _, row := range rows {
		fmt.Fprintf(w, "  %-8s %18s\n", row.label, currency(row.value))
	}
	fmt.Fprintln(w)
}

func writeSummary(w io.Writer, r *domain.SimulationResult) {
	s := r.Summary
	fmt.Fprintln(w, "OUTCOMES")
	if r.Mode == domain.ModeWithdrawal {
		fmt.Fprintf(w, "  Solvent at horizon:    %s\n", percent(s.SolventRate))
		fmt.Fprintf(w, "  Depleted:              %s\n", percent(s.DepletionRate))
	} else {
		if s.HasGoal {
			fmt.Fprintf(w, "  Goal reached:          %s\n", percent(s.GoalProbability))
		}
		fmt.Fprintf(w, "  Ended above invested:  %s\n", percent(s.ProfitableRate))
	}
	fmt.Fprintf(w, "  Median max drawdown:   %s\n", percent(s.MedianMaxDrawdown))
	fmt.Fprintf(w, "  Worst max drawdown:    %s\n", percent(s.WorstMaxDrawdown))
	fmt.Fprintf(w, "  Mean total invested:   %s\n", currency(s.MeanTotalInvested))
	fmt.Fprintln(w)
}

func writeBands(w io.Writer, bands []domain.PercentileBand, render func(float64) string) {
	fmt.Fprintf(w, "  %-6s %18s %18s %18s %18s %18s\n", "Year", "P10", "P25", "P50", "P75", "P90")
	for _, b := range bands {
		fmt.Fprintf(w, "  %-6.1f %18s %18s %18s %18s %18s\n",
			b.Year, render(b.P10), render(b.P25), render(b.P50), render(b.P75), render(b.P90))
	}
}

func writeLossTable(w io.Writer, rows []domain.LossProbability) {
	if len(rows) == 0 {
		return
	}
	fmt.Fprintln(w, "PROBABILITY OF LOSS")
	fmt.Fprintf(w, "  %-10s %14s %14s\n", "Loss", "Intra-period", "End of period")
	for _, row := range rows {
		fmt.Fprintf(w, "  %-10s %14s %14s\n", percent(row.Threshold), percent(row.IntraPeriod), percent(row.EndOfPeriod))
	}
	fmt.Fprintln(w)
}

func writeExceedance(w io.Writer, rows []domain.ExceedanceRow) {
	if len(rows) == 0 {
		return
	}
	fmt.Fprintf(w, "  %-6s", "Year")
	for _, t := range rows[0].Thresholds {
		fmt.Fprintf(w, " %9s", ">="+percent(t))
	}
	fmt.Fprintln(w)
	for _, row := range rows {
		fmt.Fprintf(w, "  %-6.1f", row.Year)
		for _, p := range row.Probabilities {
			fmt.Fprintf(w, " %9s", percent(p))
		}
		fmt.Fprintln(w)
	}
}

func writeHints(w io.Writer, h domain.DisplayHints) {
	if h.LogScaleValue {
		fmt.Fprintln(w, "Note: ending values are widely spread; chart values on a log scale.")
	}
	if h.LogScaleReturn {
		fmt.Fprintln(w, "Note: annualised returns are widely spread; chart returns on a log scale.")
	}
}
