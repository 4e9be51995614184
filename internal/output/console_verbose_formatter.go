package output

import (
	"bytes"
	"fmt"

	"github.com/rpgo/portfolio-simulator/internal/domain"
)

// ConsoleVerboseFormatter renders every yearly band, the pre-tax view and the
// full exceedance table.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console-verbose" }

func (c ConsoleVerboseFormatter) Format(result *domain.SimulationResult) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("no simulation result to format")
	}
	var buf bytes.Buffer
	writeHeader(&buf, result)
	fmt.Fprintf(&buf, "Recorded every %d steps\n\n", result.RecordFrequency)

	writeEnding(&buf, "ENDING VALUE (after tax)", result.Ending)
	writeEnding(&buf, "ENDING VALUE (pre-tax)", result.PreTaxEnding)
	writeSummary(&buf, result)

	fmt.Fprintln(&buf, "NET VALUE BANDS")
	writeBands(&buf, yearlyBands(result.ValueBands, 1), currency)
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "PRE-TAX VALUE BANDS")
	writeBands(&buf, yearlyBands(result.GrossValueBands, 1), currency)
	fmt.Fprintln(&buf)

	if len(result.ReturnBands) > 0 {
		fmt.Fprintln(&buf, "ANNUALISED RETURN BANDS")
		writeBands(&buf, yearlyBands(result.ReturnBands, 1), percent)
		fmt.Fprintln(&buf)
	}

	writeLossTable(&buf, result.LossTable)
	if len(result.ReturnExceedance) > 0 {
		fmt.Fprintln(&buf, "ANNUALISED RETURN EXCEEDANCE")
		writeExceedance(&buf, result.ReturnExceedance)
		fmt.Fprintln(&buf)
	}
	writeHints(&buf, result.DisplayHints)
	return buf.Bytes(), nil
}
