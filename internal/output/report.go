package output

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rpgo/portfolio-simulator/internal/domain"
)

// ErrUnsupportedFormat is returned when no formatter matches a format name.
var ErrUnsupportedFormat = errors.New("unsupported output format")

func unsupportedFormat(format string) error {
	return fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format,
		strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
}

// GenerateReport renders a stochastic run with the named formatter and writes it to w.
func GenerateReport(w io.Writer, result *domain.SimulationResult, format string) error {
	f := GetFormatterByName(format)
	if f == nil {
		return unsupportedFormat(format)
	}
	data, err := f.Format(result)
	if err != nil {
		return fmt.Errorf("%s formatter: %w", f.Name(), err)
	}
	_, err = w.Write(data)
	return err
}

// GenerateProjectionReport renders a deterministic projection. Console
// variants share one projection table.
func GenerateProjectionReport(w io.Writer, result *domain.ProjectionResult, format string) error {
	f := GetFormatterByName(format)
	if f == nil {
		return unsupportedFormat(format)
	}
	pf, ok := f.(ProjectionFormatter)
	if !ok {
		pf = ConsoleFormatter{}
	}
	data, err := pf.FormatProjection(result)
	if err != nil {
		return fmt.Errorf("%s formatter: %w", f.Name(), err)
	}
	_, err = w.Write(data)
	return err
}

// GenerateSensitivityReport renders a cash-flow sensitivity sweep.
func GenerateSensitivityReport(w io.Writer, result *domain.SensitivityResult, format string) error {
	f := GetFormatterByName(format)
	if f == nil {
		return unsupportedFormat(format)
	}
	sf, ok := f.(SensitivityFormatter)
	if !ok {
		sf = ConsoleFormatter{}
	}
	data, err := sf.FormatSensitivity(result)
	if err != nil {
		return fmt.Errorf("%s formatter: %w", f.Name(), err)
	}
	_, err = w.Write(data)
	return err
}
