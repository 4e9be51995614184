package output

import (
	"encoding/json"

	"github.com/rpgo/portfolio-simulator/internal/domain"
)

// JSONFormatter renders results as indented JSON.
type JSONFormatter struct{}

func (JSONFormatter) Name() string { return "json" }

func (JSONFormatter) Format(result *domain.SimulationResult) ([]byte, error) {
	return marshalJSON(sanitizeResult(result))
}

func (JSONFormatter) FormatProjection(result *domain.ProjectionResult) ([]byte, error) {
	return marshalJSON(sanitizeProjection(result))
}

func (JSONFormatter) FormatSensitivity(result *domain.SensitivityResult) ([]byte, error) {
	return marshalJSON(sanitizeSensitivity(result))
}

func marshalJSON(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
