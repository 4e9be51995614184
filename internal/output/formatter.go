package output

import (
	"sort"
	"strings"

	"github.com/rpgo/portfolio-simulator/internal/domain"
)

// Formatter defines a pluggable output formatter for stochastic runs.
// Implementations should be pure (no side effects besides deterministic formatting).
type Formatter interface {
	Format(result *domain.SimulationResult) ([]byte, error)
	// Name returns a short identifier for logging / debugging.
	Name() string
}

// ProjectionFormatter is implemented by formatters that can also render a
// deterministic projection table.
type ProjectionFormatter interface {
	FormatProjection(result *domain.ProjectionResult) ([]byte, error)
}

// SensitivityFormatter is implemented by formatters that can render a
// cash-flow sensitivity sweep.
type SensitivityFormatter interface {
	FormatSensitivity(result *domain.SensitivityResult) ([]byte, error)
}

var builtInFormatters = []Formatter{
	ConsoleFormatter{},
	ConsoleVerboseFormatter{},
	JSONFormatter{},
}

// GetFormatterByName fetches a registered formatter, or nil.
func GetFormatterByName(name string) Formatter {
	n := NormalizeFormatName(name)
	for _, f := range builtInFormatters {
		if f.Name() == n {
			return f
		}
	}
	return nil
}

// aliasMap provides user-friendly synonyms for format names.
var aliasMap = map[string]string{
	"":            "console",
	"text":        "console",
	"summary":     "console",
	"verbose":     "console-verbose",
	"detailed":    "console-verbose",
	"json-pretty": "json",
}

// NormalizeFormatName lowers and resolves aliases.
func NormalizeFormatName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if mapped, ok := aliasMap[n]; ok {
		return mapped
	}
	return n
}

// AvailableFormatterNames returns the canonical formatter names.
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(builtInFormatters))
	for _, f := range builtInFormatters {
		names = append(names, f.Name())
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases returns the supported alias keys.
func AvailableFormatAliases() []string {
	keys := make([]string, 0, len(aliasMap))
	for k := range aliasMap {
		if k != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}
