package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/rpgo/portfolio-simulator/internal/calculation"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment overrides, e.g. RPSIM_WORKERS.
const EnvPrefix = "RPSIM"

// Settings are engine and CLI settings that do not change a run's meaning.
type Settings struct {
	Workers           int    `mapstructure:"workers"`
	ParallelThreshold int    `mapstructure:"parallel_threshold"`
	MaxRecordedPoints int    `mapstructure:"max_recorded_points"`
	MaxChartSteps     int    `mapstructure:"max_chart_steps"`
	Format            string `mapstructure:"format"`
	Debug             bool   `mapstructure:"debug"`
}

// LoadSettings reads settings from path (optional), then RPSIM_* environment
// variables, on top of the built-in defaults.
func LoadSettings(path string) (*Settings, error) {
	v := viper.New()

	defaults := map[string]interface{}{
		"workers":             runtime.NumCPU(),
		"parallel_threshold":  calculation.DefaultParallelThreshold,
		"max_recorded_points": calculation.DefaultMaxRecordedPoints,
		"max_chart_steps":     calculation.DefaultMaxChartSteps,
		"format":              "console",
		"debug":               false,
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read settings %s: %w", path, err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks that every limit is usable.
func (s *Settings) Validate() error {
	if s.Workers < 0 {
		return errors.New("invalid workers count")
	}
	if s.ParallelThreshold < 0 {
		return errors.New("invalid parallel_threshold")
	}
	if s.MaxRecordedPoints < 2 {
		return errors.New("max_recorded_points must be at least 2")
	}
	if s.MaxChartSteps < 1 {
		return errors.New("max_chart_steps must be at least 1")
	}
	return nil
}

// EngineOptions converts the settings into calculation options.
func (s *Settings) EngineOptions() calculation.Options {
	return calculation.Options{
		Workers:           s.Workers,
		ParallelThreshold: s.ParallelThreshold,
		MaxRecordedPoints: s.MaxRecordedPoints,
		MaxChartSteps:     s.MaxChartSteps,
	}
}
