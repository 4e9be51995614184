package main

import (
	"fmt"

	"github.com/rpgo/portfolio-simulator/internal/calculation"
	"github.com/rpgo/portfolio-simulator/internal/config"
	"github.com/rpgo/portfolio-simulator/internal/domain"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var _ calculation.Logger = (*zap.SugaredLogger)(nil)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	settingsPath string
	format       string
	debug        bool

	settings *config.Settings
	logger   *zap.Logger
	engine   *calculation.Engine
	parser   *config.InputParser
}

func newRootCommand() *cobra.Command {
	a := &app{parser: config.NewInputParser()}

	root := &cobra.Command{
		Use:           "rpsim",
		Short:         "Stochastic portfolio growth and withdrawal simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.settingsPath, "settings", "", "engine settings file (YAML); RPSIM_* variables override it")
	flags.StringVarP(&a.format, "format", "f", "", "output format: console, console-verbose or json")
	flags.BoolVar(&a.debug, "debug", false, "enable debug logging")

	root.AddCommand(
		newSimulateCommand(a),
		newProjectCommand(a),
		newSensitivityCommand(a),
		newValidateCommand(a),
		newExampleCommand(a),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	settings, err := config.LoadSettings(a.settingsPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("format") {
		settings.Format = a.format
	}
	if a.debug {
		settings.Debug = true
	}
	a.settings = settings

	logger, err := newLogger(settings.Debug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	a.logger = logger

	a.engine = calculation.NewEngine(settings.EngineOptions())
	a.engine.SetLogger(logger.Sugar())
	return nil
}

func newLogger(debug bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if debug {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

// loadScenario reads a scenario file and applies the --seed and --paths overrides.
func (a *app) loadScenario(cmd *cobra.Command, path string) (*domain.ScenarioFile, error) {
	sf, err := a.parser.LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	if f := cmd.Flags().Lookup("seed"); f != nil && f.Changed {
		sf.Seed = domain.Seed(f.Value.String())
	}
	if f := cmd.Flags().Lookup("paths"); f != nil && f.Changed {
		paths, err := cmd.Flags().GetInt("paths")
		if err != nil {
			return nil, err
		}
		sf.Params.NumPaths = paths
	}
	a.logger.Debug("loaded scenario",
		zap.String("name", sf.Name),
		zap.String("mode", string(sf.Mode)),
		zap.String("seed", string(sf.Seed)),
		zap.Int("paths", sf.Params.NumPaths),
	)
	return sf, nil
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().String("seed", "", "override the scenario seed (empty generates one)")
	cmd.Flags().Int("paths", 0, "override the number of simulated paths")
}
