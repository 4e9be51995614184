package main

import (
	"fmt"

	"github.com/rpgo/portfolio-simulator/internal/output"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newSimulateCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate <scenario.yaml>",
		Short: "Run the stochastic simulation for a scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sf, err := a.loadScenario(cmd, args[0])
			if err != nil {
				return err
			}
			res, err := a.engine.RunStochasticSimulation(cmd.Context(), sf.Params, sf.Mode, sf.Seed)
			if err != nil {
				return err
			}
			a.logger.Info("simulation finished",
				zap.String("run_id", res.RunID),
				zap.String("seed", string(res.Seed)),
				zap.String("strategy", res.Strategy),
			)
			return output.GenerateReport(cmd.OutOrStdout(), res, a.settings.Format)
		},
	}
	addRunFlags(cmd)
	return cmd
}

func newProjectCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "project <scenario.yaml>",
		Short: "Print the deterministic year-by-year projection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sf, err := a.loadScenario(cmd, args[0])
			if err != nil {
				return err
			}
			res, err := a.engine.RunDeterministicProjection(sf.ProjectionState())
			if err != nil {
				return err
			}
			return output.GenerateProjectionReport(cmd.OutOrStdout(), res, a.settings.Format)
		},
	}
}

func newSensitivityCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sensitivity <scenario.yaml>",
		Short: "Sweep the cash flow and compare success rates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sf, err := a.loadScenario(cmd, args[0])
			if err != nil {
				return err
			}
			res, err := a.engine.RunSensitivity(cmd.Context(), sf.Params, sf.Mode, sf.Seed, sf.Sensitivity)
			if err != nil {
				return err
			}
			return output.GenerateSensitivityReport(cmd.OutOrStdout(), res, a.settings.Format)
		},
	}
	addRunFlags(cmd)
	return cmd
}

func newValidateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <scenario.yaml>",
		Short: "Check a scenario file without running it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sf, err := a.parser.LoadFromFile(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: valid %s scenario (%d paths)\n", sf.Name, sf.Mode, sf.Params.WithDefaults().NumPaths)
			return nil
		},
	}
}

func newExampleCommand(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "example",
		Short: "Print or write an example scenario file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sf := a.parser.CreateExampleConfiguration()
			if out != "" {
				if err := a.parser.SaveToFile(sf, out); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote example scenario to %s\n", out)
				return nil
			}
			data, err := a.parser.Marshal(sf)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the example to this file instead of stdout")
	return cmd
}
