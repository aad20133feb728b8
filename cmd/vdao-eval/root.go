package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vdao-eval",
		Short: "vdao-eval - cross-validation ROC/AUC evaluation for anomaly detectors",
		Long: `vdao-eval computes streaming classification-quality metrics and
cross-validation ROC curves from prediction dumps.

Each fold is a CSV file of (label, score) pairs. The tool accumulates
false-positive/false-negative rates, F-beta and distance metrics across all
folds, aggregates per-fold ROC curves onto a fixed grid, and renders the mean
curve with a standard-deviation band.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	cmd.AddCommand(newEvaluateCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
