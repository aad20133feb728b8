package main

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rafaelpadilla/vdao-anomaly/internal/dataset"
	"github.com/rafaelpadilla/vdao-anomaly/internal/evalconfig"
	"github.com/rafaelpadilla/vdao-anomaly/internal/metrics"
	"github.com/rafaelpadilla/vdao-anomaly/internal/reporting"
	"github.com/rafaelpadilla/vdao-anomaly/internal/roc"
	"github.com/rafaelpadilla/vdao-anomaly/internal/statistics"
)

func newEvaluateCommand() *cobra.Command {
	var (
		configPath string
		plotPath   string
		noPlot     bool
	)

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate cross-validation prediction dumps and render the ROC plot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEvaluate(cmd, configPath, plotPath, noPlot)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", ".vdao-eval.yaml", "Path to the evaluation config file")
	cmd.Flags().StringVarP(&plotPath, "plot", "p", "", "Override the plot output path from the config")
	cmd.Flags().BoolVar(&noPlot, "no-plot", false, "Skip plot rendering")

	return cmd
}

func runEvaluate(cmd *cobra.Command, configPath, plotOverride string, noPlot bool) error {
	cfg, err := evalconfig.Load(configPath)
	if err != nil {
		return err
	}

	folds, err := dataset.LoadFolds(cfg.Folds)
	if err != nil {
		return err
	}
	slog.Debug("loaded folds", "count", len(folds))

	opts := []metrics.Option{
		metrics.WithThreshold(cfg.Threshold),
		metrics.WithEpsilon(cfg.Epsilon),
	}
	fbeta, err := metrics.NewFBetaScore(cfg.Beta, opts...)
	if err != nil {
		return err
	}
	accumulators := []metrics.Accumulator{
		metrics.NewFalsePosRate(opts...),
		metrics.NewFalseNegRate(opts...),
		fbeta,
		metrics.NewDistance(opts...),
	}

	agg, err := roc.NewAggregator(roc.WithOp(roc.Op(cfg.ROC.Op)))
	if err != nil {
		return err
	}

	summary := &reporting.Summary{}
	latest := make([]float64, len(accumulators))

	for _, fold := range folds {
		pt, err := agg.Evaluate(fold.Labels, fold.Scores)
		if err != nil {
			return fmt.Errorf("evaluate %s: %w", fold.Name, err)
		}

		// Each fold is one more batch for the streaming accumulators; the
		// values reported at the end cover every fold combined.
		for i, acc := range accumulators {
			latest[i], err = acc.Update(fold.Labels, fold.Scores)
			if err != nil {
				return fmt.Errorf("evaluate %s: %w", fold.Name, err)
			}
		}

		history := agg.Folds()
		summary.Folds = append(summary.Folds, reporting.FoldResult{
			Name:               filepath.Base(fold.Name),
			AUC:                history[len(history)-1].AUC,
			OperatingTPR:       pt.TPR,
			OperatingScore:     pt.Score,
			OperatingThreshold: pt.Threshold,
		})
		slog.Debug("evaluated fold", "name", fold.Name, "auc", summary.Folds[len(summary.Folds)-1].AUC)
	}

	if _, summary.MeanAUC, err = agg.Mean(); err != nil {
		return err
	}
	if _, summary.StdAUC, err = agg.Std(); err != nil {
		return err
	}
	for i, acc := range accumulators {
		summary.Metrics = append(summary.Metrics, reporting.MetricResult{Name: acc.Name(), Value: latest[i]})
	}
	if cfg.Bootstrap() {
		ci := statistics.BootstrapCI(agg.AUCs(), cfg.Report.ConfidenceLevel)
		summary.AUCCI = &ci
	}

	fmt.Fprint(cmd.OutOrStdout(), reporting.FormatEvaluationReport(summary))

	if noPlot {
		return nil
	}
	path := cfg.ROC.Plot
	if plotOverride != "" {
		path = plotOverride
	}
	if err := agg.Plot(path, cfg.IncludeFolds()); err != nil {
		return err
	}
	slog.Info("wrote ROC plot", "path", path)
	return nil
}
