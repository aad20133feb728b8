// Package reporting renders a plain-language summary of a cross-validation
// evaluation: per-fold ROC results, cumulative accumulator values, and the
// aggregate AUC with its spread.
package reporting

import (
	"fmt"
	"strings"

	"github.com/rafaelpadilla/vdao-anomaly/internal/statistics"
)

// FoldResult holds one fold's AUC and selected operating point.
type FoldResult struct {
	Name               string
	AUC                float64
	OperatingTPR       float64
	OperatingScore     float64
	OperatingThreshold float64
}

// MetricResult holds an accumulator's final cumulative value.
type MetricResult struct {
	Name  string
	Value float64
}

// Summary is the full outcome of an evaluation run.
type Summary struct {
	Folds   []FoldResult
	MeanAUC float64
	StdAUC  float64
	Metrics []MetricResult
	AUCCI   *statistics.ConfidenceInterval
}

// InterpretAUC returns a plain-language label for an AUC value.
func InterpretAUC(auc float64) string {
	switch {
	case auc > 0.9:
		return "Excellent separability (>0.9)"
	case auc >= 0.8:
		return "Good separability (0.8-0.9)"
	case auc >= 0.7:
		return "Fair separability (0.7-0.8)"
	case auc > 0.5:
		return "Weak separability (0.5-0.7)"
	default:
		return "No better than chance (<=0.5)"
	}
}

// InterpretSpread explains the fold-to-fold AUC spread.
func InterpretSpread(stdAUC float64) string {
	switch {
	case stdAUC < 0.02:
		return "Folds agree closely — the estimate is stable."
	case stdAUC < 0.05:
		return "Moderate fold-to-fold variation."
	default:
		return "Large fold-to-fold variation — consider more folds or more data per fold."
	}
}

// FormatEvaluationReport produces a full plain-language report from a Summary.
func FormatEvaluationReport(s *Summary) string {
	var b strings.Builder

	b.WriteString("=== Cross-Validation ROC Summary ===\n\n")

	b.WriteString(fmt.Sprintf("Mean AUC:  %.4f ± %.4f — %s\n", s.MeanAUC, s.StdAUC, InterpretAUC(s.MeanAUC)))
	b.WriteString(fmt.Sprintf("Spread:    %s\n", InterpretSpread(s.StdAUC)))
	if s.AUCCI != nil {
		b.WriteString(fmt.Sprintf("AUC CI:    [%.4f, %.4f] at %.0f%% confidence (%d resamples)\n",
			s.AUCCI.Lower, s.AUCCI.Upper, s.AUCCI.ConfidenceLevel*100, s.AUCCI.NumBootstraps))
	}

	if len(s.Folds) > 0 {
		b.WriteString("\nPer-Fold Results:\n")
		for i, fold := range s.Folds {
			b.WriteString(fmt.Sprintf("  fold %d (%s): AUC = %.4f\n", i, fold.Name, fold.AUC))
			b.WriteString(fmt.Sprintf("    operating point: TPR = %.4f, metric = %.4f at threshold %.4f\n",
				fold.OperatingTPR, fold.OperatingScore, fold.OperatingThreshold))
		}
	}

	if len(s.Metrics) > 0 {
		b.WriteString("\nCumulative Metrics (all folds):\n")
		for _, m := range s.Metrics {
			b.WriteString(fmt.Sprintf("  %-4s %.6f\n", m.Name, m.Value))
		}
	}

	return b.String()
}
