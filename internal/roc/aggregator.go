package roc

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/rafaelpadilla/vdao-anomaly/internal/statistics"
)

// GridSize is the number of points in the fixed false-positive-rate grid
// that per-fold curves are interpolated onto.
const GridSize = 100

// ErrNoFolds is returned by Mean and Std before any Evaluate call.
var ErrNoFolds = errors.New("roc: no folds evaluated")

// Op selects whether the operating point maximizes or minimizes the metric.
type Op string

const (
	OpMax Op = "max"
	OpMin Op = "min"
)

// Fold holds one evaluation's raw ROC curve and its AUC. Folds are append
// only: once stored they are never mutated.
type Fold struct {
	FPR []float64
	TPR []float64
	AUC float64
}

// OperatingPoint is the threshold-sweep point selected by the configured
// metric and direction.
type OperatingPoint struct {
	// TPR is the interpolated true-positive rate at the selected index.
	TPR float64
	// Score is the metric value at the selected index.
	Score float64
	// Threshold is the raw score cutoff at the selected index.
	Threshold float64
}

// Aggregator accumulates ROC curves across repeated evaluations and derives
// mean and standard-deviation curves over a fixed 100-point FPR grid. It is
// not safe for concurrent use; the fold history is owned exclusively by the
// instance and grows monotonically.
type Aggregator struct {
	metric MetricFunc
	op     Op

	gridFPR   []float64
	folds     []Fold
	interpTPR [][]float64

	// Lazily derived from the fold history, cleared by Evaluate.
	meanTPR []float64
	meanAUC float64
	stdTPR  []float64
	stdAUC  float64
}

// AggregatorOption configures an Aggregator at construction.
type AggregatorOption func(*Aggregator)

// WithMetric sets the operating-point selection metric
// (default DistanceFromPerfect).
func WithMetric(fn MetricFunc) AggregatorOption {
	return func(a *Aggregator) { a.metric = fn }
}

// WithOp sets the selection direction (default OpMax).
func WithOp(op Op) AggregatorOption {
	return func(a *Aggregator) { a.op = op }
}

// NewAggregator returns an empty aggregator. An op other than OpMax or OpMin
// is a configuration error.
func NewAggregator(opts ...AggregatorOption) (*Aggregator, error) {
	a := &Aggregator{
		metric:  DistanceFromPerfect,
		op:      OpMax,
		gridFPR: floats.Span(make([]float64, GridSize), 0, 1),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.op != OpMax && a.op != OpMin {
		return nil, fmt.Errorf("roc: invalid op %q (want %q or %q)", a.op, OpMax, OpMin)
	}
	if a.metric == nil {
		return nil, fmt.Errorf("roc: nil metric function")
	}
	return a, nil
}

// Evaluate computes one fold's ROC curve, appends it to the history, and
// returns the operating point selected by the configured metric. The fold's
// true-positive rates are interpolated onto the fixed FPR grid with the
// first point forced to 0 to anchor the curve at the origin.
func (a *Aggregator) Evaluate(yTrue, yScore []float64) (OperatingPoint, error) {
	fpr, tpr, thresholds, err := Curve(yTrue, yScore)
	if err != nil {
		return OperatingPoint{}, err
	}

	interp := interpGrid(a.gridFPR, fpr, tpr)
	interp[0] = 0.0

	a.folds = append(a.folds, Fold{FPR: fpr, TPR: tpr, AUC: AUC(fpr, tpr)})
	a.interpTPR = append(a.interpTPR, interp)
	a.invalidate()

	dist := a.metric(tpr, fpr)
	idx := 0
	for i, d := range dist {
		if (a.op == OpMax && d > dist[idx]) || (a.op == OpMin && d < dist[idx]) {
			idx = i
		}
	}
	// The sweep can be longer than the interpolation grid.
	tprIdx := idx
	if tprIdx >= len(interp) {
		tprIdx = len(interp) - 1
	}
	return OperatingPoint{
		TPR:       interp[tprIdx],
		Score:     dist[idx],
		Threshold: thresholds[idx],
	}, nil
}

// GridFPR returns the fixed false-positive-rate grid shared by all
// interpolated curves.
func (a *Aggregator) GridFPR() []float64 { return a.gridFPR }

// Folds returns the accumulated fold history.
func (a *Aggregator) Folds() []Fold { return a.folds }

// AUCs returns the per-fold AUC values in evaluation order.
func (a *Aggregator) AUCs() []float64 {
	aucs := make([]float64, len(a.folds))
	for i, f := range a.folds {
		aucs[i] = f.AUC
	}
	return aucs
}

// Mean returns the mean interpolated true-positive-rate curve over the FPR
// grid and the AUC of that mean curve. The curve's last point is forced to
// 1.0 to close it at the top-right corner. The result is cached and
// recomputed only after new folds are evaluated.
func (a *Aggregator) Mean() ([]float64, float64, error) {
	if len(a.folds) == 0 {
		return nil, 0, ErrNoFolds
	}
	if a.meanTPR == nil {
		mean := make([]float64, GridSize)
		col := make([]float64, len(a.interpTPR))
		for i := range mean {
			for j, curve := range a.interpTPR {
				col[j] = curve[i]
			}
			mean[i] = statistics.Mean(col)
		}
		mean[GridSize-1] = 1.0
		a.meanTPR = mean
		a.meanAUC = AUC(a.gridFPR, mean)
	}
	return a.meanTPR, a.meanAUC, nil
}

// Std returns the per-point standard deviation of the interpolated curves
// and the standard deviation of the per-fold AUCs. Cached like Mean.
func (a *Aggregator) Std() ([]float64, float64, error) {
	if len(a.folds) == 0 {
		return nil, 0, ErrNoFolds
	}
	if a.stdTPR == nil {
		std := make([]float64, GridSize)
		col := make([]float64, len(a.interpTPR))
		for i := range std {
			for j, curve := range a.interpTPR {
				col[j] = curve[i]
			}
			std[i] = statistics.StdDev(col)
		}
		a.stdTPR = std
		a.stdAUC = statistics.StdDev(a.AUCs())
	}
	return a.stdTPR, a.stdAUC, nil
}

func (a *Aggregator) invalidate() {
	a.meanTPR = nil
	a.stdTPR = nil
}
