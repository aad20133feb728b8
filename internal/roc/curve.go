// Package roc computes receiver-operating-characteristic curves and
// aggregates them across repeated evaluations (cross-validation folds).
package roc

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/integrate"
)

// Curve computes the ROC curve for binary labels and raw scores using the
// threshold-sweep algorithm: pairs are sorted by descending score and one
// (fpr, tpr, threshold) point is emitted per distinct score. A (0, 0) anchor
// with threshold maxScore+1 is prepended so the curve always starts at the
// origin. Labels must contain both classes, otherwise the rates are
// undefined.
func Curve(yTrue, yScore []float64) (fpr, tpr, thresholds []float64, err error) {
	if len(yTrue) != len(yScore) {
		return nil, nil, nil, fmt.Errorf("roc: length mismatch: %d labels vs %d scores", len(yTrue), len(yScore))
	}
	if len(yTrue) == 0 {
		return nil, nil, nil, fmt.Errorf("roc: empty input")
	}

	var pos, neg float64
	for _, label := range yTrue {
		if label != 0 {
			pos++
		} else {
			neg++
		}
	}
	if pos == 0 || neg == 0 {
		return nil, nil, nil, fmt.Errorf("roc: labels contain a single class (%v positive, %v negative)", pos, neg)
	}

	order := make([]int, len(yScore))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return yScore[order[a]] > yScore[order[b]]
	})

	fpr = []float64{0}
	tpr = []float64{0}
	thresholds = []float64{yScore[order[0]] + 1}

	var tps, fps float64
	for k, idx := range order {
		if yTrue[idx] != 0 {
			tps++
		} else {
			fps++
		}
		// Emit a point only once all pairs at this score are consumed.
		if k+1 < len(order) && yScore[order[k+1]] == yScore[idx] {
			continue
		}
		fpr = append(fpr, fps/neg)
		tpr = append(tpr, tps/pos)
		thresholds = append(thresholds, yScore[idx])
	}
	return fpr, tpr, thresholds, nil
}

// AUC computes the area under the curve by trapezoidal integration.
// The fpr values must be non-decreasing, which Curve guarantees.
func AUC(fpr, tpr []float64) float64 {
	return integrate.Trapezoidal(fpr, tpr)
}

// MetricFunc maps per-threshold (tpr, fpr) arrays to a per-threshold score
// used for operating-point selection.
type MetricFunc func(tpr, fpr []float64) []float64

// DistanceFromPerfect returns, per threshold, the Euclidean distance from
// the perfect-classifier corner (fpr=0, tpr=1): sqrt((1-tpr)² + fpr²).
// This is the aggregator's default selection metric.
func DistanceFromPerfect(tpr, fpr []float64) []float64 {
	dist := make([]float64, len(tpr))
	for i := range tpr {
		fnr := 1 - tpr[i]
		dist[i] = math.Sqrt(fnr*fnr + fpr[i]*fpr[i])
	}
	return dist
}

// interpGrid linearly interpolates (xs, ys) onto grid, clamping to the
// boundary ys outside the observed xs range. xs must be non-decreasing and
// may contain duplicates; at a duplicated x the right-hand y wins.
func interpGrid(grid, xs, ys []float64) []float64 {
	out := make([]float64, len(grid))
	for i, g := range grid {
		out[i] = interpAt(g, xs, ys)
	}
	return out
}

func interpAt(x float64, xs, ys []float64) float64 {
	if x <= xs[0] {
		return ys[0]
	}
	last := len(xs) - 1
	if x >= xs[last] {
		return ys[last]
	}
	j := sort.SearchFloat64s(xs, x)
	if xs[j] == x {
		// Skip to the last duplicate so repeated abscissae resolve to the
		// upper envelope of the step.
		for j < last && xs[j+1] == x {
			j++
		}
		return ys[j]
	}
	x0, x1 := xs[j-1], xs[j]
	y0, y1 := ys[j-1], ys[j]
	if x1 == x0 {
		return y1
	}
	return y0 + (y1-y0)*(x-x0)/(x1-x0)
}
