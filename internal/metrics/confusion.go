// Package metrics provides streaming classification-quality metrics that
// accumulate confusion counts across successive batches of predictions.
package metrics

import "fmt"

// Default construction parameters. New* constructors reference them and no
// other code should duplicate them.
const (
	DefaultThreshold = 0.5
	DefaultEpsilon   = 1e-8
)

// confusion holds the four confusion-matrix counts for one or more batches.
// Counts are float64 running sums; they are never decremented.
type confusion struct {
	tp float64
	tn float64
	fp float64
	fn float64
}

// countBatch binarizes yScore against threshold and tallies the batch's
// confusion counts. The four counts always partition the batch:
// tp+tn+fp+fn == len(yTrue).
func countBatch(yTrue, yScore []float64, threshold float64) (confusion, error) {
	if len(yTrue) != len(yScore) {
		return confusion{}, fmt.Errorf("metrics: length mismatch: %d labels vs %d scores", len(yTrue), len(yScore))
	}

	var c confusion
	for i, label := range yTrue {
		predicted := yScore[i] > threshold
		positive := label != 0

		switch {
		case predicted && positive:
			c.tp++
		case !predicted && !positive:
			c.tn++
		case predicted && !positive:
			c.fp++
		default:
			c.fn++
		}
	}
	return c, nil
}

// add accumulates another batch's counts into the running totals.
func (c *confusion) add(batch confusion) {
	c.tp += batch.tp
	c.tn += batch.tn
	c.fp += batch.fp
	c.fn += batch.fn
}

// reset zeroes all counters.
func (c *confusion) reset() {
	*c = confusion{}
}
