package metrics

import (
	"fmt"
	"math"
	"strconv"
)

// Accumulator is a stateful metric computed over the cumulative confusion
// counts of every batch seen since the last Reset. Implementations are not
// safe for concurrent use; callers serialize Update calls per instance.
type Accumulator interface {
	// Update binarizes the batch, folds its confusion counts into the
	// running totals, and returns the metric over the cumulative counts.
	Update(yTrue, yScore []float64) (float64, error)
	// Reset zeroes the running counters.
	Reset()
	// Name returns a short identifier, e.g. "fpr" or "f1".
	Name() string
}

// Option configures an accumulator at construction.
type Option func(*settings)

type settings struct {
	threshold float64
	eps       float64
}

// WithThreshold sets the binarization threshold (default 0.5).
func WithThreshold(t float64) Option {
	return func(s *settings) { s.threshold = t }
}

// WithEpsilon sets the denominator guard term (default 1e-8).
func WithEpsilon(e float64) Option {
	return func(s *settings) { s.eps = e }
}

func newSettings(opts []Option) settings {
	s := settings{threshold: DefaultThreshold, eps: DefaultEpsilon}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// FalsePosRate accumulates false positives and true negatives and reports
// the cumulative false-positive rate fp/(fp+tn+eps).
type FalsePosRate struct {
	settings
	counts confusion
}

// NewFalsePosRate returns a zeroed false-positive-rate accumulator.
func NewFalsePosRate(opts ...Option) *FalsePosRate {
	return &FalsePosRate{settings: newSettings(opts)}
}

func (a *FalsePosRate) Update(yTrue, yScore []float64) (float64, error) {
	batch, err := countBatch(yTrue, yScore, a.threshold)
	if err != nil {
		return 0, err
	}
	a.counts.fp += batch.fp
	a.counts.tn += batch.tn
	return a.counts.fp / (a.counts.fp + a.counts.tn + a.eps), nil
}

func (a *FalsePosRate) Reset() { a.counts.reset() }

func (a *FalsePosRate) Name() string { return "fpr" }

// FalseNegRate accumulates true positives and false negatives and reports
// the cumulative false-negative rate fn/(fn+tp+eps).
type FalseNegRate struct {
	settings
	counts confusion
}

// NewFalseNegRate returns a zeroed false-negative-rate accumulator.
func NewFalseNegRate(opts ...Option) *FalseNegRate {
	return &FalseNegRate{settings: newSettings(opts)}
}

func (a *FalseNegRate) Update(yTrue, yScore []float64) (float64, error) {
	batch, err := countBatch(yTrue, yScore, a.threshold)
	if err != nil {
		return 0, err
	}
	a.counts.tp += batch.tp
	a.counts.fn += batch.fn
	return a.counts.fn / (a.counts.fn + a.counts.tp + a.eps), nil
}

func (a *FalseNegRate) Reset() { a.counts.reset() }

func (a *FalseNegRate) Name() string { return "fnr" }

// FBetaScore accumulates tp/fn/fp and reports the cumulative F-beta score
//
//	(1+β²)·tp / ((1+β²)·tp + β²·fn + fp + eps)
//
// Beta weights recall against precision: beta=0 degenerates to precision,
// large beta approaches recall.
type FBetaScore struct {
	settings
	name   string
	beta2  float64
	counts confusion
}

// NewFBetaScore returns a zeroed F-beta accumulator. Beta must be
// non-negative; beta² is fixed at construction.
func NewFBetaScore(beta float64, opts ...Option) (*FBetaScore, error) {
	if beta < 0 || math.IsNaN(beta) {
		return nil, fmt.Errorf("metrics: beta must be non-negative, got %v", beta)
	}
	return &FBetaScore{
		settings: newSettings(opts),
		name:     "f" + strconv.FormatFloat(beta, 'g', -1, 64),
		beta2:    beta * beta,
	}, nil
}

func (a *FBetaScore) Update(yTrue, yScore []float64) (float64, error) {
	batch, err := countBatch(yTrue, yScore, a.threshold)
	if err != nil {
		return 0, err
	}
	a.counts.tp += batch.tp
	a.counts.fn += batch.fn
	a.counts.fp += batch.fp

	num := (1 + a.beta2) * a.counts.tp
	return num / (num + a.beta2*a.counts.fn + a.counts.fp + a.eps), nil
}

func (a *FBetaScore) Reset() { a.counts.reset() }

func (a *FBetaScore) Name() string { return a.name }

// Distance accumulates all four confusion counts and reports the Euclidean
// distance sqrt(fnr²+fpr²) from the perfect-classifier corner (fpr=0, fnr=0),
// both rates computed from the cumulative counters. Zero is a perfect
// classifier; sqrt(2) is the worst case.
type Distance struct {
	settings
	counts confusion
}

// NewDistance returns a zeroed distance accumulator.
func NewDistance(opts ...Option) *Distance {
	return &Distance{settings: newSettings(opts)}
}

func (a *Distance) Update(yTrue, yScore []float64) (float64, error) {
	batch, err := countBatch(yTrue, yScore, a.threshold)
	if err != nil {
		return 0, err
	}
	a.counts.add(batch)

	fpr := a.counts.fp / (a.counts.fp + a.counts.tn + a.eps)
	fnr := a.counts.fn / (a.counts.fn + a.counts.tp + a.eps)
	return math.Sqrt(fnr*fnr + fpr*fpr), nil
}

func (a *Distance) Reset() { a.counts.reset() }

func (a *Distance) Name() string { return "dis" }
