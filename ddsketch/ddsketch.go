// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2020 Datadog, Inc.

// Package ddsketch implements a quantile sketch with relative-error
// guarantees: the value it returns for any queried quantile is within a
// configurable relative distance of the exact quantile of the stream,
// whatever the range the values span. Sketches built over separate streams
// can be merged into a sketch equivalent, within the same error bound, to one
// built over the combined stream.
//
// Sketches are not safe for concurrent use; callers with concurrent
// producers should keep one sketch per producer and merge them.
package ddsketch

import (
	"fmt"
	"math"

	"github.com/quantilekit/sketches-go/ddsketch/mapping"
	"github.com/quantilekit/sketches-go/ddsketch/stat"
	"github.com/quantilekit/sketches-go/ddsketch/store"
)

const defaultRelativeAccuracy = 0.01

// DDSketch buckets values on a geometric scale provided by its index
// mapping. Positive and negative values are tracked in separate stores,
// keyed by the index of their magnitude; values too close to zero to be
// indexed are counted apart, since the mapping is undefined at zero. Exact
// count, sum, minimum and maximum are tracked alongside.
type DDSketch struct {
	mapping.IndexMapping
	positiveValueStore store.Store
	negativeValueStore store.Store
	zeroCount          float64
	// maxNumBins is the per-store bin limit, 0 when unbounded. Sketches
	// merge only with sketches that use the same limit.
	maxNumBins int
	summary    *stat.SummaryStatistics
}

// New returns an empty sketch with the provided relative accuracy and no
// bound on the number of bins.
func New(relativeAccuracy float64) (*DDSketch, error) {
	indexMapping, err := mapping.NewLogarithmicMapping(relativeAccuracy)
	if err != nil {
		return nil, ErrInvalidAccuracy
	}
	return NewWithStores(indexMapping, store.NewDenseStore(), store.NewDenseStore()), nil
}

// NewDefault returns an unbounded sketch with a relative accuracy of 1%.
func NewDefault() *DDSketch {
	sketch, _ := New(defaultRelativeAccuracy)
	return sketch
}

// NewWithMaxNumBins returns an empty sketch with the provided relative
// accuracy whose stores never hold more than maxNumBins bins each. When the
// limit is reached, the positive store collapses its lowest bins and the
// negative store its highest-magnitude ones: accuracy degrades for the
// values closest to zero and below, while the upper tail keeps full
// resolution.
func NewWithMaxNumBins(relativeAccuracy float64, maxNumBins int) (*DDSketch, error) {
	indexMapping, err := mapping.NewLogarithmicMapping(relativeAccuracy)
	if err != nil {
		return nil, ErrInvalidAccuracy
	}
	if maxNumBins <= 0 {
		return nil, ErrInvalidBound
	}
	sketch := NewWithStores(
		indexMapping,
		store.NewCollapsingLowestDenseStore(maxNumBins),
		store.NewCollapsingHighestDenseStore(maxNumBins),
	)
	sketch.maxNumBins = maxNumBins
	return sketch, nil
}

// NewWithStores returns an empty sketch that uses the provided index mapping
// and stores, for callers that want to choose the store implementation, e.g.
// store.NewSparseStore for sparsely distributed values.
func NewWithStores(indexMapping mapping.IndexMapping, positiveValueStore, negativeValueStore store.Store) *DDSketch {
	return &DDSketch{
		IndexMapping:       indexMapping,
		positiveValueStore: positiveValueStore,
		negativeValueStore: negativeValueStore,
		summary:            stat.NewSummaryStatistics(),
	}
}

// Add the value to the sketch.
func (s *DDSketch) Add(value float64) error {
	return s.AddWithCount(value, 1)
}

// AddWithCount adds the value to the sketch with the provided count, as if
// it occurred count times in the input stream.
func (s *DDSketch) AddWithCount(value, count float64) error {
	if math.IsNaN(value) || value < -s.MaxIndexableValue() || value > s.MaxIndexableValue() {
		return ErrInvalidValue
	}
	if math.IsNaN(count) || count < 0 {
		return ErrInvalidCount
	}
	if count == 0 {
		return nil
	}

	if value > s.MinIndexableValue() {
		s.positiveValueStore.AddWithCount(s.Index(value), count)
	} else if value < -s.MinIndexableValue() {
		s.negativeValueStore.AddWithCount(s.Index(-value), count)
	} else {
		s.zeroCount += count
	}
	s.summary.Add(value, count)
	return nil
}

// GetValueAtQuantile returns the value at the provided quantile, within the
// relative accuracy of the sketch. Querying quantile 0 (resp. 1) returns the
// exact minimum (resp. maximum) value added to the sketch.
func (s *DDSketch) GetValueAtQuantile(quantile float64) (float64, error) {
	if math.IsNaN(quantile) || quantile < 0 || quantile > 1 {
		return math.NaN(), ErrInvalidQuantile
	}
	count := s.summary.Count()
	if count == 0 {
		return math.NaN(), ErrEmptySketch
	}
	if quantile == 0 {
		return s.summary.Min(), nil
	}
	if quantile == 1 {
		return s.summary.Max(), nil
	}

	rank := quantile * (count - 1)
	negativeValueCount := s.negativeValueStore.TotalCount()
	var value float64
	if rank < negativeValueCount {
		// Negative values are stored by the index of their magnitude,
		// so the rank walks their store downwards.
		value = -s.Value(s.negativeValueStore.KeyAtRank(negativeValueCount - 1 - rank))
	} else if rank < s.zeroCount+negativeValueCount {
		value = 0
	} else {
		value = s.Value(s.positiveValueStore.KeyAtRank(rank - s.zeroCount - negativeValueCount))
	}
	// The bucket representative can stick out of the observed range when
	// the rank lands in an extreme bucket; the exactly tracked extrema
	// tighten it.
	if value < s.summary.Min() {
		value = s.summary.Min()
	}
	if value > s.summary.Max() {
		value = s.summary.Max()
	}
	return value, nil
}

// GetValuesAtQuantiles returns the values at the provided quantiles.
func (s *DDSketch) GetValuesAtQuantiles(quantiles []float64) ([]float64, error) {
	values := make([]float64, len(quantiles))
	for i, q := range quantiles {
		value, err := s.GetValueAtQuantile(q)
		if err != nil {
			return nil, err
		}
		values[i] = value
	}
	return values, nil
}

// MergeWith folds the other sketch into this one, as if every value added to
// the other sketch had been added to this one. The other sketch is left
// untouched. Merging only succeeds between sketches built with the same
// relative accuracy and bin limit.
func (s *DDSketch) MergeWith(other *DDSketch) error {
	if !s.IndexMapping.Equals(other.IndexMapping) || s.maxNumBins != other.maxNumBins {
		return ErrIncompatibleSketches
	}
	s.positiveValueStore.MergeWith(other.positiveValueStore)
	s.negativeValueStore.MergeWith(other.negativeValueStore)
	s.zeroCount += other.zeroCount
	s.summary.MergeWith(other.summary)
	return nil
}

// Count returns the total number of values added to the sketch.
func (s *DDSketch) Count() float64 {
	return s.summary.Count()
}

// Sum returns the exact sum of the values added to the sketch.
func (s *DDSketch) Sum() float64 {
	return s.summary.Sum()
}

// Avg returns the average of the values added to the sketch.
func (s *DDSketch) Avg() float64 {
	return s.summary.Sum() / s.summary.Count()
}

// Min returns the exact minimum value added to the sketch.
func (s *DDSketch) Min() (float64, error) {
	if s.IsEmpty() {
		return math.NaN(), ErrEmptySketch
	}
	return s.summary.Min(), nil
}

// Max returns the exact maximum value added to the sketch.
func (s *DDSketch) Max() (float64, error) {
	if s.IsEmpty() {
		return math.NaN(), ErrEmptySketch
	}
	return s.summary.Max(), nil
}

func (s *DDSketch) IsEmpty() bool {
	return s.summary.Count() == 0
}

// Copy returns a deep copy of the sketch: mutating one leaves the other
// untouched. The index mapping, which is immutable, is shared.
func (s *DDSketch) Copy() *DDSketch {
	return &DDSketch{
		IndexMapping:       s.IndexMapping,
		positiveValueStore: s.positiveValueStore.Copy(),
		negativeValueStore: s.negativeValueStore.Copy(),
		zeroCount:          s.zeroCount,
		maxNumBins:         s.maxNumBins,
		summary:            s.summary.Copy(),
	}
}

// Clear empties the sketch while keeping its accuracy and bin limit.
func (s *DDSketch) Clear() {
	s.positiveValueStore.Clear()
	s.negativeValueStore.Clear()
	s.zeroCount = 0
	s.summary.Clear()
}

func (s *DDSketch) String() string {
	return fmt.Sprintf(
		"DDSketch{relativeAccuracy: %g, count: %g, sum: %g, min: %g, max: %g, zeroCount: %g}",
		s.RelativeAccuracy(), s.summary.Count(), s.summary.Sum(), s.summary.Min(), s.summary.Max(), s.zeroCount,
	)
}
