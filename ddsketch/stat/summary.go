// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2021 Datadog, Inc.

package stat

import (
	"errors"
	"math"
)

// SummaryStatistics tracks exact weighted summary statistics of the values
// added to it: total weight, weighted sum, minimum and maximum. An empty
// instance has min = +Inf and max = -Inf.
type SummaryStatistics struct {
	count float64
	sum   float64
	min   float64
	max   float64
}

func NewSummaryStatistics() *SummaryStatistics {
	return &SummaryStatistics{
		count: 0,
		sum:   0,
		min:   math.Inf(1),
		max:   math.Inf(-1),
	}
}

// NewSummaryStatisticsFromData builds an instance from previously extracted
// data. It errors out if the parameters are inconsistent: a negative count, a
// non-empty range with a zero count, or min greater than max.
func NewSummaryStatisticsFromData(count, sum, min, max float64) (*SummaryStatistics, error) {
	if count < 0 {
		return nil, errors.New("The count cannot be negative.")
	}
	if count == 0 {
		if min != math.Inf(1) || max != math.Inf(-1) {
			return nil, errors.New("The min and max of an empty instance must be infinities.")
		}
	} else if min > max {
		return nil, errors.New("The min cannot be greater than the max.")
	}
	return &SummaryStatistics{count: count, sum: sum, min: min, max: max}, nil
}

func (s *SummaryStatistics) Count() float64 { return s.count }
func (s *SummaryStatistics) Sum() float64   { return s.sum }
func (s *SummaryStatistics) Min() float64   { return s.min }
func (s *SummaryStatistics) Max() float64   { return s.max }

// Add records a value with the provided weight. The min and max are updated
// regardless of the weight.
func (s *SummaryStatistics) Add(value, count float64) {
	s.count += count
	s.sum += value * count
	if value < s.min {
		s.min = value
	}
	if value > s.max {
		s.max = value
	}
}

func (s *SummaryStatistics) MergeWith(o *SummaryStatistics) {
	s.count += o.count
	s.sum += o.sum
	if o.min < s.min {
		s.min = o.min
	}
	if o.max > s.max {
		s.max = o.max
	}
}

// Reweight scales the total weight by w, leaving min and max unchanged unless
// w is zero, in which case the instance is emptied.
func (s *SummaryStatistics) Reweight(w float64) {
	if w == 0 {
		s.Clear()
		return
	}
	s.count *= w
	s.sum *= w
}

// Rescale scales the values by x, as if every recorded value had been
// multiplied by x before being added.
func (s *SummaryStatistics) Rescale(x float64) {
	s.sum *= x
	if s.min > s.max {
		// empty, no range to rescale
		return
	}
	if x >= 0 {
		s.min *= x
		s.max *= x
	} else {
		s.min, s.max = s.max*x, s.min*x
	}
}

func (s *SummaryStatistics) Copy() *SummaryStatistics {
	return &SummaryStatistics{
		count: s.count,
		sum:   s.sum,
		min:   s.min,
		max:   s.max,
	}
}

func (s *SummaryStatistics) Clear() {
	s.count = 0
	s.sum = 0
	s.min = math.Inf(1)
	s.max = math.Inf(-1)
}
