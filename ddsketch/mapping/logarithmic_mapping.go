// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2020 Datadog, Inc.

package mapping

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
)

const (
	expOverflow = 7.094361393031e+02 // value at which math.Exp overflows

	maxInt = 1<<(bits.UintSize-1) - 1
	minInt = -maxInt - 1
)

// LogarithmicMapping buckets values along a geometric scale: bucket i covers
// [gamma^i, gamma^(i+1)). The index is computed with math.Log, which makes the
// mapping exact (no interpolation error) at the cost of a slightly more
// expensive Index call.
type LogarithmicMapping struct {
	relativeAccuracy float64
	gamma            float64
	multiplier       float64 // 1 / ln(gamma)
}

func NewLogarithmicMapping(relativeAccuracy float64) (*LogarithmicMapping, error) {
	// written so that NaN is also rejected
	if !(relativeAccuracy > 0 && relativeAccuracy < 1) {
		return nil, errors.New("The relative accuracy must be between 0 and 1.")
	}
	gamma := (1 + relativeAccuracy) / (1 - relativeAccuracy)
	return &LogarithmicMapping{
		relativeAccuracy: relativeAccuracy,
		gamma:            gamma,
		multiplier:       1 / math.Log(gamma),
	}, nil
}

func (m *LogarithmicMapping) Equals(other IndexMapping) bool {
	o, ok := other.(*LogarithmicMapping)
	if !ok {
		return false
	}
	return withinTolerance(m.gamma, o.gamma, 1e-12) && withinTolerance(m.multiplier, o.multiplier, 1e-12)
}

func (m *LogarithmicMapping) Index(value float64) int {
	index := math.Log(value) * m.multiplier
	if index >= 0 {
		return int(index)
	}
	return int(index) - 1 // faster than math.Floor
}

// Value returns the lower bound of the bucket shifted by (1+alpha), which
// puts it within a relative distance alpha of every value in the bucket.
func (m *LogarithmicMapping) Value(index int) float64 {
	return math.Exp(float64(index)/m.multiplier) * (1 + m.relativeAccuracy)
}

func (m *LogarithmicMapping) MinIndexableValue() float64 {
	return math.Max(
		math.Exp(minInt/m.multiplier+1), // so that index >= minInt
		minNormalFloat64*m.gamma,
	)
}

func (m *LogarithmicMapping) MaxIndexableValue() float64 {
	return math.Min(
		math.Exp(maxInt/m.multiplier-1),              // so that index <= maxInt
		math.Exp(expOverflow)/(1+m.relativeAccuracy), // so that math.Exp does not overflow in Value
	)
}

func (m *LogarithmicMapping) RelativeAccuracy() float64 {
	return m.relativeAccuracy
}

// Gamma returns the geometric growth factor of the bucket boundaries.
func (m *LogarithmicMapping) Gamma() float64 {
	return m.gamma
}

func (m *LogarithmicMapping) String() string {
	return fmt.Sprintf("LogarithmicMapping{relativeAccuracy: %v, gamma: %v}", m.relativeAccuracy, m.gamma)
}
