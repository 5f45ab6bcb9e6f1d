// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2020 Datadog, Inc.

package mapping

// smallest positive normal float64, 2^(-1022)
const minNormalFloat64 = 2.2250738585072014e-308

// IndexMapping translates between positive values and integer bucket indices.
// Any two values that share an index differ by at most a factor gamma, where
// gamma = (1+alpha)/(1-alpha) and alpha is the relative accuracy of the
// mapping. Value returns a representative of the bucket that is within a
// relative distance alpha of every value the bucket covers.
type IndexMapping interface {
	// Equals returns true if the other mapping generates the same indices,
	// which makes sketches that use them mergeable.
	Equals(other IndexMapping) bool
	Index(value float64) int
	Value(index int) float64
	RelativeAccuracy() float64
	// MinIndexableValue is the smallest positive value the mapping can
	// handle without the index underflowing.
	MinIndexableValue() float64
	// MaxIndexableValue is the largest positive value the mapping can
	// handle without the index overflowing.
	MaxIndexableValue() float64
}

func withinTolerance(x, y, tolerance float64) bool {
	diff := x - y
	if diff < 0 {
		diff = -diff
	}
	return diff <= tolerance
}
