// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2020 Datadog, Inc.

package mapping

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	testMaxRelativeAccuracy      = 1 - 1e-3
	testMinRelativeAccuracy      = 1e-7
	floatingPointAcceptableError = 1e-12
)

// irrational multiplier so that the sweep does not land on bucket boundaries
var testValueMultiplier = 1 + math.Sqrt(2)*1e2

func EvaluateRelativeAccuracy(t *testing.T, expected, actual, relativeAccuracy float64) {
	assert.True(t, expected >= 0)
	assert.True(t, actual >= 0)
	if expected == 0 {
		assert.InDelta(t, actual, 0, floatingPointAcceptableError)
	} else {
		assert.True(t, math.Abs(expected-actual)/expected <= relativeAccuracy+floatingPointAcceptableError)
	}
}

func EvaluateMappingAccuracy(t *testing.T, mapping IndexMapping, relativeAccuracy float64) {
	for value := mapping.MinIndexableValue(); value < mapping.MaxIndexableValue(); value *= testValueMultiplier {
		mappedValue := mapping.Value(mapping.Index(value))
		EvaluateRelativeAccuracy(t, value, mappedValue, relativeAccuracy)
	}
	value := mapping.MaxIndexableValue()
	mappedValue := mapping.Value(mapping.Index(value))
	EvaluateRelativeAccuracy(t, value, mappedValue, relativeAccuracy)
}

func TestLogarithmicMappingValidity(t *testing.T) {
	for _, relativeAccuracy := range []float64{-1, -0.1, 0, 1, 1.1, 2, math.NaN()} {
		_, err := NewLogarithmicMapping(relativeAccuracy)
		assert.Error(t, err)
	}
	for _, relativeAccuracy := range []float64{1e-8, 0.01, 0.5, 1 - 1e-8} {
		_, err := NewLogarithmicMapping(relativeAccuracy)
		assert.NoError(t, err)
	}
}

func TestLogarithmicMappingAccuracy(t *testing.T) {
	for relativeAccuracy := testMaxRelativeAccuracy; relativeAccuracy >= testMinRelativeAccuracy; relativeAccuracy *= (testMaxRelativeAccuracy * testMaxRelativeAccuracy) {
		mapping, err := NewLogarithmicMapping(relativeAccuracy)
		assert.NoError(t, err)
		EvaluateMappingAccuracy(t, mapping, relativeAccuracy)
	}
}

func TestLogarithmicMappingMonotonicity(t *testing.T) {
	mapping, _ := NewLogarithmicMapping(2e-2)
	previousIndex := mapping.Index(mapping.MinIndexableValue())
	for value := mapping.MinIndexableValue() * testValueMultiplier; value < mapping.MaxIndexableValue(); value *= testValueMultiplier {
		index := mapping.Index(value)
		assert.GreaterOrEqual(t, index, previousIndex)
		previousIndex = index
	}
}

func TestLogarithmicMappingGamma(t *testing.T) {
	alpha := 0.02
	mapping, _ := NewLogarithmicMapping(alpha)
	assert.InDelta(t, (1+alpha)/(1-alpha), mapping.Gamma(), floatingPointAcceptableError)

	// Values one gamma factor apart never share a bucket.
	value := 1.5
	assert.NotEqual(t, mapping.Index(value), mapping.Index(value*mapping.Gamma()*(1+1e-9)))
}

func TestLogarithmicMappingEquals(t *testing.T) {
	m1, _ := NewLogarithmicMapping(1e-2)
	m2, _ := NewLogarithmicMapping(1e-2)
	m3, _ := NewLogarithmicMapping(2e-2)
	assert.True(t, m1.Equals(m2))
	assert.False(t, m1.Equals(m3))
}
