// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2020 Datadog, Inc.

package ddsketch

import "errors"

// Errors returned by sketch construction and operations. They are all
// argument-validation failures, detected before any state is mutated: an
// operation that returns an error leaves the sketch unchanged.
var (
	// ErrInvalidAccuracy is returned when the relative accuracy is not
	// strictly between 0 and 1.
	ErrInvalidAccuracy = errors.New("The relative accuracy must be between 0 and 1.")
	// ErrInvalidBound is returned when the maximum number of bins is not
	// positive.
	ErrInvalidBound = errors.New("The maximum number of bins must be positive.")
	// ErrInvalidValue is returned when adding a value that is not finite,
	// or whose magnitude is too large to be tracked by the sketch.
	ErrInvalidValue = errors.New("The input value is outside the range that is tracked by the sketch.")
	// ErrInvalidCount is returned when adding a value with a negative
	// count.
	ErrInvalidCount = errors.New("The count cannot be negative.")
	// ErrInvalidQuantile is returned when querying a quantile outside
	// [0, 1].
	ErrInvalidQuantile = errors.New("The quantile must be between 0 and 1.")
	// ErrEmptySketch is returned when querying a sketch that holds no
	// values.
	ErrEmptySketch = errors.New("No such element exists.")
	// ErrIncompatibleSketches is returned when merging sketches that do
	// not use equal index mappings and bin limits.
	ErrIncompatibleSketches = errors.New("The sketches are not mergeable because they do not use the same index mapping and bin limit.")
)
