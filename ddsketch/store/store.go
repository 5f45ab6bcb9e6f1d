// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2020 Datadog, Inc.

package store

// Store maps bucket indices to the weight accumulated at each index.
// Implementations are not safe for concurrent use.
type Store interface {
	// Add increments the bin at index by 1, creating it if absent.
	Add(index int)
	// AddBin adds the weight of the provided bin. Zero-weight bins are
	// ignored.
	AddBin(bin Bin)
	// AddWithCount increments the bin at index by count, creating it if
	// absent.
	AddWithCount(index int, count float64)
	// Bins emits the non-empty bins in ascending index order, then closes
	// the returned channel.
	Bins() <-chan Bin
	Copy() Store
	// Clear empties the store while keeping its configuration.
	Clear()
	IsEmpty() bool
	MaxIndex() (int, error)
	MinIndex() (int, error)
	TotalCount() float64
	// KeyAtRank returns the index of the bin within which the cumulative
	// count, walking bins in ascending index order, exceeds rank.
	KeyAtRank(rank float64) int
	// MergeWith folds the content of the provided store into this one. The
	// provided store is left untouched.
	MergeWith(store Store)
}
