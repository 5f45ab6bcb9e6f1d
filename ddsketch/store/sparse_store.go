// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2020 Datadog, Inc.

package store

import (
	"errors"

	"golang.org/x/exp/slices"
)

// SparseStore keeps bins in a map that only holds populated indices. It is
// preferable to DenseStore when the populated indices are few and far apart,
// since the dense layout would allocate every bin in between. Ordered
// operations sort the populated indices on demand.
type SparseStore struct {
	bins  map[int]float64
	count float64
}

func NewSparseStore() *SparseStore {
	return &SparseStore{bins: make(map[int]float64)}
}

func (s *SparseStore) Add(index int) {
	s.AddWithCount(index, 1)
}

func (s *SparseStore) AddBin(bin Bin) {
	s.AddWithCount(bin.Index(), bin.Count())
}

func (s *SparseStore) AddWithCount(index int, count float64) {
	if count == 0 {
		return
	}
	s.bins[index] += count
	s.count += count
}

func (s *SparseStore) IsEmpty() bool {
	return s.count == 0
}

func (s *SparseStore) TotalCount() float64 {
	return s.count
}

func (s *SparseStore) MinIndex() (int, error) {
	if s.count == 0 {
		return 0, errors.New("MinIndex of empty store is undefined.")
	}
	first := true
	var minIndex int
	for index := range s.bins {
		if first || index < minIndex {
			minIndex = index
			first = false
		}
	}
	return minIndex, nil
}

func (s *SparseStore) MaxIndex() (int, error) {
	if s.count == 0 {
		return 0, errors.New("MaxIndex of empty store is undefined.")
	}
	first := true
	var maxIndex int
	for index := range s.bins {
		if first || index > maxIndex {
			maxIndex = index
			first = false
		}
	}
	return maxIndex, nil
}

func (s *SparseStore) KeyAtRank(rank float64) int {
	indexes := s.orderedIndexes()
	var n float64
	for _, index := range indexes {
		n += s.bins[index]
		if n > rank {
			return index
		}
	}
	if len(indexes) == 0 {
		return 0
	}
	return indexes[len(indexes)-1]
}

func (s *SparseStore) MergeWith(other Store) {
	if other.TotalCount() == 0 {
		return
	}
	o, ok := other.(*SparseStore)
	if !ok {
		for bin := range other.Bins() {
			s.AddBin(bin)
		}
		return
	}
	for index, count := range o.bins {
		s.bins[index] += count
	}
	s.count += o.count
}

func (s *SparseStore) Bins() <-chan Bin {
	indexes := s.orderedIndexes()
	ch := make(chan Bin)
	go func() {
		defer close(ch)
		for _, index := range indexes {
			ch <- Bin{index: index, count: s.bins[index]}
		}
	}()
	return ch
}

func (s *SparseStore) Copy() Store {
	bins := make(map[int]float64, len(s.bins))
	for index, count := range s.bins {
		bins[index] = count
	}
	return &SparseStore{bins: bins, count: s.count}
}

func (s *SparseStore) Clear() {
	clear(s.bins)
	s.count = 0
}

func (s *SparseStore) orderedIndexes() []int {
	indexes := make([]int, 0, len(s.bins))
	for index := range s.bins {
		indexes = append(indexes, index)
	}
	slices.Sort(indexes)
	return indexes
}
