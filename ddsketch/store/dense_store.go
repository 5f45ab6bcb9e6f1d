// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2020 Datadog, Inc.

package store

import (
	"errors"
	"fmt"
	"strings"
)

// Grow the bins with an extra growthBuffer bins to prevent growing too often
const growthBuffer = 128

// DenseStore keeps the bins in a contiguous slice spanning the index range
// [minIndex, maxIndex]. The slice grows as needed, so the number of bins is
// bound only by what can be allocated.
type DenseStore struct {
	bins     []float64
	count    float64
	minIndex int
	maxIndex int
}

func NewDenseStore() *DenseStore {
	return &DenseStore{}
}

func (s *DenseStore) Add(index int) {
	s.AddWithCount(index, 1)
}

func (s *DenseStore) AddBin(bin Bin) {
	s.AddWithCount(bin.Index(), bin.Count())
}

func (s *DenseStore) AddWithCount(index int, count float64) {
	if count == 0 {
		return
	}
	if s.count == 0 {
		s.bins = make([]float64, growthBuffer)
		s.maxIndex = index
		s.minIndex = index - len(s.bins) + 1
	}
	if index < s.minIndex {
		s.growLeft(index)
	} else if index > s.maxIndex {
		s.growRight(index)
	}
	s.bins[index-s.minIndex] += count
	s.count += count
}

func (s *DenseStore) IsEmpty() bool {
	return s.count == 0
}

func (s *DenseStore) TotalCount() float64 {
	return s.count
}

func (s *DenseStore) MinIndex() (int, error) {
	if s.count == 0 {
		return 0, errors.New("MinIndex of empty store is undefined.")
	}
	for i, b := range s.bins {
		if b > 0 {
			return i + s.minIndex, nil
		}
	}
	return s.maxIndex, nil
}

func (s *DenseStore) MaxIndex() (int, error) {
	if s.count == 0 {
		return 0, errors.New("MaxIndex of empty store is undefined.")
	}
	for i := len(s.bins) - 1; i >= 0; i-- {
		if s.bins[i] > 0 {
			return i + s.minIndex, nil
		}
	}
	return s.minIndex, nil
}

func (s *DenseStore) KeyAtRank(rank float64) int {
	var n float64
	for i, b := range s.bins {
		n += b
		if n > rank {
			return i + s.minIndex
		}
	}
	return s.maxIndex
}

func (s *DenseStore) growLeft(index int) {
	if s.minIndex < index {
		return
	}
	// Expand by an extra growthBuffer bins beyond what is strictly required.
	// Note that there is no protection against integer overflow of the new
	// length, or against allocation failure.
	minIndex := index - growthBuffer
	tmpBins := make([]float64, s.maxIndex-minIndex+1)
	copy(tmpBins[s.minIndex-minIndex:], s.bins)
	s.bins = tmpBins
	s.minIndex = minIndex
}

func (s *DenseStore) growRight(index int) {
	if s.maxIndex > index {
		return
	}
	maxIndex := index + growthBuffer
	tmpBins := make([]float64, maxIndex-s.minIndex+1)
	copy(tmpBins, s.bins)
	s.bins = tmpBins
	s.maxIndex = maxIndex
}

func (s *DenseStore) MergeWith(other Store) {
	if other.TotalCount() == 0 {
		return
	}
	o, ok := other.(*DenseStore)
	if !ok {
		for bin := range other.Bins() {
			s.AddBin(bin)
		}
		return
	}
	if s.count == 0 {
		s.copyFrom(o)
		return
	}
	if s.minIndex > o.minIndex {
		s.growLeft(o.minIndex)
	}
	if s.maxIndex < o.maxIndex {
		s.growRight(o.maxIndex)
	}
	for idx := o.minIndex; idx <= o.maxIndex; idx++ {
		s.bins[idx-s.minIndex] += o.bins[idx-o.minIndex]
	}
	s.count += o.count
}

func (s *DenseStore) Bins() <-chan Bin {
	ch := make(chan Bin)
	go func() {
		defer close(ch)
		for i, b := range s.bins {
			if b > 0 {
				ch <- Bin{index: i + s.minIndex, count: b}
			}
		}
	}()
	return ch
}

func (s *DenseStore) Copy() Store {
	c := &DenseStore{}
	c.copyFrom(s)
	return c
}

func (s *DenseStore) Clear() {
	*s = DenseStore{}
}

func (s *DenseStore) copyFrom(o *DenseStore) {
	s.bins = make([]float64, len(o.bins))
	copy(s.bins, o.bins)
	s.minIndex = o.minIndex
	s.maxIndex = o.maxIndex
	s.count = o.count
}

func (s *DenseStore) string() string {
	var sb strings.Builder
	sb.WriteString("{")
	for i, b := range s.bins {
		if b > 0 {
			fmt.Fprintf(&sb, "%d: %f, ", i+s.minIndex, b)
		}
	}
	fmt.Fprintf(&sb, "count: %v, minIndex: %d, maxIndex: %d}", s.count, s.minIndex, s.maxIndex)
	return sb.String()
}
