// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2020 Datadog, Inc.

package store

// CollapsingLowestDenseStore is a dense store that never holds more than
// maxNumBins bins: when the index range would exceed the limit, bins on the
// low-index side are folded into the lowest surviving bin. Precision is
// therefore preserved for the highest indices at the expense of the lowest
// ones.
type CollapsingLowestDenseStore struct {
	DenseStore
	maxNumBins int
}

func NewCollapsingLowestDenseStore(maxNumBins int) *CollapsingLowestDenseStore {
	// Bins are not allocated until values are added. When the first value
	// is added, a small number of bins are allocated, growing as needed up
	// to maxNumBins.
	return &CollapsingLowestDenseStore{maxNumBins: maxNumBins}
}

func (s *CollapsingLowestDenseStore) Add(index int) {
	s.AddWithCount(index, 1)
}

func (s *CollapsingLowestDenseStore) AddBin(bin Bin) {
	s.AddWithCount(bin.Index(), bin.Count())
}

func (s *CollapsingLowestDenseStore) AddWithCount(index int, count float64) {
	if count == 0 {
		return
	}
	if s.count == 0 {
		s.bins = make([]float64, min(growthBuffer, s.maxNumBins))
		s.maxIndex = index
		s.minIndex = index - len(s.bins) + 1
	}
	if index < s.minIndex {
		s.growLeft(index)
	} else if index > s.maxIndex {
		s.growRight(index)
	}
	// An index that is still below range after growing left has been
	// collapsed into the lowest bin.
	idx := max(index-s.minIndex, 0)
	s.bins[idx] += count
	s.count += count
}

func (s *CollapsingLowestDenseStore) growLeft(index int) {
	if s.minIndex < index || len(s.bins) >= s.maxNumBins {
		return
	}
	var minIndex int
	if s.maxIndex >= index+s.maxNumBins {
		minIndex = s.maxIndex - s.maxNumBins + 1
	} else {
		// Expand by up to an extra growthBuffer bins beyond what is
		// strictly required.
		minIndex = max(index-growthBuffer, s.maxIndex-s.maxNumBins+1)
	}
	tmpBins := make([]float64, s.maxIndex-minIndex+1)
	copy(tmpBins[s.minIndex-minIndex:], s.bins)
	s.bins = tmpBins
	s.minIndex = minIndex
}

func (s *CollapsingLowestDenseStore) growRight(index int) {
	if s.maxIndex > index {
		return
	}
	if index >= s.maxIndex+s.maxNumBins {
		// The new index is so far right that all existing bins collapse
		// into the single lowest bin of the new range.
		s.bins = make([]float64, s.maxNumBins)
		s.maxIndex = index
		s.minIndex = index - s.maxNumBins + 1
		s.bins[0] = s.count
	} else if index >= s.minIndex+s.maxNumBins {
		// Shift the range right and fold the bins that fall off the low
		// end into the new lowest bin.
		minIndex := index - s.maxNumBins + 1
		var n float64
		for i := s.minIndex; i < minIndex && i <= s.maxIndex; i++ {
			n += s.bins[i-s.minIndex]
		}
		if len(s.bins) < s.maxNumBins {
			tmpBins := make([]float64, s.maxNumBins)
			copy(tmpBins, s.bins[minIndex-s.minIndex:])
			s.bins = tmpBins
		} else {
			copy(s.bins, s.bins[minIndex-s.minIndex:])
			for i := s.maxIndex - minIndex + 1; i < s.maxNumBins; i++ {
				s.bins[i] = 0.0
			}
		}
		s.maxIndex = index
		s.minIndex = minIndex
		s.bins[0] += n
	} else {
		// Expand by up to an extra growthBuffer bins beyond what is
		// strictly required.
		maxIndex := min(index+growthBuffer, s.minIndex+s.maxNumBins-1)
		tmpBins := make([]float64, maxIndex-s.minIndex+1)
		copy(tmpBins, s.bins)
		s.bins = tmpBins
		s.maxIndex = maxIndex
	}
}

func (s *CollapsingLowestDenseStore) MergeWith(other Store) {
	if other.TotalCount() == 0 {
		return
	}
	// The bin-by-bin fallback also covers merging into an empty store, so
	// that the result respects this store's own bin limit rather than the
	// other's.
	o, ok := other.(*CollapsingLowestDenseStore)
	if !ok || s.count == 0 {
		for bin := range other.Bins() {
			s.AddBin(bin)
		}
		return
	}
	// Grow once for the union, then fold whatever remains below range into
	// the lowest bin, so that collapsing happens at most once per merge.
	s.growRight(o.maxIndex)
	s.growLeft(o.minIndex)
	for i := max(s.minIndex, o.minIndex); i <= min(s.maxIndex, o.maxIndex); i++ {
		s.bins[i-s.minIndex] += o.bins[i-o.minIndex]
	}
	var n float64
	for i := o.minIndex; i <= min(s.minIndex-1, o.maxIndex); i++ {
		n += o.bins[i-o.minIndex]
	}
	s.bins[0] += n
	s.count += o.count
}

func (s *CollapsingLowestDenseStore) Copy() Store {
	c := &CollapsingLowestDenseStore{maxNumBins: s.maxNumBins}
	c.copyFrom(&s.DenseStore)
	return c
}

// MaxNumBins returns the configured bin limit.
func (s *CollapsingLowestDenseStore) MaxNumBins() int {
	return s.maxNumBins
}
