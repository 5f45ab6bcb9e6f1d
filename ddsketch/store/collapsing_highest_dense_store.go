// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2020 Datadog, Inc.

package store

// CollapsingHighestDenseStore is the mirror image of
// CollapsingLowestDenseStore: when the index range would exceed maxNumBins,
// bins on the high-index side are folded into the highest surviving bin.
type CollapsingHighestDenseStore struct {
	DenseStore
	maxNumBins int
}

func NewCollapsingHighestDenseStore(maxNumBins int) *CollapsingHighestDenseStore {
	return &CollapsingHighestDenseStore{maxNumBins: maxNumBins}
}

func (s *CollapsingHighestDenseStore) Add(index int) {
	s.AddWithCount(index, 1)
}

func (s *CollapsingHighestDenseStore) AddBin(bin Bin) {
	s.AddWithCount(bin.Index(), bin.Count())
}

func (s *CollapsingHighestDenseStore) AddWithCount(index int, count float64) {
	if count == 0 {
		return
	}
	if s.count == 0 {
		s.bins = make([]float64, min(growthBuffer, s.maxNumBins))
		s.minIndex = index
		s.maxIndex = index + len(s.bins) - 1
	}
	if index < s.minIndex {
		s.growLeft(index)
	} else if index > s.maxIndex {
		s.growRight(index)
	}
	// An index that is still above range after growing right has been
	// collapsed into the highest bin.
	idx := min(index-s.minIndex, len(s.bins)-1)
	s.bins[idx] += count
	s.count += count
}

func (s *CollapsingHighestDenseStore) growLeft(index int) {
	if s.minIndex < index {
		return
	}
	if index <= s.minIndex-s.maxNumBins {
		// The new index is so far left that all existing bins collapse
		// into the single highest bin of the new range.
		s.bins = make([]float64, s.maxNumBins)
		s.minIndex = index
		s.maxIndex = index + s.maxNumBins - 1
		s.bins[s.maxNumBins-1] = s.count
	} else if index <= s.maxIndex-s.maxNumBins {
		// Shift the range left and fold the bins that fall off the high
		// end into the new highest bin.
		maxIndex := index + s.maxNumBins - 1
		var n float64
		for i := max(s.minIndex, maxIndex+1); i <= s.maxIndex; i++ {
			n += s.bins[i-s.minIndex]
		}
		if len(s.bins) < s.maxNumBins {
			tmpBins := make([]float64, s.maxNumBins)
			copy(tmpBins[s.minIndex-index:], s.bins)
			s.bins = tmpBins
		} else {
			copy(s.bins[s.minIndex-index:], s.bins)
			for i := 0; i < s.minIndex-index; i++ {
				s.bins[i] = 0.0
			}
		}
		s.minIndex = index
		s.maxIndex = maxIndex
		s.bins[s.maxNumBins-1] += n
	} else {
		tmpBins := make([]float64, s.maxIndex-index+1)
		copy(tmpBins[s.minIndex-index:], s.bins)
		s.bins = tmpBins
		s.minIndex = index
	}
}

func (s *CollapsingHighestDenseStore) growRight(index int) {
	if s.maxIndex > index || len(s.bins) >= s.maxNumBins {
		return
	}
	var maxIndex int
	if index >= s.minIndex+s.maxNumBins {
		maxIndex = s.minIndex + s.maxNumBins - 1
	} else {
		maxIndex = min(index+growthBuffer, s.minIndex+s.maxNumBins-1)
	}
	tmpBins := make([]float64, maxIndex-s.minIndex+1)
	copy(tmpBins, s.bins)
	s.bins = tmpBins
	s.maxIndex = maxIndex
}

func (s *CollapsingHighestDenseStore) MergeWith(other Store) {
	if other.TotalCount() == 0 {
		return
	}
	// The bin-by-bin fallback also covers merging into an empty store, so
	// that the result respects this store's own bin limit rather than the
	// other's.
	o, ok := other.(*CollapsingHighestDenseStore)
	if !ok || s.count == 0 {
		for bin := range other.Bins() {
			s.AddBin(bin)
		}
		return
	}
	// Grow once for the union, then fold whatever remains above range into
	// the highest bin, so that collapsing happens at most once per merge.
	s.growLeft(o.minIndex)
	s.growRight(o.maxIndex)
	for i := max(s.minIndex, o.minIndex); i <= min(s.maxIndex, o.maxIndex); i++ {
		s.bins[i-s.minIndex] += o.bins[i-o.minIndex]
	}
	var n float64
	for i := max(s.maxIndex+1, o.minIndex); i <= o.maxIndex; i++ {
		n += o.bins[i-o.minIndex]
	}
	s.bins[len(s.bins)-1] += n
	s.count += o.count
}

func (s *CollapsingHighestDenseStore) Copy() Store {
	c := &CollapsingHighestDenseStore{maxNumBins: s.maxNumBins}
	c.copyFrom(&s.DenseStore)
	return c
}

// MaxNumBins returns the configured bin limit.
func (s *CollapsingHighestDenseStore) MaxNumBins() int {
	return s.maxNumBins
}
