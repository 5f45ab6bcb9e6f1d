// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2020 Datadog, Inc.

package ddsketch

import (
	"errors"

	enc "github.com/quantilekit/sketches-go/ddsketch/encoding"
	"github.com/quantilekit/sketches-go/ddsketch/stat"
	"github.com/quantilekit/sketches-go/ddsketch/store"
)

// The serialized layout is, in order: the format version, the relative
// accuracy, the bin limit, the zero count, the summary statistics, then the
// bins of the positive and negative stores. Bin indexes are delta-encoded,
// which keeps them to a byte or two for the contiguous runs that dense
// stores produce.
const serializationVersion = 1

var (
	errUnknownVersion  = errors.New("The version of the encoded data is not supported.")
	errNegativeDecoded = errors.New("The count of an encoded bin cannot be negative.")
)

// Encode appends the serialized sketch to the provided byte slice and
// returns the resulting slice. The serialized form can be rebuilt into a
// sketch with FromBytes.
func (s *DDSketch) Encode(b []byte) []byte {
	enc.EncodeUvarint64(&b, serializationVersion)
	enc.EncodeFloat64LE(&b, s.RelativeAccuracy())
	enc.EncodeVarint64(&b, int64(s.maxNumBins))
	enc.EncodeFloat64LE(&b, s.zeroCount)
	enc.EncodeFloat64LE(&b, s.summary.Count())
	enc.EncodeFloat64LE(&b, s.summary.Sum())
	enc.EncodeFloat64LE(&b, s.summary.Min())
	enc.EncodeFloat64LE(&b, s.summary.Max())
	b = encodeStore(b, s.positiveValueStore)
	b = encodeStore(b, s.negativeValueStore)
	return b
}

func encodeStore(b []byte, st store.Store) []byte {
	numBins := uint64(0)
	for range st.Bins() {
		numBins++
	}
	enc.EncodeUvarint64(&b, numBins)
	previousIndex := 0
	for bin := range st.Bins() {
		enc.EncodeVarint64(&b, int64(bin.Index()-previousIndex))
		enc.EncodeFloat64LE(&b, bin.Count())
		previousIndex = bin.Index()
	}
	return b
}

// FromBytes rebuilds a sketch from data produced by Encode. The returned
// sketch is fully independent of the input slice.
func FromBytes(b []byte) (*DDSketch, error) {
	version, err := enc.DecodeUvarint64(&b)
	if err != nil {
		return nil, err
	}
	if version != serializationVersion {
		return nil, errUnknownVersion
	}
	relativeAccuracy, err := enc.DecodeFloat64LE(&b)
	if err != nil {
		return nil, err
	}
	maxNumBins, err := enc.DecodeVarint64(&b)
	if err != nil {
		return nil, err
	}
	zeroCount, err := enc.DecodeFloat64LE(&b)
	if err != nil {
		return nil, err
	}
	count, err := enc.DecodeFloat64LE(&b)
	if err != nil {
		return nil, err
	}
	sum, err := enc.DecodeFloat64LE(&b)
	if err != nil {
		return nil, err
	}
	min, err := enc.DecodeFloat64LE(&b)
	if err != nil {
		return nil, err
	}
	max, err := enc.DecodeFloat64LE(&b)
	if err != nil {
		return nil, err
	}

	var sketch *DDSketch
	if maxNumBins == 0 {
		sketch, err = New(relativeAccuracy)
	} else {
		sketch, err = NewWithMaxNumBins(relativeAccuracy, int(maxNumBins))
	}
	if err != nil {
		return nil, err
	}
	sketch.zeroCount = zeroCount
	sketch.summary, err = stat.NewSummaryStatisticsFromData(count, sum, min, max)
	if err != nil {
		return nil, err
	}
	if err := decodeStore(&b, sketch.positiveValueStore); err != nil {
		return nil, err
	}
	if err := decodeStore(&b, sketch.negativeValueStore); err != nil {
		return nil, err
	}
	return sketch, nil
}

func decodeStore(b *[]byte, st store.Store) error {
	numBins, err := enc.DecodeUvarint64(b)
	if err != nil {
		return err
	}
	index := 0
	for i := uint64(0); i < numBins; i++ {
		indexDelta, err := enc.DecodeVarint64(b)
		if err != nil {
			return err
		}
		count, err := enc.DecodeFloat64LE(b)
		if err != nil {
			return err
		}
		if count < 0 {
			return errNegativeDecoded
		}
		index += int(indexDelta)
		st.AddWithCount(index, count)
	}
	return nil
}
