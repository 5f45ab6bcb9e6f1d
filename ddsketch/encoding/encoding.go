// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2021 Datadog, Inc.

// Package encoding provides the low-level helpers that the sketch
// serialization is built upon. Integers use the protobuf wire format:
// LEB128-style varints, zigzag-encoded for signed values; floating-point
// values are written as little-endian IEEE 754 bits.
package encoding

import (
	"errors"
	"io"
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

var errVarint32Overflow = errors.New("varint overflows an int32")

// EncodeUvarint64 appends the varint encoding of v to b.
func EncodeUvarint64(b *[]byte, v uint64) {
	*b = protowire.AppendVarint(*b, v)
}

// DecodeUvarint64 consumes a varint from the beginning of b, advancing it.
// It returns io.EOF if b does not hold a full varint.
func DecodeUvarint64(b *[]byte) (uint64, error) {
	v, n := protowire.ConsumeVarint(*b)
	if n < 0 {
		return 0, io.EOF
	}
	*b = (*b)[n:]
	return v, nil
}

// Uvarint64Size returns the number of bytes EncodeUvarint64 appends for v.
func Uvarint64Size(v uint64) int {
	return protowire.SizeVarint(v)
}

// EncodeVarint64 appends the zigzag varint encoding of v to b.
func EncodeVarint64(b *[]byte, v int64) {
	*b = protowire.AppendVarint(*b, protowire.EncodeZigZag(v))
}

// DecodeVarint64 consumes a zigzag varint from the beginning of b, advancing
// it.
func DecodeVarint64(b *[]byte) (int64, error) {
	v, err := DecodeUvarint64(b)
	if err != nil {
		return 0, err
	}
	return protowire.DecodeZigZag(v), nil
}

// Varint64Size returns the number of bytes EncodeVarint64 appends for v.
func Varint64Size(v int64) int {
	return protowire.SizeVarint(protowire.EncodeZigZag(v))
}

// DecodeVarint32 consumes a zigzag varint from the beginning of b, advancing
// it, and errors out if the decoded value does not fit in an int32.
func DecodeVarint32(b *[]byte) (int32, error) {
	v, err := DecodeVarint64(b)
	if err != nil {
		return 0, err
	}
	if v > math.MaxInt32 || v < math.MinInt32 {
		return 0, errVarint32Overflow
	}
	return int32(v), nil
}

// EncodeFloat64LE appends the little-endian encoding of v to b.
func EncodeFloat64LE(b *[]byte, v float64) {
	*b = protowire.AppendFixed64(*b, math.Float64bits(v))
}

// DecodeFloat64LE consumes a little-endian float64 from the beginning of b,
// advancing it.
func DecodeFloat64LE(b *[]byte) (float64, error) {
	v, n := protowire.ConsumeFixed64(*b)
	if n < 0 {
		return 0, io.EOF
	}
	*b = (*b)[n:]
	return math.Float64frombits(v), nil
}
