package types

import (
	"strconv"
	"strings"
)

// RangeDimension is one slice of a NumericRange: [Low, High] inclusive.
// Low == High selects a single index.
type RangeDimension struct {
	Low, High uint32
}

// NumericRange is a set of one-dimensional slices applied outer-dimension
// first. A nil/empty NumericRange means "the whole
// value".
type NumericRange struct {
	Dimensions []RangeDimension
}

// ParseNumericRange parses the OPC UA numeric-range wire syntax:
// "1:3" or "1:3,0:2" (comma-separated per-dimension, colon-separated
// low:high, a bare number meaning low==high).
func ParseNumericRange(s string) (*NumericRange, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	dims := make([]RangeDimension, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			return nil, NewError(KindRangeInvalid, "parseNumericRange")
		}
		bounds := strings.SplitN(part, ":", 2)
		low, err := strconv.ParseUint(bounds[0], 10, 32)
		if err != nil {
			return nil, WrapError(KindRangeInvalid, "parseNumericRange", err)
		}
		high := low
		if len(bounds) == 2 {
			high, err = strconv.ParseUint(bounds[1], 10, 32)
			if err != nil {
				return nil, WrapError(KindRangeInvalid, "parseNumericRange", err)
			}
		}
		if high < low {
			return nil, NewError(KindRangeInvalid, "parseNumericRange")
		}
		dims = append(dims, RangeDimension{Low: uint32(low), High: uint32(high)})
	}
	return &NumericRange{Dimensions: dims}, nil
}

// Apply slices the Variant's array payload according to the range. A range
// against a scalar always fails with KindRangeInvalid. The returned Variant is a new array Variant holding only the
// selected elements, dimensioned per-range.
func (r *NumericRange) Apply(v Variant) (Variant, error) {
	if !v.IsArray() {
		return Variant{}, NewError(KindRangeInvalid, "numericRange.Apply")
	}
	if r == nil || len(r.Dimensions) == 0 {
		return v, nil
	}
	dims := v.ArrayDimensions
	if len(dims) == 0 {
		dims = []uint32{uint32(len(v.Array()))}
	}
	if len(r.Dimensions) > len(dims) {
		return Variant{}, NewError(KindRangeInvalid, "numericRange.Apply")
	}
	selected, outDims, err := sliceRowMajor(v.Array(), dims, r.Dimensions)
	if err != nil {
		return Variant{}, err
	}
	return NewArrayVariant(v.Type, outDims, selected), nil
}

// ApplyWrite writes newValues into the positions of base selected by the
// range, returning the merged Variant. Scalars are rejected the same way
// Apply rejects them.
func (r *NumericRange) ApplyWrite(base, newValues Variant) (Variant, error) {
	if !base.IsArray() {
		return Variant{}, NewError(KindRangeInvalid, "numericRange.ApplyWrite")
	}
	if r == nil || len(r.Dimensions) == 0 {
		return newValues, nil
	}
	dims := base.ArrayDimensions
	if len(dims) == 0 {
		dims = []uint32{uint32(len(base.Array()))}
	}
	merged := append([]any(nil), base.Array()...)
	if err := writeRowMajor(merged, dims, r.Dimensions, newValues.Array()); err != nil {
		return Variant{}, err
	}
	return base.WithArray(merged), nil
}

// sliceRowMajor selects the hyper-rectangle described by dims (row-major,
// outer-dimension-first) out of the flat elements slice.
func sliceRowMajor(elements []any, dims []uint32, ranges []RangeDimension) ([]any, []uint32, error) {
	// strides[i] = number of elements per unit step in dimension i
	strides := make([]uint32, len(dims))
	stride := uint32(1)
	for i := len(dims) - 1; i >= 0; i-- {
		strides[i] = stride
		stride *= dims[i]
	}

	effRanges := make([]RangeDimension, len(dims))
	outDims := make([]uint32, len(dims))
	for i := range dims {
		if i < len(ranges) {
			if ranges[i].High >= dims[i] {
				return nil, nil, NewError(KindRangeInvalid, "numericRange")
			}
			effRanges[i] = ranges[i]
		} else {
			effRanges[i] = RangeDimension{Low: 0, High: dims[i] - 1}
		}
		outDims[i] = effRanges[i].High - effRanges[i].Low + 1
	}

	var out []any
	var walk func(dim int, base uint32)
	walk = func(dim int, base uint32) {
		if dim == len(dims) {
			out = append(out, elements[base])
			return
		}
		for idx := effRanges[dim].Low; idx <= effRanges[dim].High; idx++ {
			walk(dim+1, base+idx*strides[dim])
		}
	}
	walk(0, 0)
	return out, outDims, nil
}

// writeRowMajor is sliceRowMajor's inverse: it overwrites elements in place
// at the positions the range selects, consuming values in the same
// outer-dimension-first order Apply produces them in.
func writeRowMajor(elements []any, dims []uint32, ranges []RangeDimension, values []any) error {
	strides := make([]uint32, len(dims))
	stride := uint32(1)
	for i := len(dims) - 1; i >= 0; i-- {
		strides[i] = stride
		stride *= dims[i]
	}

	effRanges := make([]RangeDimension, len(dims))
	want := uint32(1)
	for i := range dims {
		if i < len(ranges) {
			if ranges[i].High >= dims[i] {
				return NewError(KindRangeInvalid, "numericRange")
			}
			effRanges[i] = ranges[i]
		} else {
			effRanges[i] = RangeDimension{Low: 0, High: dims[i] - 1}
		}
		want *= effRanges[i].High - effRanges[i].Low + 1
	}
	if uint32(len(values)) != want {
		return NewError(KindRangeInvalid, "numericRange")
	}

	pos := 0
	var walk func(dim int, base uint32)
	walk = func(dim int, base uint32) {
		if dim == len(dims) {
			elements[base] = values[pos]
			pos++
			return
		}
		for idx := effRanges[dim].Low; idx <= effRanges[dim].High; idx++ {
			walk(dim+1, base+idx*strides[dim])
		}
	}
	walk(0, 0)
	return nil
}
