package types

import (
	"fmt"
	"reflect"
	"time"
)

// VariantType is the OPC UA builtin type tag carried by a Variant.
type VariantType uint8

const (
	VariantBoolean VariantType = iota + 1
	VariantInt16
	VariantInt32
	VariantInt64
	VariantUInt32
	VariantFloat
	VariantDouble
	VariantString
	VariantByteString
	VariantNodeId
	VariantLocalizedText
	VariantGUID
)

// Variant is a dynamically-typed value container: either a scalar or a
// one-or-more dimensional array of a single builtin type. ValueRank follows
// OPC UA convention: -1 means scalar, 0 means "array of unknown dimension",
// N>0 means an N-dimensional array whose extents are in ArrayDimensions.
type Variant struct {
	Type            VariantType
	ValueRank       int32
	ArrayDimensions []uint32

	scalar any
	array  []any
}

// ScalarVariant builds a scalar Variant of the given type.
func ScalarVariant(t VariantType, value any) Variant {
	return Variant{Type: t, ValueRank: -1, scalar: value}
}

// ArrayVariant builds a flat, single-dimension array Variant. Multi-dim
// arrays use NewArrayVariant with explicit ArrayDimensions.
func ArrayVariant(t VariantType, values []any) Variant {
	return Variant{
		Type:            t,
		ValueRank:       1,
		ArrayDimensions: []uint32{uint32(len(values))},
		array:           append([]any(nil), values...),
	}
}

// NewArrayVariant builds a multi-dimensional array Variant. dims is
// outer-dimension-first, matching NumericRange's dimension convention;
// values is the flattened row-major payload.
func NewArrayVariant(t VariantType, dims []uint32, values []any) Variant {
	return Variant{
		Type:            t,
		ValueRank:       int32(len(dims)),
		ArrayDimensions: append([]uint32(nil), dims...),
		array:           append([]any(nil), values...),
	}
}

// IsArray reports whether the Variant holds an array rather than a scalar.
func (v Variant) IsArray() bool { return v.array != nil }

// Scalar returns the scalar payload; valid only when !IsArray().
func (v Variant) Scalar() any { return v.scalar }

// Array returns the flattened array payload; valid only when IsArray().
func (v Variant) Array() []any { return v.array }

// Len returns the total element count: 1 for a scalar, len(Array()) for an
// array.
func (v Variant) Len() int {
	if v.IsArray() {
		return len(v.array)
	}
	return 1
}

// Equal reports deep structural equality: same type, same rank, same
// dimensions, same elements.
func (v Variant) Equal(other Variant) bool {
	if v.Type != other.Type || v.ValueRank != other.ValueRank {
		return false
	}
	if len(v.ArrayDimensions) != len(other.ArrayDimensions) {
		return false
	}
	for i := range v.ArrayDimensions {
		if v.ArrayDimensions[i] != other.ArrayDimensions[i] {
			return false
		}
	}
	if v.IsArray() != other.IsArray() {
		return false
	}
	if v.IsArray() {
		return reflect.DeepEqual(v.array, other.array)
	}
	return reflect.DeepEqual(v.scalar, other.scalar)
}

func (v Variant) String() string {
	if v.IsArray() {
		return fmt.Sprintf("%v[%d]", v.Type, len(v.array))
	}
	return fmt.Sprintf("%v(%v)", v.Type, v.scalar)
}

// WithArray returns a copy of v with its array payload replaced; used by
// NumericRange writes that only touch a slice of the elements.
func (v Variant) WithArray(values []any) Variant {
	cp := v
	cp.array = values
	return cp
}

func (t VariantType) String() string {
	switch t {
	case VariantBoolean:
		return "Boolean"
	case VariantInt16:
		return "Int16"
	case VariantInt32:
		return "Int32"
	case VariantInt64:
		return "Int64"
	case VariantUInt32:
		return "UInt32"
	case VariantFloat:
		return "Float"
	case VariantDouble:
		return "Double"
	case VariantString:
		return "String"
	case VariantByteString:
		return "ByteString"
	case VariantNodeId:
		return "NodeId"
	case VariantLocalizedText:
		return "LocalizedText"
	case VariantGUID:
		return "Guid"
	default:
		return "Unknown"
	}
}

// DataValue is a Variant plus the status and timestamps delivered with a
// Read response.
type DataValue struct {
	Value           Variant
	Status          StatusCode
	SourceTimestamp time.Time
	ServerTimestamp time.Time
}
