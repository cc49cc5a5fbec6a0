package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cuemby/opcua-core/pkg/types"
)

func TestScalarVariant(t *testing.T) {
	v := types.ScalarVariant(types.VariantInt32, int32(7))
	assert.False(t, v.IsArray())
	assert.Equal(t, int32(7), v.Scalar())
	assert.Equal(t, 1, v.Len())
	assert.Equal(t, int32(-1), v.ValueRank)
}

func TestArrayVariant(t *testing.T) {
	v := types.ArrayVariant(types.VariantString, []any{"a", "b", "c"})
	require.True(t, v.IsArray())
	assert.Equal(t, 3, v.Len())
	assert.Equal(t, []any{"a", "b", "c"}, v.Array())
	assert.Equal(t, []uint32{3}, v.ArrayDimensions)
}

func TestNewArrayVariantMultiDimensional(t *testing.T) {
	v := types.NewArrayVariant(types.VariantInt32, []uint32{2, 2}, []any{int32(1), int32(2), int32(3), int32(4)})
	assert.Equal(t, int32(2), v.ValueRank)
	assert.Equal(t, []uint32{2, 2}, v.ArrayDimensions)
	assert.Equal(t, 4, v.Len())
}

func TestVariantEqual(t *testing.T) {
	a := types.ScalarVariant(types.VariantInt32, int32(7))
	b := types.ScalarVariant(types.VariantInt32, int32(7))
	c := types.ScalarVariant(types.VariantInt32, int32(8))
	d := types.ScalarVariant(types.VariantInt64, int64(7))

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(d), "different Type must not compare equal even with coincidentally matching underlying values")

	arr1 := types.ArrayVariant(types.VariantInt32, []any{int32(1), int32(2)})
	arr2 := types.ArrayVariant(types.VariantInt32, []any{int32(1), int32(2)})
	assert.True(t, arr1.Equal(arr2))
	assert.False(t, arr1.Equal(a), "array must not compare equal to a scalar of the same element type")
}

func TestVariantWithArrayReplacesPayloadOnly(t *testing.T) {
	original := types.ArrayVariant(types.VariantInt32, []any{int32(1), int32(2), int32(3)})
	replaced := original.WithArray([]any{int32(9)})

	assert.Equal(t, 1, replaced.Len())
	assert.Equal(t, 3, original.Len(), "WithArray must not mutate the receiver")
	assert.Equal(t, original.Type, replaced.Type)
}
