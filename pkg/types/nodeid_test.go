package types_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/cuemby/opcua-core/pkg/types"
)

func TestNodeIdEqualAcrossIdentifierVariants(t *testing.T) {
	cases := []struct {
		name string
		a, b types.NodeId
		want bool
	}{
		{"same numeric", types.NewNumericNodeId(1, 42), types.NewNumericNodeId(1, 42), true},
		{"different namespace", types.NewNumericNodeId(1, 42), types.NewNumericNodeId(2, 42), false},
		{"different numeric", types.NewNumericNodeId(1, 42), types.NewNumericNodeId(1, 43), false},
		{"same string", types.NewStringNodeId(1, "Widget"), types.NewStringNodeId(1, "Widget"), true},
		{"different string", types.NewStringNodeId(1, "Widget"), types.NewStringNodeId(1, "Gadget"), false},
		{"numeric vs string, same namespace", types.NewNumericNodeId(1, 1), types.NewStringNodeId(1, "1"), false},
		{"same opaque", types.NewOpaqueNodeId(1, []byte{1, 2, 3}), types.NewOpaqueNodeId(1, []byte{1, 2, 3}), true},
		{"different opaque", types.NewOpaqueNodeId(1, []byte{1, 2, 3}), types.NewOpaqueNodeId(1, []byte{1, 2, 4}), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, c.a.Equal(c.b))
			assert.Equal(t, c.want, c.a.Key() == c.b.Key())
		})
	}
}

func TestNodeIdGUIDVariant(t *testing.T) {
	id := uuid.New()
	a := types.NewGUIDNodeId(2, id)
	b := types.NewGUIDNodeId(2, id)
	assert.True(t, a.Equal(b))
	assert.True(t, a.Key() == b.Key())

	other := types.NewGUIDNodeId(2, uuid.New())
	assert.False(t, a.Equal(other))
}

func TestNodeIdOpaqueNodeIdCopiesInput(t *testing.T) {
	buf := []byte{1, 2, 3}
	id := types.NewOpaqueNodeId(0, buf)
	buf[0] = 99
	assert.Equal(t, byte(1), id.Opaque[0], "NewOpaqueNodeId must not alias the caller's slice")
}

func TestNullNodeId(t *testing.T) {
	assert.True(t, types.NullNodeId.IsNull())
	assert.True(t, types.NodeId{}.IsNull())
	assert.False(t, types.NewNumericNodeId(0, 1).IsNull())
	assert.False(t, types.NewNumericNodeId(1, 0).IsNull())
}

func TestExpandedNodeIdIsRemote(t *testing.T) {
	local := types.ExpandedNodeId{NodeId: types.NewNumericNodeId(0, 1)}
	assert.False(t, local.IsRemote())

	remote := types.ExpandedNodeId{NodeId: types.NewNumericNodeId(0, 1), ServerIndex: 2}
	assert.True(t, remote.IsRemote())
}

func TestQualifiedNameIsPlainComparable(t *testing.T) {
	a := types.QualifiedName{NamespaceIndex: 1, Name: "Widget"}
	b := types.QualifiedName{NamespaceIndex: 1, Name: "Widget"}
	c := types.QualifiedName{NamespaceIndex: 2, Name: "Widget"}
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}
