package health_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cuemby/opcua-core/pkg/health"
	"github.com/cuemby/opcua-core/pkg/store"
	"github.com/cuemby/opcua-core/pkg/types"
)

func TestCheckerPassesOnBootstrappedStore(t *testing.T) {
	st := store.NewBootstrapped()
	checker := health.NewChecker(st)

	result := checker.Check()
	assert.True(t, result.Healthy, result.Message)
}

func TestCheckerPassesAfterAddingAWellFormedNode(t *testing.T) {
	st := store.NewBootstrapped()
	_, err := st.AddNode(&types.ObjectNode{
		NodeHeader: types.NodeHeader{BrowseName: types.QualifiedName{Name: "Widget"}},
	}, store.NodeIdObjectsFolder, store.RefTypeOrganizes, types.NullNodeId)
	require.NoError(t, err)

	checker := health.NewChecker(st)
	result := checker.Check()
	assert.True(t, result.Healthy, result.Message)
}

func TestCheckerCatchesDanglingReferenceTarget(t *testing.T) {
	st := store.NewBootstrapped()
	id, err := st.AddNode(&types.ObjectNode{
		NodeHeader: types.NodeHeader{BrowseName: types.QualifiedName{Name: "Widget"}},
	}, store.NodeIdObjectsFolder, store.RefTypeOrganizes, types.NullNodeId)
	require.NoError(t, err)

	node, ok := st.Lookup(id)
	require.True(t, ok)
	hdr := node.Header()
	hdr.References = append(hdr.References, types.Reference{
		SourceId:        id,
		ReferenceTypeId: store.RefTypeHasComponent,
		TargetId:        types.ExpandedNodeId{NodeId: types.NewNumericNodeId(0, 999999)},
		IsForward:       true,
	})

	checker := health.NewChecker(st)
	result := checker.Check()
	assert.False(t, result.Healthy)
	assert.Contains(t, result.Message, "missing local target")
}

func TestCheckerCatchesDataTypeThatIsNotADataTypeNode(t *testing.T) {
	st := store.NewBootstrapped()
	_, err := st.AddNode(&types.VariableNode{
		NodeHeader: types.NodeHeader{BrowseName: types.QualifiedName{Name: "V"}},
		DataType:   store.NodeIdObjectsFolder,
		AccessLevel: 1,
	}, store.NodeIdObjectsFolder, store.RefTypeOrganizes, types.NullNodeId)
	require.NoError(t, err)

	checker := health.NewChecker(st)
	result := checker.Check()
	assert.False(t, result.Healthy)
	assert.Contains(t, result.Message, "is not a DataType node")
}
