package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cuemby/opcua-core/pkg/externalns"
	"github.com/cuemby/opcua-core/pkg/service"
	"github.com/cuemby/opcua-core/pkg/store"
	"github.com/cuemby/opcua-core/pkg/types"
)

func seedVariable(t *testing.T, s *store.Store, dataType types.NodeId, value types.Variant) types.NodeId {
	t.Helper()
	v := &types.VariableNode{
		NodeHeader:  types.NodeHeader{NodeId: types.NewNumericNodeId(0, 0), BrowseName: types.QualifiedName{Name: "Value"}},
		DataType:    dataType,
		AccessLevel: 0x03,
		Source:      types.ValueSource{Kind: types.ValueSourceInline, Inline: value},
	}
	id, err := s.AddNode(v, store.NodeIdObjectsFolder, store.RefTypeOrganizes, types.NullNodeId)
	require.NoError(t, err)
	return id
}

func TestServiceReadAnonymousVariable(t *testing.T) {
	st := store.NewBootstrapped()
	id := seedVariable(t, st, store.DataTypeInt32, types.ScalarVariant(types.VariantInt32, int32(42)))
	svc := service.New(st, externalns.NewRegistry())

	results, _ := svc.Read(externalns.RequestHeader{}, []externalns.ReadItem{
		{NodeId: id, AttributeId: types.AttrValue},
	}, true)

	require.Len(t, results, 1)
	assert.True(t, results[0].Status.Good())
	assert.Equal(t, int32(42), results[0].Value.Scalar())
	assert.False(t, results[0].SourceTimestamp.IsZero())
}

func TestServiceWriteRejectsTypeMismatch(t *testing.T) {
	st := store.NewBootstrapped()
	id := seedVariable(t, st, store.DataTypeInt32, types.ScalarVariant(types.VariantInt32, int32(1)))
	svc := service.New(st, externalns.NewRegistry())

	statuses, _ := svc.Write(externalns.RequestHeader{}, []externalns.WriteItem{
		{NodeId: id, AttributeId: types.AttrValue, Value: types.ScalarVariant(types.VariantString, "oops")},
	})

	require.Len(t, statuses, 1)
	assert.Equal(t, types.StatusBadTypeMismatch, statuses[0])

	results, _ := svc.Read(externalns.RequestHeader{}, []externalns.ReadItem{{NodeId: id, AttributeId: types.AttrValue}}, false)
	require.Len(t, results, 1)
	assert.Equal(t, int32(1), results[0].Value.Scalar())
}

type recordingHandler struct {
	gotIndices []int
}

func (h *recordingHandler) Read(header externalns.RequestHeader, items []externalns.ReadItem, indices []int, results []types.DataValue, diagnostics []string) error {
	h.gotIndices = append([]int(nil), indices...)
	for _, i := range indices {
		results[i] = types.DataValue{Status: types.StatusGood, Value: types.ScalarVariant(types.VariantInt32, int32(i))}
	}
	return nil
}
func (h *recordingHandler) Write(externalns.RequestHeader, []externalns.WriteItem, []int, []types.StatusCode, []string) error {
	return nil
}
func (h *recordingHandler) Browse(externalns.RequestHeader, []externalns.BrowseItem, []int, []externalns.BrowseResult, []string) error {
	return nil
}
func (h *recordingHandler) Call(externalns.RequestHeader, types.NodeId, types.NodeId, []types.Variant, *[]types.Variant, *string) types.StatusCode {
	return types.StatusGood
}

func TestServiceReadPartitionsExternalNamespaceBatch(t *testing.T) {
	st := store.NewBootstrapped()
	localId := seedVariable(t, st, store.DataTypeInt32, types.ScalarVariant(types.VariantInt32, int32(7)))

	ns := st.RegisterExternalNamespace("urn:example:external")
	reg := externalns.NewRegistry()
	handler := &recordingHandler{}
	require.NoError(t, reg.Register(st, ns, handler))

	svc := service.New(st, reg)
	items := []externalns.ReadItem{
		{NodeId: localId, AttributeId: types.AttrValue},
		{NodeId: types.NewNumericNodeId(ns, 1), AttributeId: types.AttrValue},
		{NodeId: types.NewNumericNodeId(ns, 2), AttributeId: types.AttrValue},
	}

	results, _ := svc.Read(externalns.RequestHeader{}, items, false)

	assert.Equal(t, []int{1, 2}, handler.gotIndices)
	assert.Equal(t, int32(7), results[0].Value.Scalar())
	assert.Equal(t, int32(1), results[1].Value.Scalar())
	assert.Equal(t, int32(2), results[2].Value.Scalar())
}

func TestServiceCallRejectsArgumentMismatch(t *testing.T) {
	st := store.NewBootstrapped()

	called := false
	method := &types.MethodNode{
		NodeHeader: types.NodeHeader{NodeId: types.NewNumericNodeId(0, 0), BrowseName: types.QualifiedName{Name: "Reset"}},
		Executable: true,
		InputArguments: []types.Argument{
			{Name: "count", DataType: store.DataTypeInt32},
			{Name: "label", DataType: store.DataTypeString},
		},
		Callback: func(objectId types.NodeId, inputs []types.Variant, handle any) ([]types.Variant, types.StatusCode) {
			called = true
			return nil, types.StatusGood
		},
	}
	methodId, err := st.AddNode(method, store.NodeIdObjectsFolder, store.RefTypeOrganizes, types.NullNodeId)
	require.NoError(t, err)

	svc := service.New(st, externalns.NewRegistry())
	results, _ := svc.Call(externalns.RequestHeader{}, []service.CallRequest{
		{
			ObjectId: store.NodeIdObjectsFolder,
			MethodId: methodId,
			Inputs: []types.Variant{
				types.ScalarVariant(types.VariantInt32, int32(3)),
				types.ScalarVariant(types.VariantInt32, int32(4)), // should be a String
			},
		},
	})

	require.Len(t, results, 1)
	assert.False(t, called)
	assert.Equal(t, types.StatusBadInvalidArgument, results[0].Status)
	require.Len(t, results[0].InputStatus, 2)
	assert.True(t, results[0].InputStatus[0].Good())
	assert.Equal(t, types.StatusBadTypeMismatch, results[0].InputStatus[1])
}

func TestServiceCallInvokesCallbackOnMatchingArguments(t *testing.T) {
	st := store.NewBootstrapped()

	method := &types.MethodNode{
		NodeHeader: types.NodeHeader{NodeId: types.NewNumericNodeId(0, 0), BrowseName: types.QualifiedName{Name: "Reset"}},
		Executable: true,
		InputArguments: []types.Argument{
			{Name: "count", DataType: store.DataTypeInt32},
		},
		Callback: func(objectId types.NodeId, inputs []types.Variant, handle any) ([]types.Variant, types.StatusCode) {
			return []types.Variant{types.ScalarVariant(types.VariantBoolean, true)}, types.StatusGood
		},
	}
	methodId, err := st.AddNode(method, store.NodeIdObjectsFolder, store.RefTypeOrganizes, types.NullNodeId)
	require.NoError(t, err)

	svc := service.New(st, externalns.NewRegistry())
	results, _ := svc.Call(externalns.RequestHeader{}, []service.CallRequest{
		{ObjectId: store.NodeIdObjectsFolder, MethodId: methodId, Inputs: []types.Variant{types.ScalarVariant(types.VariantInt32, int32(9))}},
	})

	require.Len(t, results, 1)
	assert.True(t, results[0].Status.Good())
	require.Len(t, results[0].Outputs, 1)
	assert.Equal(t, true, results[0].Outputs[0].Scalar())
}

func TestServiceTranslateBrowsePathResolvesByBrowseName(t *testing.T) {
	st := store.NewBootstrapped()
	id := seedVariable(t, st, store.DataTypeInt32, types.ScalarVariant(types.VariantInt32, int32(1)))

	svc := service.New(st, externalns.NewRegistry())
	results, _ := svc.TranslateBrowsePaths(externalns.RequestHeader{}, []service.BrowsePathRequest{
		{
			StartingNode: store.NodeIdObjectsFolder,
			Path: []service.RelativePathElement{
				{ReferenceTypeId: store.RefTypeOrganizes, TargetName: types.QualifiedName{Name: "Value"}},
			},
		},
	})

	require.Len(t, results, 1)
	assert.True(t, results[0].Status.Good())
	require.Len(t, results[0].Targets, 1)
	assert.True(t, results[0].Targets[0].Equal(id))
}
