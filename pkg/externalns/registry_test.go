package externalns_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cuemby/opcua-core/pkg/externalns"
	"github.com/cuemby/opcua-core/pkg/store"
	"github.com/cuemby/opcua-core/pkg/types"
)

type stubHandler struct{}

func (stubHandler) Read(externalns.RequestHeader, []externalns.ReadItem, []int, []types.DataValue, []string) error {
	return nil
}
func (stubHandler) Write(externalns.RequestHeader, []externalns.WriteItem, []int, []types.StatusCode, []string) error {
	return nil
}
func (stubHandler) Browse(externalns.RequestHeader, []externalns.BrowseItem, []int, []externalns.BrowseResult, []string) error {
	return nil
}
func (stubHandler) Call(externalns.RequestHeader, types.NodeId, types.NodeId, []types.Variant, *[]types.Variant, *string) types.StatusCode {
	return types.StatusGood
}

func TestRegisterRejectsLocalNamespace(t *testing.T) {
	s := store.New()
	r := externalns.NewRegistry()
	err := r.Register(s, 0, stubHandler{})
	require.Error(t, err)
}

func TestRegisterAndLookup(t *testing.T) {
	s := store.New()
	ns := s.RegisterExternalNamespace("urn:example:external")
	r := externalns.NewRegistry()
	require.NoError(t, r.Register(s, ns, stubHandler{}))

	h, ok := r.Lookup(ns)
	require.True(t, ok)
	assert.NotNil(t, h)

	r.Unregister(ns)
	_, ok = r.Lookup(ns)
	assert.False(t, ok)
}

func TestPartitionByNamespace(t *testing.T) {
	ids := []types.NodeId{
		types.NewNumericNodeId(0, 1),
		types.NewNumericNodeId(2, 1),
		types.NewNumericNodeId(0, 2),
		types.NewNumericNodeId(2, 2),
	}
	parts := externalns.PartitionByNamespace(ids)
	assert.Equal(t, []int{0, 2}, parts[0])
	assert.Equal(t, []int{1, 3}, parts[2])
}
