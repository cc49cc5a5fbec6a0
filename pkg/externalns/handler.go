package externalns

import "github.com/cuemby/opcua-core/pkg/types"

// RequestHeader carries the per-batch context every operation needs:
// whether the caller wants per-item diagnostic strings back, and the
// channel the request arrived on (for the handler's own logging).
type RequestHeader struct {
	ReturnDiagnostics bool
	ChannelId         uint32
}

// ReadItem is one Read request item.
type ReadItem struct {
	NodeId      types.NodeId
	AttributeId types.AttributeID
	IndexRange  *types.NumericRange
}

// WriteItem is one Write request item.
type WriteItem struct {
	NodeId      types.NodeId
	AttributeId types.AttributeID
	Value       types.Variant
	IndexRange  *types.NumericRange
}

// BrowseItem is one Browse request item.
type BrowseItem struct {
	NodeId          types.NodeId
	ReferenceTypeId types.NodeId
	BrowseDirection bool // true = forward
}

// BrowseResult is one Browse response item.
type BrowseResult struct {
	References []types.Reference
	Status     types.StatusCode
}

// ExternalNodeStore is the capability an external namespace registers to
// serve the service-layer operations that can target it. A handler
// only needs to implement the operations it actually supports; one that
// doesn't support Call, say, can return a BadNotSupported status from Call.
//
// Every method receives the full items slice plus the subset of indices
// this handler is responsible for, and writes results only at those
// indices in the caller-owned results/diagnostics slices; it must not
// touch indices outside its own set, since those belong to a different
// handler or the local store.
type ExternalNodeStore interface {
	Read(header RequestHeader, items []ReadItem, indices []int, results []types.DataValue, diagnostics []string) error
	Write(header RequestHeader, items []WriteItem, indices []int, results []types.StatusCode, diagnostics []string) error
	Browse(header RequestHeader, items []BrowseItem, indices []int, results []BrowseResult, diagnostics []string) error
	Call(header RequestHeader, objectId, methodId types.NodeId, inputs []types.Variant, outputs *[]types.Variant, diagnostics *string) types.StatusCode
}
