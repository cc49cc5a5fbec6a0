package service

import (
	"github.com/cuemby/opcua-core/pkg/externalns"
	"github.com/cuemby/opcua-core/pkg/types"
)

// AddNodeRequest is one AddNodes batch item.
type AddNodeRequest struct {
	Node             types.Node
	ParentId         types.NodeId
	ReferenceTypeId  types.NodeId
	TypeDefinitionId types.NodeId
}

// AddNodeResult is one AddNodes batch item's outcome.
type AddNodeResult struct {
	Status     types.StatusCode
	AssignedId types.NodeId
}

// AddNodes executes a batch addNode. External namespaces have no addNode
// capability in the ExternalNodeStore interface, so an item targeting one fails with
// BadInvalidArgument, because pkg/store itself refuses a non-local
// namespace with KindArgumentInvalid; there is no separate delegation path to route through here.
func (s *Service) AddNodes(header externalns.RequestHeader, items []AddNodeRequest) ([]AddNodeResult, []string) {
	results := make([]AddNodeResult, len(items))
	diagnostics := make([]string, len(items))

	for i, item := range items {
		id, err := s.Store.AddNode(item.Node, item.ParentId, item.ReferenceTypeId, item.TypeDefinitionId)
		if err != nil {
			results[i] = AddNodeResult{Status: statusFor(err)}
			diagnostics[i] = diagFor(err, header.ReturnDiagnostics)
			continue
		}
		results[i] = AddNodeResult{Status: types.StatusGood, AssignedId: id}
	}

	return results, diagnostics
}

// AddReferenceRequest is one AddReferences batch item.
type AddReferenceRequest struct {
	SourceId        types.NodeId
	ReferenceTypeId types.NodeId
	TargetId        types.ExpandedNodeId
	IsForward       bool
}

// AddReferences executes a batch addReference.
func (s *Service) AddReferences(header externalns.RequestHeader, items []AddReferenceRequest) ([]types.StatusCode, []string) {
	results := make([]types.StatusCode, len(items))
	diagnostics := make([]string, len(items))

	for i, item := range items {
		err := s.Store.AddReference(item.SourceId, item.ReferenceTypeId, item.TargetId, item.IsForward)
		if err != nil {
			results[i] = statusFor(err)
			diagnostics[i] = diagFor(err, header.ReturnDiagnostics)
			continue
		}
		results[i] = types.StatusGood
	}

	return results, diagnostics
}
