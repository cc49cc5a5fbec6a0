package service

import (
	"github.com/cuemby/opcua-core/pkg/externalns"
	"github.com/cuemby/opcua-core/pkg/types"
)

// RelativePathElement is one hop of a browse path: follow refTypeId
// (forward unless IsInverse) to a child whose BrowseName equals TargetName.
type RelativePathElement struct {
	ReferenceTypeId types.NodeId
	IsInverse       bool
	TargetName      types.QualifiedName
}

// BrowsePathRequest is one TranslateBrowsePaths batch item: resolve Path
// starting from StartingNode to the node(s) it names.
type BrowsePathRequest struct {
	StartingNode types.NodeId
	Path         []RelativePathElement
}

// BrowsePathResult is one TranslateBrowsePaths batch item's outcome.
type BrowsePathResult struct {
	Status  types.StatusCode
	Targets []types.NodeId
}

// TranslateBrowsePaths resolves a batch of browse paths
// against the local store only: the ExternalNodeStore capability interface
// has no browse-path primitive, so a path that needs to cross into an
// external namespace partway through fails at the hop where it would have
// to (BadNodeIdUnknown on that hop's starting node), the same as any other
// local-only traversal hitting a node it doesn't have.
func (s *Service) TranslateBrowsePaths(header externalns.RequestHeader, items []BrowsePathRequest) ([]BrowsePathResult, []string) {
	results := make([]BrowsePathResult, len(items))
	diagnostics := make([]string, len(items))

	for i, item := range items {
		results[i], diagnostics[i] = s.translateOne(item, header.ReturnDiagnostics)
	}

	return results, diagnostics
}

func (s *Service) translateOne(item BrowsePathRequest, wantDiag bool) (BrowsePathResult, string) {
	current := []types.NodeId{item.StartingNode}

	for _, elem := range item.Path {
		var next []types.NodeId
		for _, id := range current {
			matches, err := s.matchElement(id, elem)
			if err != nil {
				return BrowsePathResult{Status: statusFor(err)}, diagFor(err, wantDiag)
			}
			next = append(next, matches...)
		}
		if len(next) == 0 {
			err := types.NewError(types.KindLookupMiss, "translateBrowsePath.noMatch")
			return BrowsePathResult{Status: types.StatusBadNodeIdUnknown}, diagFor(err, wantDiag)
		}
		current = next
	}

	return BrowsePathResult{Status: types.StatusGood, Targets: current}, ""
}

func (s *Service) matchElement(id types.NodeId, elem RelativePathElement) ([]types.NodeId, error) {
	var matches []types.NodeId

	if elem.IsInverse {
		err := s.Store.ForEachInverseReference(id, func(sourceId types.NodeId, refTypeId types.NodeId) error {
			if !elem.ReferenceTypeId.IsNull() && !s.Store.IsSubtypeOf(refTypeId, elem.ReferenceTypeId) {
				return nil
			}
			if node, ok := s.Store.Lookup(sourceId); ok && node.Header().BrowseName == elem.TargetName {
				matches = append(matches, sourceId)
			}
			return nil
		})
		return matches, err
	}

	err := s.Store.ForEachChild(id, elem.ReferenceTypeId, func(childId types.NodeId, isInverse bool, refTypeId types.NodeId) error {
		if isInverse {
			return nil
		}
		if node, ok := s.Store.Lookup(childId); ok && node.Header().BrowseName == elem.TargetName {
			matches = append(matches, childId)
		}
		return nil
	})
	return matches, err
}
