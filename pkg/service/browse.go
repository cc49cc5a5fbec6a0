package service

import (
	"github.com/cuemby/opcua-core/pkg/externalns"
	"github.com/cuemby/opcua-core/pkg/types"
)

// Browse executes a batch Browse. Forward browsing lists
// id's own outgoing references (via the store's ForEachChild); inverse
// browsing surfaces the references other nodes hold that target id (via
// ForEachInverseReference), matching the store's documented convention
// that inverse edges are never materialized, only discovered by scanning.
func (s *Service) Browse(header externalns.RequestHeader, items []externalns.BrowseItem) ([]externalns.BrowseResult, []string) {
	results := make([]externalns.BrowseResult, len(items))
	diagnostics := make([]string, len(items))

	ids := make([]types.NodeId, len(items))
	for i, it := range items {
		ids[i] = it.NodeId
	}
	localIdx, externalGroups := s.partitionIds(ids)

	for _, i := range localIdx {
		results[i], diagnostics[i] = s.browseLocal(items[i], header.ReturnDiagnostics)
	}

	for ns, idxs := range externalGroups {
		handler, ok := s.External.Lookup(ns)
		if !ok {
			for _, i := range idxs {
				results[i] = externalns.BrowseResult{Status: types.StatusBadNodeIdUnknown}
				diagnostics[i] = diagFor(types.NewError(types.KindLookupMiss, "browse.noExternalHandler"), header.ReturnDiagnostics)
			}
			continue
		}
		for _, i := range idxs {
			results[i] = externalns.BrowseResult{Status: types.StatusBadInternalError}
		}
		if err := handler.Browse(header, items, idxs, results, diagnostics); err != nil {
			s.log.Error().Err(err).Uint16("namespace", ns).Msg("external namespace Browse failed")
		}
	}

	return results, diagnostics
}

func (s *Service) browseLocal(item externalns.BrowseItem, wantDiag bool) (externalns.BrowseResult, string) {
	var refs []types.Reference

	if item.BrowseDirection {
		err := s.Store.ForEachChild(item.NodeId, item.ReferenceTypeId, func(childId types.NodeId, isInverse bool, refTypeId types.NodeId) error {
			if isInverse {
				return nil
			}
			refs = append(refs, types.Reference{
				SourceId:        item.NodeId,
				ReferenceTypeId: refTypeId,
				TargetId:        types.ExpandedNodeId{NodeId: childId},
				IsForward:       true,
			})
			return nil
		})
		if err != nil {
			return externalns.BrowseResult{Status: statusFor(err)}, diagFor(err, wantDiag)
		}
		return externalns.BrowseResult{References: refs, Status: types.StatusGood}, ""
	}

	err := s.Store.ForEachInverseReference(item.NodeId, func(sourceId types.NodeId, refTypeId types.NodeId) error {
		if !item.ReferenceTypeId.IsNull() && !s.Store.IsSubtypeOf(refTypeId, item.ReferenceTypeId) {
			return nil
		}
		refs = append(refs, types.Reference{
			SourceId:        item.NodeId,
			ReferenceTypeId: refTypeId,
			TargetId:        types.ExpandedNodeId{NodeId: sourceId},
			IsForward:       false,
		})
		return nil
	})
	if err != nil {
		return externalns.BrowseResult{Status: statusFor(err)}, diagFor(err, wantDiag)
	}
	return externalns.BrowseResult{References: refs, Status: types.StatusGood}, ""
}
