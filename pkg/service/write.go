package service

import (
	"github.com/cuemby/opcua-core/pkg/externalns"
	"github.com/cuemby/opcua-core/pkg/store"
	"github.com/cuemby/opcua-core/pkg/types"
	"github.com/cuemby/opcua-core/pkg/valueaccess"
)

// Write executes a batch Write: for AttrValue items this
// checks the incoming Variant's builtin type against the Variable's
// declared DataType before committing. That type compatibility check
// belongs to the glue layer, not to pkg/valueaccess, which only knows
// how to move bytes once the write is already judged compatible.
func (s *Service) Write(header externalns.RequestHeader, items []externalns.WriteItem) ([]types.StatusCode, []string) {
	results := make([]types.StatusCode, len(items))
	diagnostics := make([]string, len(items))

	ids := make([]types.NodeId, len(items))
	for i, it := range items {
		ids[i] = it.NodeId
	}
	localIdx, externalGroups := s.partitionIds(ids)

	for _, i := range localIdx {
		results[i], diagnostics[i] = s.writeLocal(items[i], header.ReturnDiagnostics)
	}

	for ns, idxs := range externalGroups {
		handler, ok := s.External.Lookup(ns)
		if !ok {
			for _, i := range idxs {
				results[i] = types.StatusBadNodeIdUnknown
				diagnostics[i] = diagFor(types.NewError(types.KindLookupMiss, "write.noExternalHandler"), header.ReturnDiagnostics)
			}
			continue
		}
		for _, i := range idxs {
			results[i] = types.StatusBadInternalError
		}
		if err := handler.Write(header, items, idxs, results, diagnostics); err != nil {
			s.log.Error().Err(err).Uint16("namespace", ns).Msg("external namespace Write failed")
		}
	}

	return results, diagnostics
}

func (s *Service) writeLocal(item externalns.WriteItem, wantDiag bool) (types.StatusCode, string) {
	if item.AttributeId != types.AttrValue {
		if err := s.Store.SetAttribute(item.NodeId, item.AttributeId, item.Value.Scalar()); err != nil {
			return statusFor(err), diagFor(err, wantDiag)
		}
		return types.StatusGood, ""
	}

	node, ok := s.Store.Lookup(item.NodeId)
	if !ok {
		err := types.NewError(types.KindLookupMiss, "write.notFound")
		return types.StatusBadNodeIdUnknown, diagFor(err, wantDiag)
	}
	if v, ok := node.(*types.VariableNode); ok {
		want := store.DataTypeForVariant(item.Value.Type)
		if !want.IsNull() && !v.DataType.IsNull() && !want.Equal(v.DataType) {
			err := types.NewError(types.KindTypeMismatch, "write.dataTypeMismatch")
			return types.StatusBadTypeMismatch, diagFor(err, wantDiag)
		}
	}

	status, err := valueaccess.WriteValue(s.Store, item.NodeId, item.Value, item.IndexRange)
	if err != nil {
		return statusFor(err), diagFor(err, wantDiag)
	}
	return status, ""
}
