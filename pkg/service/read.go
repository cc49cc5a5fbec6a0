package service

import (
	"time"

	"github.com/cuemby/opcua-core/pkg/externalns"
	"github.com/cuemby/opcua-core/pkg/types"
	"github.com/cuemby/opcua-core/pkg/valueaccess"
)

// Read executes a batch Read: items targeting an external
// namespace are handed to its registered handler as one sub-batch; local
// items consult the value source directly through pkg/valueaccess for
// AttrValue, or the plain attribute table for everything else.
func (s *Service) Read(header externalns.RequestHeader, items []externalns.ReadItem, includeSourceTimestamp bool) ([]types.DataValue, []string) {
	results := make([]types.DataValue, len(items))
	diagnostics := make([]string, len(items))

	ids := make([]types.NodeId, len(items))
	for i, it := range items {
		ids[i] = it.NodeId
	}
	localIdx, externalGroups := s.partitionIds(ids)

	for _, i := range localIdx {
		results[i], diagnostics[i] = s.readLocal(items[i], includeSourceTimestamp, header.ReturnDiagnostics)
	}

	for ns, idxs := range externalGroups {
		handler, ok := s.External.Lookup(ns)
		if !ok {
			for _, i := range idxs {
				results[i] = types.DataValue{Status: types.StatusBadNodeIdUnknown}
				diagnostics[i] = diagFor(types.NewError(types.KindLookupMiss, "read.noExternalHandler"), header.ReturnDiagnostics)
			}
			continue
		}
		for _, i := range idxs {
			results[i] = types.DataValue{Status: types.StatusBadInternalError}
		}
		if err := handler.Read(header, items, idxs, results, diagnostics); err != nil {
			s.log.Error().Err(err).Uint16("namespace", ns).Msg("external namespace Read failed")
		}
	}

	return results, diagnostics
}

func (s *Service) readLocal(item externalns.ReadItem, includeSourceTimestamp, wantDiag bool) (types.DataValue, string) {
	if item.AttributeId == types.AttrValue {
		dv, err := valueaccess.ReadValue(s.Store, item.NodeId, item.IndexRange, includeSourceTimestamp)
		if err != nil {
			return types.DataValue{Status: statusFor(err)}, diagFor(err, wantDiag)
		}
		return dv, ""
	}

	if item.IndexRange != nil {
		err := types.NewError(types.KindRangeInvalid, "read.rangeOnNonValueAttribute")
		return types.DataValue{Status: types.StatusBadIndexRangeInvalid}, diagFor(err, wantDiag)
	}

	raw, err := s.Store.GetAttribute(item.NodeId, item.AttributeId)
	if err != nil {
		return types.DataValue{Status: statusFor(err)}, diagFor(err, wantDiag)
	}
	return types.DataValue{
		Value:           wrapAttribute(raw),
		Status:          types.StatusGood,
		ServerTimestamp: time.Now(),
	}, ""
}
