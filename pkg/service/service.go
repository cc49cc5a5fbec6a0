package service

import (
	"github.com/rs/zerolog"

	"github.com/cuemby/opcua-core/pkg/externalns"
	"github.com/cuemby/opcua-core/pkg/log"
	"github.com/cuemby/opcua-core/pkg/store"
	"github.com/cuemby/opcua-core/pkg/types"
)

// Service is the glue layer, sitting between a transport's
// decoded requests and the node store: every exported method accepts an
// ordered batch and returns an ordered result of the same length, routing
// each item to either the local store or a registered external namespace
// handler and merging the two back into one response.
type Service struct {
	Store    *store.Store
	External *externalns.Registry
	log      zerolog.Logger
}

// New returns a Service over st, delegating to external for any namespace
// external registers a handler for.
func New(st *store.Store, external *externalns.Registry) *Service {
	return &Service{
		Store:    st,
		External: external,
		log:      log.WithComponent("service"),
	}
}

// partitionIds splits ids into the positions that belong to a local
// namespace and, per external namespace, the positions that belong to it.
func (s *Service) partitionIds(ids []types.NodeId) (localIdx []int, externalGroups map[uint16][]int) {
	groups := externalns.PartitionByNamespace(ids)
	externalGroups = make(map[uint16][]int, len(groups))
	for ns, idxs := range groups {
		if s.Store.IsLocal(ns) {
			localIdx = append(localIdx, idxs...)
			continue
		}
		externalGroups[ns] = idxs
	}
	return localIdx, externalGroups
}

func diagFor(err error, wantDiag bool) string {
	if !wantDiag || err == nil {
		return ""
	}
	return err.Error()
}

func statusFor(err error) types.StatusCode {
	kind, ok := types.KindOf(err)
	if !ok {
		return types.StatusBadInternalError
	}
	return types.KindToStatus(kind)
}

// wrapAttribute boxes a non-Value attribute's native Go payload into a
// Variant on a best-effort basis; AttrValue itself never goes through this
// path; it always goes through pkg/valueaccess instead.
func wrapAttribute(raw any) types.Variant {
	switch v := raw.(type) {
	case bool:
		return types.ScalarVariant(types.VariantBoolean, v)
	case string:
		return types.ScalarVariant(types.VariantString, v)
	case int32:
		return types.ScalarVariant(types.VariantInt32, v)
	case uint32:
		return types.ScalarVariant(types.VariantUInt32, v)
	case int64:
		return types.ScalarVariant(types.VariantInt64, v)
	case float64:
		return types.ScalarVariant(types.VariantDouble, v)
	case types.NodeId:
		return types.ScalarVariant(types.VariantNodeId, v)
	case types.LocalizedText:
		return types.ScalarVariant(types.VariantLocalizedText, v)
	default:
		return types.ScalarVariant(0, v)
	}
}
