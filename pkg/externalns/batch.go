package externalns

import "github.com/cuemby/opcua-core/pkg/types"

// PartitionByNamespace groups the positions of ids by namespace index,
// preserving each namespace's relative order of appearance. pkg/service
// uses this to split one incoming batch into a "local" group (handled
// directly by pkg/store/pkg/valueaccess) and one group per external
// namespace, then merges every handler's results back into the original
// response slice by index; callers never see the split.
func PartitionByNamespace(ids []types.NodeId) map[uint16][]int {
	out := map[uint16][]int{}
	for i, id := range ids {
		out[id.Namespace] = append(out[id.Namespace], i)
	}
	return out
}
