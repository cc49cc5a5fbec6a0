package health

import (
	"fmt"
	"time"

	"github.com/cuemby/opcua-core/pkg/store"
	"github.com/cuemby/opcua-core/pkg/types"
)

// Result is the outcome of one invariant check pass.
type Result struct {
	Healthy   bool
	Message   string
	CheckedAt time.Time
	Duration  time.Duration
}

// Checker walks a Store's local nodes looking for structurally impossible
// states: a reference whose local target doesn't exist, a reference type
// that isn't actually a ReferenceType node, or a VariableNode whose
// DataType doesn't resolve to a DataType node.
type Checker struct {
	st *store.Store
}

// NewChecker returns a Checker over st.
func NewChecker(st *store.Store) *Checker {
	return &Checker{st: st}
}

// Check performs one pass. It stops at the first violation found; a single
// broken invariant is already fatal, so there is no value in collecting an
// exhaustive list before unwinding the loop.
func (c *Checker) Check() Result {
	start := time.Now()
	if msg, ok := c.firstViolation(); ok {
		return Result{Healthy: false, Message: msg, CheckedAt: start, Duration: time.Since(start)}
	}
	return Result{Healthy: true, Message: "no invariant violations found", CheckedAt: start, Duration: time.Since(start)}
}

func (c *Checker) firstViolation() (string, bool) {
	var violation string
	found := false

	c.st.ForEachNode(func(id types.NodeId, node types.Node) bool {
		hdr := node.Header()
		if stored, ok := c.st.Lookup(hdr.NodeId); !ok || stored != node {
			violation = fmt.Sprintf("node with header id %s is not stored under that id", hdr.NodeId)
			found = true
			return false
		}

		for _, ref := range hdr.References {
			if !ref.SourceId.Equal(id) {
				violation = fmt.Sprintf("node %s holds a reference recorded with SourceId %s", id, ref.SourceId)
				found = true
				return false
			}
			if !c.st.IsLocal(ref.ReferenceTypeId.Namespace) {
				continue
			}
			refTypeNode, ok := c.st.Lookup(ref.ReferenceTypeId)
			if !ok {
				violation = fmt.Sprintf("node %s references unknown reference type %s", id, ref.ReferenceTypeId)
				found = true
				return false
			}
			if refTypeNode.Class() != types.NodeClassReferenceType {
				violation = fmt.Sprintf("node %s's reference type %s is not a ReferenceType node", id, ref.ReferenceTypeId)
				found = true
				return false
			}
			if ref.TargetId.IsRemote() {
				continue
			}
			if _, ok := c.st.Lookup(ref.TargetId.NodeId); !ok {
				violation = fmt.Sprintf("node %s references missing local target %s", id, ref.TargetId.NodeId)
				found = true
				return false
			}
		}

		if v, ok := node.(*types.VariableNode); ok && !v.DataType.IsNull() && c.st.IsLocal(v.DataType.Namespace) {
			dt, ok := c.st.Lookup(v.DataType)
			if !ok {
				violation = fmt.Sprintf("variable %s has unresolvable DataType %s", id, v.DataType)
				found = true
				return false
			}
			if dt.Class() != types.NodeClassDataType {
				violation = fmt.Sprintf("variable %s's DataType %s is not a DataType node", id, v.DataType)
				found = true
				return false
			}
		}

		return true
	})

	return violation, found
}
