package store

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/cuemby/opcua-core/pkg/log"
	"github.com/cuemby/opcua-core/pkg/types"
)

// Store is an in-memory, namespace-partitioned node graph. A *Store is safe
// for concurrent use from multiple goroutines.
type Store struct {
	mu sync.RWMutex

	log zerolog.Logger

	namespaces []types.Namespace
	uriIndex   map[string]uint16

	// nodes is keyed by namespace index, then by NodeId.Key().
	nodes map[uint16]map[string]types.Node

	// nextNumeric is the per-namespace counter used to assign fresh numeric
	// ids when addNode receives a null or auto-assign request.
	nextNumeric map[uint16]uint32
}

// New returns an empty Store with namespace 0 already registered as the
// local namespace for the standard information model's identifier space.
func New() *Store {
	s := &Store{
		log:         log.WithComponent("store"),
		namespaces:  []types.Namespace{{Index: 0, URI: "http://opcfoundation.org/UA/", Local: true}},
		uriIndex:    map[string]uint16{"http://opcfoundation.org/UA/": 0},
		nodes:       map[uint16]map[string]types.Node{0: {}},
		nextNumeric: map[uint16]uint32{0: 1},
	}
	return s
}

// RegisterNamespace assigns (or returns the existing) index for uri,
// idempotently.
func (s *Store) RegisterNamespace(uri string) uint16 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx, ok := s.uriIndex[uri]; ok {
		return idx
	}
	idx := uint16(len(s.namespaces))
	s.namespaces = append(s.namespaces, types.Namespace{Index: idx, URI: uri, Local: true})
	s.uriIndex[uri] = idx
	s.nodes[idx] = map[string]types.Node{}
	s.nextNumeric[idx] = 1
	return idx
}

// RegisterExternalNamespace records a namespace index as delegated to an
// external store (pkg/externalns): the node store never holds nodes for it.
func (s *Store) RegisterExternalNamespace(uri string) uint16 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx, ok := s.uriIndex[uri]; ok {
		return idx
	}
	idx := uint16(len(s.namespaces))
	s.namespaces = append(s.namespaces, types.Namespace{Index: idx, URI: uri, Local: false})
	s.uriIndex[uri] = idx
	return idx
}

// Namespaces returns a snapshot of the registered namespace table.
func (s *Store) Namespaces() []types.Namespace {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.Namespace, len(s.namespaces))
	copy(out, s.namespaces)
	return out
}

// IsLocal reports whether ns is a namespace this store holds nodes for.
func (s *Store) IsLocal(ns uint16) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isLocalLocked(ns)
}

func (s *Store) isLocalLocked(ns uint16) bool {
	if int(ns) >= len(s.namespaces) {
		return false
	}
	return s.namespaces[ns].Local
}

// lookupLocked returns the node for id, assuming s.mu is already held.
func (s *Store) lookupLocked(id types.NodeId) (types.Node, bool) {
	bucket, ok := s.nodes[id.Namespace]
	if !ok {
		return nil, false
	}
	n, ok := bucket[id.Key()]
	return n, ok
}

// Lookup returns the node for id, or ok=false if no such node is local.
func (s *Store) Lookup(id types.NodeId) (types.Node, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lookupLocked(id)
}

// ForEachNode calls fn once per locally held node, in no particular order.
// fn returning false stops the iteration early. Used by pkg/health's
// invariant checker, which needs to walk the whole address space rather
// than a single node's neighborhood.
func (s *Store) ForEachNode(fn func(id types.NodeId, node types.Node) bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, bucket := range s.nodes {
		for _, n := range bucket {
			if !fn(n.Header().NodeId, n) {
				return
			}
		}
	}
}

// NodeCounts returns the number of nodes held per local namespace index, for
// pkg/metrics to turn into a gauge. External namespaces never appear, since
// this store holds no nodes for them.
func (s *Store) NodeCounts() map[uint16]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[uint16]int, len(s.nodes))
	for ns, bucket := range s.nodes {
		out[ns] = len(bucket)
	}
	return out
}

// ReferenceCount returns the total number of references stored across every
// local node, for pkg/metrics' ReferencesTotal gauge.
func (s *Store) ReferenceCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0
	for _, bucket := range s.nodes {
		for _, n := range bucket {
			total += len(n.Header().References)
		}
	}
	return total
}
