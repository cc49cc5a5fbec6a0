package externalns

import (
	"sync"

	"github.com/cuemby/opcua-core/pkg/store"
	"github.com/cuemby/opcua-core/pkg/types"
)

// Registry maps namespace index to the ExternalNodeStore that serves it.
type Registry struct {
	mu       sync.RWMutex
	handlers map[uint16]ExternalNodeStore
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{handlers: map[uint16]ExternalNodeStore{}}
}

// Register attaches handler to ns. ns must already be registered with st as
// an external (non-local) namespace; a handler can never attach to a
// namespace the store itself owns, so routing decisions based on
// st.IsLocal and registry lookups can't disagree.
func (r *Registry) Register(st *store.Store, ns uint16, handler ExternalNodeStore) error {
	if int(ns) >= len(st.Namespaces()) {
		return types.NewError(types.KindArgumentInvalid, "externalns.register.namespaceUnknown")
	}
	if st.IsLocal(ns) {
		return types.NewError(types.KindArgumentInvalid, "externalns.register.namespaceIsLocal")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[ns] = handler
	return nil
}

// Unregister detaches whatever handler serves ns, if any.
func (r *Registry) Unregister(ns uint16) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.handlers, ns)
}

// Lookup returns the handler for ns, if one is registered.
func (r *Registry) Lookup(ns uint16) (ExternalNodeStore, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[ns]
	return h, ok
}
