/*
Package externalns implements external namespace delegation (C3): routing
service-layer batch operations to a handler outside the local node store
for namespaces registered that way (store.RegisterExternalNamespace).

Every operation here follows the same shape: a header, an ordered slice of
items, the subset of indices this call actually owns, a pre-allocated
results slice the handler writes into at those same indices, and a parallel
diagnostics slice. This lets pkg/service partition one incoming batch
across the local store and any number of external handlers and merge the
results back in original order without each handler needing to know it was
only given a slice of the whole request.

A NodeId in a namespace the store owns locally is never routed here:
Registry.Register refuses to attach a handler to a namespace the store
hasn't itself registered as external, so the two routing tables can't
disagree about who owns what.
*/
package externalns
