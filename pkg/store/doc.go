/*
Package store implements the node store (C1 in the design): an in-memory,
namespace-partitioned graph of types.Node values plus their outgoing
types.Reference edges.

	┌─────────────────────── Store ───────────────────────┐
	│  namespaces []types.Namespace   (index 0 fixed)      │
	│  nodes      map[ns]map[key]types.Node                │
	│                                                       │
	│  AddNode / AddReference / DeleteNode                 │
	│  ForEachChild / ForEachInverseReference              │
	│  GetAttribute / SetAttribute                         │
	│  SetValueSourceInline / SetValueSourceDataSource      │
	│  SetValueCallback / SetObjectInstanceManagement       │
	└───────────────────────────────────────────────────────┘

All mutation and lookup is serialized behind a single sync.RWMutex: reads
take the read lock, every multi-step mutation (e.g. addNode plus its
parent-reference) holds the write lock for its whole duration so external
observers never see a partially-applied operation. Namespace indices above 0 that are registered with Local=false are
never stored here; pkg/externalns owns dispatching to whatever handles
them.
*/
package store
