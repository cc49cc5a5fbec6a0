/*
Package health runs a periodic self-check of the node store's structural
invariants: every reference's target resolves, every reference type is
actually a ReferenceType node, every local VariableNode's DataType resolves
to a DataType node. It has nothing to do with liveness/readiness probing
over HTTP, TCP or exec; an embedded library has no ports or subprocesses
to probe, only its own in-memory data structure, and a violation there is
an internal invariant broken: fatal, not retried.
*/
package health
