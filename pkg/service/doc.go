/*
Package service implements the glue layer: for the batched
client operations Read, Write, Browse and Call, split
the incoming items by target namespace, route the external-namespace groups
to pkg/externalns, run the local group through pkg/store and pkg/valueaccess,
and merge every group's results back into one response in the caller's
original order. AddNodes, AddReferences and TranslateBrowsePaths run every
item against the local store only.

A single bad item never fails the whole batch; every item gets its own
result and, when requested, its own diagnostic string.
*/
package service
