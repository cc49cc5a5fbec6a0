package store

import "github.com/cuemby/opcua-core/pkg/types"

// Well-known root/reference-type node ids a bootstrapped store seeds
// directly. No type hierarchy, no variables, just the handful of nodes
// every AddNode call needs to exist before it can attach anything: a root
// to hang children off of, and the reference types addNode itself requires.
var (
	NodeIdObjectsFolder = types.NewNumericNodeId(0, 85)
)

// NewBootstrapped returns a Store pre-seeded with an Objects folder and the
// well-known reference types this package's own logic recognizes
// (RefTypeOrganizes, RefTypeHasComponent, RefTypeHasTypeDefinition,
// RefTypeHasSubtype). AddNode always requires an existing parent and
// reference type, so every caller (the demo server, tests elsewhere in
// this module) needs something like this to get started; New alone
// deliberately doesn't do it, so that a caller who wants a completely empty
// graph (or a different bootstrap shape) can still get one from New.
func NewBootstrapped() *Store {
	s := New()
	s.nodes[0][NodeIdObjectsFolder.Key()] = &types.ObjectNode{NodeHeader: types.NodeHeader{
		NodeId:      NodeIdObjectsFolder,
		BrowseName:  types.QualifiedName{Name: "Objects"},
		DisplayName: types.LocalizedText{Text: "Objects"},
	}}
	for id, name := range map[types.NodeId]string{
		RefTypeOrganizes:         "Organizes",
		RefTypeHasComponent:      "HasComponent",
		RefTypeHasTypeDefinition: "HasTypeDefinition",
		RefTypeHasSubtype:        "HasSubtype",
	} {
		s.nodes[0][id.Key()] = &types.ReferenceTypeNode{NodeHeader: types.NodeHeader{
			NodeId:      id,
			BrowseName:  types.QualifiedName{Name: name},
			DisplayName: types.LocalizedText{Text: name},
		}}
	}
	return s
}
