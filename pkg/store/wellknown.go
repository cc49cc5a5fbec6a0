package store

import "github.com/cuemby/opcua-core/pkg/types"

// Well-known reference-type identifiers the store's own logic needs to
// recognize (subtype-hierarchy walks, default reference types). New seeds
// no node for them; NewBootstrapped seeds one ReferenceType node per
// identifier but no HasSubtype references between them, so a caller that
// wants IsSubtypeOf to resolve through HasSubtype must still wire the
// hierarchy itself, the way it populates every other part of the
// address space. The numeric values mirror the standard's well-known
// assignments purely so logs and tests read the way an operator would
// expect; the store ships no information model of its own.
var (
	RefTypeOrganizes         = types.NewNumericNodeId(0, 35)
	RefTypeHasComponent      = types.NewNumericNodeId(0, 47)
	RefTypeHasTypeDefinition = types.NewNumericNodeId(0, 40)
	RefTypeHasSubtype        = types.NewNumericNodeId(0, 45)
)
