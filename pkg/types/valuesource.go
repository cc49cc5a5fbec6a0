package types

// ValueSourceKind discriminates a Variable's value source: exactly one of
// an inline Variant owned by the node, or an external DataSource.
type ValueSourceKind uint8

const (
	ValueSourceInline ValueSourceKind = iota
	ValueSourceDataSource
)

// ValueSource is the per-variable value backing. Switching kinds releases
// the prior state.
type ValueSource struct {
	Kind     ValueSourceKind
	Inline   Variant
	External DataSource
	Handle   any
}

// DataSource is the read side of a Variable's external value contract.
// handle is the opaque value supplied at SetValueSource_dataSource time.
type DataSource interface {
	Read(handle any, id NodeId, includeSourceTimestamp bool, rng *NumericRange) (DataValue, error)
}

// DataSourceWriter is the optional write side of a DataSource; a DataSource
// that doesn't implement it rejects writes with KindNotSupported.
type DataSourceWriter interface {
	Write(handle any, id NodeId, value Variant, rng *NumericRange) (StatusCode, error)
}

// ValueCallback is the {onRead, onWrite} pair attachable to a Variable node.
// Both are advisory: the core invokes them but never fails an operation
// because of them.
type ValueCallback struct {
	// OnRead runs strictly before the DataValue is handed to the requester,
	// firing unconditionally regardless of which timestamps were requested.
	OnRead func(id NodeId)
	// OnWrite runs strictly after the value is committed.
	OnWrite func(id NodeId, value Variant)
}

// ObjectInstanceManagement is the {constructor, destructor} pair
// attachable to an ObjectType node only (Store.SetObjectInstanceManagement
// rejects every other node class). It propagates to instances created
// later. The store invokes
// Constructor/Destructor while still holding its internal lock, so neither
// may call back into the Store that owns the node being constructed or
// destroyed.
type ObjectInstanceManagement struct {
	Constructor func(id NodeId) (handle any, err error)
	Destructor  func(id NodeId, handle any)
}
