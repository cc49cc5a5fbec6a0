package types

import (
	"fmt"

	"github.com/google/uuid"
)

// IdentifierType is the discriminant of a NodeId's identifier payload.
type IdentifierType uint8

const (
	IdentifierNumeric IdentifierType = iota
	IdentifierString
	IdentifierGUID
	IdentifierOpaque
)

func (t IdentifierType) String() string {
	switch t {
	case IdentifierNumeric:
		return "numeric"
	case IdentifierString:
		return "string"
	case IdentifierGUID:
		return "guid"
	case IdentifierOpaque:
		return "opaque"
	default:
		return "unknown"
	}
}

// NodeId identifies a node: a namespace index plus one of four identifier
// variants. Namespace 0 is reserved for the standard information model.
//
// NodeId is not comparable with == because of the Opaque []byte field; use
// Key for map lookups and Equal for value comparison.
type NodeId struct {
	Namespace uint16
	IdType    IdentifierType

	Numeric uint32
	Text    string
	GUID    uuid.UUID
	Opaque  []byte
}

// NewNumericNodeId builds a numeric NodeId in the given namespace.
func NewNumericNodeId(ns uint16, id uint32) NodeId {
	return NodeId{Namespace: ns, IdType: IdentifierNumeric, Numeric: id}
}

// NewStringNodeId builds a string NodeId in the given namespace.
func NewStringNodeId(ns uint16, id string) NodeId {
	return NodeId{Namespace: ns, IdType: IdentifierString, Text: id}
}

// NewGUIDNodeId builds a 128-bit UUID NodeId in the given namespace.
func NewGUIDNodeId(ns uint16, id uuid.UUID) NodeId {
	return NodeId{Namespace: ns, IdType: IdentifierGUID, GUID: id}
}

// NewOpaqueNodeId builds an opaque byte-string NodeId in the given namespace.
func NewOpaqueNodeId(ns uint16, id []byte) NodeId {
	cp := append([]byte(nil), id...)
	return NodeId{Namespace: ns, IdType: IdentifierOpaque, Opaque: cp}
}

// NullNodeId is the distinguished "no id" value: namespace 0, numeric 0.
var NullNodeId = NodeId{}

// IsNull reports whether id is the null NodeId.
func (id NodeId) IsNull() bool {
	return id.Namespace == 0 && id.IdType == IdentifierNumeric && id.Numeric == 0
}

// Key returns a canonical string usable as a map key; structurally equal
// NodeIds always produce the same Key.
func (id NodeId) Key() string {
	switch id.IdType {
	case IdentifierNumeric:
		return fmt.Sprintf("ns=%d;i=%d", id.Namespace, id.Numeric)
	case IdentifierString:
		return fmt.Sprintf("ns=%d;s=%s", id.Namespace, id.Text)
	case IdentifierGUID:
		return fmt.Sprintf("ns=%d;g=%s", id.Namespace, id.GUID.String())
	case IdentifierOpaque:
		return fmt.Sprintf("ns=%d;b=%x", id.Namespace, id.Opaque)
	default:
		return fmt.Sprintf("ns=%d;?", id.Namespace)
	}
}

// Equal reports structural equality of the discriminant and payload.
func (id NodeId) Equal(other NodeId) bool {
	return id.Key() == other.Key()
}

// String renders the NodeId in the usual "ns=1;i=100" OPC UA notation.
func (id NodeId) String() string {
	return id.Key()
}

// ExpandedNodeId is a NodeId plus an optional pointer to a foreign server,
// used as a Reference's target so that it can point out of the local
// address space entirely.
type ExpandedNodeId struct {
	NodeId       NodeId
	NamespaceURI string // set only when the target namespace isn't locally indexed
	ServerIndex  uint32 // 0 means "this server"
}

// IsRemote reports whether the expanded id refers to another server.
func (e ExpandedNodeId) IsRemote() bool {
	return e.ServerIndex != 0
}

// QualifiedName is a namespace-scoped name, used for browse names.
type QualifiedName struct {
	NamespaceIndex uint16
	Name           string
}

func (q QualifiedName) String() string {
	return fmt.Sprintf("%d:%s", q.NamespaceIndex, q.Name)
}

// LocalizedText is a (locale, text) pair used for display names,
// descriptions and inverse names.
type LocalizedText struct {
	Locale string
	Text   string
}
