package store

import "github.com/cuemby/opcua-core/pkg/types"

// Well-known DataType identifiers, used by pkg/service to type-check a
// Variant's builtin type against a VariableNode's declared DataType or a
// MethodNode Argument's declared DataType. Same caveat as wellknown.go:
// these are identifiers only, nothing is seeded into any Store.
var (
	DataTypeBoolean       = types.NewNumericNodeId(0, 1)
	DataTypeInt16         = types.NewNumericNodeId(0, 4)
	DataTypeInt32         = types.NewNumericNodeId(0, 6)
	DataTypeUInt32        = types.NewNumericNodeId(0, 7)
	DataTypeInt64         = types.NewNumericNodeId(0, 8)
	DataTypeFloat         = types.NewNumericNodeId(0, 10)
	DataTypeDouble        = types.NewNumericNodeId(0, 11)
	DataTypeString        = types.NewNumericNodeId(0, 12)
	DataTypeGUID          = types.NewNumericNodeId(0, 14)
	DataTypeByteString    = types.NewNumericNodeId(0, 15)
	DataTypeNodeId        = types.NewNumericNodeId(0, 17)
	DataTypeLocalizedText = types.NewNumericNodeId(0, 21)
)

// DataTypeForVariant maps a Variant's builtin type tag to the well-known
// DataType NodeId the service layer compares against a declared DataType.
func DataTypeForVariant(t types.VariantType) types.NodeId {
	switch t {
	case types.VariantBoolean:
		return DataTypeBoolean
	case types.VariantInt16:
		return DataTypeInt16
	case types.VariantInt32:
		return DataTypeInt32
	case types.VariantInt64:
		return DataTypeInt64
	case types.VariantUInt32:
		return DataTypeUInt32
	case types.VariantFloat:
		return DataTypeFloat
	case types.VariantDouble:
		return DataTypeDouble
	case types.VariantString:
		return DataTypeString
	case types.VariantByteString:
		return DataTypeByteString
	case types.VariantNodeId:
		return DataTypeNodeId
	case types.VariantLocalizedText:
		return DataTypeLocalizedText
	case types.VariantGUID:
		return DataTypeGUID
	default:
		return types.NullNodeId
	}
}
