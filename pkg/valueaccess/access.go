package valueaccess

import (
	"time"

	"github.com/cuemby/opcua-core/pkg/log"
	"github.com/cuemby/opcua-core/pkg/store"
	"github.com/cuemby/opcua-core/pkg/types"
)

// AccessLevel bit flags, stored on VariableNode.AccessLevel/UserAccessLevel.
const (
	AccessLevelCurrentRead  byte = 0x01
	AccessLevelCurrentWrite byte = 0x02
)

// ReadValue reads id's current value, applying rng if non-nil.
// includeSourceTimestamp is forwarded to an external DataSource verbatim;
// for an inline value it sets SourceTimestamp to the read time, and
// SourceTimestamp stays zero when it is false. onRead fires strictly before the value is returned and never fails the read: a panicking or misbehaving
// callback is logged and ignored.
func ReadValue(st *store.Store, id types.NodeId, rng *types.NumericRange, includeSourceTimestamp bool) (types.DataValue, error) {
	node, ok := st.Lookup(id)
	if !ok {
		return types.DataValue{}, types.NewError(types.KindLookupMiss, "readValue.notFound")
	}

	source, callback, err := sourceAndCallback(node)
	if err != nil {
		return types.DataValue{}, err
	}

	var dv types.DataValue
	switch source.Kind {
	case types.ValueSourceInline:
		dv = types.DataValue{
			Value:           source.Inline,
			Status:          types.StatusGood,
			ServerTimestamp: time.Now(),
		}
		if includeSourceTimestamp {
			dv.SourceTimestamp = dv.ServerTimestamp
		}
		if rng != nil {
			v, err := rng.Apply(dv.Value)
			if err != nil {
				return types.DataValue{}, err
			}
			dv.Value = v
		}
	case types.ValueSourceDataSource:
		dv, err = source.External.Read(source.Handle, id, includeSourceTimestamp, rng)
		if err != nil {
			return types.DataValue{}, err
		}
	default:
		return types.DataValue{}, types.NewError(types.KindInternalInvariant, "readValue.unknownSourceKind")
	}

	invokeOnRead(callback, id)
	return dv, nil
}

// WriteValue writes value into id's current value, through rng if non-nil
//. A Variable whose AccessLevel doesn't carry
// AccessLevelCurrentWrite fails with KindNotWritable before either value
// source is touched. onWrite fires strictly after the write commits and,
// like onRead, is advisory.
func WriteValue(st *store.Store, id types.NodeId, value types.Variant, rng *types.NumericRange) (types.StatusCode, error) {
	node, ok := st.Lookup(id)
	if !ok {
		return types.StatusBadNodeIdUnknown, types.NewError(types.KindLookupMiss, "writeValue.notFound")
	}
	v, ok := node.(*types.VariableNode)
	if !ok {
		return types.StatusBadNotWritable, types.NewError(types.KindNotWritable, "writeValue.notVariable")
	}
	if v.AccessLevel&AccessLevelCurrentWrite == 0 {
		return types.StatusBadNotWritable, types.NewError(types.KindNotWritable, "writeValue.accessLevel")
	}

	switch v.Source.Kind {
	case types.ValueSourceInline:
		merged := value
		if rng != nil {
			var err error
			merged, err = rng.ApplyWrite(v.Source.Inline, value)
			if err != nil {
				return types.StatusBadIndexRangeInvalid, err
			}
		}
		if err := st.SetValueSourceInline(id, merged); err != nil {
			return types.StatusBadInternalError, err
		}
	case types.ValueSourceDataSource:
		writer, ok := v.Source.External.(types.DataSourceWriter)
		if !ok {
			return types.StatusBadNotWritable, types.NewError(types.KindNotSupported, "writeValue.readOnlyDataSource")
		}
		status, err := writer.Write(v.Source.Handle, id, value, rng)
		if err != nil {
			return status, err
		}
		if status.Bad() {
			return status, nil
		}
	default:
		return types.StatusBadInternalError, types.NewError(types.KindInternalInvariant, "writeValue.unknownSourceKind")
	}

	invokeOnWrite(v.Callback, id, value)
	return types.StatusGood, nil
}

func sourceAndCallback(node types.Node) (types.ValueSource, *types.ValueCallback, error) {
	switch n := node.(type) {
	case *types.VariableNode:
		return n.Source, n.Callback, nil
	case *types.VariableTypeNode:
		return n.Source, nil, nil
	default:
		return types.ValueSource{}, nil, types.NewError(types.KindNotSupported, "readValue.notVariable")
	}
}

func invokeOnRead(callback *types.ValueCallback, id types.NodeId) {
	if callback == nil || callback.OnRead == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			log.WithComponent("valueaccess").Warn().
				Str("node_id", id.String()).
				Interface("panic", r).
				Msg("onRead callback panicked")
		}
	}()
	callback.OnRead(id)
}

func invokeOnWrite(callback *types.ValueCallback, id types.NodeId, value types.Variant) {
	if callback == nil || callback.OnWrite == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			log.WithComponent("valueaccess").Warn().
				Str("node_id", id.String()).
				Interface("panic", r).
				Msg("onWrite callback panicked")
		}
	}()
	callback.OnWrite(id, value)
}
