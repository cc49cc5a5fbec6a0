package store

import "github.com/cuemby/opcua-core/pkg/types"

// GetAttribute reads attr off id. Attributes the node's
// class doesn't carry (e.g. AttrSymmetric on a Variable) fail with
// KindNotSupported rather than returning a zero value, so callers can't
// mistake "not applicable" for "applicable and empty".
func (s *Store) GetAttribute(id types.NodeId, attr types.AttributeID) (any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	node, ok := s.lookupLocked(id)
	if !ok {
		return nil, types.NewError(types.KindLookupMiss, "getAttribute.notFound")
	}
	hdr := node.Header()

	switch attr {
	case types.AttrNodeId:
		return hdr.NodeId, nil
	case types.AttrNodeClass:
		return node.Class(), nil
	case types.AttrBrowseName:
		return hdr.BrowseName, nil
	case types.AttrDisplayName:
		return hdr.DisplayName, nil
	case types.AttrDescription:
		return hdr.Description, nil
	case types.AttrWriteMask:
		return hdr.WriteMask, nil
	case types.AttrUserWriteMask:
		return hdr.UserWriteMask, nil
	}

	switch n := node.(type) {
	case *types.VariableNode:
		switch attr {
		case types.AttrValue:
			return n.Source, nil
		case types.AttrDataType:
			return n.DataType, nil
		case types.AttrValueRank:
			return n.ValueRank, nil
		case types.AttrArrayDimensions:
			return n.ArrayDimensions, nil
		case types.AttrAccessLevel:
			return n.AccessLevel, nil
		case types.AttrUserAccessLevel:
			return n.UserAccessLevel, nil
		case types.AttrMinimumSamplingInterval:
			return n.MinimumSamplingInterval, nil
		case types.AttrHistorizing:
			return n.Historizing, nil
		}
	case *types.VariableTypeNode:
		switch attr {
		case types.AttrValue:
			return n.Source, nil
		case types.AttrDataType:
			return n.DataType, nil
		case types.AttrValueRank:
			return n.ValueRank, nil
		case types.AttrArrayDimensions:
			return n.ArrayDimensions, nil
		case types.AttrIsAbstract:
			return n.IsAbstract, nil
		}
	case *types.ObjectNode:
		switch attr {
		case types.AttrEventNotifier:
			return n.EventNotifier, nil
		}
	case *types.ObjectTypeNode:
		switch attr {
		case types.AttrIsAbstract:
			return n.IsAbstract, nil
		}
	case *types.ReferenceTypeNode:
		switch attr {
		case types.AttrIsAbstract:
			return n.IsAbstract, nil
		case types.AttrSymmetric:
			return n.Symmetric, nil
		case types.AttrInverseName:
			return n.InverseName, nil
		}
	case *types.ViewNode:
		switch attr {
		case types.AttrEventNotifier:
			return n.EventNotifier, nil
		case types.AttrContainsNoLoops:
			return n.ContainsNoLoops, nil
		}
	case *types.DataTypeNode:
		switch attr {
		case types.AttrIsAbstract:
			return n.IsAbstract, nil
		}
	case *types.MethodNode:
		switch attr {
		case types.AttrExecutable:
			return n.Executable, nil
		case types.AttrUserExecutable:
			return n.UserExecutable, nil
		}
	}

	return nil, types.NewError(types.KindNotSupported, "getAttribute.notApplicable")
}

// SetAttribute writes attr on id. NodeId, NodeClass and
// Symmetric are immutable identity/invariant fields and always fail with
// KindNotWritable. DataType, ValueRank and ArrayDimensions are derived from
// how the node was created and can't be set independently; they fail the
// same way. Value goes through SetValueSourceInline, never through
// SetAttribute, because writing AttrValue needs the value-source and
// callback machinery.
func (s *Store) SetAttribute(id types.NodeId, attr types.AttributeID, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	node, ok := s.lookupLocked(id)
	if !ok {
		return types.NewError(types.KindLookupMiss, "setAttribute.notFound")
	}
	hdr := node.Header()

	switch attr {
	case types.AttrNodeId, types.AttrNodeClass, types.AttrSymmetric,
		types.AttrDataType, types.AttrValueRank, types.AttrArrayDimensions:
		return types.NewError(types.KindNotWritable, "setAttribute.immutable")
	case types.AttrValue:
		return types.NewError(types.KindNotSupported, "setAttribute.useValueSource")
	case types.AttrWriteMask, types.AttrUserWriteMask, types.AttrAccessLevel,
		types.AttrUserAccessLevel, types.AttrUserExecutable, types.AttrHistorizing:
		return types.NewError(types.KindNotSupported, "setAttribute.notSettable")
	case types.AttrBrowseName:
		qn, ok := value.(types.QualifiedName)
		if !ok {
			return types.NewError(types.KindTypeMismatch, "setAttribute.browseName")
		}
		hdr.BrowseName = qn
		return nil
	case types.AttrDisplayName:
		lt, ok := value.(types.LocalizedText)
		if !ok {
			return types.NewError(types.KindTypeMismatch, "setAttribute.displayName")
		}
		hdr.DisplayName = lt
		return nil
	case types.AttrDescription:
		lt, ok := value.(types.LocalizedText)
		if !ok {
			return types.NewError(types.KindTypeMismatch, "setAttribute.description")
		}
		hdr.Description = lt
		return nil
	}

	switch n := node.(type) {
	case *types.VariableNode:
		if attr == types.AttrMinimumSamplingInterval {
			f, ok := value.(float64)
			if !ok {
				return types.NewError(types.KindTypeMismatch, "setAttribute.minimumSamplingInterval")
			}
			n.MinimumSamplingInterval = f
			return nil
		}
	case *types.ObjectNode:
		if attr == types.AttrEventNotifier {
			b, ok := value.(byte)
			if !ok {
				return types.NewError(types.KindTypeMismatch, "setAttribute.eventNotifier")
			}
			n.EventNotifier = b
			return nil
		}
	case *types.ViewNode:
		switch attr {
		case types.AttrEventNotifier:
			b, ok := value.(byte)
			if !ok {
				return types.NewError(types.KindTypeMismatch, "setAttribute.eventNotifier")
			}
			n.EventNotifier = b
			return nil
		case types.AttrContainsNoLoops:
			b, ok := value.(bool)
			if !ok {
				return types.NewError(types.KindTypeMismatch, "setAttribute.containsNoLoops")
			}
			n.ContainsNoLoops = b
			return nil
		}
	case *types.ReferenceTypeNode:
		if attr == types.AttrInverseName {
			lt, ok := value.(types.LocalizedText)
			if !ok {
				return types.NewError(types.KindTypeMismatch, "setAttribute.inverseName")
			}
			n.InverseName = lt
			return nil
		}
	case *types.ObjectTypeNode, *types.DataTypeNode, *types.VariableTypeNode:
		if attr == types.AttrIsAbstract {
			b, ok := value.(bool)
			if !ok {
				return types.NewError(types.KindTypeMismatch, "setAttribute.isAbstract")
			}
			switch t := n.(type) {
			case *types.ObjectTypeNode:
				t.IsAbstract = b
			case *types.DataTypeNode:
				t.IsAbstract = b
			case *types.VariableTypeNode:
				t.IsAbstract = b
			}
			return nil
		}
	case *types.MethodNode:
		if attr == types.AttrExecutable {
			b, ok := value.(bool)
			if !ok {
				return types.NewError(types.KindTypeMismatch, "setAttribute.executable")
			}
			n.Executable = b
			return nil
		}
	}

	return types.NewError(types.KindNotSupported, "setAttribute.notApplicable")
}
