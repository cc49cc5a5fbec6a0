package store

import "github.com/cuemby/opcua-core/pkg/types"

// variableOf returns id's VariableNode, or an error if id isn't one. Both
// VariableNode and VariableTypeNode carry a ValueSource, but callbacks and
// object-instance management only make sense on the instance side, so the
// setters below are VariableNode-only except where noted.
func (s *Store) variableOf(id types.NodeId) (*types.VariableNode, error) {
	node, ok := s.lookupLocked(id)
	if !ok {
		return nil, types.NewError(types.KindLookupMiss, "valueSource.notFound")
	}
	v, ok := node.(*types.VariableNode)
	if !ok {
		return nil, types.NewError(types.KindArgumentInvalid, "valueSource.notVariable")
	}
	return v, nil
}

// SetValueSourceInline switches id to holding value directly, releasing
// whatever external DataSource it previously had.
func (s *Store) SetValueSourceInline(id types.NodeId, value types.Variant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, err := s.variableOf(id)
	if err != nil {
		return err
	}
	v.Source = types.ValueSource{Kind: types.ValueSourceInline, Inline: value}
	return nil
}

// SetValueSourceDataSource switches id to delegate reads (and, if src
// implements DataSourceWriter, writes) to src, with handle passed back on
// every call.
func (s *Store) SetValueSourceDataSource(id types.NodeId, src types.DataSource, handle any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, err := s.variableOf(id)
	if err != nil {
		return err
	}
	v.Source = types.ValueSource{Kind: types.ValueSourceDataSource, External: src, Handle: handle}
	return nil
}

// SetValueCallback attaches (or clears, passing nil) the onRead/onWrite
// hooks for id. Both hooks are advisory: pkg/value
// access invokes them but a panic or error from one never fails the read or
// write itself.
func (s *Store) SetValueCallback(id types.NodeId, callback *types.ValueCallback) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, err := s.variableOf(id)
	if err != nil {
		return err
	}
	v.Callback = callback
	return nil
}

// SetObjectInstanceManagement attaches the constructor/destructor pair to an
// ObjectType node so it fires for instances created later. Any other node
// class, an Object node included, is rejected with KindArgumentInvalid. When
// more than one ancestor type in an instance's chain carries a management
// pair, AddNode's constructor dispatch resolves to the nearest one.
func (s *Store) SetObjectInstanceManagement(id types.NodeId, mgmt *types.ObjectInstanceManagement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	node, ok := s.lookupLocked(id)
	if !ok {
		return types.NewError(types.KindLookupMiss, "setObjectInstanceManagement.notFound")
	}
	ot, ok := node.(*types.ObjectTypeNode)
	if !ok {
		return types.NewError(types.KindArgumentInvalid, "setObjectInstanceManagement.notObjectType")
	}
	ot.Management = mgmt
	return nil
}
