package store

import "github.com/cuemby/opcua-core/pkg/types"

// AddNode inserts node into the address space under parentId, connected by
// a forward reference of type refTypeId. node's own NodeId
// is honored verbatim if non-null and free; if it is null, or carries a
// numeric identifier of 0 (the auto-assign marker), a fresh numeric id is
// minted in the namespace node already carries. typeDefinitionId may be the
// null id for node classes that don't carry one (ReferenceType, DataType);
// when non-null it must resolve to a VariableType or ObjectType node.
//
// node is mutated in place: its Header().NodeId is set to the id finally
// assigned, and a HasTypeDefinition-style forward reference to
// typeDefinitionId is appended to it alongside the parent backlink record
// kept on parentId.
func (s *Store) AddNode(node types.Node, parentId types.NodeId, refTypeId types.NodeId, typeDefinitionId types.NodeId) (types.NodeId, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if parentId.IsNull() {
		return types.NullNodeId, types.NewError(types.KindLookupMiss, "addNode.parentNotFound")
	}
	parent, ok := s.lookupLocked(parentId)
	if !ok {
		return types.NullNodeId, types.NewError(types.KindLookupMiss, "addNode.parentNotFound")
	}

	refType, ok := s.lookupLocked(refTypeId)
	if !ok {
		return types.NullNodeId, types.NewError(types.KindLookupMiss, "addNode.referenceTypeInvalid")
	}
	if refType.Class() != types.NodeClassReferenceType {
		return types.NullNodeId, types.NewError(types.KindArgumentInvalid, "addNode.referenceTypeInvalid")
	}

	if !typeDefinitionId.IsNull() {
		td, ok := s.lookupLocked(typeDefinitionId)
		if !ok {
			return types.NullNodeId, types.NewError(types.KindLookupMiss, "addNode.typeDefinitionInvalid")
		}
		if td.Class() != types.NodeClassVariableType && td.Class() != types.NodeClassObjectType {
			return types.NullNodeId, types.NewError(types.KindArgumentInvalid, "addNode.typeDefinitionInvalid")
		}
	}

	hdr := node.Header()
	ns := hdr.NodeId.Namespace
	if !s.isLocalLocked(ns) {
		return types.NullNodeId, types.NewError(types.KindArgumentInvalid, "addNode.namespaceNotLocal")
	}

	switch {
	case hdr.NodeId.IsNull() || (hdr.NodeId.IdType == types.IdentifierNumeric && hdr.NodeId.Numeric == 0):
		hdr.NodeId = types.NewNumericNodeId(ns, s.nextNumeric[ns])
		s.nextNumeric[ns]++
	default:
		if _, exists := s.lookupLocked(hdr.NodeId); exists {
			return types.NullNodeId, types.NewError(types.KindAlreadyExists, "addNode.idExists")
		}
	}

	s.nodes[ns][hdr.NodeId.Key()] = node

	parentHdr := parent.Header()
	parentHdr.References = append(parentHdr.References, types.Reference{
		SourceId:        parentId,
		ReferenceTypeId: refTypeId,
		TargetId:        types.ExpandedNodeId{NodeId: hdr.NodeId},
		IsForward:       true,
	})

	if !typeDefinitionId.IsNull() {
		hdr.References = append(hdr.References, types.Reference{
			SourceId:        hdr.NodeId,
			ReferenceTypeId: RefTypeHasTypeDefinition,
			TargetId:        types.ExpandedNodeId{NodeId: typeDefinitionId},
			IsForward:       true,
		})
	}

	s.runConstructor(hdr.NodeId, node)

	return hdr.NodeId, nil
}

// runConstructor fires the nearest ancestor's ObjectInstanceManagement
// constructor for a freshly added Object node; when more than one ancestor
// type carries a constructor, the nearest one wins. Failure is logged, not
// propagated: addNode already committed the node, and that commit is
// otherwise unconditional once validation passes.
func (s *Store) runConstructor(id types.NodeId, node types.Node) {
	obj, ok := node.(*types.ObjectNode)
	if !ok {
		return
	}
	mgmt := s.nearestManagementLocked(id)
	if mgmt == nil || mgmt.Constructor == nil {
		return
	}
	handle, err := mgmt.Constructor(id)
	if err != nil {
		s.log.Warn().Str("node_id", id.String()).Err(err).Msg("object constructor failed")
		return
	}
	obj.InstanceHandle = handle
}

// nearestManagementLocked walks forward HasTypeDefinition/HasSubtype
// references starting at id's nearest enclosing ObjectType, returning the
// first ObjectInstanceManagement found. Best-effort: a graph with no type
// information simply yields no constructor.
func (s *Store) nearestManagementLocked(objectId types.NodeId) *types.ObjectInstanceManagement {
	obj, ok := s.lookupLocked(objectId)
	if !ok {
		return nil
	}
	for _, ref := range obj.Header().References {
		if !ref.IsForward || !ref.ReferenceTypeId.Equal(RefTypeHasTypeDefinition) {
			continue
		}
		if mgmt := s.managementFromTypeLocked(ref.TargetId.NodeId); mgmt != nil {
			return mgmt
		}
	}
	return nil
}

func (s *Store) managementFromTypeLocked(typeId types.NodeId) *types.ObjectInstanceManagement {
	n, ok := s.lookupLocked(typeId)
	if !ok {
		return nil
	}
	ot, ok := n.(*types.ObjectTypeNode)
	if !ok {
		return nil
	}
	if ot.Management != nil {
		return ot.Management
	}
	// Walk up to the supertype: find whichever node holds a forward
	// HasSubtype reference targeting typeId (the same convention
	// IsSubtypeOf's scan uses), and recurse into it.
	for _, bucket := range s.nodes {
		for _, candidate := range bucket {
			for _, ref := range candidate.Header().References {
				if ref.IsForward && ref.ReferenceTypeId.Equal(RefTypeHasSubtype) && ref.TargetId.NodeId.Equal(typeId) {
					if mgmt := s.managementFromTypeLocked(candidate.Header().NodeId); mgmt != nil {
						return mgmt
					}
				}
			}
		}
	}
	return nil
}

// AddReference records a reference from sourceId to targetId on sourceId's
// own header. Adding the same (refType, target,
// isForward) tuple twice fails with KindAlreadyExists rather than silently
// duplicating the edge.
func (s *Store) AddReference(sourceId types.NodeId, refTypeId types.NodeId, targetId types.ExpandedNodeId, isForward bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	source, ok := s.lookupLocked(sourceId)
	if !ok {
		return types.NewError(types.KindLookupMiss, "addReference.sourceNotFound")
	}
	hdr := source.Header()
	for _, ref := range hdr.References {
		if ref.ReferenceTypeId.Equal(refTypeId) && ref.TargetId.NodeId.Equal(targetId.NodeId) && ref.IsForward == isForward {
			return types.NewError(types.KindAlreadyExists, "addReference.duplicate")
		}
	}
	hdr.References = append(hdr.References, types.Reference{
		SourceId:        sourceId,
		ReferenceTypeId: refTypeId,
		TargetId:        targetId,
		IsForward:       isForward,
	})
	return nil
}

// DeleteNode removes id from the store. Outgoing references stored on id
// disappear with it, and references held by other local nodes that target
// id are removed from those nodes in the same locked pass, so no local
// reference is left pointing at the deleted node.
func (s *Store) DeleteNode(id types.NodeId) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	bucket, ok := s.nodes[id.Namespace]
	if !ok {
		return types.NewError(types.KindLookupMiss, "deleteNode.notFound")
	}
	node, ok := bucket[id.Key()]
	if !ok {
		return types.NewError(types.KindLookupMiss, "deleteNode.notFound")
	}

	if obj, ok := node.(*types.ObjectNode); ok && obj.InstanceHandle != nil {
		if mgmt := s.nearestManagementLocked(id); mgmt != nil && mgmt.Destructor != nil {
			mgmt.Destructor(id, obj.InstanceHandle)
		}
	}

	delete(bucket, id.Key())
	for _, b := range s.nodes {
		for _, n := range b {
			h := n.Header()
			kept := h.References[:0]
			for _, ref := range h.References {
				if ref.TargetId.IsRemote() || !ref.TargetId.NodeId.Equal(id) {
					kept = append(kept, ref)
				}
			}
			h.References = kept
		}
	}
	return nil
}

// ForEachChild iterates id's own stored references in insertion order,
// invoking callback with each reference's other endpoint and the direction
// as seen from id. A non-null refTypeFilter restricts iteration to that
// reference type or one of its subtypes. callback returning an error stops
// iteration early and that error is returned.
func (s *Store) ForEachChild(id types.NodeId, refTypeFilter types.NodeId, callback func(childId types.NodeId, isInverse bool, refTypeId types.NodeId) error) error {
	s.mu.RLock()
	node, ok := s.lookupLocked(id)
	if !ok {
		s.mu.RUnlock()
		return types.NewError(types.KindLookupMiss, "forEachChild.notFound")
	}
	refs := append([]types.Reference(nil), node.Header().References...)
	s.mu.RUnlock()

	for _, ref := range refs {
		if !refTypeFilter.IsNull() && !s.IsSubtypeOf(ref.ReferenceTypeId, refTypeFilter) {
			continue
		}
		if ref.TargetId.IsRemote() {
			continue
		}
		if _, exists := s.Lookup(ref.TargetId.NodeId); !exists {
			continue // dangling reference, pruned by omission
		}
		if err := callback(ref.TargetId.NodeId, !ref.IsForward, ref.ReferenceTypeId); err != nil {
			return err
		}
	}
	return nil
}

// ForEachInverseReference scans every locally held node for a forward
// reference whose target is id, reporting (source, refType) pairs. Inverse
// traversal is supported this way, by scanning, rather than by maintaining
// a reverse index. This is the operation that
// makes the reference AddReference(s, r, t, true) added wires observable
// at t.
func (s *Store) ForEachInverseReference(id types.NodeId, callback func(sourceId types.NodeId, refTypeId types.NodeId) error) error {
	s.mu.RLock()
	type hit struct {
		source  types.NodeId
		refType types.NodeId
	}
	var hits []hit
	for _, bucket := range s.nodes {
		for _, node := range bucket {
			hdr := node.Header()
			for _, ref := range hdr.References {
				if ref.IsForward && !ref.TargetId.IsRemote() && ref.TargetId.NodeId.Equal(id) {
					hits = append(hits, hit{source: hdr.NodeId, refType: ref.ReferenceTypeId})
				}
			}
		}
	}
	s.mu.RUnlock()

	for _, h := range hits {
		if err := callback(h.source, h.refType); err != nil {
			return err
		}
	}
	return nil
}

// IsSubtypeOf reports whether candidate equals ancestor or descends from it
// through HasSubtype references. With no
// ReferenceType hierarchy populated, this degrades to plain equality.
func (s *Store) IsSubtypeOf(candidate, ancestor types.NodeId) bool {
	if candidate.Equal(ancestor) {
		return true
	}
	seen := map[string]bool{candidate.Key(): true}
	return s.walkSupertypes(candidate, ancestor, seen)
}

func (s *Store) walkSupertypes(candidate, ancestor types.NodeId, seen map[string]bool) bool {
	found := false
	_ = s.ForEachInverseReference(candidate, func(sourceId types.NodeId, refTypeId types.NodeId) error {
		if found || !refTypeId.Equal(RefTypeHasSubtype) {
			return nil
		}
		if sourceId.Equal(ancestor) {
			found = true
			return nil
		}
		if seen[sourceId.Key()] {
			return nil
		}
		seen[sourceId.Key()] = true
		if s.walkSupertypes(sourceId, ancestor, seen) {
			found = true
		}
		return nil
	})
	return found
}
