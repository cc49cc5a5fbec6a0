package service

import (
	"github.com/cuemby/opcua-core/pkg/externalns"
	"github.com/cuemby/opcua-core/pkg/store"
	"github.com/cuemby/opcua-core/pkg/types"
)

// CallRequest is one Method invocation item.
type CallRequest struct {
	ObjectId types.NodeId
	MethodId types.NodeId
	Inputs   []types.Variant
}

// CallResult is one Method invocation's outcome: an overall status, a
// per-input status mirroring the method's declared InputArguments, and the
// callback's outputs (only populated when Status is Good).
type CallResult struct {
	Status      types.StatusCode
	InputStatus []types.StatusCode
	Outputs     []types.Variant
}

// Call executes a batch method invocation. Each input is
// type-checked against the Method node's declared Argument descriptor
// before the callback runs; a mismatch on any input fails that call with
// BadInvalidArgument and the per-input status array pinpoints which
// argument was wrong, without invoking the callback at all.
func (s *Service) Call(header externalns.RequestHeader, calls []CallRequest) ([]CallResult, []string) {
	results := make([]CallResult, len(calls))
	diagnostics := make([]string, len(calls))

	ids := make([]types.NodeId, len(calls))
	for i, c := range calls {
		ids[i] = c.MethodId
	}
	localIdx, externalGroups := s.partitionIds(ids)

	for _, i := range localIdx {
		results[i], diagnostics[i] = s.callLocal(calls[i], header.ReturnDiagnostics)
	}

	for ns, idxs := range externalGroups {
		handler, ok := s.External.Lookup(ns)
		if !ok {
			for _, i := range idxs {
				results[i] = CallResult{Status: types.StatusBadNodeIdUnknown}
				diagnostics[i] = diagFor(types.NewError(types.KindLookupMiss, "call.noExternalHandler"), header.ReturnDiagnostics)
			}
			continue
		}
		for _, i := range idxs {
			var outputs []types.Variant
			var diag string
			status := handler.Call(header, calls[i].ObjectId, calls[i].MethodId, calls[i].Inputs, &outputs, &diag)
			results[i] = CallResult{Status: status, Outputs: outputs}
			diagnostics[i] = diag
		}
	}

	return results, diagnostics
}

func (s *Service) callLocal(call CallRequest, wantDiag bool) (CallResult, string) {
	node, ok := s.Store.Lookup(call.MethodId)
	if !ok {
		err := types.NewError(types.KindLookupMiss, "call.methodNotFound")
		return CallResult{Status: types.StatusBadNodeIdUnknown}, diagFor(err, wantDiag)
	}
	method, ok := node.(*types.MethodNode)
	if !ok {
		err := types.NewError(types.KindArgumentInvalid, "call.notAMethod")
		return CallResult{Status: types.StatusBadMethodInvalid}, diagFor(err, wantDiag)
	}
	if !method.Executable {
		err := types.NewError(types.KindNotSupported, "call.notExecutable")
		return CallResult{Status: types.StatusBadMethodInvalid}, diagFor(err, wantDiag)
	}

	inputStatus := make([]types.StatusCode, len(method.InputArguments))
	ok = true
	for i, arg := range method.InputArguments {
		if i >= len(call.Inputs) {
			inputStatus[i] = types.StatusBadArgumentsMissing
			ok = false
			continue
		}
		got := store.DataTypeForVariant(call.Inputs[i].Type)
		if !got.IsNull() && !arg.DataType.IsNull() && !got.Equal(arg.DataType) {
			inputStatus[i] = types.StatusBadTypeMismatch
			ok = false
			continue
		}
		inputStatus[i] = types.StatusGood
	}

	if !ok {
		err := types.NewError(types.KindArgumentInvalid, "call.argumentMismatch")
		return CallResult{Status: types.StatusBadInvalidArgument, InputStatus: inputStatus}, diagFor(err, wantDiag)
	}

	outputs, status := method.Callback(call.ObjectId, call.Inputs, method.Handle)
	return CallResult{Status: status, InputStatus: inputStatus, Outputs: outputs}, ""
}
