package job

import "github.com/cuemby/opcua-core/pkg/types"

// Kind discriminates the Job tagged variant.
type Kind uint8

const (
	// KindDetachConnection asks the owning NetworkLayer to tear a connection
	// down; dispatched inline on the loop thread regardless of the worker
	// pool being enabled.
	KindDetachConnection Kind = iota + 1
	// KindDecodedRequest carries a pre-decoded service request ready for
	// pkg/service to execute.
	KindDecodedRequest
	// KindDelayedMethodCall re-enters a Method node's callback after the
	// call was deferred (e.g. because the method is long-running and the
	// service layer chose not to block the loop for it).
	KindDelayedMethodCall
	// KindBinaryMessage carries a raw, not-yet-decoded wire message; a
	// network layer that doesn't decode on its own thread hands these up
	// for decoding inline.
	KindBinaryMessage
)

func (k Kind) String() string {
	switch k {
	case KindDetachConnection:
		return "detach_connection"
	case KindDecodedRequest:
		return "decoded_request"
	case KindDelayedMethodCall:
		return "delayed_method_call"
	case KindBinaryMessage:
		return "binary_message"
	default:
		return "unknown"
	}
}

// Job is one unit of work the server loop (or a worker, if dispatchable) can
// run. Every job carries its originating channel so handlers can log and
// respond without a separate lookup; the core only ever sees a channel's
// identifier, never the transport connection itself.
type Job struct {
	Kind      Kind
	ChannelId uint32

	// Dispatchable marks whether the loop may hand this job to the worker
	// pool instead of running it inline. KindDetachConnection and repeated
	// jobs are never dispatchable regardless of this flag.
	Dispatchable bool

	// Request holds the decoded request payload for KindDecodedRequest.
	Request any

	// ObjectId/MethodId/Inputs/Handle carry a deferred method invocation for
	// KindDelayedMethodCall.
	ObjectId types.NodeId
	MethodId types.NodeId
	Inputs   []types.Variant
	Handle   any

	// Data holds the raw bytes for KindBinaryMessage.
	Data []byte

	// Run, if set, is executed directly by the dispatcher instead of being
	// switched on Kind; this is how repeated jobs (self-checks, periodic
	// sampling) and ad hoc internal work ride the same Job type without
	// growing the Kind enum for every internal use.
	Run func()
}
