package types

// StatusCode is a 32-bit OPC UA status code. The two highest bits encode
// severity; the rest of the space is assigned by the standard. Exact values
// here follow the standard's severity encoding but the sub-codes are this
// module's own assignment within the Bad/Uncertain sub-ranges; exact wire
// values beyond severity are not meaningful outside this module.
type StatusCode uint32

const (
	severityMask       StatusCode = 0xC0000000
	severityUncertain  StatusCode = 0x40000000
	severityBad        StatusCode = 0x80000000
)

// Good, Uncertain and Bad report the severity class of a status code.
func (s StatusCode) Good() bool      { return s&severityMask == 0 }
func (s StatusCode) Uncertain() bool { return s&severityMask == severityUncertain }
func (s StatusCode) Bad() bool       { return s&severityMask == severityBad }

const (
	StatusGood       StatusCode = 0x00000000
	StatusGoodNoData StatusCode = 0x00A90000

	StatusUncertainInitialValue StatusCode = 0x40920000

	StatusBadNodeIdUnknown               StatusCode = 0x80340000
	StatusBadNodeIdInvalid                StatusCode = 0x80330000
	StatusBadNodeClassInvalid             StatusCode = 0x80100000
	StatusBadBrowseNameInvalid            StatusCode = 0x80110000
	StatusBadReferenceTypeIdInvalid       StatusCode = 0x80E40000
	StatusBadSourceNodeIdInvalid          StatusCode = 0x80E50000
	StatusBadTargetNodeIdInvalid          StatusCode = 0x80E60000
	StatusBadDuplicateReferenceNotAllowed StatusCode = 0x80E70000
	StatusBadParentNodeIdInvalid          StatusCode = 0x80E80000
	StatusBadTypeDefinitionInvalid        StatusCode = 0x80C90000
	StatusBadNodeIdExists                 StatusCode = 0x80350000
	StatusBadAttributeIdInvalid           StatusCode = 0x80360000
	StatusBadTypeMismatch                 StatusCode = 0x80740000
	StatusBadIndexRangeInvalid            StatusCode = 0x80370000
	StatusBadIndexRangeNoData             StatusCode = 0x80380000
	StatusBadNotWritable                  StatusCode = 0x803B0000
	StatusBadNotReadable                  StatusCode = 0x803A0000
	StatusBadNotSupported                 StatusCode = 0x80460000
	StatusBadInvalidArgument              StatusCode = 0x80AB0000
	StatusBadOutOfRange                   StatusCode = 0x80310000
	StatusBadUserAccessDenied             StatusCode = 0x801F0000
	StatusBadMethodInvalid                StatusCode = 0x80370001
	StatusBadArgumentsMissing             StatusCode = 0x80AD0000
	StatusBadInternalError                StatusCode = 0x80020000
)

// KindToStatus maps an ErrorKind to the representative status code a service
// response should carry for it. Several Kinds are context-sensitive (e.g.
// KindLookupMiss differs for a node vs. an attribute); callers that know the
// finer context should set the status directly and only fall back to this
// table for the generic case.
func KindToStatus(kind ErrorKind) StatusCode {
	switch kind {
	case KindLookupMiss:
		return StatusBadNodeIdUnknown
	case KindAlreadyExists:
		return StatusBadNodeIdExists
	case KindTypeMismatch:
		return StatusBadTypeMismatch
	case KindRangeInvalid:
		return StatusBadIndexRangeInvalid
	case KindNotSupported:
		return StatusBadNotSupported
	case KindNotWritable:
		return StatusBadNotWritable
	case KindArgumentInvalid:
		return StatusBadInvalidArgument
	case KindAuthFailure:
		return StatusBadUserAccessDenied
	case KindTransportFailure:
		return StatusBadInternalError
	case KindInternalInvariant:
		return StatusBadInternalError
	default:
		return StatusBadInternalError
	}
}
