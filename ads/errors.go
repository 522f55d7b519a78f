// Defines the error taxonomy shared by every authenticated data structure
// and, later, by the storage node and coordinator that sit on top of them.

package ads

import "errors"

// ErrorCode classifies the outcome of an ADS or RPC operation.
type ErrorCode int

const (
	Success ErrorCode = iota
	// ErrorInvalidProof indicates a proof failed structural or
	// cryptographic verification.
	ErrorInvalidProof
	// ErrorNotMember indicates a delete or membership check targeted an
	// element the structure does not hold.
	ErrorNotMember
	// ErrorDuplicate indicates an add targeted a (keyword, fid) pair
	// already present; callers treat this as a warning, not a failure.
	ErrorDuplicate
	// ErrorRouting indicates no storage node is registered for a
	// keyword, or the routed node is unreachable.
	ErrorRouting
	// ErrorTimeout indicates an RPC deadline expired.
	ErrorTimeout
	// ErrorUnsupportedOperator indicates a boolean query used an
	// operator this system does not model (a bare top-level NOT).
	ErrorUnsupportedOperator
	// ErrorParse indicates a malformed boolean query expression.
	ErrorParse
	// ErrorInternal is the catch-all for anything else.
	ErrorInternal
)

var errorMessages = map[ErrorCode]error{
	ErrorInvalidProof:        errors.New("[ads] proof failed verification"),
	ErrorNotMember:           errors.New("[ads] element not a member"),
	ErrorDuplicate:           errors.New("[ads] duplicate add, no-op"),
	ErrorRouting:             errors.New("[ads] no reachable storage node for keyword"),
	ErrorTimeout:             errors.New("[ads] operation deadline exceeded"),
	ErrorUnsupportedOperator: errors.New("[ads] unsupported boolean operator"),
	ErrorParse:               errors.New("[ads] malformed query expression"),
	ErrorInternal:            errors.New("[ads] internal error"),
}

// Error returns the canonical error value for e.
func (e ErrorCode) Error() error {
	if errorMessages[e] == nil {
		return errorMessages[ErrorInternal]
	}
	return errorMessages[e]
}
