package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// Input Errors.
	// These are reported locally, before any lookup is attempted.

	// ErrInvalidReference indicates a ledger reference is not 0x followed by 64 hex digits.
	ErrInvalidReference = errors.New("invalid ledger reference")

	// ErrInvalidEvidenceID indicates an evidence identifier is not a non-negative integer.
	ErrInvalidEvidenceID = errors.New("invalid evidence id")

	// Lookup Errors.
	// Only ErrUnavailable is eligible for retry.

	// ErrUnauthorized indicates the evidence store rejected our credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUnavailable indicates a transient store failure (timeout, rate limit, 5xx).
	ErrUnavailable = errors.New("evidence store unavailable")

	// ErrMalformedRecord indicates the store answered with data that cannot be
	// mapped onto an evidence record. It is not retried.
	ErrMalformedRecord = errors.New("malformed evidence response")

	// ErrNotAnchored indicates a record exists but carries no ledger reference.
	ErrNotAnchored = errors.New("evidence is not anchored")

	// ErrSuperseded indicates a newer lookup replaced this one before it completed.
	ErrSuperseded = errors.New("lookup superseded")

	// Contract Errors.

	// ErrNilRecord indicates verify was called without a record.
	ErrNilRecord = errors.New("nil evidence record")

	// ErrInvalidTransition indicates a capture operation is not valid in its current state.
	ErrInvalidTransition = errors.New("invalid capture state transition")

	// ErrClassifierUnavailable indicates no classifier is configured.
	// Captures are confirmed without a classifier result.
	ErrClassifierUnavailable = errors.New("classifier unavailable")

	// ErrLedgerUnavailable indicates no ledger client is configured.
	ErrLedgerUnavailable = errors.New("ledger client unavailable")
)

// IsRetryable reports whether a lookup error may be retried silently.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
