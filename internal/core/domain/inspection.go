package domain

import "errors"

// InspectionStatus is the user-facing state after looking up and verifying evidence.
// Every store failure maps to its own status; none collapses into a generic failure.
type InspectionStatus string

// Inspection statuses.
const (
	StatusVerified     InspectionStatus = "verified"
	StatusTampered     InspectionStatus = "tampered"
	StatusUnknown      InspectionStatus = "unknown"
	StatusNotFound     InspectionStatus = "not_found"
	StatusUnauthorized InspectionStatus = "unauthorized"
	StatusUnavailable  InspectionStatus = "unavailable"
	StatusMalformed    InspectionStatus = "malformed"

	// StatusInvalidInput marks a malformed identifier in a batch inspection.
	StatusInvalidInput InspectionStatus = "invalid_input"
)

// StatusForVerdict maps a verdict to its inspection status.
func StatusForVerdict(v Verdict) InspectionStatus {
	switch v {
	case VerdictVerified:
		return StatusVerified
	case VerdictTampered:
		return StatusTampered
	default:
		return StatusUnknown
	}
}

// StatusForLookupError maps a lookup error to its inspection status.
// The second return is false for errors that are not store failures.
func StatusForLookupError(err error) (InspectionStatus, bool) {
	switch {
	case errors.Is(err, ErrNotFound):
		return StatusNotFound, true
	case errors.Is(err, ErrUnauthorized):
		return StatusUnauthorized, true
	case errors.Is(err, ErrUnavailable):
		return StatusUnavailable, true
	case errors.Is(err, ErrMalformedRecord):
		return StatusMalformed, true
	default:
		return "", false
	}
}

// IsLookupFailure reports whether the status describes a store failure rather than a verdict.
func (s InspectionStatus) IsLookupFailure() bool {
	switch s {
	case StatusNotFound, StatusUnauthorized, StatusUnavailable, StatusMalformed:
		return true
	default:
		return false
	}
}

// Inspection is the result of resolving an identifier and verifying the record.
type Inspection struct {
	// Input is the identifier as supplied by the caller.
	Input string

	Status InspectionStatus

	// Record is nil when the lookup failed.
	Record *EvidenceRecord

	// Verification is nil when the lookup failed.
	Verification *Verification

	// Ledger is the optional independent ledger check.
	Ledger *LedgerCheck

	// Err is the lookup error behind a failure status.
	Err error
}
