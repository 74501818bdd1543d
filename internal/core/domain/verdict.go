package domain

// Verdict is the tri-state outcome of comparing a recomputed hash with the anchored one.
// The zero value is VerdictUnknown, so an unset verdict never reads as success.
type Verdict int

// Verdicts.
const (
	// VerdictUnknown means verification could not be attempted.
	VerdictUnknown Verdict = iota

	// VerdictVerified means the recomputed hash equals the anchored hash.
	VerdictVerified

	// VerdictTampered means the recomputed hash differs from the anchored hash.
	VerdictTampered
)

// String returns the lowercase verdict name.
func (v Verdict) String() string {
	switch v {
	case VerdictVerified:
		return "verified"
	case VerdictTampered:
		return "tampered"
	default:
		return "unknown"
	}
}

// Label returns the display label.
func (v Verdict) Label() string {
	switch v {
	case VerdictVerified:
		return "VERIFIED"
	case VerdictTampered:
		return "TAMPERED"
	default:
		return "UNKNOWN"
	}
}

// IsAuthentic is true only for VerdictVerified.
func (v Verdict) IsAuthentic() bool {
	return v == VerdictVerified
}

// MarshalText implements encoding.TextMarshaler.
func (v Verdict) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// Reasons attached to verifications.
const (
	ReasonMissingContent  = "record has no content"
	ReasonMissingPostID   = "record has no source post id"
	ReasonMissingAnchor   = "record has no anchored hash"
	ReasonHashesMatch     = "calculated hash matches anchored hash"
	ReasonHashesDiffer    = "calculated hash differs from anchored hash"
	ReasonMalformedAnchor = "anchored hash is not a 32-byte hex digest"
)

// Verification is the derived, never-persisted result of verifying a record.
type Verification struct {
	Verdict Verdict

	// CalculatedHash is the lowercase hex SHA-256 of the canonical payload.
	// Empty when the payload could not be built.
	CalculatedHash string

	// AnchoredHash is the anchored value exactly as the store reported it.
	AnchoredHash string

	// Reason explains the verdict.
	Reason string
}
