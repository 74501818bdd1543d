package domain

import (
	"fmt"
	"strings"
)

// ledgerReferenceLength is "0x" plus 64 hex digits.
const ledgerReferenceLength = 66

// ParseLedgerReference validates a ledger transaction reference.
// The reference must be 0x followed by exactly 64 hex digits, in either case.
// Valid references are returned unmodified.
func ParseLedgerReference(ref string) (string, error) {
	if len(ref) != ledgerReferenceLength {
		return "", fmt.Errorf("%w: expected %d characters, got %d", ErrInvalidReference, ledgerReferenceLength, len(ref))
	}
	if ref[0] != '0' || (ref[1] != 'x' && ref[1] != 'X') {
		return "", fmt.Errorf("%w: missing 0x prefix", ErrInvalidReference)
	}
	if !isHex(ref[2:]) {
		return "", fmt.Errorf("%w: non-hex characters", ErrInvalidReference)
	}
	return ref, nil
}

// LooksLikeLedgerReference reports whether input is meant as a ledger reference
// rather than an evidence ID. It does not validate the reference.
func LooksLikeLedgerReference(input string) bool {
	input = strings.TrimSpace(input)
	return strings.HasPrefix(input, "0x") || strings.HasPrefix(input, "0X")
}

// NormalizeHash lowercases a hex digest and strips an optional 0x prefix.
func NormalizeHash(h string) string {
	h = strings.TrimSpace(h)
	if strings.HasPrefix(h, "0x") || strings.HasPrefix(h, "0X") {
		h = h[2:]
	}
	return strings.ToLower(h)
}

// IsDigest reports whether h is a 32-byte hex digest (after normalisation).
func IsDigest(h string) bool {
	h = NormalizeHash(h)
	return len(h) == 64 && isHex(h)
}

func isHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return s != ""
}

// LedgerStatus is the outcome of an independent check against the public ledger.
type LedgerStatus string

// Ledger check outcomes.
const (
	// LedgerConfirmed means the transaction is mined, succeeded, and carries the anchored hash.
	LedgerConfirmed LedgerStatus = "confirmed"

	// LedgerNotIncluded means the transaction exists but does not carry the anchored hash.
	LedgerNotIncluded LedgerStatus = "not_included"

	// LedgerPending means the transaction is not yet mined.
	LedgerPending LedgerStatus = "pending"

	// LedgerFailed means the transaction was mined but reverted, or does not exist.
	LedgerFailed LedgerStatus = "failed"

	// LedgerUnavailable means the ledger node could not be reached.
	LedgerUnavailable LedgerStatus = "unavailable"
)

// LedgerCheck is the result of looking up a ledger reference on chain.
type LedgerCheck struct {
	Status      LedgerStatus
	Reference   string
	BlockNumber uint64
	Detail      string
}
