package driven

import (
	"context"

	"github.com/custodia-labs/chainforensix-cli/internal/core/domain"
)

// LedgerClient checks a ledger transaction independently of the evidence store.
// It is optional; inspections skip the ledger check when nil.
type LedgerClient interface {
	// Check reports whether the transaction ref carries anchoredHash.
	Check(ctx context.Context, ref, anchoredHash string) (*domain.LedgerCheck, error)
}
