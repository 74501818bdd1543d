package driving

import (
	"context"

	"github.com/custodia-labs/chainforensix-cli/internal/core/domain"
)

// InspectionService resolves and verifies evidence in one step.
type InspectionService interface {
	// Inspect resolves input and verifies the record.
	// Malformed input is returned as an error; store failures are reported
	// in the inspection status.
	Inspect(ctx context.Context, input string) (*domain.Inspection, error)

	// InspectMany inspects inputs concurrently, preserving input order.
	// Malformed inputs get domain.StatusInvalidInput instead of failing the batch.
	InspectMany(ctx context.Context, inputs []string) ([]*domain.Inspection, error)

	// VerifyRecord verifies a record that is already in hand.
	VerifyRecord(ctx context.Context, record *domain.EvidenceRecord) (*domain.Inspection, error)
}
