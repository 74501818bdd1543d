package driving

import (
	"context"

	"github.com/custodia-labs/chainforensix-cli/internal/core/domain"
)

// PreparedEvidence is the canonical form of a confirmed capture, ready to anchor.
type PreparedEvidence struct {
	CaptureID string
	Record    domain.EvidenceRecord
	Payload   []byte
	Hash      string
}

// CaptureService drives the visual-content confirmation workflow.
type CaptureService interface {
	// Start fetches a post and opens a capture for it.
	Start(ctx context.Context, postID, expectedText string) (*domain.Capture, error)

	// Confirm freezes an awaiting capture with the operator-reviewed visual text.
	Confirm(ctx context.Context, captureID, visualText string) (*domain.Capture, error)

	// Prepare produces the canonical payload and hash of a confirmed capture.
	Prepare(ctx context.Context, captureID string) (*PreparedEvidence, error)

	// Get retrieves a capture.
	Get(ctx context.Context, captureID string) (*domain.Capture, error)

	// List returns all captures.
	List(ctx context.Context) ([]domain.Capture, error)

	// Discard deletes a capture.
	Discard(ctx context.Context, captureID string) error
}
