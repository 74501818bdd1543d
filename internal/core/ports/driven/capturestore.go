package driven

import (
	"context"

	"github.com/custodia-labs/chainforensix-cli/internal/core/domain"
)

// CaptureStore persists captures between workflow steps.
type CaptureStore interface {
	// Save stores or updates a capture.
	Save(ctx context.Context, capture *domain.Capture) error

	// Get retrieves a capture by ID.
	Get(ctx context.Context, id string) (*domain.Capture, error)

	// List returns captures, most recently updated first.
	List(ctx context.Context) ([]domain.Capture, error)

	// Delete removes a capture.
	Delete(ctx context.Context, id string) error
}
