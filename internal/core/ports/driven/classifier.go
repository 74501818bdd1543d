package driven

import (
	"context"

	"github.com/custodia-labs/chainforensix-cli/internal/core/domain"
)

// Classifier scores content for defamation and hate speech.
// It is optional; captures are confirmed without a result when nil.
type Classifier interface {
	// Classify scores post text together with confirmed visual text.
	Classify(ctx context.Context, text, visualText string) (*domain.ClassifierResult, error)
}
