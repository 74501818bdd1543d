package driven

import (
	"context"

	"github.com/custodia-labs/chainforensix-cli/internal/core/domain"
)

// PostSource fetches social-media posts through the backend scraper.
type PostSource interface {
	// FetchPost retrieves a post and any text extracted from its media.
	FetchPost(ctx context.Context, postID string) (*domain.Post, error)
}
