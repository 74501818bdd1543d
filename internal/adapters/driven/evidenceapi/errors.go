package evidenceapi

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/custodia-labs/chainforensix-cli/internal/core/domain"
)

// ErrMalformedResponse indicates the backend answered with a body that cannot be mapped.
var ErrMalformedResponse = fmt.Errorf("evidenceapi: %w", domain.ErrMalformedRecord)

// RateLimitError represents a rate limit exceeded error with reset time.
type RateLimitError struct {
	ResetAt time.Time
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("evidenceapi: rate limit exceeded, retry after %s", e.ResetAt.Format(time.RFC3339))
}

// Unwrap makes rate limiting a transient failure.
func (e *RateLimitError) Unwrap() error {
	return domain.ErrUnavailable
}

// APIError represents a non-2xx backend response.
type APIError struct {
	StatusCode int
	Message    string
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("evidenceapi: API error %d: %s (URL: %s)", e.StatusCode, e.Message, e.URL)
}

// Unwrap maps the status code onto a domain lookup error.
func (e *APIError) Unwrap() error {
	return statusError(e.StatusCode)
}

func statusError(code int) error {
	switch {
	case code == http.StatusNotFound, code == http.StatusBadRequest:
		return domain.ErrNotFound
	case code == http.StatusUnauthorized, code == http.StatusForbidden:
		return domain.ErrUnauthorized
	case code == http.StatusRequestTimeout, code == http.StatusTooManyRequests, code >= 500:
		return domain.ErrUnavailable
	default:
		return nil
	}
}

// IsNotFound checks if the error indicates a resource was not found.
func IsNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}

// IsRateLimited checks if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	var rateLimitErr *RateLimitError
	return errors.As(err, &rateLimitErr)
}

// IsUnauthorized checks if the error indicates an authentication failure.
func IsUnauthorized(err error) bool {
	return errors.Is(err, domain.ErrUnauthorized)
}
