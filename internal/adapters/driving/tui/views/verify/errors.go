package verify

import "errors"

// Error definitions for the verify view.
var (
	// ErrNoInspectionService indicates that no inspection service was provided.
	ErrNoInspectionService = errors.New("inspection service is required")
)
