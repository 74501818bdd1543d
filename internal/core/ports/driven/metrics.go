package driven

import (
	"time"

	"github.com/custodia-labs/chainforensix-cli/internal/core/domain"
)

// Metrics receives observations from core services.
// It is optional; services skip observations when nil.
type Metrics interface {
	// ObserveVerdict counts a verification.
	ObserveVerdict(v domain.Verdict)

	// ObserveLookup records a store lookup and how long it took.
	// kind is "id" or "reference"; outcome is "ok" or a failure status.
	ObserveLookup(kind, outcome string, elapsed time.Duration)
}
