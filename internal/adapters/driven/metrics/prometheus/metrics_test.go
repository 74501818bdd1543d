package prometheus

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/chainforensix-cli/internal/core/domain"
)

func TestObserveVerdict(t *testing.T) {
	m := New()

	m.ObserveVerdict(domain.VerdictVerified)
	m.ObserveVerdict(domain.VerdictVerified)
	m.ObserveVerdict(domain.VerdictTampered)

	assert.InDelta(t, 2, testutil.ToFloat64(m.verdicts.WithLabelValues(domain.VerdictVerified.String())), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.verdicts.WithLabelValues(domain.VerdictTampered.String())), 0)
}

func TestObserveLookup(t *testing.T) {
	m := New()

	m.ObserveLookup("id", "ok", 10*time.Millisecond)
	m.ObserveLookup("reference", "not_found", time.Millisecond)

	assert.InDelta(t, 1, testutil.ToFloat64(m.lookups.WithLabelValues("id", "ok")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.lookups.WithLabelValues("reference", "not_found")), 0)
	assert.Equal(t, 2, testutil.CollectAndCount(m.lookupDuration))
}

func TestHandler(t *testing.T) {
	m := New()
	m.ObserveVerdict(domain.VerdictUnknown)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "chainforensix_verdicts_total")
}
