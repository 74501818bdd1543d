package evidenceapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/chainforensix-cli/internal/core/domain"
)

var testRef = "0x" + strings.Repeat("ab", 32)

const evidenceBody = `{
	"id": 7,
	"data": {
		"id": "1789",
		"text": "Post A",
		"author_username": "alice",
		"created_at": "2024-01-02T03:04:05.000Z",
		"media_urls": ["https://x.example/1.jpg"],
		"defamation": {"category": "Safe", "confidence": 0.97, "justification": "no claims", "all_scores": {"safe": 0.97}}
	},
	"hash": "02ff8bfe04696f84fb01caf9c9791d111c27f858937ed4e24f4b6250e39cc809",
	"eth_tx_hash": "` + "abababababababababababababababababababababababababababababababab" + `"
}`

func newTestClient(t *testing.T, handler http.HandlerFunc, token string) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := NewClient(domain.APISettings{BaseURL: srv.URL + "/", Token: token, Timeout: time.Second, RatePerSecond: 1000})
	require.NoError(t, err)
	return c
}

func TestNewClient_RejectsBadURL(t *testing.T) {
	for _, u := range []string{"", "ftp://x", "not a url", "http://"} {
		_, err := NewClient(domain.APISettings{BaseURL: u})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, u)
	}
}

func TestClient_GetByID(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/get-evidence", r.URL.Path)
		assert.Equal(t, "7", r.URL.Query().Get("id"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(evidenceBody))
	}, "tok")

	rec, err := c.GetByID(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, uint64(7), rec.ID)
	assert.Equal(t, "1789", rec.SourcePostID)
	assert.Equal(t, "Post A", rec.Content)
	assert.True(t, rec.HasContent)
	assert.Equal(t, "alice", rec.Author)
	assert.Equal(t, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), rec.CreatedAt)
	assert.Equal(t, []string{"https://x.example/1.jpg"}, rec.MediaReferences)
	require.NotNil(t, rec.Classifier)
	assert.Equal(t, "Safe", rec.Classifier.Category)
	assert.Equal(t, testRef, rec.LedgerReference)
	assert.Len(t, rec.AnchoredHash, 64)
}

func TestClient_StatusMapping(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusNotFound, domain.ErrNotFound},
		{http.StatusBadRequest, domain.ErrNotFound},
		{http.StatusUnauthorized, domain.ErrUnauthorized},
		{http.StatusForbidden, domain.ErrUnauthorized},
		{http.StatusRequestTimeout, domain.ErrUnavailable},
		{http.StatusTooManyRequests, domain.ErrUnavailable},
		{http.StatusInternalServerError, domain.ErrUnavailable},
		{http.StatusBadGateway, domain.ErrUnavailable},
		{http.StatusServiceUnavailable, domain.ErrUnavailable},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"error":"nope"}`))
			}, "")

			_, err := c.GetByID(context.Background(), 1)

			assert.ErrorIs(t, err, tt.want)
			for _, other := range []error{domain.ErrNotFound, domain.ErrUnauthorized, domain.ErrUnavailable} {
				if other != tt.want {
					assert.NotErrorIs(t, err, other)
				}
			}
		})
	}
}

func TestClient_UnexpectedStatusIsMalformed(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}, "")

	_, err := c.GetByID(context.Background(), 1)

	assert.ErrorIs(t, err, ErrMalformedResponse)
	assert.ErrorIs(t, err, domain.ErrMalformedRecord)
	status, ok := domain.StatusForLookupError(err)
	assert.True(t, ok)
	assert.Equal(t, domain.StatusMalformed, status)
	assert.False(t, domain.IsRetryable(err))
}

func TestClient_CorruptCreatedAtIsMalformed(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(strings.Replace(evidenceBody, "2024-01-02T03:04:05.000Z", "yesterday", 1)))
	}, "")

	_, err := c.GetByID(context.Background(), 7)

	status, ok := domain.StatusForLookupError(err)
	require.True(t, ok)
	assert.Equal(t, domain.StatusMalformed, status)
}

func TestClient_RateLimitWaitIsUnavailable(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(evidenceBody))
	}, "")
	c.rateLimiter.retryAfter = time.Now().Add(time.Hour)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.GetByID(ctx, 7)

	assert.ErrorIs(t, err, domain.ErrUnavailable)
	assert.Equal(t, int32(0), calls.Load())
}

func TestClient_RateLimitedHonoursRetryAfter(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(HeaderRetryAfter, "30")
		w.WriteHeader(http.StatusTooManyRequests)
	}, "")

	_, err := c.GetByID(context.Background(), 1)

	assert.True(t, IsRateLimited(err))
	assert.ErrorIs(t, err, domain.ErrUnavailable)
	assert.WithinDuration(t, time.Now().Add(30*time.Second), c.rateLimiter.RetryAfter(), 5*time.Second)
}

func TestClient_TransportErrorIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	c, err := NewClient(domain.APISettings{BaseURL: url, RatePerSecond: 1000})
	require.NoError(t, err)

	_, err = c.GetByID(context.Background(), 1)

	assert.ErrorIs(t, err, domain.ErrUnavailable)
}

func TestClient_CallerCancellation(t *testing.T) {
	c := newTestClient(t, func(_ http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}, "")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.GetByID(ctx, 1)

	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, domain.ErrUnavailable)
}

func TestClient_GetByLedgerReference(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		switch r.URL.Path {
		case "/fetch-evidence":
			var req fetchEvidenceRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, testRef, req.TxHash)
			_, _ = w.Write([]byte(`{"evidence_id": 7}`))
		case "/get-evidence":
			_, _ = w.Write([]byte(evidenceBody))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}, "")

	rec, err := c.GetByLedgerReference(context.Background(), testRef)

	require.NoError(t, err)
	assert.Equal(t, uint64(7), rec.ID)
	assert.Equal(t, int32(2), calls.Load())
}

func TestClient_GetByLedgerReferenceUnknown(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"evidence_id": null}`))
	}, "")

	_, err := c.GetByLedgerReference(context.Background(), testRef)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClient_FetchPost(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/fetch-x-post", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"id": "1789",
			"text": "Look at this",
			"author_username": "bob",
			"created_at": "2024-01-02T03:04:05Z",
			"requires_confirmation": true,
			"visual_text": "SCANDAL",
			"visual_status": "text_detected"
		}`))
	}, "")

	post, err := c.FetchPost(context.Background(), "1789")

	require.NoError(t, err)
	assert.Equal(t, "1789", post.ID)
	assert.True(t, post.RequiresConfirmation)
	assert.Equal(t, "SCANDAL", post.VisualText)
	assert.Equal(t, "text_detected", post.VisualStatus)
	assert.Nil(t, post.Classifier)
}

func TestClient_Classify(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req analyzeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "text", req.TweetText)
		assert.Equal(t, "visual", req.VisualText)
		_, _ = w.Write([]byte(`{"category":"Defamatory","confidence":0.8,"justification":"claims","all_scores":{"defamatory":0.8,"safe":0.2}}`))
	}, "")

	result, err := c.Classify(context.Background(), "text", "visual")

	require.NoError(t, err)
	assert.Equal(t, "Defamatory", result.Category)
	assert.True(t, result.IsFlagged())
	assert.InDelta(t, 0.2, result.Scores["safe"], 1e-9)
}

func TestClient_ExpiredTokenFailsWithoutRequest(t *testing.T) {
	var calls atomic.Int32
	token := signedToken(t, time.Now().Add(-time.Hour))
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(evidenceBody))
	}, token)

	_, err := c.GetByID(context.Background(), 7)

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Equal(t, int32(0), calls.Load())
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "analyst@example.com",
		"exp": exp.Unix(),
	})
	s, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}
