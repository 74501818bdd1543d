package evidenceapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/chainforensix-cli/internal/core/domain"
	"github.com/custodia-labs/chainforensix-cli/internal/core/ports/driven"
	"github.com/custodia-labs/chainforensix-cli/internal/logger"
)

// Ensure Client implements the driven ports it serves.
var (
	_ driven.EvidenceStore = (*Client)(nil)
	_ driven.PostSource    = (*Client)(nil)
	_ driven.Classifier    = (*Client)(nil)
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 15 * time.Second

	// maxBodyBytes bounds how much of a response is read.
	maxBodyBytes = 4 << 20

	userAgent = "chainforensix-cli"
)

// Client talks to the forensics backend.
type Client struct {
	baseURL     string
	token       string
	http        *http.Client
	rateLimiter *RateLimiter
	now         func() time.Time
}

// NewClient creates a backend client from API settings.
// A non-empty token is attached as a bearer token to every request.
func NewClient(settings domain.APISettings) (*Client, error) {
	base := strings.TrimRight(settings.BaseURL, "/")
	u, err := url.Parse(base)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: api base url %q", domain.ErrInvalidInput, settings.BaseURL)
	}

	timeout := settings.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	hc := &http.Client{}
	if settings.Token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: settings.Token, TokenType: "Bearer"})
		hc = oauth2.NewClient(context.Background(), ts)
	}
	hc.Timeout = timeout

	return &Client{
		baseURL:     base,
		token:       settings.Token,
		http:        hc,
		rateLimiter: NewRateLimiter(settings.RatePerSecond),
		now:         time.Now,
	}, nil
}

// GetByID retrieves a record by its evidence identifier.
func (c *Client) GetByID(ctx context.Context, id uint64) (*domain.EvidenceRecord, error) {
	q := url.Values{"id": {strconv.FormatUint(id, 10)}}
	body, err := c.do(ctx, http.MethodGet, "/get-evidence?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	rec, err := ParseRecord(body)
	if err != nil {
		return nil, err
	}
	if rec.ID == 0 {
		rec.ID = id
	}
	return rec, nil
}

// GetByLedgerReference resolves the evidence ID for a transaction, then fetches the record.
// The reference is sent exactly as given.
func (c *Client) GetByLedgerReference(ctx context.Context, ref string) (*domain.EvidenceRecord, error) {
	body, err := c.do(ctx, http.MethodPost, "/fetch-evidence", fetchEvidenceRequest{TxHash: ref})
	if err != nil {
		return nil, err
	}
	var resp fetchEvidenceResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if resp.Error != "" || resp.EvidenceID == nil || *resp.EvidenceID == "" {
		return nil, fmt.Errorf("%w: no evidence for %s", domain.ErrNotFound, ref)
	}
	id, err := strconv.ParseUint(string(*resp.EvidenceID), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: evidence id %q", ErrMalformedResponse, *resp.EvidenceID)
	}
	logger.Debug("Reference %s maps to evidence %d", ref, id)

	rec, err := c.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec.LedgerReference == "" {
		rec.LedgerReference = ref
	}
	return rec, nil
}

// FetchPost retrieves a post and any text extracted from its media.
func (c *Client) FetchPost(ctx context.Context, postID string) (*domain.Post, error) {
	body, err := c.do(ctx, http.MethodPost, "/fetch-x-post", fetchPostRequest{PostID: postID})
	if err != nil {
		return nil, err
	}
	var resp postResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, resp.Error)
	}
	if resp.ID == "" {
		resp.ID = flexString(postID)
	}
	return parsePost(&resp)
}

// Classify scores post text together with confirmed visual text.
func (c *Client) Classify(ctx context.Context, text, visualText string) (*domain.ClassifierResult, error) {
	body, err := c.do(ctx, http.MethodPost, "/analyze-content", analyzeRequest{TweetText: text, VisualText: visualText})
	if err != nil {
		return nil, err
	}
	var resp classifierWire
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrClassifierUnavailable, resp.Error)
	}
	result := resp.toDomain()
	if result == nil {
		return nil, fmt.Errorf("%w: empty classification", ErrMalformedResponse)
	}
	return result, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	if info := InspectToken(c.token); info.Expired(c.now()) {
		return nil, fmt.Errorf("%w: token expired at %s", domain.ErrUnauthorized, info.ExpiresAt.Format(time.RFC3339))
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limit wait: %w", domain.ErrUnavailable, err)
	}

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logger.Debug("%s %s", method, path)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, c.wrapTransportError(ctx, err)
	}
	defer resp.Body.Close()

	if err := c.rateLimiter.CheckRateLimit(resp); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, c.wrapTransportError(ctx, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(data, resp.Status),
			URL:        c.baseURL + path,
		}
		if statusError(resp.StatusCode) == nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, apiErr)
		}
		return nil, apiErr
	}
	return data, nil
}

// wrapTransportError keeps caller cancellation distinct from transient failures.
func (c *Client) wrapTransportError(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
}

func errorMessage(body []byte, fallback string) string {
	var e struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &e) == nil && e.Error != "" {
		return e.Error
	}
	return fallback
}
