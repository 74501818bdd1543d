package evidenceapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/chainforensix-cli/internal/core/domain"
)

// flexString accepts a JSON string or number.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

// evidenceResponse is the body of GET /get-evidence.
type evidenceResponse struct {
	ID           flexString      `json:"id"`
	Data         json.RawMessage `json:"data"`
	Hash         string          `json:"hash"`
	AnchoredHash string          `json:"anchored_hash"`
	TxHash       string          `json:"tx_hash"`
	EthTxHash    string          `json:"eth_tx_hash"`
	Error        string          `json:"error"`
}

// evidenceData is the object form of the anchored evidence.
type evidenceData struct {
	ID             flexString      `json:"id"`
	Text           *string         `json:"text"`
	Content        *string         `json:"content"`
	AuthorUsername string          `json:"author_username"`
	CreatedAt      string          `json:"created_at"`
	MediaURLs      []string        `json:"media_urls"`
	Defamation     *classifierWire `json:"defamation"`
}

// classifierWire is the body of POST /analyze-content.
type classifierWire struct {
	Category      string             `json:"category"`
	Confidence    float64            `json:"confidence"`
	Justification string             `json:"justification"`
	AllScores     map[string]float64 `json:"all_scores"`
	Error         string             `json:"error,omitempty"`
}

func (c *classifierWire) toDomain() *domain.ClassifierResult {
	if c == nil || (c.Category == "" && len(c.AllScores) == 0) {
		return nil
	}
	return &domain.ClassifierResult{
		Category:      c.Category,
		Confidence:    c.Confidence,
		Justification: c.Justification,
		Scores:        c.AllScores,
	}
}

// fetchEvidenceRequest is the body of POST /fetch-evidence.
type fetchEvidenceRequest struct {
	TxHash string `json:"tx_hash"`
}

// fetchEvidenceResponse is the reply of POST /fetch-evidence.
type fetchEvidenceResponse struct {
	EvidenceID *flexString `json:"evidence_id"`
	Error      string      `json:"error"`
}

// fetchPostRequest is the body of POST /fetch-x-post.
type fetchPostRequest struct {
	PostID    string `json:"post_id"`
	InputText string `json:"input_text,omitempty"`
}

// postResponse is the reply of POST /fetch-x-post.
type postResponse struct {
	ID                   flexString      `json:"id"`
	Text                 string          `json:"text"`
	AuthorUsername       string          `json:"author_username"`
	CreatedAt            string          `json:"created_at"`
	MediaURLs            []string        `json:"media_urls"`
	RequiresConfirmation bool            `json:"requires_confirmation"`
	VisualText           string          `json:"visual_text"`
	VisualStatus         string          `json:"visual_status"`
	Defamation           *classifierWire `json:"defamation"`
	Error                string          `json:"error"`
}

// analyzeRequest is the body of POST /analyze-content.
type analyzeRequest struct {
	TweetText  string `json:"tweet_text"`
	VisualText string `json:"visual_text"`
}

// ParseRecord maps a /get-evidence body to a validated evidence record.
// The data field may be an object or the positional tuple
// [post_id, content, author, created_at?] returned by the contract.
func ParseRecord(body []byte) (*domain.EvidenceRecord, error) {
	var resp evidenceResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, resp.Error)
	}
	data := bytes.TrimSpace(resp.Data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, domain.ErrNotFound
	}

	rec := &domain.EvidenceRecord{
		AnchoredHash:    firstNonEmpty(resp.AnchoredHash, resp.Hash),
		LedgerReference: ledgerReference(resp.EthTxHash, resp.TxHash),
	}
	if resp.ID != "" {
		id, err := strconv.ParseUint(string(resp.ID), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: evidence id %q", ErrMalformedResponse, resp.ID)
		}
		rec.ID = id
	}

	var err error
	if data[0] == '[' {
		err = fillFromTuple(rec, data)
	} else {
		err = fillFromObject(rec, data)
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func fillFromObject(rec *domain.EvidenceRecord, data []byte) error {
	var d evidenceData
	if err := json.Unmarshal(data, &d); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	rec.SourcePostID = string(d.ID)
	switch {
	case d.Content != nil:
		rec.Content, rec.HasContent = *d.Content, true
	case d.Text != nil:
		rec.Content, rec.HasContent = *d.Text, true
	}
	rec.Author = d.AuthorUsername
	rec.MediaReferences = d.MediaURLs
	rec.Classifier = d.Defamation.toDomain()

	created, err := parseTime(d.CreatedAt)
	if err != nil {
		return err
	}
	rec.CreatedAt = created
	return nil
}

func fillFromTuple(rec *domain.EvidenceRecord, data []byte) error {
	var fields []flexString
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(fields) < 3 {
		return fmt.Errorf("%w: evidence tuple has %d fields", ErrMalformedResponse, len(fields))
	}
	rec.SourcePostID = string(fields[0])
	rec.Content, rec.HasContent = string(fields[1]), true
	rec.Author = string(fields[2])
	if len(fields) > 3 && fields[3] != "" {
		if secs, err := strconv.ParseInt(string(fields[3]), 10, 64); err == nil {
			rec.CreatedAt = time.Unix(secs, 0).UTC()
		}
	}
	return nil
}

// parsePost maps a /fetch-x-post body to a post.
func parsePost(resp *postResponse) (*domain.Post, error) {
	created, err := parseTime(resp.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &domain.Post{
		ID:                   string(resp.ID),
		Text:                 resp.Text,
		Author:               resp.AuthorUsername,
		CreatedAt:            created,
		MediaURLs:            resp.MediaURLs,
		RequiresConfirmation: resp.RequiresConfirmation,
		VisualText:           resp.VisualText,
		VisualStatus:         resp.VisualStatus,
		Classifier:           resp.Defamation.toDomain(),
	}, nil
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: created_at %q", ErrMalformedResponse, s)
}

// ledgerReference prefers the Ethereum transaction hash and restores the 0x
// prefix the backend sometimes strips.
func ledgerReference(candidates ...string) string {
	for _, c := range candidates {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if !domain.LooksLikeLedgerReference(c) && len(c) == 64 {
			c = "0x" + c
		}
		return c
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// exportRecord is the file form written by MarshalRecord. It is a
// /get-evidence body, so ParseRecord reads exports and backend responses alike.
type exportRecord struct {
	ID        uint64     `json:"id,omitempty"`
	Data      exportData `json:"data"`
	Hash      string     `json:"hash,omitempty"`
	EthTxHash string     `json:"eth_tx_hash,omitempty"`
}

type exportData struct {
	ID             string          `json:"id"`
	Content        *string         `json:"content,omitempty"`
	AuthorUsername string          `json:"author_username"`
	CreatedAt      string          `json:"created_at,omitempty"`
	MediaURLs      []string        `json:"media_urls"`
	Defamation     *classifierWire `json:"defamation,omitempty"`
}

// MarshalRecord encodes a record in the export format.
// A record without content is written without a content field.
func MarshalRecord(rec *domain.EvidenceRecord) ([]byte, error) {
	if rec == nil {
		return nil, domain.ErrNilRecord
	}
	out := exportRecord{
		ID:        rec.ID,
		Hash:      rec.AnchoredHash,
		EthTxHash: rec.LedgerReference,
		Data: exportData{
			ID:             rec.SourcePostID,
			AuthorUsername: rec.Author,
			MediaURLs:      rec.MediaReferences,
		},
	}
	if out.Data.MediaURLs == nil {
		out.Data.MediaURLs = []string{}
	}
	if rec.HasContent {
		content := rec.Content
		out.Data.Content = &content
	}
	if !rec.CreatedAt.IsZero() {
		out.Data.CreatedAt = rec.CreatedAt.UTC().Format(time.RFC3339Nano)
	}
	if c := rec.Classifier; c != nil {
		out.Data.Defamation = &classifierWire{
			Category:      c.Category,
			Confidence:    c.Confidence,
			Justification: c.Justification,
			AllScores:     c.Scores,
		}
	}
	return json.MarshalIndent(out, "", "  ")
}
