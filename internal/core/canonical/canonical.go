// Package canonical implements the cfx-canonical-v1 evidence encoding.
//
// The encoding is the contract between the path that anchors evidence and the
// path that verifies it. Both must produce byte-identical payloads for the same
// logical record, so every rule here is fixed:
//
//   - UTF-8 JSON, keys sorted at every level, no whitespace, no HTML escaping
//   - all strings valid UTF-8, NFC-normalised
//   - created_at in UTC RFC 3339 with trailing zero nanoseconds trimmed
//   - media references keep their original order
//   - the classifier object is present only when the record has one
//   - store-assigned fields (id, anchored hash, ledger reference) are excluded
package canonical

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/custodia-labs/chainforensix-cli/internal/core/domain"
)

// Scheme identifies this encoding inside every payload.
const Scheme = "cfx-canonical-v1"

// ErrInvalidUTF8 indicates a record field is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("canonical: invalid UTF-8")

// Payload returns the canonical bytes for a record.
// Maps are used so encoding/json emits keys in sorted order.
func Payload(r *domain.EvidenceRecord) ([]byte, error) {
	if r == nil {
		return nil, domain.ErrNilRecord
	}

	if err := validate(r); err != nil {
		return nil, err
	}

	media := make([]string, len(r.MediaReferences))
	for i, m := range r.MediaReferences {
		media[i] = nfc(m)
	}

	obj := map[string]any{
		"author":     nfc(r.Author),
		"content":    nfc(r.Content),
		"created_at": timestamp(r.CreatedAt),
		"media":      media,
		"post_id":    nfc(r.SourcePostID),
		"scheme":     Scheme,
	}
	if r.Classifier != nil {
		obj["classifier"] = classifierObject(r.Classifier)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(obj); err != nil {
		return nil, fmt.Errorf("encoding canonical payload: %w", err)
	}
	// Encoder appends a newline.
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Hash returns the lowercase hex SHA-256 of the canonical payload.
func Hash(r *domain.EvidenceRecord) (string, error) {
	payload, err := Payload(r)
	if err != nil {
		return "", err
	}
	return Digest(payload), nil
}

// Digest returns the lowercase hex SHA-256 of b.
func Digest(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

type field struct{ name, value string }

// validate rejects invalid UTF-8; encoding/json would replace it with U+FFFD.
func validate(r *domain.EvidenceRecord) error {
	fields := []field{
		{"author", r.Author},
		{"content", r.Content},
		{"post_id", r.SourcePostID},
	}
	for i, m := range r.MediaReferences {
		fields = append(fields, field{fmt.Sprintf("media[%d]", i), m})
	}
	if c := r.Classifier; c != nil {
		fields = append(fields, field{"classifier.category", c.Category}, field{"classifier.justification", c.Justification})
		for k := range c.Scores {
			fields = append(fields, field{"classifier.scores", k})
		}
	}
	for _, f := range fields {
		if !utf8.ValidString(f.value) {
			return fmt.Errorf("%w in %s", ErrInvalidUTF8, f.name)
		}
	}
	return nil
}

func classifierObject(c *domain.ClassifierResult) map[string]any {
	scores := make(map[string]float64, len(c.Scores))
	for k, v := range c.Scores {
		scores[nfc(k)] = v
	}
	return map[string]any{
		"category":      nfc(c.Category),
		"confidence":    c.Confidence,
		"justification": nfc(c.Justification),
		"scores":        scores,
	}
}

func timestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func nfc(s string) string {
	return norm.NFC.String(s)
}
