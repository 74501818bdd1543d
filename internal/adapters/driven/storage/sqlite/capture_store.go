package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/custodia-labs/chainforensix-cli/internal/core/domain"
	"github.com/custodia-labs/chainforensix-cli/internal/core/ports/driven"
)

// captureStore implements driven.CaptureStore.
type captureStore struct {
	store *Store
}

var _ driven.CaptureStore = (*captureStore)(nil)

const captureColumns = `id, post_id, state, post, expected_text, text_mismatch, extracted_text, content, classifier, created_at, updated_at`

// Save stores or updates a capture.
func (s *captureStore) Save(ctx context.Context, c *domain.Capture) error {
	post, err := json.Marshal(c.Post)
	if err != nil {
		return fmt.Errorf("marshalling post: %w", err)
	}
	classifier, err := marshalClassifier(c.Classifier)
	if err != nil {
		return err
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO captures (`+captureColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			state = excluded.state,
			post = excluded.post,
			text_mismatch = excluded.text_mismatch,
			extracted_text = excluded.extracted_text,
			content = excluded.content,
			classifier = excluded.classifier,
			updated_at = excluded.updated_at
	`, c.ID, c.PostID, string(c.State), string(post), c.ExpectedText, c.TextMismatch,
		c.ExtractedText, c.Content, classifier, formatTime(c.CreatedAt), formatTime(c.UpdatedAt))
	if err != nil {
		return fmt.Errorf("saving capture: %w", err)
	}
	return nil
}

// Get retrieves a capture by ID.
func (s *captureStore) Get(ctx context.Context, id string) (*domain.Capture, error) {
	row := s.store.db.QueryRowContext(ctx, `SELECT `+captureColumns+` FROM captures WHERE id = ?`, id)
	return scanCapture(row)
}

// List returns captures, most recently updated first.
func (s *captureStore) List(ctx context.Context) ([]domain.Capture, error) {
	rows, err := s.store.db.QueryContext(ctx,
		`SELECT `+captureColumns+` FROM captures ORDER BY updated_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("querying captures: %w", err)
	}
	defer rows.Close()

	var captures []domain.Capture //nolint:prealloc // size unknown from query
	for rows.Next() {
		c, err := scanCapture(rows)
		if err != nil {
			return nil, err
		}
		captures = append(captures, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating captures: %w", err)
	}
	return captures, nil
}

// Delete removes a capture.
func (s *captureStore) Delete(ctx context.Context, id string) error {
	res, err := s.store.db.ExecContext(ctx, "DELETE FROM captures WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting capture: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanCapture(row rowScanner) (*domain.Capture, error) {
	var c domain.Capture
	var state, post, createdAt, updatedAt string
	var classifier sql.NullString
	if err := row.Scan(&c.ID, &c.PostID, &state, &post, &c.ExpectedText, &c.TextMismatch,
		&c.ExtractedText, &c.Content, &classifier, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning capture: %w", err)
	}

	c.State = domain.CaptureState(state)
	if !c.State.IsValid() {
		return nil, fmt.Errorf("capture %s has unknown state %q", c.ID, state)
	}
	if err := json.Unmarshal([]byte(post), &c.Post); err != nil {
		return nil, fmt.Errorf("unmarshaling post: %w", err)
	}

	var err error
	if c.Classifier, err = unmarshalClassifier(classifier); err != nil {
		return nil, err
	}
	if c.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if c.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
