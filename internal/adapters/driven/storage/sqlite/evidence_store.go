package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/custodia-labs/chainforensix-cli/internal/core/domain"
	"github.com/custodia-labs/chainforensix-cli/internal/core/ports/driven"
)

// evidenceArchive implements driven.EvidenceArchive.
type evidenceArchive struct {
	store *Store
}

var _ driven.EvidenceArchive = (*evidenceArchive)(nil)

const evidenceColumns = `id, source_post_id, content, author, created_at, media, classifier, anchored_hash, ledger_reference`

// GetByID retrieves a record by evidence ID.
func (s *evidenceArchive) GetByID(ctx context.Context, id uint64) (*domain.EvidenceRecord, error) {
	row := s.store.db.QueryRowContext(ctx,
		`SELECT `+evidenceColumns+` FROM evidence WHERE id = ?`, int64(id))
	return scanEvidence(row)
}

// GetByLedgerReference retrieves a record by ledger reference, ignoring case.
func (s *evidenceArchive) GetByLedgerReference(ctx context.Context, ref string) (*domain.EvidenceRecord, error) {
	row := s.store.db.QueryRowContext(ctx,
		`SELECT `+evidenceColumns+` FROM evidence WHERE ledger_ref_key = ?`, strings.ToLower(ref))
	return scanEvidence(row)
}

// Import stores a record. Existing IDs and ledger references are never replaced.
func (s *evidenceArchive) Import(ctx context.Context, record *domain.EvidenceRecord) error {
	if record == nil {
		return domain.ErrNilRecord
	}
	if record.ID == 0 {
		return domain.ErrInvalidEvidenceID
	}

	media, err := json.Marshal(nonNil(record.MediaReferences))
	if err != nil {
		return fmt.Errorf("marshalling media: %w", err)
	}
	classifier, err := marshalClassifier(record.Classifier)
	if err != nil {
		return err
	}
	var content sql.NullString
	if record.HasContent {
		content = sql.NullString{String: record.Content, Valid: true}
	}
	refKey := nullString(strings.ToLower(record.LedgerReference))

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var existing int
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM evidence WHERE id = ? OR (ledger_ref_key IS NOT NULL AND ledger_ref_key = ?)`,
		int64(record.ID), refKey,
	).Scan(&existing); err != nil {
		return fmt.Errorf("checking existing evidence: %w", err)
	}
	if existing > 0 {
		return domain.ErrAlreadyExists
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO evidence (`+evidenceColumns+`, ledger_ref_key)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, int64(record.ID), record.SourcePostID, content, record.Author, formatTime(record.CreatedAt),
		string(media), classifier, record.AnchoredHash, record.LedgerReference, refKey)
	if err != nil {
		return fmt.Errorf("inserting evidence: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing evidence: %w", err)
	}
	return nil
}

// List returns records ordered by ID. A limit of 0 or less returns all.
func (s *evidenceArchive) List(ctx context.Context, limit int) ([]domain.EvidenceRecord, error) {
	query := `SELECT ` + evidenceColumns + ` FROM evidence ORDER BY id`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying evidence: %w", err)
	}
	defer rows.Close()

	var records []domain.EvidenceRecord //nolint:prealloc // size unknown from query
	for rows.Next() {
		rec, err := scanEvidence(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating evidence: %w", err)
	}
	return records, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvidence(row rowScanner) (*domain.EvidenceRecord, error) {
	var rec domain.EvidenceRecord
	var id int64
	var content, classifier sql.NullString
	var createdAt, media string
	if err := row.Scan(&id, &rec.SourcePostID, &content, &rec.Author, &createdAt, &media,
		&classifier, &rec.AnchoredHash, &rec.LedgerReference); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning evidence: %w", err)
	}

	rec.ID = uint64(id)
	rec.Content, rec.HasContent = content.String, content.Valid

	t, err := parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	rec.CreatedAt = t

	if err := json.Unmarshal([]byte(media), &rec.MediaReferences); err != nil {
		return nil, fmt.Errorf("unmarshaling media: %w", err)
	}
	if len(rec.MediaReferences) == 0 {
		rec.MediaReferences = nil
	}

	rec.Classifier, err = unmarshalClassifier(classifier)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func marshalClassifier(c *domain.ClassifierResult) (sql.NullString, error) {
	if c == nil {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(c)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("marshalling classifier: %w", err)
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

func unmarshalClassifier(s sql.NullString) (*domain.ClassifierResult, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	var c domain.ClassifierResult
	if err := json.Unmarshal([]byte(s.String), &c); err != nil {
		return nil, fmt.Errorf("unmarshaling classifier: %w", err)
	}
	return &c, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
