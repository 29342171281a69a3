// Package registry durably stores admission audits in SQLite.
package registry

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/modelgate/modelgate/core"
	"github.com/modelgate/modelgate/schema"
)

// ErrAuditNotFound indicates no stored audit for the requested artifact.
var ErrAuditNotFound = errors.New("audit not found")

// Store persists finalized audits. It implements core.AuditSink.
type Store struct {
	db *sql.DB
}

var _ core.AuditSink = &Store{} // Compile-time check

// Open connects to the SQLite registry at path. Run Migrate before first
// use; Open itself does not create the table.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open registry at %q: %w", path, err)
	}
	// A single connection avoids "database is locked" errors
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping registry: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveAudit implements core.AuditSink. Re-ingesting the same artifact
// appends a new audit row; history is kept, not overwritten.
func (s *Store) SaveAudit(ctx context.Context, audit *core.Audit) error {
	record, err := json.Marshal(audit.Record)
	if err != nil {
		return fmt.Errorf("encoding record: %w", err)
	}
	verdict, err := json.Marshal(audit.Verdict)
	if err != nil {
		return fmt.Errorf("encoding verdict: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO audits (artifact_id, name, passed, record, verdict, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		audit.ArtifactID, audit.Name, audit.Verdict.Passed, record, verdict,
		audit.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("inserting audit for %s: %w", audit.Name, err)
	}
	return nil
}

// LatestAudit returns the most recent audit stored for an artifact name.
func (s *Store) LatestAudit(ctx context.Context, name string) (*core.Audit, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT artifact_id, name, passed, record, verdict, created_at
		FROM audits WHERE name = ? ORDER BY created_at DESC, id DESC LIMIT 1`, name)
	return scanAudit(row)
}

// row abstracts sql.Row and sql.Rows scanning.
type row interface {
	Scan(dest ...any) error
}

func scanAudit(r row) (*core.Audit, error) {
	var audit core.Audit
	var passed bool
	var record, verdict []byte
	var createdAt int64

	err := r.Scan(&audit.ArtifactID, &audit.Name, &passed, &record, &verdict, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAuditNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning audit: %w", err)
	}

	if err := json.Unmarshal(record, &audit.Record); err != nil {
		return nil, fmt.Errorf("decoding record: %w", err)
	}
	audit.Verdict = schema.GateVerdict{}
	if err := json.Unmarshal(verdict, &audit.Verdict); err != nil {
		return nil, fmt.Errorf("decoding verdict: %w", err)
	}
	audit.CreatedAt = time.Unix(createdAt, 0).UTC()
	return &audit, nil
}

// ListAudits returns stored audits, newest first, up to limit.
func (s *Store) ListAudits(ctx context.Context, limit int) ([]*core.Audit, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT artifact_id, name, passed, record, verdict, created_at
		FROM audits ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing audits: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var audits []*core.Audit
	for rows.Next() {
		audit, err := scanAudit(rows)
		if err != nil {
			return nil, err
		}
		audits = append(audits, audit)
	}
	return audits, rows.Err()
}
