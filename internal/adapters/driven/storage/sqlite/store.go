// Package sqlite persists the replacement audit trail and the backup
// registry in a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/halcyon-labs/restitch/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/halcyon-labs/restitch/internal/core/domain"
	"github.com/halcyon-labs/restitch/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.HistoryStore = (*Store)(nil)

// Store is the SQLite-backed history store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.restitch/data/history.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".restitch", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "history.db")

	// WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// RecordBackup stores a backup record.
func (s *Store) RecordBackup(ctx context.Context, backup *domain.Backup) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO backups (id, session_id, file_path, backup_path, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, backup.ID, backup.SessionID, backup.FilePath, backup.BackupPath, backup.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("saving backup record: %w", err)
	}
	return nil
}

// RecordReplacement stores one applied replacement.
func (s *Store) RecordReplacement(ctx context.Context, rec *domain.ReplacementRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO replacements (id, session_id, occurrence_id, file_path,
			paragraph_index, start_offset, end_offset, old_text, new_text, applied_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.SessionID, rec.OccurrenceID, rec.FilePath,
		rec.ParagraphIndex, rec.Start, rec.End, rec.OldText, rec.NewText, rec.AppliedAt.UTC())
	if err != nil {
		return fmt.Errorf("saving replacement record: %w", err)
	}
	return nil
}

// ListReplacements returns the most recent replacement records, newest
// first, up to limit. A non-positive limit returns everything.
func (s *Store) ListReplacements(ctx context.Context, limit int) ([]domain.ReplacementRecord, error) {
	query := `
		SELECT id, session_id, occurrence_id, file_path,
			paragraph_index, start_offset, end_offset, old_text, new_text, applied_at
		FROM replacements ORDER BY applied_at DESC, id DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying replacements: %w", err)
	}
	defer rows.Close()

	var records []domain.ReplacementRecord
	for rows.Next() {
		var rec domain.ReplacementRecord
		var appliedAt sql.NullTime
		if err := rows.Scan(&rec.ID, &rec.SessionID, &rec.OccurrenceID, &rec.FilePath,
			&rec.ParagraphIndex, &rec.Start, &rec.End, &rec.OldText, &rec.NewText, &appliedAt); err != nil {
			return nil, fmt.Errorf("scanning replacement: %w", err)
		}
		if appliedAt.Valid {
			rec.AppliedAt = appliedAt.Time
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating replacements: %w", err)
	}

	return records, nil
}

// ListBackups returns the most recent backup records, newest first, up
// to limit. A non-positive limit returns everything.
func (s *Store) ListBackups(ctx context.Context, limit int) ([]domain.Backup, error) {
	query := `
		SELECT id, session_id, file_path, backup_path, created_at
		FROM backups ORDER BY created_at DESC, id DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying backups: %w", err)
	}
	defer rows.Close()

	var backups []domain.Backup
	for rows.Next() {
		var b domain.Backup
		var createdAt sql.NullTime
		if err := rows.Scan(&b.ID, &b.SessionID, &b.FilePath, &b.BackupPath, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning backup: %w", err)
		}
		if createdAt.Valid {
			b.CreatedAt = createdAt.Time
		}
		backups = append(backups, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating backups: %w", err)
	}

	return backups, nil
}
