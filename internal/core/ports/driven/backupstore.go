package driven

import (
	"context"

	"github.com/halcyon-labs/restitch/internal/core/domain"
)

// BackupStore snapshots a file's bytes before its first mutation in a
// session. The backup set is append-only per session: EnsureBackup is
// atomic "create if absent" and an existing backup is reused, never
// overwritten.
type BackupStore interface {
	// EnsureBackup copies the file's current bytes to the backup
	// location if this session has not backed it up yet. It returns
	// the backup record either way; created reports whether this call
	// took the snapshot.
	EnsureBackup(ctx context.Context, sessionID, path string) (backup *domain.Backup, created bool, err error)
}

// HistoryStore persists the replacement audit trail and the backup
// registry, so "what was changed, and where is the pre-mutation copy"
// can be answered after the fact.
type HistoryStore interface {
	// RecordBackup stores a backup record.
	RecordBackup(ctx context.Context, backup *domain.Backup) error

	// RecordReplacement stores one applied replacement.
	RecordReplacement(ctx context.Context, rec *domain.ReplacementRecord) error

	// ListReplacements returns the most recent replacement records,
	// newest first, up to limit.
	ListReplacements(ctx context.Context, limit int) ([]domain.ReplacementRecord, error)

	// ListBackups returns the most recent backup records, newest
	// first, up to limit.
	ListBackups(ctx context.Context, limit int) ([]domain.Backup, error)

	// Close releases the store's resources.
	Close() error
}
