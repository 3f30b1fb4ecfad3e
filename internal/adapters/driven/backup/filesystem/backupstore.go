// Package filesystem snapshots document files into a backup directory
// before their first mutation in a session.
package filesystem

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/halcyon-labs/restitch/internal/core/domain"
	"github.com/halcyon-labs/restitch/internal/core/ports/driven"
	"github.com/halcyon-labs/restitch/internal/logger"
)

// Ensure BackupStore implements the interface.
var _ driven.BackupStore = (*BackupStore)(nil)

// BackupStore copies files into a backup directory. At most one
// backup per file per session: the first mutation snapshots the
// pristine bytes and later mutations reuse that record.
type BackupStore struct {
	dir string

	mu    sync.Mutex
	taken map[string]*domain.Backup
}

// NewBackupStore creates a backup store rooted at dir. The directory
// is created on first use.
func NewBackupStore(dir string) *BackupStore {
	return &BackupStore{dir: dir, taken: make(map[string]*domain.Backup)}
}

// EnsureBackup snapshots path for the session if it has not been
// snapshotted yet.
func (s *BackupStore) EnsureBackup(_ context.Context, sessionID, path string) (*domain.Backup, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := sessionID + "\x00" + path
	if b, ok := s.taken[key]; ok {
		return b, false, nil
	}

	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return nil, false, fmt.Errorf("creating backup directory: %w", err)
	}

	stamp := time.Now().UTC().Format("20060102T150405")
	backupPath := filepath.Join(s.dir, fmt.Sprintf("%s.%s.bak", filepath.Base(path), stamp))
	// Same file, same second, different sessions.
	if _, err := os.Stat(backupPath); err == nil {
		backupPath = filepath.Join(s.dir, fmt.Sprintf("%s.%s.%s.bak", filepath.Base(path), stamp, uuid.New().String()[:8]))
	}

	if err := copyFile(path, backupPath); err != nil {
		return nil, false, fmt.Errorf("backing up %s: %w", path, err)
	}

	backup := &domain.Backup{
		ID:         uuid.New().String(),
		SessionID:  sessionID,
		FilePath:   path,
		BackupPath: backupPath,
		CreatedAt:  time.Now(),
	}
	s.taken[key] = backup

	logger.Debug("Backed up %s to %s", path, backupPath)
	return backup, true, nil
}

// copyFile copies src to dst without following through on partial
// writes: a failed copy removes the destination.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return err
	}
	return nil
}
