package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/halcyon-labs/restitch/internal/core/domain"
	"github.com/halcyon-labs/restitch/internal/core/ports/driven"
	"github.com/halcyon-labs/restitch/internal/core/ports/driving"
	"github.com/halcyon-labs/restitch/internal/logger"
)

// Ensure ReplaceService implements the interface.
var _ driving.ReplaceService = (*ReplaceService)(nil)

// ReplaceService applies replacements to occurrences from the active
// session. Mutations to one file are serialised: a per-path lock is
// held for the whole load-mutate-save cycle.
type ReplaceService struct {
	container driven.Container
	sessions  driven.SessionStore
	backups   driven.BackupStore
	history   driven.HistoryStore // optional

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewReplaceService creates a new replace service.
// The history parameter is optional (can be nil); without it, the
// audit trail is disabled but replacements work normally.
func NewReplaceService(
	container driven.Container,
	sessions driven.SessionStore,
	backups driven.BackupStore,
	history driven.HistoryStore,
) *ReplaceService {
	return &ReplaceService{
		container: container,
		sessions:  sessions,
		backups:   backups,
		history:   history,
		locks:     make(map[string]*sync.Mutex),
	}
}

// ReplaceOne replaces a single occurrence by identity.
func (s *ReplaceService) ReplaceOne(ctx context.Context, occurrenceID, newText string) error {
	logger.Section("Replace Execution")
	logger.Debug("Occurrence: %s, new text: %q", occurrenceID, newText)

	session, err := s.sessions.Current(ctx)
	if err != nil {
		return err
	}

	occ, status, err := s.sessions.Get(ctx, occurrenceID)
	if err != nil {
		return err
	}
	if status == domain.OccurrenceConsumed {
		return fmt.Errorf("occurrence %s: %w", occurrenceID, domain.ErrAlreadyReplaced)
	}

	result, err := s.replaceInFile(ctx, session, occ.FilePath, []fileRequest{{occ: occ, newText: newText}})
	if err != nil {
		return err
	}
	if len(result.failures) > 0 {
		// The engine's error carries the sentinel (stale, out of
		// range); return it unchanged so callers can errors.Is it.
		return result.failures[0].err
	}
	return nil
}

// ReplaceMany applies a batch of replacements with partial-failure
// semantics: failures are recorded per occurrence and never abort the
// batch, except for context cancellation between files.
func (s *ReplaceService) ReplaceMany(ctx context.Context, requests []domain.ReplaceRequest) (*domain.ReplaceSummary, error) {
	logger.Section("Bulk Replace Execution")
	logger.Debug("Requests: %d", len(requests))

	session, err := s.sessions.Current(ctx)
	if err != nil {
		return nil, err
	}

	summary := &domain.ReplaceSummary{TotalProcessed: len(requests)}

	// Resolve identities up front, grouping the workable requests by
	// file. Files keep the order of their first request.
	byFile := make(map[string][]fileRequest)
	var fileOrder []string

	for _, req := range requests {
		occ, status, err := s.sessions.Get(ctx, req.OccurrenceID)
		if err != nil {
			summary.Failures = append(summary.Failures, domain.ReplaceFailure{
				OccurrenceID: req.OccurrenceID,
				Reason:       err.Error(),
			})
			continue
		}
		if status == domain.OccurrenceConsumed {
			summary.Failures = append(summary.Failures, domain.ReplaceFailure{
				OccurrenceID: req.OccurrenceID,
				Reason:       domain.ErrAlreadyReplaced.Error(),
			})
			continue
		}
		if _, seen := byFile[occ.FilePath]; !seen {
			fileOrder = append(fileOrder, occ.FilePath)
		}
		byFile[occ.FilePath] = append(byFile[occ.FilePath], fileRequest{occ: occ, newText: req.NewText})
	}

	for _, path := range fileOrder {
		// Coarse-grained cancellation between per-file operations; a
		// single file's batch is atomic with respect to cancellation.
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result, err := s.replaceInFile(ctx, session, path, byFile[path])
		if err != nil {
			// File-level failure (backup, open, save): every request
			// against this file fails with the same reason.
			for _, fr := range byFile[path] {
				summary.Failures = append(summary.Failures, domain.ReplaceFailure{
					OccurrenceID: fr.occ.ID,
					Reason:       err.Error(),
				})
			}
			continue
		}
		summary.Successful += result.applied
		for _, f := range result.failures {
			summary.Failures = append(summary.Failures, domain.ReplaceFailure{
				OccurrenceID: f.occurrenceID,
				Reason:       f.err.Error(),
			})
		}
	}

	logger.Info("Applied %d of %d replacements", summary.Successful, summary.TotalProcessed)
	return summary, nil
}

// History returns the most recent replacement audit entries.
func (s *ReplaceService) History(ctx context.Context, limit int) ([]domain.ReplacementRecord, error) {
	if s.history == nil {
		return nil, fmt.Errorf("history store not configured: %w", domain.ErrNotFound)
	}
	return s.history.ListReplacements(ctx, limit)
}

// fileRequest pairs a resolved occurrence with its replacement text.
type fileRequest struct {
	occ     *domain.Occurrence
	newText string
}

// fileResult reports one file's batch: how many replacements were
// applied and which occurrences failed. Failures keep the original
// error, not just its text, so single-occurrence callers can match
// sentinels with errors.Is.
type fileResult struct {
	applied  int
	failures []occurrenceFailure
}

type occurrenceFailure struct {
	occurrenceID string
	err          error
}

// replaceInFile applies a batch of replacements to one file under its
// path lock: backup, load, mutate in memory, save, then mark
// consumed. Within each paragraph, later matches are replaced first
// so earlier offsets stay valid without a re-index between
// replacements. A backup or I/O failure aborts the whole file,
// leaving it unmodified.
func (s *ReplaceService) replaceInFile(
	ctx context.Context, session *domain.Session, path string, requests []fileRequest,
) (*fileResult, error) {
	lock := s.pathLock(path)
	lock.Lock()
	defer lock.Unlock()

	backup, created, err := s.backups.EnsureBackup(ctx, session.ID, path)
	if err != nil {
		return nil, fmt.Errorf("backing up %s: %w", path, err)
	}
	if created {
		logger.Debug("Backup: %s -> %s", path, backup.BackupPath)
		if s.history != nil {
			if err := s.history.RecordBackup(ctx, backup); err != nil {
				logger.Warn("Recording backup for %s: %v", path, err)
			}
		}
	}

	doc, err := s.container.Open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	// Descending start-offset order within each paragraph: replacing
	// later matches first leaves earlier, not-yet-applied offsets
	// untouched.
	ordered := make([]fileRequest, len(requests))
	copy(ordered, requests)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].occ.ParagraphIndex != ordered[j].occ.ParagraphIndex {
			return ordered[i].occ.ParagraphIndex < ordered[j].occ.ParagraphIndex
		}
		return ordered[i].occ.Start > ordered[j].occ.Start
	})

	result := &fileResult{}
	var applied []fileRequest

	for _, fr := range ordered {
		if _, err := Replace(doc, fr.occ, fr.newText); err != nil {
			result.failures = append(result.failures, occurrenceFailure{
				occurrenceID: fr.occ.ID,
				err:          err,
			})
			continue
		}
		applied = append(applied, fr)
	}

	if len(applied) == 0 {
		return result, nil
	}

	if err := s.container.Save(ctx, doc); err != nil {
		return nil, fmt.Errorf("saving %s: %w", path, err)
	}

	// Only after a successful save do the occurrences count as
	// consumed and enter the audit trail.
	for _, fr := range applied {
		result.applied++
		if err := s.sessions.MarkConsumed(ctx, fr.occ.ID); err != nil {
			logger.Warn("Marking %s consumed: %v", fr.occ.ID, err)
		}
		if s.history != nil {
			rec := &domain.ReplacementRecord{
				ID:             uuid.New().String(),
				SessionID:      session.ID,
				OccurrenceID:   fr.occ.ID,
				FilePath:       path,
				ParagraphIndex: fr.occ.ParagraphIndex,
				Start:          fr.occ.Start,
				End:            fr.occ.End,
				OldText:        fr.occ.MatchText,
				NewText:        fr.newText,
				AppliedAt:      time.Now(),
			}
			if err := s.history.RecordReplacement(ctx, rec); err != nil {
				logger.Warn("Recording replacement %s: %v", fr.occ.ID, err)
			}
		}
	}

	return result, nil
}

// pathLock returns the mutex serialising mutations to one file path.
func (s *ReplaceService) pathLock(path string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[path]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[path] = lock
	}
	return lock
}
