package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/halcyon-labs/restitch/internal/core/domain"
	"github.com/halcyon-labs/restitch/internal/core/ports/driven"
	"github.com/halcyon-labs/restitch/internal/core/ports/driving"
	"github.com/halcyon-labs/restitch/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService locates occurrences of a term across a document tree
// and publishes the result set as the active session.
type SearchService struct {
	container driven.Container
	scanner   driven.Scanner
	sessions  driven.SessionStore
	watcher   driven.Watcher // optional
	seq       sequence
}

// NewSearchService creates a new search service.
// The watcher parameter is optional (can be nil); with it, external
// modifications to scanned files flag their occurrences possibly
// stale instead of waiting for the replacement guard.
func NewSearchService(
	container driven.Container,
	scanner driven.Scanner,
	sessions driven.SessionStore,
	watcher driven.Watcher,
) *SearchService {
	return &SearchService{
		container: container,
		scanner:   scanner,
		sessions:  sessions,
		watcher:   watcher,
	}
}

// Search scans every supported document under root for term.
// Files are processed in scanner order; a file that fails to parse is
// recorded and skipped, never fatal. The search is read-only over the
// documents.
func (s *SearchService) Search(
	ctx context.Context, root, term string, opts domain.SearchOptions,
) (*domain.SearchSummary, error) {
	logger.Section("Search Execution")
	logger.Debug("Root: %q, term: %q, case_sensitive: %t, context: %d",
		root, term, opts.CaseSensitive, opts.ContextChars)

	if root == "" {
		return nil, fmt.Errorf("root directory is required: %w", domain.ErrInvalidInput)
	}
	if opts.ContextChars < 0 {
		return nil, fmt.Errorf("context chars %d: %w", opts.ContextChars, domain.ErrInvalidInput)
	}

	paths, err := s.scanner.Scan(ctx, root)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}
	logger.Debug("Candidate files: %d", len(paths))

	summary := &domain.SearchSummary{
		Root:          root,
		Term:          term,
		CaseSensitive: opts.CaseSensitive,
	}

	for _, path := range paths {
		// Coarse-grained cancellation between files.
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		doc, err := s.container.Open(ctx, path)
		if err != nil {
			logger.Warn("Skipping %s: %v", path, err)
			summary.FileErrors = append(summary.FileErrors, domain.FileError{
				Path:   path,
				Reason: err.Error(),
			})
			continue
		}
		summary.FilesScanned++

		occurrences, err := Locate(doc, term, opts, &s.seq)
		if err != nil {
			return nil, fmt.Errorf("locating in %s: %w", path, err)
		}
		if len(occurrences) > 0 {
			summary.FilesWithMatches++
			summary.Occurrences = append(summary.Occurrences, occurrences...)
		}
		logger.Debug("%s: %d occurrences", path, len(occurrences))
	}
	summary.TotalOccurrences = len(summary.Occurrences)

	session := domain.Session{
		ID:            uuid.New().String(),
		Term:          term,
		CaseSensitive: opts.CaseSensitive,
		Root:          root,
		FilesScanned:  summary.FilesScanned,
		CreatedAt:     time.Now(),
	}
	summary.SessionID = session.ID

	if err := s.sessions.Begin(ctx, session, summary.Occurrences); err != nil {
		return nil, fmt.Errorf("storing session: %w", err)
	}

	s.startWatch(ctx, root)

	logger.Info("Found %d occurrences in %d of %d files",
		summary.TotalOccurrences, summary.FilesWithMatches, summary.FilesScanned)
	return summary, nil
}

// Validate checks that root exists and counts its supported documents.
func (s *SearchService) Validate(ctx context.Context, root string) (*domain.DirectoryInfo, error) {
	if root == "" {
		return nil, fmt.Errorf("root directory is required: %w", domain.ErrInvalidInput)
	}

	paths, err := s.scanner.Scan(ctx, root)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.DirectoryInfo{Path: root, Exists: false}, nil
		}
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}

	return &domain.DirectoryInfo{
		Path:           root,
		Exists:         true,
		SupportedFiles: len(paths),
	}, nil
}

// Results rebuilds the active session's summary from the session
// store without re-scanning.
func (s *SearchService) Results(ctx context.Context) (*domain.SearchSummary, error) {
	session, err := s.sessions.Current(ctx)
	if err != nil {
		return nil, err
	}

	occurrences, err := s.sessions.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing occurrences: %w", err)
	}

	files := make(map[string]struct{})
	for i := range occurrences {
		files[occurrences[i].FilePath] = struct{}{}
	}

	return &domain.SearchSummary{
		SessionID:        session.ID,
		Root:             session.Root,
		Term:             session.Term,
		CaseSensitive:    session.CaseSensitive,
		FilesScanned:     session.FilesScanned,
		FilesWithMatches: len(files),
		TotalOccurrences: len(occurrences),
		Occurrences:      occurrences,
	}, nil
}

// startWatch begins flagging externally modified files' occurrences
// as possibly stale. Best-effort: a watch failure only degrades
// staleness detection to the replacement guard.
func (s *SearchService) startWatch(ctx context.Context, root string) {
	if s.watcher == nil {
		return
	}

	events, err := s.watcher.Watch(ctx, root)
	if err != nil {
		logger.Warn("Watch unavailable for %s: %v", root, err)
		return
	}

	go func() {
		for path := range events {
			logger.Debug("External change: %s", path)
			if err := s.sessions.MarkPossiblyStale(context.Background(), path); err != nil {
				logger.Warn("Marking %s stale: %v", path, err)
			}
		}
	}()
}
