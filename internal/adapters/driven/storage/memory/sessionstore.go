// Package memory provides in-memory implementations of the storage
// driven ports. The session store here is the authoritative one: a
// search session is process-scoped state and does not survive the
// process by design.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/halcyon-labs/restitch/internal/core/domain"
	"github.com/halcyon-labs/restitch/internal/core/ports/driven"
)

// Ensure SessionStore implements the interface.
var _ driven.SessionStore = (*SessionStore)(nil)

// SessionStore is an in-memory implementation of driven.SessionStore.
// All access is serialised by a single mutex: bulk replacement
// mutates consumed flags while a UI may concurrently poll results.
type SessionStore struct {
	mu          sync.RWMutex
	session     *domain.Session
	order       []string
	occurrences map[string]domain.Occurrence
	status      map[string]domain.OccurrenceStatus
}

// NewSessionStore creates a new in-memory session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		occurrences: make(map[string]domain.Occurrence),
		status:      make(map[string]domain.OccurrenceStatus),
	}
}

// Begin replaces any existing session with a new one.
func (s *SessionStore) Begin(_ context.Context, session domain.Session, occurrences []domain.Occurrence) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = &session
	s.order = make([]string, 0, len(occurrences))
	s.occurrences = make(map[string]domain.Occurrence, len(occurrences))
	s.status = make(map[string]domain.OccurrenceStatus, len(occurrences))

	for i := range occurrences {
		occ := occurrences[i]
		if _, dup := s.occurrences[occ.ID]; dup {
			return fmt.Errorf("duplicate occurrence identity %s: %w", occ.ID, domain.ErrInvalidInput)
		}
		s.order = append(s.order, occ.ID)
		s.occurrences[occ.ID] = occ
		s.status[occ.ID] = domain.OccurrencePending
	}
	return nil
}

// Current returns the active session.
func (s *SessionStore) Current(_ context.Context) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil, domain.ErrNoSession
	}
	session := *s.session
	return &session, nil
}

// Get resolves an occurrence identity.
func (s *SessionStore) Get(_ context.Context, id string) (*domain.Occurrence, domain.OccurrenceStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	occ, ok := s.occurrences[id]
	if !ok {
		return nil, 0, fmt.Errorf("occurrence %s: %w", id, domain.ErrNotFound)
	}
	return &occ, s.status[id], nil
}

// List returns the session's occurrences in search order.
func (s *SessionStore) List(_ context.Context) ([]domain.Occurrence, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Occurrence, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.occurrences[id])
	}
	return result, nil
}

// MarkPossiblyStale flags every unconsumed occurrence in filePath.
func (s *SessionStore) MarkPossiblyStale(_ context.Context, filePath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, occ := range s.occurrences {
		if occ.FilePath == filePath && s.status[id] == domain.OccurrencePending {
			s.status[id] = domain.OccurrencePossiblyStale
		}
	}
	return nil
}

// MarkConsumed marks an occurrence replaced and pessimistically flags
// same-paragraph occurrences starting beyond its original end.
func (s *SessionStore) MarkConsumed(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	consumed, ok := s.occurrences[id]
	if !ok {
		return fmt.Errorf("occurrence %s: %w", id, domain.ErrNotFound)
	}
	s.status[id] = domain.OccurrenceConsumed

	for otherID, occ := range s.occurrences {
		if otherID == id || s.status[otherID] != domain.OccurrencePending {
			continue
		}
		if occ.FilePath == consumed.FilePath &&
			occ.ParagraphIndex == consumed.ParagraphIndex &&
			occ.Start >= consumed.End {
			s.status[otherID] = domain.OccurrencePossiblyStale
		}
	}
	return nil
}

// Reset discards the session and its occurrences.
func (s *SessionStore) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
	s.order = nil
	s.occurrences = make(map[string]domain.Occurrence)
	s.status = make(map[string]domain.OccurrenceStatus)
	return nil
}
