package driven

import (
	"context"

	"github.com/halcyon-labs/restitch/internal/core/domain"
)

// SessionStore holds the most recent search's occurrences keyed by
// identity, so later single or bulk replace calls can be resolved
// without re-scanning. State is scoped "since last search, until next
// search or explicit reset". All reads and writes are serialised by
// the implementation: bulk replacement mutates consumed flags while a
// UI may concurrently poll results.
type SessionStore interface {
	// Begin replaces any existing session with a new one holding the
	// given occurrences in search order.
	Begin(ctx context.Context, session domain.Session, occurrences []domain.Occurrence) error

	// Current returns the active session, or domain.ErrNoSession if
	// no search has run since the last reset.
	Current(ctx context.Context) (*domain.Session, error)

	// Get resolves an occurrence identity to its occurrence and
	// lifecycle status. Unknown identities fail with domain.ErrNotFound.
	Get(ctx context.Context, id string) (*domain.Occurrence, domain.OccurrenceStatus, error)

	// List returns the session's occurrences in search order.
	List(ctx context.Context) ([]domain.Occurrence, error)

	// MarkPossiblyStale flags every unconsumed occurrence in the given
	// file as possibly stale, e.g. after an external modification was
	// observed. The occurrences stay resolvable; the replacement
	// engine's guard decides their fate.
	MarkPossiblyStale(ctx context.Context, filePath string) error

	// MarkConsumed marks an occurrence as successfully replaced and
	// pessimistically marks every other occurrence in the same file
	// and paragraph whose start offset lies beyond the consumed
	// occurrence's original end as possibly stale. Staleness is
	// resolved lazily by the replacement engine's guard, not eagerly
	// recomputed.
	MarkConsumed(ctx context.Context, id string) error

	// Reset discards the session and its occurrences.
	Reset(ctx context.Context) error
}
