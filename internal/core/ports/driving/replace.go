package driving

import (
	"context"

	"github.com/halcyon-labs/restitch/internal/core/domain"
)

// ReplaceService applies replacements to occurrences located by a
// prior search, with backup-before-mutation and partial-failure
// semantics.
type ReplaceService interface {
	// ReplaceOne replaces a single occurrence, identified by the
	// identity assigned during the active session's search.
	ReplaceOne(ctx context.Context, occurrenceID, newText string) error

	// ReplaceMany applies a batch of replacements, file by file and
	// within each paragraph in descending start-offset order. One bad
	// occurrence never rolls back unrelated successful ones.
	ReplaceMany(ctx context.Context, requests []domain.ReplaceRequest) (*domain.ReplaceSummary, error)

	// History returns the most recent replacement audit entries,
	// newest first. Fails with domain.ErrNotFound when no history
	// store is configured.
	History(ctx context.Context, limit int) ([]domain.ReplacementRecord, error)
}
