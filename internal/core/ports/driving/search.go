package driving

import (
	"context"

	"github.com/halcyon-labs/restitch/internal/core/domain"
)

// SearchService locates occurrences of a term across a document tree.
type SearchService interface {
	// Search scans every supported document under root for term and
	// returns the aggregated result set. The result set becomes the
	// active session: its occurrence identities stay resolvable until
	// the next search.
	Search(ctx context.Context, root, term string, opts domain.SearchOptions) (*domain.SearchSummary, error)

	// Validate checks that root exists and reports how many supported
	// documents it contains.
	Validate(ctx context.Context, root string) (*domain.DirectoryInfo, error)

	// Results returns the active session's occurrences without
	// re-scanning, or domain.ErrNoSession.
	Results(ctx context.Context) (*domain.SearchSummary, error)
}
