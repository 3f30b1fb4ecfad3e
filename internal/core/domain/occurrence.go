package domain

import "fmt"

// Occurrence is one located match of a search term inside a document.
// Offsets are byte offsets into the owning paragraph's flattened text.
//
// Identity is stable for the lifetime of one search session and
// distinguishes occurrences with byte-identical context: it is built
// from a session-scoped monotonic sequence number, never derived from
// text content alone.
type Occurrence struct {
	// ID uniquely identifies the occurrence within its session.
	ID string

	// FilePath is the document file the match was found in.
	FilePath string

	// ParagraphIndex is the index of the owning paragraph.
	ParagraphIndex int

	// Start is the match's starting byte offset in the paragraph's
	// flattened text.
	Start int

	// End is the exclusive end offset.
	End int

	// MatchText is the matched text in its original casing.
	MatchText string

	// ContextBefore holds up to the requested number of characters
	// immediately preceding the match, truncated at paragraph start.
	ContextBefore string

	// ContextAfter is symmetric at the paragraph end. Context never
	// crosses paragraph boundaries.
	ContextAfter string
}

// OccurrenceID formats a session-scoped sequence number as an
// occurrence identity. Sequence numbers are never reused within a
// session, even after a replacement consumes an occurrence.
func OccurrenceID(seq int64) string {
	return fmt.Sprintf("occ-%06d", seq)
}

// OccurrenceStatus tracks an occurrence's lifecycle inside the
// session store.
type OccurrenceStatus int

const (
	// OccurrencePending is the initial state after a search.
	OccurrencePending OccurrenceStatus = iota

	// OccurrenceConsumed marks a successfully replaced occurrence.
	// Consumed occurrences stay in history so a replay gets an
	// "already replaced" response instead of a silent no-op.
	OccurrenceConsumed

	// OccurrencePossiblyStale marks an occurrence whose offsets may
	// have been shifted by an earlier replacement in the same
	// paragraph. Resolved lazily by the replacement engine's
	// staleness guard rather than eagerly recomputed.
	OccurrencePossiblyStale
)

// String returns a human-readable status name.
func (s OccurrenceStatus) String() string {
	switch s {
	case OccurrencePending:
		return "pending"
	case OccurrenceConsumed:
		return "consumed"
	case OccurrencePossiblyStale:
		return "possibly-stale"
	default:
		return "unknown"
	}
}

// ReplaceRequest pairs an occurrence identity with replacement text.
// It is valid only while the referenced occurrence is still present,
// unconsumed, and its recorded match text equals the live text at its
// recorded location. Empty NewText is a deletion, not an error.
type ReplaceRequest struct {
	// OccurrenceID identifies the occurrence to replace.
	OccurrenceID string

	// NewText is the replacement text. May be empty or any length.
	NewText string
}

// AppliedSpan describes where a replacement landed, so callers can
// keep downstream occurrence offsets consistent during a bulk run.
type AppliedSpan struct {
	// Start is the span's starting offset in the paragraph's
	// flattened text. Equal to the replaced occurrence's Start.
	Start int

	// Length is the length of the inserted replacement text.
	Length int
}
