package services

import (
	"fmt"

	"github.com/halcyon-labs/restitch/internal/core/domain"
)

// Replace rewrites the minimal fragment span covering occ with
// newText, splitting fragments at the match boundaries as needed.
// Every fragment outside the matched span keeps its text and style
// byte-for-byte; the replacement text takes the style of the first
// run of the original match.
//
// Preconditions are re-validated against the document's current
// state: offsets outside the paragraph's bounds fail with
// domain.ErrOutOfRange, and a mismatch between the recorded match
// text and the live text fails with domain.ErrStaleOccurrence - the
// staleness guard. newText may be empty (a deletion) or any length.
func Replace(doc *domain.Document, occ *domain.Occurrence, newText string) (*domain.AppliedSpan, error) {
	if occ.ParagraphIndex < 0 || occ.ParagraphIndex >= len(doc.Paragraphs) {
		return nil, fmt.Errorf("paragraph %d of %d: %w", occ.ParagraphIndex, len(doc.Paragraphs), domain.ErrOutOfRange)
	}
	para := &doc.Paragraphs[occ.ParagraphIndex]

	flat := para.Text()
	if occ.Start < 0 || occ.End < occ.Start || occ.End > len(flat) {
		return nil, fmt.Errorf("span [%d,%d) in paragraph of length %d: %w", occ.Start, occ.End, len(flat), domain.ErrOutOfRange)
	}
	if occ.Start == occ.End {
		return nil, fmt.Errorf("empty match span at %d: %w", occ.Start, domain.ErrInvalidInput)
	}

	// Staleness guard: refuse to mutate if the text moved or changed
	// since it was located.
	if live := flat[occ.Start:occ.End]; live != occ.MatchText {
		return nil, fmt.Errorf("expected %q at [%d,%d), found %q: %w", occ.MatchText, occ.Start, occ.End, live, domain.ErrStaleOccurrence)
	}

	para.Fragments = spliceFragments(para.Fragments, occ.Start, occ.End, newText)

	// The container requires every paragraph to keep at least one
	// fragment, even an empty one.
	if len(para.Fragments) == 0 {
		para.Fragments = []domain.Fragment{{}}
	}

	return &domain.AppliedSpan{Start: occ.Start, Length: len(newText)}, nil
}

// spliceFragments rebuilds a fragment list with [start, end) of the
// flattened text replaced by newText. Fragments wholly outside the
// span are carried over untouched. A fragment straddling a boundary
// is split, its outside piece keeping the original style. The first
// fragment overlapping the span receives newText with its own style;
// the remaining overlapped fragments are emptied, their styles
// dropped, and left for the container layer to clean up on save.
func spliceFragments(fragments []domain.Fragment, start, end int, newText string) []domain.Fragment {
	out := make([]domain.Fragment, 0, len(fragments)+2)
	replaced := false
	pos := 0

	for i := range fragments {
		f := fragments[i]
		fStart := pos
		fEnd := pos + len(f.Text)
		pos = fEnd

		// Wholly outside the span. Zero-length fragments at the span
		// boundaries land here too and keep their positions.
		if fEnd <= start || fStart >= end {
			out = append(out, f)
			continue
		}

		if fStart < start {
			out = append(out, domain.Fragment{Text: f.Text[:start-fStart], Style: f.Style})
		}

		if !replaced {
			out = append(out, domain.Fragment{Text: newText, Style: f.Style})
			replaced = true
		} else {
			out = append(out, domain.Fragment{})
		}

		if fEnd > end {
			out = append(out, domain.Fragment{Text: f.Text[end-fStart:], Style: f.Style})
		}
	}

	return out
}
