package services

import (
	"fmt"
	"strings"
	"sync/atomic"
	"unicode"
	"unicode/utf8"

	"github.com/halcyon-labs/restitch/internal/core/domain"
)

// sequence hands out occurrence identities. It is process-wide and
// monotonic: an identity is never reused, even across searches, so a
// stale identity from an old session can never resolve to a fresh
// occurrence by accident.
type sequence struct {
	n atomic.Int64
}

// next returns the next occurrence identity.
func (s *sequence) next() string {
	return domain.OccurrenceID(s.n.Add(1))
}

// Locate scans every paragraph of doc for term and returns all
// occurrences in paragraph order, then start-offset order. The scan
// is left-to-right and non-overlapping: after a match at [start, end)
// the next scan resumes at end. Read-only over the document.
//
// An empty term yields no matches rather than matching everywhere.
// Case-insensitive mode folds both haystack and needle for comparison
// but reports match text in the document's original casing.
func Locate(doc *domain.Document, term string, opts domain.SearchOptions, seq *sequence) ([]domain.Occurrence, error) {
	if opts.ContextChars < 0 {
		return nil, fmt.Errorf("context chars %d: %w", opts.ContextChars, domain.ErrInvalidInput)
	}
	if term == "" {
		return nil, nil
	}

	var occurrences []domain.Occurrence

	for pi := range doc.Paragraphs {
		index := BuildIndex(&doc.Paragraphs[pi])
		text := index.Text()

		from := 0
		for from <= len(text)-1 {
			start, end := indexTerm(text, term, from, opts.CaseSensitive)
			if start < 0 {
				break
			}

			occurrences = append(occurrences, domain.Occurrence{
				ID:             seq.next(),
				FilePath:       doc.Path,
				ParagraphIndex: pi,
				Start:          start,
				End:            end,
				MatchText:      text[start:end],
				ContextBefore:  contextBefore(text, start, opts.ContextChars),
				ContextAfter:   contextAfter(text, end, opts.ContextChars),
			})

			from = end
		}
	}

	return occurrences, nil
}

// indexTerm finds the first occurrence of term in text at or after
// from, returning its byte offsets in text. Case-sensitive mode is a
// plain substring search; insensitive mode compares rune by rune
// under simple case folding so that reported offsets always refer to
// the original text.
func indexTerm(text, term string, from int, caseSensitive bool) (start, end int) {
	if caseSensitive {
		i := strings.Index(text[from:], term)
		if i < 0 {
			return -1, -1
		}
		return from + i, from + i + len(term)
	}

	for i := from; i < len(text); {
		if end := foldMatchAt(text, term, i); end >= 0 {
			return i, end
		}
		_, size := utf8.DecodeRuneInString(text[i:])
		i += size
	}
	return -1, -1
}

// foldMatchAt reports whether term matches text at byte offset i under
// simple case folding, returning the exclusive end offset in text, or
// -1 when it does not match.
func foldMatchAt(text, term string, i int) int {
	ti := i
	for _, tr := range term {
		if ti >= len(text) {
			return -1
		}
		hr, size := utf8.DecodeRuneInString(text[ti:])
		if foldRune(hr) != foldRune(tr) {
			return -1
		}
		ti += size
	}
	return ti
}

// foldRune maps a rune to a canonical case-folded form. Stable: the
// same rune always folds the same way regardless of position.
func foldRune(r rune) rune {
	return unicode.ToLower(unicode.ToUpper(r))
}

// contextBefore returns up to n characters immediately preceding the
// match within the same paragraph, truncated - never padded - at the
// paragraph start.
func contextBefore(text string, start, n int) string {
	if n <= 0 || start <= 0 {
		return ""
	}
	i := start
	for taken := 0; taken < n && i > 0; taken++ {
		_, size := utf8.DecodeLastRuneInString(text[:i])
		i -= size
	}
	return text[i:start]
}

// contextAfter is symmetric at the paragraph end.
func contextAfter(text string, end, n int) string {
	if n <= 0 || end >= len(text) {
		return ""
	}
	i := end
	for taken := 0; taken < n && i < len(text); taken++ {
		_, size := utf8.DecodeRuneInString(text[i:])
		i += size
	}
	return text[end:i]
}
