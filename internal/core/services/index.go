package services

import (
	"strings"

	"github.com/halcyon-labs/restitch/internal/core/domain"
)

// fragmentRef records which fragment, and which offset within it,
// produced one byte of flattened text.
type fragmentRef struct {
	fragment int
	offset   int
}

// TextIndex is the derived, disposable search view of one paragraph:
// the flattened text plus, for every byte offset, the fragment that
// produced it. Rebuilding an index from an unchanged paragraph yields
// an identical mapping; any mutation to the paragraph invalidates it.
type TextIndex struct {
	text string
	refs []fragmentRef
}

// BuildIndex flattens a paragraph's fragments into one logical text
// string and records the per-offset fragment mapping. Zero-length
// fragments contribute no offsets but keep their sequence positions
// for split purposes. Pure transform, no side effects.
func BuildIndex(p *domain.Paragraph) *TextIndex {
	var b strings.Builder
	var refs []fragmentRef

	for fi := range p.Fragments {
		text := p.Fragments[fi].Text
		b.WriteString(text)
		for off := 0; off < len(text); off++ {
			refs = append(refs, fragmentRef{fragment: fi, offset: off})
		}
	}

	return &TextIndex{text: b.String(), refs: refs}
}

// Text returns the flattened paragraph text.
func (ix *TextIndex) Text() string {
	return ix.text
}

// Len returns the flattened text length in bytes.
func (ix *TextIndex) Len() int {
	return len(ix.text)
}

// Resolve maps a flattened-text byte offset to its owning fragment
// index and the offset within that fragment. Returns ok=false when
// the offset is out of range.
func (ix *TextIndex) Resolve(offset int) (fragment, within int, ok bool) {
	if offset < 0 || offset >= len(ix.refs) {
		return 0, 0, false
	}
	ref := ix.refs[offset]
	return ref.fragment, ref.offset, true
}
