package domain

import "strings"

// Fragment is a contiguous run of characters sharing one style.
// It belongs to exactly one Paragraph and is identified within it
// by position, not by a persistent ID: fragments are created,
// destroyed and split freely during replacement.
type Fragment struct {
	// Text is the run's visible text content.
	Text string

	// Style carries the run's formatting as opaque container markup.
	// The engine never interprets it; it only preserves it.
	Style string
}

// Paragraph is an ordered sequence of Fragments forming one logical
// block of text. Its flattened text is the concatenation of its
// fragments' text in order.
type Paragraph struct {
	// Fragments is the ordered run list. A well-formed paragraph
	// always has at least one fragment, possibly empty.
	Fragments []Fragment
}

// Text returns the paragraph's flattened text.
func (p *Paragraph) Text() string {
	var b strings.Builder
	for i := range p.Fragments {
		b.WriteString(p.Fragments[i].Text)
	}
	return b.String()
}

// Document is an ordered sequence of Paragraphs parsed from one file.
// It is owned exclusively by the engine for the duration of a single
// load-mutate-save cycle and is identified externally by file path.
type Document struct {
	// Path is the file the document was loaded from.
	Path string

	// Paragraphs holds body paragraphs in document order, including
	// paragraphs inside table cells (flattened in body order).
	Paragraphs []Paragraph
}

// Text returns the full document text, paragraphs joined by newlines.
// Used for display and validation, never as a replace coordinate
// space: occurrence offsets are always paragraph-relative.
func (d *Document) Text() string {
	parts := make([]string, len(d.Paragraphs))
	for i := range d.Paragraphs {
		parts[i] = d.Paragraphs[i].Text()
	}
	return strings.Join(parts, "\n")
}
