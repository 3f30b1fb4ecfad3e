package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestParagraph_Text tests flattened text concatenation
func TestParagraph_Text(t *testing.T) {
	t.Run("concatenates fragments in order", func(t *testing.T) {
		p := Paragraph{Fragments: []Fragment{
			{Text: "Hello ", Style: "<w:rPr/>"},
			{Text: "World", Style: "<w:rPr><w:b/></w:rPr>"},
			{Text: "!"},
		}}

		assert.Equal(t, "Hello World!", p.Text())
	})

	t.Run("empty fragments contribute nothing", func(t *testing.T) {
		p := Paragraph{Fragments: []Fragment{
			{Text: "foo"},
			{Text: ""},
			{Text: "bar"},
		}}

		assert.Equal(t, "foobar", p.Text())
	})

	t.Run("paragraph with single empty fragment", func(t *testing.T) {
		p := Paragraph{Fragments: []Fragment{{Text: ""}}}

		assert.Equal(t, "", p.Text())
	})

	t.Run("no fragments yields empty text", func(t *testing.T) {
		p := Paragraph{}

		assert.Equal(t, "", p.Text())
	})
}

// TestDocument_Text tests document-level flattening
func TestDocument_Text(t *testing.T) {
	t.Run("joins paragraphs with newlines", func(t *testing.T) {
		doc := Document{
			Path: "/docs/report.docx",
			Paragraphs: []Paragraph{
				{Fragments: []Fragment{{Text: "first"}}},
				{Fragments: []Fragment{{Text: "sec"}, {Text: "ond"}}},
			},
		}

		assert.Equal(t, "first\nsecond", doc.Text())
	})

	t.Run("empty document yields empty text", func(t *testing.T) {
		doc := Document{Path: "/docs/empty.docx"}

		assert.Equal(t, "", doc.Text())
	})
}
