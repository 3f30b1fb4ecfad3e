package docx

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/halcyon-labs/restitch/internal/core/domain"
)

// runSpan records one w:r element: its byte range in the document part
// and the fragment parsed from it.
type runSpan struct {
	start, end int
	frag       domain.Fragment
}

// paragraphSpan records one w:p element. Paragraphs inside table
// cells appear here too, in document order, because the scan is
// linear over the whole part. Text-box content is masked out before
// the scan, so its inner paragraphs do not.
type paragraphSpan struct {
	start, end int
	runs       []runSpan
	frags      []domain.Fragment
}

// fileState is the parse result Save needs to splice a mutated
// fragment model back into the original part bytes.
type fileState struct {
	raw        string
	paragraphs []paragraphSpan
}

// element is the byte layout of one XML element in the raw part.
type element struct {
	start, contentStart, contentEnd, end int
}

// findElement locates the first occurrence of the named element at or
// after from. It is a positional scan, not a full XML parse: the
// elements it is used for (w:p, w:r, w:rPr, w:t) do not nest within
// themselves outside of text boxes, whose w:txbxContent wraps whole
// paragraphs inside a host run; parseDocument masks those spans out
// before scanning. A name prefix followed by another name character
// is not a match, so w:p never matches w:pPr.
func findElement(raw, name string, from int) (element, bool) {
	open := "<" + name
	for {
		idx := strings.Index(raw[from:], open)
		if idx < 0 {
			return element{}, false
		}
		start := from + idx
		after := start + len(open)
		if after >= len(raw) {
			return element{}, false
		}
		switch raw[after] {
		case '>', ' ', '/', '\t', '\r', '\n':
		default:
			from = after
			continue
		}

		gt := strings.IndexByte(raw[start:], '>')
		if gt < 0 {
			return element{}, false
		}
		gt += start
		if raw[gt-1] == '/' {
			// Self-closing, no content.
			return element{start: start, contentStart: gt + 1, contentEnd: gt + 1, end: gt + 1}, true
		}

		closing := "</" + name + ">"
		rel := strings.Index(raw[gt+1:], closing)
		if rel < 0 {
			return element{}, false
		}
		contentEnd := gt + 1 + rel
		return element{start: start, contentStart: gt + 1, contentEnd: contentEnd, end: contentEnd + len(closing)}, true
	}
}

// parseDocument scans the document part for paragraphs and their
// runs. The scan runs over a copy with text-box content blanked out;
// every span still indexes into the original bytes, which rebuild
// re-emits verbatim for anything the mutation never touched.
func parseDocument(raw string) []paragraphSpan {
	scan := maskTextBoxes(raw)
	var paragraphs []paragraphSpan

	i := 0
	for {
		p, ok := findElement(scan, "w:p", i)
		if !ok {
			break
		}
		ps := paragraphSpan{start: p.start, end: p.end}

		j := p.contentStart
		for {
			// Bound the run search to this paragraph's content.
			r, ok := findElement(scan[:p.contentEnd], "w:r", j)
			if !ok {
				break
			}
			frag := parseRun(scan[r.contentStart:r.contentEnd])
			ps.runs = append(ps.runs, runSpan{start: r.start, end: r.end, frag: frag})
			ps.frags = append(ps.frags, frag)
			j = r.end
		}

		paragraphs = append(paragraphs, ps)
		i = p.end
	}

	return paragraphs
}

// maskTextBoxes blanks the content of every w:txbxContent element.
// A text box nests whole paragraphs, runs included, inside a run of
// its host paragraph; scanned as-is, the host paragraph would end at
// the box's first inner </w:p> and its trailing runs would be lost.
// The mask is space-for-byte, so every offset found in the masked
// copy is valid in the original. Text inside boxes is not indexed;
// the box travels with its host run's original bytes.
func maskTextBoxes(raw string) string {
	var b strings.Builder
	i := 0
	for {
		e, ok := findElement(raw, "w:txbxContent", i)
		if !ok {
			break
		}
		b.WriteString(raw[i:e.contentStart])
		b.WriteString(strings.Repeat(" ", e.contentEnd-e.contentStart))
		i = e.contentEnd
	}
	if i == 0 {
		return raw
	}
	b.WriteString(raw[i:])
	return b.String()
}

// parseRun extracts a run's properties and text. The w:rPr element is
// kept as its raw bytes: the engine treats style as opaque and the
// bytes go back out verbatim. Text is the concatenation of the run's
// w:t contents, unescaped.
func parseRun(content string) domain.Fragment {
	var frag domain.Fragment

	if pr, ok := findElement(content, "w:rPr", 0); ok {
		frag.Style = content[pr.start:pr.end]
	}

	var text strings.Builder
	j := 0
	for {
		t, ok := findElement(content, "w:t", j)
		if !ok {
			break
		}
		text.WriteString(unescapeText(content[t.contentStart:t.contentEnd]))
		j = t.end
	}
	frag.Text = text.String()

	return frag
}

// rebuild splices the mutated fragment model back into the raw part.
// Paragraphs whose fragments are unchanged keep their bytes verbatim;
// a changed paragraph has the byte range covering its runs replaced by
// regenerated run XML. Content between a changed paragraph's runs does
// not survive the rewrite; everything before the first run and after
// the last does.
func (st *fileState) rebuild(doc *domain.Document) (string, error) {
	if len(doc.Paragraphs) != len(st.paragraphs) {
		return "", fmt.Errorf("document has %d paragraphs, part has %d: %w",
			len(doc.Paragraphs), len(st.paragraphs), domain.ErrInvalidInput)
	}

	var b strings.Builder
	pos := 0
	for i := range st.paragraphs {
		ps := &st.paragraphs[i]
		frags := doc.Paragraphs[i].Fragments
		if fragmentsEqual(frags, ps.frags) {
			continue
		}
		if len(ps.runs) == 0 {
			return "", fmt.Errorf("paragraph %d changed but has no runs: %w", i, domain.ErrInvalidInput)
		}

		spliceStart := ps.runs[0].start
		spliceEnd := ps.runs[len(ps.runs)-1].end
		b.WriteString(st.raw[pos:spliceStart])
		b.WriteString(st.renderRuns(ps, frags))
		pos = spliceEnd
	}
	b.WriteString(st.raw[pos:])

	return b.String(), nil
}

// renderRuns regenerates a changed paragraph's run sequence. A
// fragment identical to one of the paragraph's original runs reuses
// that run's original bytes, consumed in order, so runs the mutation
// never touched keep any non-text content they carry, text-box runs
// included. Fragments with neither text nor style that match no
// original run are dropped.
func (st *fileState) renderRuns(ps *paragraphSpan, frags []domain.Fragment) string {
	var b strings.Builder
	next := 0
	for _, f := range frags {
		reused := false
		for j := next; j < len(ps.runs); j++ {
			if ps.runs[j].frag == f {
				b.WriteString(st.raw[ps.runs[j].start:ps.runs[j].end])
				next = j + 1
				reused = true
				break
			}
		}
		if reused {
			continue
		}
		if f.Text == "" && f.Style == "" {
			continue
		}
		b.WriteString(renderRun(f))
	}
	return b.String()
}

// renderRun serialises one fragment as a w:r element.
func renderRun(f domain.Fragment) string {
	var b strings.Builder
	b.WriteString("<w:r>")
	b.WriteString(f.Style)
	if f.Text != "" {
		b.WriteString(`<w:t xml:space="preserve">`)
		b.WriteString(escapeText(f.Text))
		b.WriteString("</w:t>")
	}
	b.WriteString("</w:r>")
	return b.String()
}

func fragmentsEqual(a, b []domain.Fragment) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// escapeText escapes character data for a w:t element.
func escapeText(s string) string {
	var buf bytes.Buffer
	if err := xml.EscapeText(&buf, []byte(s)); err != nil {
		return s
	}
	return buf.String()
}

// unescapeText resolves the predefined entities and numeric character
// references produced by word processors.
func unescapeText(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); {
		if s[i] != '&' {
			b.WriteByte(s[i])
			i++
			continue
		}
		semi := strings.IndexByte(s[i:], ';')
		if semi < 0 {
			b.WriteByte(s[i])
			i++
			continue
		}
		resolved := true
		switch ent := s[i+1 : i+semi]; ent {
		case "lt":
			b.WriteByte('<')
		case "gt":
			b.WriteByte('>')
		case "amp":
			b.WriteByte('&')
		case "apos":
			b.WriteByte('\'')
		case "quot":
			b.WriteByte('"')
		default:
			if r, ok := parseCharRef(ent); ok {
				b.WriteRune(r)
			} else {
				resolved = false
			}
		}
		if resolved {
			i += semi + 1
		} else {
			b.WriteByte(s[i])
			i++
		}
	}
	return b.String()
}

// parseCharRef parses a numeric character reference body like #xA0 or
// #160.
func parseCharRef(ent string) (rune, bool) {
	if !strings.HasPrefix(ent, "#") {
		return 0, false
	}
	body := ent[1:]
	base := 10
	if strings.HasPrefix(body, "x") || strings.HasPrefix(body, "X") {
		body = body[1:]
		base = 16
	}
	n, err := strconv.ParseInt(body, base, 32)
	if err != nil || n < 0 {
		return 0, false
	}
	return rune(n), true
}
