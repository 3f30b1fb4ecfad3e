// Package docx reads and writes Office Open XML word-processing files
// as paragraph and fragment models. Only the main document part is
// ever rewritten; every other archive entry is copied through
// untouched.
package docx

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/halcyon-labs/restitch/internal/core/domain"
	"github.com/halcyon-labs/restitch/internal/core/ports/driven"
	"github.com/halcyon-labs/restitch/internal/logger"
)

// documentEntry is the archive entry holding the document body.
const documentEntry = "word/document.xml"

// Ensure Container implements the interface.
var _ driven.Container = (*Container)(nil)

// Container is the .docx implementation of driven.Container. It keeps
// the parse state of each opened file so Save can splice mutated
// paragraphs back into the original part bytes.
type Container struct {
	mu   sync.Mutex
	open map[string]*fileState
}

// New creates a new docx container.
func New() *Container {
	return &Container{open: make(map[string]*fileState)}
}

// Supports reports whether path has the .docx extension.
func (c *Container) Supports(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".docx")
}

// Open parses the file at path into a Document.
func (c *Container) Open(_ context.Context, path string) (*domain.Document, error) {
	if !c.Supports(path) {
		return nil, fmt.Errorf("%s: %w", path, domain.ErrUnsupportedType)
	}

	zr, err := zip.OpenReader(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("%s is not a valid archive: %w", path, domain.ErrFormat)
	}
	defer zr.Close()

	raw, err := readEntry(&zr.Reader, documentEntry)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	state := &fileState{raw: raw, paragraphs: parseDocument(raw)}

	doc := &domain.Document{Path: path}
	for i := range state.paragraphs {
		frags := make([]domain.Fragment, len(state.paragraphs[i].frags))
		copy(frags, state.paragraphs[i].frags)
		doc.Paragraphs = append(doc.Paragraphs, domain.Paragraph{Fragments: frags})
	}

	c.mu.Lock()
	c.open[path] = state
	c.mu.Unlock()

	logger.Debug("Parsed %s: %d paragraphs", path, len(doc.Paragraphs))
	return doc, nil
}

// Save writes the document back to its path. The rewritten archive is
// assembled in a temporary file next to the original and moved into
// place, so a failure part way through never corrupts the original.
func (c *Container) Save(_ context.Context, doc *domain.Document) error {
	c.mu.Lock()
	state := c.open[doc.Path]
	c.mu.Unlock()
	if state == nil {
		return fmt.Errorf("%s was not opened by this container: %w", doc.Path, domain.ErrInvalidInput)
	}

	rebuilt, err := state.rebuild(doc)
	if err != nil {
		return fmt.Errorf("rebuilding %s: %w", doc.Path, err)
	}

	if err := c.writeArchive(doc.Path, rebuilt); err != nil {
		return err
	}

	// Keep the parse state in step with what is now on disk.
	c.mu.Lock()
	c.open[doc.Path] = &fileState{raw: rebuilt, paragraphs: parseDocument(rebuilt)}
	c.mu.Unlock()

	logger.Debug("Saved %s", doc.Path)
	return nil
}

// writeArchive copies every entry of the original archive into a new
// one, substituting the rebuilt document part, then renames the new
// archive over the original.
func (c *Container) writeArchive(path, document string) error {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return fmt.Errorf("reopening %s: %w", path, err)
	}
	defer zr.Close()

	tmp, err := os.CreateTemp(filepath.Dir(path), ".restitch-*.docx")
	if err != nil {
		return fmt.Errorf("creating temporary file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if tmpName != "" {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	zw := zip.NewWriter(tmp)
	for _, f := range zr.File {
		w, err := zw.CreateHeader(&f.FileHeader)
		if err != nil {
			return fmt.Errorf("writing entry %s: %w", f.Name, err)
		}
		if f.Name == documentEntry {
			if _, err := io.WriteString(w, document); err != nil {
				return fmt.Errorf("writing entry %s: %w", f.Name, err)
			}
			continue
		}
		r, err := f.Open()
		if err != nil {
			return fmt.Errorf("reading entry %s: %w", f.Name, err)
		}
		_, err = io.Copy(w, r)
		r.Close()
		if err != nil {
			return fmt.Errorf("copying entry %s: %w", f.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalising archive: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temporary file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	tmpName = ""
	return nil
}

// readEntry returns an archive entry's content as a string.
func readEntry(zr *zip.Reader, name string) (string, error) {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		r, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("opening entry %s: %w", name, domain.ErrFormat)
		}
		defer r.Close()
		data, err := io.ReadAll(r)
		if err != nil {
			return "", fmt.Errorf("reading entry %s: %w", name, domain.ErrFormat)
		}
		return string(data), nil
	}
	return "", fmt.Errorf("missing entry %s: %w", name, domain.ErrFormat)
}
