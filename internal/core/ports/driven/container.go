package driven

import (
	"context"

	"github.com/halcyon-labs/restitch/internal/core/domain"
)

// Container parses and serialises the word-processing file format.
// The engine treats the container as a library that yields an ordered
// sequence of paragraphs, each an ordered sequence of styled fragments,
// and that can write a mutated fragment model back without disturbing
// the rest of the file.
type Container interface {
	// Open parses the file at path into a Document.
	// Malformed files fail with an error wrapping domain.ErrFormat;
	// unsupported extensions with domain.ErrUnsupportedType.
	Open(ctx context.Context, path string) (*domain.Document, error)

	// Save writes the document back to its path. Every archive part
	// other than the document body is preserved byte-for-byte.
	Save(ctx context.Context, doc *domain.Document) error

	// Supports reports whether the container handles the file's
	// extension.
	Supports(path string) bool
}
