package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrFormat indicates the document container could not be parsed.
	ErrFormat = errors.New("invalid document format")

	// ErrUnsupportedType indicates a file type the engine cannot process.
	ErrUnsupportedType = errors.New("unsupported file type")

	// Replacement Errors.

	// ErrStaleOccurrence indicates the text at an occurrence's recorded
	// location no longer matches what was found at search time. The
	// replacement is refused rather than mutating the wrong span.
	ErrStaleOccurrence = errors.New("occurrence is stale")

	// ErrOutOfRange indicates an occurrence's offsets fall outside the
	// document's current paragraph bounds.
	ErrOutOfRange = errors.New("occurrence out of range")

	// ErrAlreadyReplaced indicates the occurrence was already consumed
	// by an earlier replacement in this session.
	ErrAlreadyReplaced = errors.New("occurrence already replaced")

	// Session Errors.

	// ErrNoSession indicates a replace was requested before any search
	// produced a result set to resolve occurrence identities against.
	ErrNoSession = errors.New("no active search session")
)
