package domain

import "time"

// Session scopes one search result set: it is created per search call
// and lives until the next search or an explicit reset. Occurrence
// identities are only meaningful within their session.
type Session struct {
	// ID uniquely identifies the session.
	ID string

	// Term is the search term the session's occurrences were located with.
	Term string

	// CaseSensitive records the matching mode of the search.
	CaseSensitive bool

	// Root is the directory the search scanned.
	Root string

	// FilesScanned is the number of candidate files processed.
	FilesScanned int

	// CreatedAt is when the search ran.
	CreatedAt time.Time
}

// Backup is an immutable snapshot of a file's bytes taken before its
// first mutation in a session. Created once per file per mutating
// session, never overwritten, retained until the caller cleans it up.
type Backup struct {
	// ID uniquely identifies the backup record.
	ID string

	// SessionID is the mutating session the backup belongs to.
	SessionID string

	// FilePath is the original file.
	FilePath string

	// BackupPath is where the snapshot was written.
	BackupPath string

	// CreatedAt is when the snapshot was taken.
	CreatedAt time.Time
}

// ReplacementRecord is one audit entry describing an applied
// replacement. Persisted so "what changed, and where is the
// pre-mutation copy" can be answered after the fact.
type ReplacementRecord struct {
	// ID uniquely identifies the record.
	ID string

	// SessionID is the session the replacement ran in.
	SessionID string

	// OccurrenceID is the replaced occurrence's identity.
	OccurrenceID string

	// FilePath is the mutated file.
	FilePath string

	// ParagraphIndex is the owning paragraph.
	ParagraphIndex int

	// Start and End are the replaced span's offsets in the paragraph's
	// flattened text at the time of replacement.
	Start int
	End   int

	// OldText is the text that was replaced.
	OldText string

	// NewText is the text it was replaced with.
	NewText string

	// AppliedAt is when the replacement was applied.
	AppliedAt time.Time
}
