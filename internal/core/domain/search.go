package domain

// DefaultContextChars is the context window size used when a search
// does not specify one.
const DefaultContextChars = 150

// SearchOptions configures a search.
type SearchOptions struct {
	// CaseSensitive selects exact-case matching. When false, haystack
	// and needle are case-folded for comparison but matches report
	// their original casing.
	CaseSensitive bool

	// ContextChars is the maximum number of characters of context to
	// capture on each side of a match. Zero is valid and yields empty
	// context windows. Negative values are rejected.
	ContextChars int
}

// FileError records a per-file failure during a multi-file scan or
// bulk replace. One bad file never aborts the whole operation.
type FileError struct {
	// Path is the file that failed.
	Path string `json:"path"`

	// Reason is a human-readable description of the failure.
	Reason string `json:"reason"`
}

// SearchSummary aggregates the outcome of one multi-file search.
type SearchSummary struct {
	// SessionID identifies the search session the results belong to.
	SessionID string `json:"session_id"`

	// Root is the directory that was scanned.
	Root string `json:"root"`

	// Term is the search term.
	Term string `json:"term"`

	// CaseSensitive records the matching mode, so a later display or
	// replace step can reproduce the exact matching semantics.
	CaseSensitive bool `json:"case_sensitive"`

	// FilesScanned is the number of candidate files processed.
	FilesScanned int `json:"files_scanned"`

	// FilesWithMatches is the number of files with at least one match.
	FilesWithMatches int `json:"files_with_matches"`

	// TotalOccurrences is the number of matches across all files.
	TotalOccurrences int `json:"total_occurrences"`

	// Occurrences lists every match, ordered by file (scanner order),
	// then paragraph index, then start offset.
	Occurrences []Occurrence `json:"occurrences"`

	// FileErrors lists files that could not be scanned.
	FileErrors []FileError `json:"file_errors,omitempty"`
}

// DirectoryInfo describes a candidate root directory.
type DirectoryInfo struct {
	// Path is the directory that was checked.
	Path string `json:"path"`

	// Exists reports whether the directory exists.
	Exists bool `json:"exists"`

	// SupportedFiles is the number of supported documents under it.
	SupportedFiles int `json:"supported_files"`
}

// ReplaceFailure records why a single occurrence could not be replaced.
type ReplaceFailure struct {
	// OccurrenceID is the occurrence that failed.
	OccurrenceID string `json:"occurrence_id"`

	// Reason is a human-readable description of the failure.
	Reason string `json:"reason"`
}

// ReplaceSummary aggregates the outcome of a bulk replacement.
// Partial success is always distinguishable from total success or
// total failure.
type ReplaceSummary struct {
	// TotalProcessed is the number of requested replacements.
	TotalProcessed int `json:"total_processed"`

	// Successful is the number of replacements applied.
	Successful int `json:"successful_replacements"`

	// Failures lists each occurrence that could not be replaced.
	Failures []ReplaceFailure `json:"failures,omitempty"`
}
