// Package domain defines the core business entities for Restitch.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A parsed word-processing document owned by the engine
//   - Paragraph: An ordered sequence of styled fragments
//   - Fragment: A contiguous run of text sharing one style
//   - Occurrence: One located, uniquely identified match of a search term
//   - Session: The lifetime of one search result set
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
