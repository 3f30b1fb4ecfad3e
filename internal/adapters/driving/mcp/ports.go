package mcp

import (
	"github.com/halcyon-labs/restitch/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search locates occurrences across document trees.
	Search driving.SearchService

	// Replace applies replacements to located occurrences.
	Replace driving.ReplaceService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	if p.Replace == nil {
		return ErrMissingReplaceService
	}
	return nil
}
