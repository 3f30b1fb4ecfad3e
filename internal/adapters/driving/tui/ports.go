// Package tui provides an interactive terminal user interface for restitch.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/halcyon-labs/restitch/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search locates occurrences and manages the active session.
	Search driving.SearchService

	// Replace applies replacements against the active session.
	Replace driving.ReplaceService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(search driving.SearchService, replace driving.ReplaceService) *Ports {
	return &Ports{
		Search:  search,
		Replace: replace,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	if p.Replace == nil {
		return ErrMissingReplaceService
	}
	return nil
}
