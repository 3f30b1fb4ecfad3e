// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/halcyon-labs/restitch/internal/core/domain"
)

// SearchCompleted carries the outcome of a search back to the model.
type SearchCompleted struct {
	Summary *domain.SearchSummary
	Err     error
}

// ReplaceCompleted signals a single replacement finished.
type ReplaceCompleted struct {
	OccurrenceID string
	Err          error
}

// ReplaceAllCompleted carries the outcome of a bulk replacement.
type ReplaceAllCompleted struct {
	Summary *domain.ReplaceSummary
	Err     error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
