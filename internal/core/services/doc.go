// Package services implements the driving port interfaces.
// Services contain the core reconciliation logic - flattening the
// fragment model into a searchable text view, locating occurrences,
// and rewriting the minimal fragment span of a match - and orchestrate
// calls to driven ports (adapters).
//
// Services are pure Go with no external dependencies beyond uuid.
package services
