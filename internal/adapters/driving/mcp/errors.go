// Package mcp provides an MCP (Model Context Protocol) server adapter
// for Restitch. It lets AI assistants search document trees and apply
// reviewed replacements.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")

// ErrMissingReplaceService is returned when the replace service is not provided.
var ErrMissingReplaceService = errors.New("mcp: replace service is required")
