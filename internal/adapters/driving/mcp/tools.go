package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/halcyon-labs/restitch/internal/core/domain"
)

// SearchInput is the input schema for the search_documents tool.
type SearchInput struct {
	Directory     string `json:"directory" jsonschema:"directory tree to search"`
	Term          string `json:"term" jsonschema:"text to find"`
	CaseSensitive bool   `json:"case_sensitive,omitempty" jsonschema:"match case exactly (default false)"`
	ContextChars  int    `json:"context_chars,omitempty" jsonschema:"characters of context around each match (default 150)"`
}

// SearchOutput is the output schema for the search_documents tool.
type SearchOutput struct {
	SessionID        string             `json:"session_id"`
	FilesScanned     int                `json:"files_scanned"`
	FilesWithMatches int                `json:"files_with_matches"`
	TotalOccurrences int                `json:"total_occurrences"`
	Occurrences      []OccurrenceOutput `json:"occurrences"`
	FileErrors       []FileErrorOutput  `json:"file_errors,omitempty"`
}

// OccurrenceOutput represents a single located occurrence.
type OccurrenceOutput struct {
	ID             string `json:"id"`
	FilePath       string `json:"file_path"`
	ParagraphIndex int    `json:"paragraph_index"`
	MatchText      string `json:"match_text"`
	ContextBefore  string `json:"context_before,omitempty"`
	ContextAfter   string `json:"context_after,omitempty"`
}

// FileErrorOutput reports a file skipped during the scan.
type FileErrorOutput struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// ReplaceInput is the input schema for the replace_occurrence tool.
type ReplaceInput struct {
	OccurrenceID string `json:"occurrence_id" jsonschema:"identity from a previous search_documents call"`
	NewText      string `json:"new_text" jsonschema:"replacement text, may be empty to delete"`
}

// ReplaceOutput is the output schema for the replace_occurrence tool.
type ReplaceOutput struct {
	Replaced bool `json:"replaced"`
}

// ReplaceAllInput is the input schema for the replace_all tool.
type ReplaceAllInput struct {
	Replacements []ReplaceInput `json:"replacements" jsonschema:"occurrence identities with their replacement texts"`
}

// ReplaceAllOutput is the output schema for the replace_all tool.
type ReplaceAllOutput struct {
	TotalProcessed int             `json:"total_processed"`
	Successful     int             `json:"successful"`
	Failures       []FailureOutput `json:"failures,omitempty"`
}

// FailureOutput reports one replacement that could not be applied.
type FailureOutput struct {
	OccurrenceID string `json:"occurrence_id"`
	Reason       string `json:"reason"`
}

// ValidateInput is the input schema for the validate_directory tool.
type ValidateInput struct {
	Directory string `json:"directory" jsonschema:"directory to validate"`
}

// ValidateOutput is the output schema for the validate_directory tool.
type ValidateOutput struct {
	Exists         bool `json:"exists"`
	SupportedFiles int  `json:"supported_files"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_documents",
		Description: "Search every supported document under a directory for a text term",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "replace_occurrence",
		Description: "Replace a single occurrence located by search_documents",
	}, s.handleReplace)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "replace_all",
		Description: "Replace a batch of occurrences located by search_documents",
	}, s.handleReplaceAll)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "validate_directory",
		Description: "Check a directory exists and count its supported documents",
	}, s.handleValidate)
}

// handleSearch handles the search_documents tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	contextChars := input.ContextChars
	if contextChars <= 0 {
		contextChars = domain.DefaultContextChars
	}

	opts := domain.SearchOptions{
		CaseSensitive: input.CaseSensitive,
		ContextChars:  contextChars,
	}
	summary, err := s.ports.Search.Search(ctx, input.Directory, input.Term, opts)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		SessionID:        summary.SessionID,
		FilesScanned:     summary.FilesScanned,
		FilesWithMatches: summary.FilesWithMatches,
		TotalOccurrences: summary.TotalOccurrences,
		Occurrences:      make([]OccurrenceOutput, len(summary.Occurrences)),
	}
	for i := range summary.Occurrences {
		occ := &summary.Occurrences[i]
		output.Occurrences[i] = OccurrenceOutput{
			ID:             occ.ID,
			FilePath:       occ.FilePath,
			ParagraphIndex: occ.ParagraphIndex,
			MatchText:      occ.MatchText,
			ContextBefore:  occ.ContextBefore,
			ContextAfter:   occ.ContextAfter,
		}
	}
	for _, fe := range summary.FileErrors {
		output.FileErrors = append(output.FileErrors, FileErrorOutput{Path: fe.Path, Reason: fe.Reason})
	}

	return nil, output, nil
}

// handleReplace handles the replace_occurrence tool invocation.
func (s *Server) handleReplace(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ReplaceInput,
) (*mcp.CallToolResult, ReplaceOutput, error) {
	if err := s.ports.Replace.ReplaceOne(ctx, input.OccurrenceID, input.NewText); err != nil {
		return nil, ReplaceOutput{}, err
	}
	return nil, ReplaceOutput{Replaced: true}, nil
}

// handleReplaceAll handles the replace_all tool invocation.
func (s *Server) handleReplaceAll(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ReplaceAllInput,
) (*mcp.CallToolResult, ReplaceAllOutput, error) {
	requests := make([]domain.ReplaceRequest, len(input.Replacements))
	for i, r := range input.Replacements {
		requests[i] = domain.ReplaceRequest{OccurrenceID: r.OccurrenceID, NewText: r.NewText}
	}

	summary, err := s.ports.Replace.ReplaceMany(ctx, requests)
	if err != nil {
		return nil, ReplaceAllOutput{}, err
	}

	output := ReplaceAllOutput{
		TotalProcessed: summary.TotalProcessed,
		Successful:     summary.Successful,
	}
	for _, f := range summary.Failures {
		output.Failures = append(output.Failures, FailureOutput{
			OccurrenceID: f.OccurrenceID,
			Reason:       f.Reason,
		})
	}

	return nil, output, nil
}

// handleValidate handles the validate_directory tool invocation.
func (s *Server) handleValidate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ValidateInput,
) (*mcp.CallToolResult, ValidateOutput, error) {
	info, err := s.ports.Search.Validate(ctx, input.Directory)
	if err != nil {
		return nil, ValidateOutput{}, err
	}
	return nil, ValidateOutput{Exists: info.Exists, SupportedFiles: info.SupportedFiles}, nil
}
