package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/halcyon-labs/restitch/internal/core/domain"
)

var (
	searchDir           string
	searchCaseSensitive bool
	searchContext       int
	searchLimit         int
	searchJSON          bool
)

var searchCmd = &cobra.Command{
	Use:   "search [term]",
	Short: "Search documents for a text term",
	Long: `Scans every supported document under a directory for a term and
prints the occurrences with their identities. The result set becomes
the active session: replace and replace-all operate on the identities
it reports.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchDir, "dir", "d", ".", "directory to search")
	searchCmd.Flags().BoolVar(&searchCaseSensitive, "case-sensitive", false, "match case exactly")
	searchCmd.Flags().IntVar(&searchContext, "context", 0, "characters of context around each match (0 = configured default)")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum occurrences to print (0 = all)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	term := args[0]

	if searchService == nil {
		return errors.New("search service not configured")
	}

	opts := domain.SearchOptions{
		CaseSensitive: searchCaseSensitive,
		ContextChars:  searchContext,
	}
	if opts.ContextChars <= 0 {
		opts.ContextChars = configuredContextChars()
	}
	if !cmd.Flags().Changed("case-sensitive") && configStore != nil {
		opts.CaseSensitive = configStore.GetBool("search.case_sensitive")
	}

	summary, err := searchService.Search(cmd.Context(), searchDir, term, opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputJSON(cmd, summary)
	}

	return outputSearchText(cmd, summary)
}

// configuredContextChars resolves the context window from config,
// falling back to the built-in default.
func configuredContextChars() int {
	if configStore != nil {
		if n := configStore.GetInt("search.context_chars"); n > 0 {
			return n
		}
	}
	return domain.DefaultContextChars
}

func outputJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchText(cmd *cobra.Command, summary *domain.SearchSummary) error {
	if summary.TotalOccurrences == 0 {
		cmd.Printf("No occurrences of %q in %d files.\n", summary.Term, summary.FilesScanned)
		return nil
	}

	cmd.Printf("Found %d occurrences of %q in %d of %d files:\n",
		summary.TotalOccurrences, summary.Term, summary.FilesWithMatches, summary.FilesScanned)
	cmd.Println()

	shown := len(summary.Occurrences)
	if searchLimit > 0 && searchLimit < shown {
		shown = searchLimit
	}

	lastFile := ""
	for i := 0; i < shown; i++ {
		occ := &summary.Occurrences[i]
		if occ.FilePath != lastFile {
			cmd.Printf("%s\n", occ.FilePath)
			lastFile = occ.FilePath
		}
		cmd.Printf("  [%s] ...%s%s%s...\n", occ.ID, occ.ContextBefore, occ.MatchText, occ.ContextAfter)
	}
	if shown < len(summary.Occurrences) {
		cmd.Printf("  ... and %d more (raise --limit to see them)\n", len(summary.Occurrences)-shown)
	}

	if len(summary.FileErrors) > 0 {
		cmd.Println()
		cmd.Printf("Skipped %d unreadable files:\n", len(summary.FileErrors))
		for _, fe := range summary.FileErrors {
			cmd.Printf("  %s: %s\n", fe.Path, fe.Reason)
		}
	}

	return nil
}
