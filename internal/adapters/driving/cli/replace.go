package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/halcyon-labs/restitch/internal/core/domain"
)

var (
	replaceAllDir    string
	replaceAllCase   bool
	replaceAllDryRun bool
	replaceAllJSON   bool
)

var replaceCmd = &cobra.Command{
	Use:   "replace [occurrence-id] [new-text]",
	Short: "Replace a single occurrence from the active session",
	Long: `Replaces one occurrence located by a previous search, identified by
the identity the search printed. The surrounding formatting is
preserved; the file is backed up before its first modification.`,
	Args: cobra.ExactArgs(2),
	RunE: runReplace,
}

var replaceAllCmd = &cobra.Command{
	Use:   "replace-all [term] [new-text]",
	Short: "Search a directory and replace every occurrence",
	Long: `Searches every supported document under a directory for a term and
replaces each occurrence with the same text in one session.
Occurrences that fail - already replaced, or the document changed
underneath the session - are reported individually and never abort
the rest of the batch. With --dry-run the occurrences are listed and
nothing is modified.`,
	Args: cobra.ExactArgs(2),
	RunE: runReplaceAll,
}

func init() {
	replaceAllCmd.Flags().StringVarP(&replaceAllDir, "dir", "d", ".", "directory to search")
	replaceAllCmd.Flags().BoolVar(&replaceAllCase, "case-sensitive", false, "match case exactly")
	replaceAllCmd.Flags().BoolVar(&replaceAllDryRun, "dry-run", false, "list occurrences without replacing")
	replaceAllCmd.Flags().BoolVar(&replaceAllJSON, "json", false, "output summary as JSON")
	rootCmd.AddCommand(replaceCmd)
	rootCmd.AddCommand(replaceAllCmd)
}

func runReplace(cmd *cobra.Command, args []string) error {
	occurrenceID, newText := args[0], args[1]

	if replaceService == nil {
		return errors.New("replace service not configured")
	}

	if newText == "" {
		cmd.PrintErrln("Note: empty replacement deletes the matched text.")
	}

	if err := replaceService.ReplaceOne(cmd.Context(), occurrenceID, newText); err != nil {
		return fmt.Errorf("replace failed: %w", err)
	}

	cmd.Printf("Replaced %s.\n", occurrenceID)
	return nil
}

func runReplaceAll(cmd *cobra.Command, args []string) error {
	term, newText := args[0], args[1]

	if searchService == nil || replaceService == nil {
		return errors.New("services not configured")
	}

	if newText == "" && !replaceAllDryRun {
		cmd.PrintErrln("Note: empty replacement deletes the matched text.")
	}

	opts := domain.SearchOptions{
		CaseSensitive: replaceAllCase,
		ContextChars:  configuredContextChars(),
	}
	if !cmd.Flags().Changed("case-sensitive") && configStore != nil {
		opts.CaseSensitive = configStore.GetBool("search.case_sensitive")
	}

	results, err := searchService.Search(cmd.Context(), replaceAllDir, term, opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if replaceAllDryRun {
		if replaceAllJSON {
			return outputJSON(cmd, results)
		}
		cmd.Printf("Would replace %d occurrences of %q in %d files:\n",
			results.TotalOccurrences, term, results.FilesWithMatches)
		for i := range results.Occurrences {
			occ := &results.Occurrences[i]
			cmd.Printf("  [%s] %s\n", occ.ID, occ.FilePath)
		}
		return nil
	}

	requests := make([]domain.ReplaceRequest, len(results.Occurrences))
	for i := range results.Occurrences {
		requests[i] = domain.ReplaceRequest{
			OccurrenceID: results.Occurrences[i].ID,
			NewText:      newText,
		}
	}

	summary, err := replaceService.ReplaceMany(cmd.Context(), requests)
	if err != nil {
		return fmt.Errorf("replace-all failed: %w", err)
	}

	if replaceAllJSON {
		return outputJSON(cmd, summary)
	}

	cmd.Printf("Applied %d of %d replacements.\n", summary.Successful, summary.TotalProcessed)
	for _, f := range summary.Failures {
		cmd.Printf("  %s: %s\n", f.OccurrenceID, f.Reason)
	}
	return nil
}
