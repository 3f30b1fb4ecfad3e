package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	historyLimit int
	historyJSON  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently applied replacements",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of entries")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "output entries as JSON")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if replaceService == nil {
		return errors.New("replace service not configured")
	}

	records, err := replaceService.History(cmd.Context(), historyLimit)
	if err != nil {
		return fmt.Errorf("history failed: %w", err)
	}

	if historyJSON {
		return outputJSON(cmd, records)
	}

	if len(records) == 0 {
		cmd.Println("No replacements recorded.")
		return nil
	}

	for _, rec := range records {
		cmd.Printf("%s  %s  %q -> %q\n",
			rec.AppliedAt.Format("2006-01-02 15:04:05"), rec.FilePath, rec.OldText, rec.NewText)
	}
	return nil
}
