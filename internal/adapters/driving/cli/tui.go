package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/halcyon-labs/restitch/internal/adapters/driving/tui"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for Restitch.

The TUI walks through the find and replace workflow: enter a term,
review the occurrences with their context, and apply replacements one
at a time or all at once.

Controls:
  ↑/k, ↓/j - Navigate occurrences
  Enter    - Search / Replace selected
  a        - Replace all
  Tab      - Switch between term and replacement fields
  Esc      - Back / Cancel
  q        - Quit`,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().StringP("dir", "d", ".", "directory to search")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	dir, err := cmd.Flags().GetString("dir")
	if err != nil {
		return fmt.Errorf("getting dir flag: %w", err)
	}

	ports := &tui.Ports{
		Search:  searchService,
		Replace: replaceService,
	}

	app, err := tui.NewApp(ports, dir)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	app.WithContext(cmd.Context())

	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
