// Package cli provides the cobra-based command line interface for
// Restitch.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/halcyon-labs/restitch/internal/core/ports/driven"
	"github.com/halcyon-labs/restitch/internal/core/ports/driving"
	"github.com/halcyon-labs/restitch/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Services the commands run against, injected by the composition root.
var (
	searchService  driving.SearchService
	replaceService driving.ReplaceService
	configStore    driven.ConfigStore
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "restitch",
	Short: "Find and replace text across trees of Word documents",
	Long: `Restitch locates text across every .docx file under a directory and
applies replacements one occurrence at a time or in bulk, preserving
the formatting runs around each match. Files are backed up before
their first modification.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging to stderr")
}

// SetServices injects the driving services the commands depend on.
func SetServices(search driving.SearchService, replace driving.ReplaceService) {
	searchService = search
	replaceService = replace
}

// SetConfigStore injects the configuration store.
func SetConfigStore(store driven.ConfigStore) {
	configStore = store
}

// SetVersion overrides the reported version.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
