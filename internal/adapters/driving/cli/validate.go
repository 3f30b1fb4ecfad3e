package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [directory]",
	Short: "Check a directory for supported documents",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	info, err := searchService.Validate(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("validate failed: %w", err)
	}

	if !info.Exists {
		cmd.Printf("%s does not exist.\n", info.Path)
		return nil
	}
	cmd.Printf("%s: %d supported documents.\n", info.Path, info.SupportedFiles)
	return nil
}
