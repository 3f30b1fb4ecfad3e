// Command restitch finds and replaces text across trees of Word
// documents, preserving the formatting runs around each match.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/halcyon-labs/restitch/internal/adapters/driven/backup/filesystem"
	configfile "github.com/halcyon-labs/restitch/internal/adapters/driven/config/file"
	"github.com/halcyon-labs/restitch/internal/adapters/driven/container/docx"
	scannerfs "github.com/halcyon-labs/restitch/internal/adapters/driven/scanner/filesystem"
	"github.com/halcyon-labs/restitch/internal/adapters/driven/storage/memory"
	"github.com/halcyon-labs/restitch/internal/adapters/driven/storage/sqlite"
	"github.com/halcyon-labs/restitch/internal/adapters/driving/cli"
	"github.com/halcyon-labs/restitch/internal/core/ports/driven"
	"github.com/halcyon-labs/restitch/internal/core/services"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("resolving home directory: %w", err)
	}
	configDir := filepath.Join(home, ".restitch")

	configStore, err := configfile.NewConfigStore(configDir, map[string]any{
		"search.context_chars":  150,
		"search.case_sensitive": false,
		"backup.dir":            filepath.Join(configDir, "backups"),
		"history.dir":           filepath.Join(configDir, "data"),
		"files.watch":           true,
	})
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	container := docx.New()
	backupDir := configStore.GetString("backup.dir")

	// Legacy .doc files are scanned as candidates so the search can
	// report them as unsupported instead of silently skipping them.
	candidate := func(path string) bool {
		return container.Supports(path) || strings.EqualFold(filepath.Ext(path), ".doc")
	}
	scanner := scannerfs.NewScanner(candidate, filepath.Base(backupDir))

	var watcher driven.Watcher
	if configStore.GetBool("files.watch") {
		watcher = scannerfs.NewWatcher(container.Supports)
	}

	sessions := memory.NewSessionStore()
	backups := filesystem.NewBackupStore(backupDir)

	history, err := sqlite.NewStore(configStore.GetString("history.dir"))
	if err != nil {
		return fmt.Errorf("opening history store: %w", err)
	}
	defer history.Close()

	searchService := services.NewSearchService(container, scanner, sessions, watcher)
	replaceService := services.NewReplaceService(container, sessions, backups, history)

	cli.SetServices(searchService, replaceService)
	cli.SetConfigStore(configStore)
	cli.SetVersion(version)

	return cli.Execute()
}
