// Package filesystem walks document trees on the local disk and
// watches them for external changes.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/halcyon-labs/restitch/internal/core/domain"
	"github.com/halcyon-labs/restitch/internal/core/ports/driven"
	"github.com/halcyon-labs/restitch/internal/logger"
)

// Ensure Scanner implements the interface.
var _ driven.Scanner = (*Scanner)(nil)

// Scanner lists supported documents under a root directory. The walk
// is lexical, so the returned order is stable across runs.
type Scanner struct {
	supports func(string) bool
	skipDirs []string
}

// NewScanner creates a scanner. supports decides which files are
// candidates, normally the container's Supports method. skipDirs names
// directories excluded from the walk, such as the backup directory.
func NewScanner(supports func(string) bool, skipDirs ...string) *Scanner {
	return &Scanner{supports: supports, skipDirs: skipDirs}
}

// Scan walks root recursively and returns the supported files in
// lexical order. Word's own lock files (the "~$" prefix) are skipped.
func (s *Scanner) Scan(_ context.Context, root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", root, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory: %w", root, domain.ErrInvalidInput)
	}

	var paths []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtrees degrade the scan, they do not abort it.
			logger.Warn("Skipping %s: %v", path, err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if s.skipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(d.Name(), "~$") {
			return nil
		}
		if s.supports(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}

	logger.Debug("Scanned %s: %d supported files", root, len(paths))
	return paths, nil
}

func (s *Scanner) skipDir(name string) bool {
	for _, skip := range s.skipDirs {
		if name == skip {
			return true
		}
	}
	return false
}
