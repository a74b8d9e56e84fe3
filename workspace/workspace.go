// Package workspace recognizes eligible workspace root directories.
package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotWorkspace indicates a directory is not an eligible workspace root.
var ErrNotWorkspace = errors.New("not a workspace root")

// markerFiles are the filenames, any one of which marks a directory as a
// workspace root.
var markerFiles = []string{
	"WORKSPACE",
	"WORKSPACE.bazel",
	"MODULE.bazel",
}

// IsWorkspace reports whether dir contains a workspace marker file at
// its root.
func IsWorkspace(dir string) bool {
	for _, marker := range markerFiles {
		info, err := os.Stat(filepath.Join(dir, marker))
		if err == nil && !info.IsDir() {
			return true
		}
	}
	return false
}

// Validate checks that dir is an existing directory containing a
// workspace marker and returns its absolute path.
func Validate(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrNotWorkspace, abs, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s is not a directory", ErrNotWorkspace, abs)
	}
	if !IsWorkspace(abs) {
		return "", fmt.Errorf("%w: no %v found in %s", ErrNotWorkspace, markerFiles, abs)
	}
	return abs, nil
}
