// Package locate finds the per-spec JSON report files in a reports directory.
package locate

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

var (
	// ErrDirectoryNotFound is returned when the reports directory is missing
	// or is not a directory.
	ErrDirectoryNotFound = errors.New("reports directory not found")
	// ErrNoInputFiles is returned when the directory holds no .json files.
	ErrNoInputFiles = errors.New("no JSON reports found")
)

// Locate returns the .json files directly inside dir, in enumeration order.
// Subdirectories are not descended into.
func Locate(fs afero.Fs, dir string) ([]string, error) {
	info, err := fs.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", dir, ErrDirectoryNotFound)
	}

	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if !e.Mode().IsRegular() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%s: %w", dir, ErrNoInputFiles)
	}
	return paths, nil
}

// Latest returns the last located path, or "" for none. Enumeration order is
// lexical, so this is the newest file only when names sort by time.
func Latest(paths []string) string {
	if len(paths) == 0 {
		return ""
	}
	return paths[len(paths)-1]
}
