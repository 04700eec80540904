// Package fsutil provides file system utility functions.
package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Filter decides which discovered files are inputs.
type Filter struct {
	// Extensions lists accepted file extensions, including the dot.
	Extensions []string
	// Exclude lists file name suffixes to skip, such as "_test.go" or the
	// suffix of generated outputs.
	Exclude []string
}

// Accepts reports whether path is an input.
func (f Filter) Accepts(path string) bool {
	name := filepath.Base(path)
	for _, suffix := range f.Exclude {
		if strings.HasSuffix(name, suffix) {
			return false
		}
	}
	return slices.Contains(f.Extensions, filepath.Ext(name))
}

// FindFiles resolves each pattern to input files. A pattern is a file, a
// directory (its direct entries only) or a doublestar glob such as
// "./**/*.go". The result is sorted and free of duplicates.
func FindFiles(patterns []string, filter Filter) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		found, err := resolve(pattern, filter)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}

	slices.Sort(files)
	return slices.Compact(files), nil
}

func resolve(pattern string, filter Filter) ([]string, error) {
	info, err := os.Stat(pattern)
	switch {
	case err == nil && info.IsDir():
		return listDir(pattern, filter)
	case err == nil:
		// An explicitly named file is taken even if a glob would skip it.
		return []string{filepath.Clean(pattern)}, nil
	}

	if !doublestar.ValidatePathPattern(pattern) {
		return nil, fmt.Errorf("invalid path or pattern %q", pattern)
	}
	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("failed to expand %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no files match %q", pattern)
	}

	var files []string
	for _, m := range matches {
		if filter.Accepts(m) {
			files = append(files, m)
		}
	}
	return files, nil
}

func listDir(dir string, filter Filter) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %q: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if filter.Accepts(path) {
			files = append(files, path)
		}
	}
	return files, nil
}

// OutputPath returns the generated file path for input: cart.go with suffix
// "_computed.go" becomes cart_computed.go.
func OutputPath(input, suffix string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + suffix
}
