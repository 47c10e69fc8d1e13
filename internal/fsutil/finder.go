// Package fsutil provides file system utility functions.
package fsutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FindFilesByExtension recursively searches the given root path for all files ending
// with the specified extension. It returns a sorted slice of their full paths.
func FindFilesByExtension(rootPath string, extension string) ([]string, error) {
	if extension == "" {
		panic("extension must not be empty")
	}

	var files []string
	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), extension) {
			files = append(files, path)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// ResolveInputs expands path into the list of layout files to compile. A
// regular file is returned as is, whatever its extension; a directory is
// searched recursively for files with the given extension.
func ResolveInputs(path string, extension string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat input %s: %w", path, err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	files, err := FindFilesByExtension(path, extension)
	if err != nil {
		return nil, fmt.Errorf("failed to search %s for %s files: %w", path, extension, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no %s files found in %s", extension, path)
	}
	return files, nil
}
