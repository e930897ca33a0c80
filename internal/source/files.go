// Package source lists input files and reads delimited-text tables.
package source

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
)

// ErrNotDirectory is returned when the input path is not a directory.
var ErrNotDirectory = errors.New("not a directory")

// File is an eligible input file.
type File struct {
	// Name is the base name of the file
	Name string
	// Path is the file path joined onto the listed directory
	Path string
}

// ListFiles returns the regular files in dir whose names do not contain
// exclude, compared case-insensitively. An empty exclude keeps every file.
// Files are returned sorted by name.
func ListFiles(dir, exclude string) ([]File, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", dir, ErrNotDirectory)
	}

	// os.ReadDir sorts entries by file name.
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	folder := cases.Fold()
	keyword := folder.String(exclude)

	var files []File
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		name := entry.Name()
		if keyword != "" && strings.Contains(folder.String(name), keyword) {
			continue
		}
		files = append(files, File{Name: name, Path: filepath.Join(dir, name)})
	}
	return files, nil
}
