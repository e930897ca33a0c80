package engine

import (
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/leapseed/internal/source"
)

// InputFiles lists the input directory without the files the pipeline
// itself produces.
func (e *Engine) InputFiles() ([]source.File, error) {
	listed, err := source.ListFiles(e.cfg.InputDir, e.cfg.Exclude)
	if err != nil {
		return nil, err
	}
	files := make([]source.File, 0, len(listed))
	for _, f := range listed {
		if e.ownOutput(f.Path) {
			e.logger.Debug("skipping generated file", "file", f.Name)
			continue
		}
		files = append(files, f)
	}
	return files, nil
}

// ownOutput reports whether path is something the pipeline writes: the
// schema document, a file an earlier run wrote, or a file in the output
// directory with the artifact extension. Such files are never read as input.
func (e *Engine) ownOutput(path string) bool {
	abs := absPath(path)
	if e.cfg.SchemaPath != "" && abs == absPath(e.cfg.SchemaPath) {
		return true
	}

	e.mu.Lock()
	written := e.written[abs]
	e.mu.Unlock()
	if written {
		return true
	}

	return e.cfg.OutputDir != "" &&
		filepath.Dir(abs) == absPath(e.cfg.OutputDir) &&
		strings.EqualFold(filepath.Ext(abs), "."+string(e.cfg.Format))
}

func (e *Engine) markWritten(path string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.written[absPath(path)] = true
}

func absPath(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return filepath.Clean(p)
	}
	return abs
}
