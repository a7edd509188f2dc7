// Package source carries a checked file's raw content alongside the
// display metadata the diagnostic renderer needs: a path to print and
// the content split into lines for the caret underneath each error.
package source

import (
	"path/filepath"
	"strings"
)

// SourceFile is a file's content plus the naming the renderer uses.
type SourceFile struct {
	Name    string // display name (e.g. "check.gr")
	Path    string // full path as given on the command line
	Content string
	lines   []string // cached split lines (lazy initialization)
}

// NewSourceFile creates a new source file.
func NewSourceFile(name, path, content string) *SourceFile {
	return &SourceFile{Name: name, Path: path, Content: content}
}

// Lines returns the source split into lines (cached).
func (sf *SourceFile) Lines() []string {
	if sf.lines == nil {
		sf.lines = strings.Split(sf.Content, "\n")
	}
	return sf.lines
}

// DisplayPath returns the best path for display (prefers Path, falls back to Name).
func (sf *SourceFile) DisplayPath() string {
	if sf.Path != "" {
		return sf.Path
	}
	return sf.Name
}

// FromFile creates a SourceFile from a file path and content.
func FromFile(filePath, content string) *SourceFile {
	return NewSourceFile(filepath.Base(filePath), filePath, content)
}
