// Package adapter contains the scanner engines and infrastructure adapters the
// rescan pipeline talks to.
package adapter

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	m "warden.dev/pkg/warden/internal/model"
)

// SourceFSAdapter abstracts filesystem-specific operations that the scanner
// relies on. It hides direct `os` access so scan logic can be tested without
// touching the disk.
type SourceFSAdapter interface {
	// Walk traverses root recursively. Returning filepath.SkipDir from fn for a
	// directory skips it.
	Walk(root m.Path, fn FilepathWalkFunc) error

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// FileInfo returns metadata for a path. A missing path yields an error
	// satisfying errors.Is(err, fs.ErrNotExist).
	FileInfo(path m.Path) (os.FileInfo, error)

	// FindProjectRoot walks up from startPath looking for a project marker.
	FindProjectRoot(startPath m.Path) (m.Path, error)

	// Abs resolves path against base when it is relative.
	Abs(base, path m.Path) m.Path

	// RelPath returns the relative path from base to target.
	RelPath(base, target m.Path) (m.Path, error)
}

// FilepathWalkFunc mirrors the callback shape used by filepath.Walk. It is
// defined here to avoid leaking the standard-library type into callers.
type FilepathWalkFunc func(path string, info os.FileInfo, err error) error

// projectMarkers identify the root of a project, in lookup order.
var projectMarkers = []string{"warden.yaml", "warden.yml", "Gemfile", ".git"}

// LocalSourceFSAdapter is the os-backed SourceFSAdapter.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter instance.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// Walk iterates over every file and directory under root.
func (a *LocalSourceFSAdapter) Walk(root m.Path, fn FilepathWalkFunc) error {
	return filepath.Walk(string(root), func(path string, info os.FileInfo, err error) error {
		return fn(path, info, err)
	})
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	// #nosec G304 - path comes from the watched workspace
	return os.ReadFile(string(path))
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalSourceFSAdapter) FileInfo(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

// FindProjectRoot searches for a project marker walking up the directory tree.
// startPath may be a file or a directory.
func (a *LocalSourceFSAdapter) FindProjectRoot(startPath m.Path) (m.Path, error) {
	dir, err := filepath.Abs(string(startPath))
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", startPath, err)
	}

	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}

	for {
		for _, marker := range projectMarkers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return m.Path(dir), nil
			} else if !errors.Is(err, fs.ErrNotExist) {
				return "", err
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no project marker found in any parent directory of %s", startPath)
		}

		dir = parent
	}
}

// Abs resolves path against base when it is relative.
func (a *LocalSourceFSAdapter) Abs(base, path m.Path) m.Path {
	if filepath.IsAbs(string(path)) {
		return m.Path(filepath.Clean(string(path)))
	}

	return m.Path(filepath.Join(string(base), string(path)))
}

// RelPath returns the relative path from base to target.
func (a *LocalSourceFSAdapter) RelPath(base, target m.Path) (m.Path, error) {
	rel, err := filepath.Rel(string(base), string(target))
	if err != nil {
		return "", err
	}

	return m.Path(rel), nil
}
