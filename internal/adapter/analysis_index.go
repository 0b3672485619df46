package adapter

import (
	"path/filepath"
	"sort"
	"strings"

	m "warden.dev/pkg/warden/internal/model"
)

// fileEntry is what the index remembers about one scanned file.
type fileEntry struct {
	hash     string
	findings []m.Finding
}

// analysisIndex is the AnalysisState of LocalScannerAdapter: the findings of
// every scanned file keyed by absolute path. Values are never mutated after
// they are handed out; PartialRescan works on a clone.
type analysisIndex struct {
	root  m.Path
	files map[m.Path]fileEntry
}

func newAnalysisIndex(root m.Path) *analysisIndex {
	return &analysisIndex{
		root:  root,
		files: make(map[m.Path]fileEntry),
	}
}

// Root implements model.AnalysisState.
func (idx *analysisIndex) Root() m.Path {
	return idx.root
}

// Files implements model.AnalysisState.
func (idx *analysisIndex) Files() int {
	return len(idx.files)
}

// Findings returns every finding in the index, ordered by path then line.
func (idx *analysisIndex) Findings() []m.Finding {
	paths := make([]string, 0, len(idx.files))
	for path := range idx.files {
		paths = append(paths, string(path))
	}

	sort.Strings(paths)

	var findings []m.Finding
	for _, path := range paths {
		findings = append(findings, idx.files[m.Path(path)].findings...)
	}

	return findings
}

// clone copies the map; entries are shared because they are immutable.
func (idx *analysisIndex) clone() *analysisIndex {
	next := &analysisIndex{
		root:  idx.root,
		files: make(map[m.Path]fileEntry, len(idx.files)),
	}

	for path, entry := range idx.files {
		next.files[path] = entry
	}

	return next
}

// removeTree drops path and, when path was a directory, everything below it.
// It returns the findings that were dropped.
func (idx *analysisIndex) removeTree(path m.Path) []m.Finding {
	var removed []m.Finding

	if entry, ok := idx.files[path]; ok {
		removed = append(removed, entry.findings...)
		delete(idx.files, path)
	}

	prefix := strings.TrimSuffix(string(path), string(filepath.Separator)) + string(filepath.Separator)

	var nested []string
	for candidate := range idx.files {
		if strings.HasPrefix(string(candidate), prefix) {
			nested = append(nested, string(candidate))
		}
	}

	sort.Strings(nested)

	for _, candidate := range nested {
		removed = append(removed, idx.files[m.Path(candidate)].findings...)
		delete(idx.files, m.Path(candidate))
	}

	return removed
}
