package adapter

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	m "warden.dev/pkg/warden/internal/model"
)

// ScannerAdapter is the analysis engine as seen by the rescan pipeline.
type ScannerAdapter interface {
	// FullScan analyzes the whole project. It fails with ErrScanUnavailable
	// when the engine cannot run.
	FullScan(ctx context.Context, root m.Path) (m.AnalysisState, []m.Finding, error)

	// PartialRescan re-analyzes the changed paths against a previous state and
	// returns the next state plus the delta. The previous state is left
	// untouched. Failures are *RescanError.
	PartialRescan(ctx context.Context, state m.AnalysisState, changed []m.Path) (m.AnalysisState, m.RescanResult, error)
}

const (
	defaultMaxFileSize = 1 << 20
	binarySniffLength  = 8000
)

// ScannerOptions configures LocalScannerAdapter.
type ScannerOptions struct {
	// MaxFileSize skips files larger than this many bytes. Zero disables the limit.
	MaxFileSize int64

	// Ignore lists directory names that are never scanned.
	Ignore []string
}

// DefaultScannerOptions returns the options used when nil is passed.
func DefaultScannerOptions() ScannerOptions {
	return ScannerOptions{
		MaxFileSize: defaultMaxFileSize,
		Ignore:      []string{".git", ".bundle", "node_modules", "vendor", "tmp", "log", "coverage"},
	}
}

// LocalScannerAdapter runs a set of per-file detectors over the workspace and
// keeps an index of their findings so rescans only touch changed files.
type LocalScannerAdapter struct {
	fs        SourceFSAdapter
	detectors []Detector
	opts      ScannerOptions
	ignore    map[string]bool
}

// NewLocalScannerAdapter builds a scanner from the given detectors.
func NewLocalScannerAdapter(fsAdapter SourceFSAdapter, detectors []Detector, opts *ScannerOptions) *LocalScannerAdapter {
	if opts == nil {
		defaults := DefaultScannerOptions()
		opts = &defaults
	}

	ignore := make(map[string]bool, len(opts.Ignore))
	for _, name := range opts.Ignore {
		ignore[name] = true
	}

	return &LocalScannerAdapter{
		fs:        fsAdapter,
		detectors: detectors,
		opts:      *opts,
		ignore:    ignore,
	}
}

// FullScan implements ScannerAdapter.
func (s *LocalScannerAdapter) FullScan(ctx context.Context, root m.Path) (m.AnalysisState, []m.Finding, error) {
	if len(s.detectors) == 0 {
		return nil, nil, fmt.Errorf("%w: no detectors configured", ErrScanUnavailable)
	}

	info, err := s.fs.FileInfo(root)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrScanUnavailable, err)
	}

	if !info.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s is not a directory", ErrScanUnavailable, root)
	}

	index := newAnalysisIndex(root)

	var findings []m.Finding

	err = s.fs.Walk(root, func(path string, info os.FileInfo, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if walkErr != nil {
			slog.Warn("Skipping unreadable path", "path", path, "error", walkErr)

			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}

			return nil
		}

		if info.IsDir() {
			if path != string(root) && s.ignore[info.Name()] {
				return filepath.SkipDir
			}

			return nil
		}

		if !info.Mode().IsRegular() {
			return nil
		}

		entry, err := s.scanFile(ctx, m.Path(path), info, nil)
		if err != nil {
			slog.Warn("Skipping file in full scan", "path", path, "error", err)
			return nil
		}

		index.files[m.Path(path)] = entry
		findings = append(findings, entry.findings...)

		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("walk %s: %w", root, err)
	}

	slog.Debug("Full scan complete", "root", root, "files", index.Files(), "findings", len(findings))

	return index, findings, nil
}

// PartialRescan implements ScannerAdapter. Deleted paths are dropped from the
// index and their previous findings are reported as fixed. A changed
// directory rescans every file below it.
func (s *LocalScannerAdapter) PartialRescan(ctx context.Context, state m.AnalysisState, changed []m.Path) (m.AnalysisState, m.RescanResult, error) {
	previous, ok := state.(*analysisIndex)
	if !ok || previous == nil {
		return nil, m.RescanResult{}, &RescanError{Err: ErrForeignState}
	}

	next := previous.clone()
	result := m.RescanResult{}
	seen := make(map[m.Path]bool, len(changed))

	for _, changedPath := range changed {
		path := s.fs.Abs(previous.root, changedPath)
		if seen[path] || s.ignoredPath(previous.root, path) {
			continue
		}

		seen[path] = true

		info, err := s.fs.FileInfo(path)

		switch {
		case errors.Is(err, fs.ErrNotExist):
			removed := next.removeTree(path)
			result.Fixed = append(result.Fixed, removed...)

			slog.Debug("Dropped deleted path from index", "path", path, "findings", len(removed))

			continue
		case err != nil:
			return nil, m.RescanResult{}, &RescanError{Path: path, Err: err}
		case info.IsDir():
			if err := s.rescanTree(ctx, previous, next, path, seen, &result); err != nil {
				return nil, m.RescanResult{}, err
			}

			continue
		case !info.Mode().IsRegular():
			continue
		}

		if err := s.rescanFile(ctx, previous, next, path, info, &result); err != nil {
			return nil, m.RescanResult{}, err
		}
	}

	return next, result, nil
}

// rescanTree rescans every regular file below dir, skipping ignored
// directories. Files already rescanned in this batch are skipped.
func (s *LocalScannerAdapter) rescanTree(ctx context.Context, previous, next *analysisIndex, dir m.Path, seen map[m.Path]bool, result *m.RescanResult) error {
	var files int

	err := s.fs.Walk(dir, func(walked string, info os.FileInfo, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if walkErr != nil {
			slog.Warn("Skipping unreadable path", "path", walked, "error", walkErr)

			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}

			return nil
		}

		if info.IsDir() {
			if walked != string(dir) && s.ignore[info.Name()] {
				return filepath.SkipDir
			}

			return nil
		}

		path := m.Path(walked)
		if !info.Mode().IsRegular() || seen[path] {
			return nil
		}

		seen[path] = true
		files++

		return s.rescanFile(ctx, previous, next, path, info, result)
	})
	if err != nil {
		var rescanErr *RescanError
		if errors.As(err, &rescanErr) {
			return err
		}

		return &RescanError{Path: dir, Err: err}
	}

	slog.Debug("Rescanned directory", "path", dir, "files", files)

	return nil
}

// rescanFile scans one file into next and records its delta against previous.
func (s *LocalScannerAdapter) rescanFile(ctx context.Context, previous, next *analysisIndex, path m.Path, info os.FileInfo, result *m.RescanResult) error {
	var prior *fileEntry
	if entry, ok := previous.files[path]; ok {
		prior = &entry
	}

	entry, err := s.scanFile(ctx, path, info, prior)
	if err != nil {
		return &RescanError{Path: path, Err: err}
	}

	next.files[path] = entry

	var before []m.Finding
	if prior != nil {
		before = prior.findings
	}

	added, fixed := diffFindings(before, entry.findings)
	result.New = append(result.New, added...)
	result.Fixed = append(result.Fixed, fixed...)
	result.All = append(result.All, entry.findings...)

	return nil
}

// scanFile runs every detector over one file. When prior has the same content
// hash its findings are reused.
func (s *LocalScannerAdapter) scanFile(ctx context.Context, path m.Path, info os.FileInfo, prior *fileEntry) (fileEntry, error) {
	if s.opts.MaxFileSize > 0 && info.Size() > s.opts.MaxFileSize {
		slog.Debug("Skipping oversized file", "path", path, "size", info.Size())
		return fileEntry{}, nil
	}

	content, err := s.fs.ReadFile(path)
	if err != nil {
		return fileEntry{}, fmt.Errorf("read file: %w", err)
	}

	hash := fmt.Sprintf("%x", sha256.Sum256(content))
	if prior != nil && prior.hash == hash {
		return *prior, nil
	}

	if isBinary(content) {
		return fileEntry{hash: hash}, nil
	}

	var findings []m.Finding

	for _, detector := range s.detectors {
		found, err := detector.Detect(ctx, path, content)
		if err != nil {
			return fileEntry{}, fmt.Errorf("%s detector: %w", detector.Name(), err)
		}

		findings = append(findings, found...)
	}

	sort.SliceStable(findings, func(i, j int) bool {
		return findings[i].Line < findings[j].Line
	})

	return fileEntry{hash: hash, findings: findings}, nil
}

// ignoredPath reports whether path lies inside an ignored directory of root.
func (s *LocalScannerAdapter) ignoredPath(root, path m.Path) bool {
	rel, err := s.fs.RelPath(root, path)
	if err != nil || strings.HasPrefix(string(rel), "..") {
		return false
	}

	parts := strings.Split(filepath.ToSlash(string(rel)), "/")
	for _, part := range parts[:len(parts)-1] {
		if s.ignore[part] {
			return true
		}
	}

	return false
}

// diffFindings compares two finding lists of the same file by fingerprint.
func diffFindings(before, after []m.Finding) (added, fixed []m.Finding) {
	previous := make(map[string]bool, len(before))
	for _, finding := range before {
		previous[finding.Fingerprint()] = true
	}

	current := make(map[string]bool, len(after))
	for _, finding := range after {
		current[finding.Fingerprint()] = true

		if !previous[finding.Fingerprint()] {
			added = append(added, finding)
		}
	}

	for _, finding := range before {
		if !current[finding.Fingerprint()] {
			fixed = append(fixed, finding)
		}
	}

	return added, fixed
}

func isBinary(content []byte) bool {
	sniff := content
	if len(sniff) > binarySniffLength {
		sniff = sniff[:binarySniffLength]
	}

	return bytes.IndexByte(sniff, 0) >= 0
}
