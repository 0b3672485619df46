package adapter

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/moby/patternmatcher"

	m "warden.dev/pkg/warden/internal/model"
)

// FileWatcherOptions configures a FileWatcher.
type FileWatcherOptions struct {
	Debounce time.Duration
	Ignore   []string
}

// DefaultFileWatcherOptions returns the watcher defaults.
func DefaultFileWatcherOptions() FileWatcherOptions {
	return FileWatcherOptions{
		Debounce: 100 * time.Millisecond,
		Ignore:   DefaultScannerOptions().Ignore,
	}
}

// FileWatcher turns filesystem events under a root into debounced change batches.
// It acts as the client side of watcher registration: only paths matching a
// registered glob are reported. Until the first registration every path is.
type FileWatcher struct {
	root     string
	watcher  *fsnotify.Watcher
	debounce time.Duration
	ignore   map[string]bool

	mu      sync.RWMutex
	matcher *patternmatcher.PatternMatcher
	dirs    map[string]struct{}
}

var _ WatchRegistrar = (*FileWatcher)(nil)

// NewFileWatcher creates a watcher for root. Call Run to start it.
func NewFileWatcher(root m.Path, opts *FileWatcherOptions) (*FileWatcher, error) {
	if opts == nil {
		defaults := DefaultFileWatcherOptions()
		opts = &defaults
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	ignore := make(map[string]bool, len(opts.Ignore))
	for _, name := range opts.Ignore {
		ignore[name] = true
	}

	return &FileWatcher{
		root:     filepath.Clean(string(root)),
		watcher:  watcher,
		debounce: opts.Debounce,
		ignore:   ignore,
		dirs:     make(map[string]struct{}),
	}, nil
}

// RegisterWatchers implements WatchRegistrar.
func (w *FileWatcher) RegisterWatchers(_ context.Context, watchers []m.FileSystemWatcher) error {
	patterns := make([]string, 0, len(watchers))
	for _, watcher := range watchers {
		patterns = append(patterns, watcher.GlobPattern)
	}

	pm, err := patternmatcher.New(patterns)
	if err != nil {
		return fmt.Errorf("compile watch globs: %w", err)
	}

	w.mu.Lock()
	w.matcher = pm
	w.mu.Unlock()

	return nil
}

// Run watches until ctx is cancelled, calling handle with each debounced batch.
func (w *FileWatcher) Run(ctx context.Context, handle ChangeHandler) error {
	defer w.watcher.Close()

	if err := w.addRecursive(w.root); err != nil {
		return err
	}

	var (
		pending = map[string]m.ChangeKind{}
		order   []string
		timer   *time.Timer
		timerC  <-chan time.Time
	)

	flush := func() {
		if len(order) == 0 {
			return
		}

		changes := make([]m.FileChange, 0, len(order))
		for _, path := range order {
			changes = append(changes, m.FileChange{URI: m.URIFromPath(m.Path(path)), Kind: pending[path]})
		}

		pending = map[string]m.ChangeKind{}
		order = nil

		handle(ctx, changes)
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}

			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				flush()
				return nil
			}

			changes := w.classify(event)
			if len(changes) == 0 {
				continue
			}

			for _, change := range changes {
				if _, seen := pending[change.path]; !seen {
					order = append(order, change.path)
				}

				pending[change.path] = change.kind
			}

			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				timer.Reset(w.debounce)
			}
		case <-timerC:
			timer = nil
			timerC = nil

			flush()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}

			slog.Warn("File watcher error", "error", err)
		}
	}
}

type pathChange struct {
	path string
	kind m.ChangeKind
}

// classify maps one event to the changes it reports. A directory that is
// created or moved in reports every matching file already inside it.
func (w *FileWatcher) classify(event fsnotify.Event) []pathChange {
	rel, err := filepath.Rel(w.root, event.Name)
	if err != nil || w.ignored(rel) {
		return nil
	}

	single := func(kind m.ChangeKind, forward bool) []pathChange {
		if !forward {
			return nil
		}

		return []pathChange{{path: event.Name, kind: kind}}
	}

	switch {
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		if w.forgetDir(event.Name) {
			return single(m.ChangeDeleted, true)
		}

		return single(m.ChangeDeleted, w.matches(rel))
	case event.Has(fsnotify.Create):
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addRecursive(event.Name); err != nil {
				slog.Warn("Failed to watch new directory", "path", event.Name, "error", err)
			}

			return w.filesUnder(event.Name)
		}

		return single(m.ChangeCreated, w.matches(rel))
	case event.Has(fsnotify.Write):
		return single(m.ChangeChanged, w.matches(rel))
	default:
		return nil
	}
}

// filesUnder lists the matching regular files below dir as created.
func (w *FileWatcher) filesUnder(dir string) []pathChange {
	var changes []pathChange

	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}

		rel, relErr := filepath.Rel(w.root, path)
		if relErr != nil {
			return nil
		}

		if d.IsDir() {
			if path != dir && w.ignored(rel) {
				return filepath.SkipDir
			}

			return nil
		}

		if d.Type().IsRegular() && !w.ignored(rel) && w.matches(rel) {
			changes = append(changes, pathChange{path: path, kind: m.ChangeCreated})
		}

		return nil
	})

	return changes
}

func (w *FileWatcher) matches(rel string) bool {
	w.mu.RLock()
	pm := w.matcher
	w.mu.RUnlock()

	if pm == nil {
		return true
	}

	ok, err := pm.MatchesOrParentMatches(filepath.ToSlash(rel))
	if err != nil {
		slog.Debug("Watch glob match failed", "path", rel, "error", err)
		return false
	}

	return ok
}

func (w *FileWatcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}

		if !d.IsDir() {
			return nil
		}

		if rel, relErr := filepath.Rel(w.root, path); relErr == nil && rel != "." && w.ignored(rel) {
			return filepath.SkipDir
		}

		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}

		w.mu.Lock()
		w.dirs[path] = struct{}{}
		w.mu.Unlock()

		return nil
	})
}

func (w *FileWatcher) forgetDir(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.dirs[path]; !ok {
		return false
	}

	delete(w.dirs, path)

	return true
}

func (w *FileWatcher) ignored(rel string) bool {
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if w.ignore[part] {
			return true
		}
	}

	return false
}
