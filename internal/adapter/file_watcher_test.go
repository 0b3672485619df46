package adapter

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "warden.dev/pkg/warden/internal/model"
)

type changeRecorder struct {
	mu      sync.Mutex
	changes []m.FileChange
}

func (r *changeRecorder) handle(_ context.Context, changes []m.FileChange) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.changes = append(r.changes, changes...)
}

func (r *changeRecorder) has(uri string, kind m.ChangeKind) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, change := range r.changes {
		if change.URI == uri && change.Kind == kind {
			return true
		}
	}

	return false
}

func (r *changeRecorder) hasURI(uri string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, change := range r.changes {
		if change.URI == uri {
			return true
		}
	}

	return false
}

func startWatcher(t *testing.T, root string, globs ...string) *changeRecorder {
	t.Helper()

	watcher, err := NewFileWatcher(m.Path(root), &FileWatcherOptions{Debounce: 20 * time.Millisecond, Ignore: []string{"tmp"}})
	require.NoError(t, err)

	if len(globs) > 0 {
		watchers := make([]m.FileSystemWatcher, 0, len(globs))
		for _, glob := range globs {
			watchers = append(watchers, m.FileSystemWatcher{GlobPattern: glob, Kind: m.WatchCreate | m.WatchChange | m.WatchDelete})
		}
		require.NoError(t, watcher.RegisterWatchers(context.Background(), watchers))
	}

	ctx, cancel := context.WithCancel(context.Background())
	recorder := &changeRecorder{}
	done := make(chan error, 1)

	go func() { done <- watcher.Run(ctx, recorder.handle) }()

	t.Cleanup(func() {
		cancel()
		assert.NoError(t, <-done)
	})

	// Run adds the watches asynchronously.
	time.Sleep(100 * time.Millisecond)

	return recorder
}

func TestFileWatcher_ReportsMatchingChanges(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "app"), 0o755))

	recorder := startWatcher(t, root, "**/*.rb")

	model := filepath.Join(root, "app", "user.rb")
	require.NoError(t, os.WriteFile(model, []byte("class User; end\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "README.md"), []byte("docs\n"), 0o644))

	uri := m.URIFromPath(m.Path(model))
	require.Eventually(t, func() bool { return recorder.hasURI(uri) }, 3*time.Second, 20*time.Millisecond)

	require.NoError(t, os.Remove(model))
	require.Eventually(t, func() bool { return recorder.has(uri, m.ChangeDeleted) }, 3*time.Second, 20*time.Millisecond)

	assert.False(t, recorder.hasURI(m.URIFromPath(m.Path(filepath.Join(root, "README.md")))))
}

func TestFileWatcher_FollowsNewDirectoriesAndIgnoresSkipped(t *testing.T) {
	root := t.TempDir()
	recorder := startWatcher(t, root)

	dir := filepath.Join(root, "lib", "tasks")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "tmp"), 0o755))

	// Give the watcher time to pick up the new directories.
	time.Sleep(150 * time.Millisecond)

	task := filepath.Join(dir, "deploy.rake")
	require.NoError(t, os.WriteFile(task, []byte("task :deploy\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "tmp", "cache.rb"), []byte("x\n"), 0o644))

	require.Eventually(t, func() bool { return recorder.hasURI(m.URIFromPath(m.Path(task))) }, 3*time.Second, 20*time.Millisecond)
	assert.False(t, recorder.hasURI(m.URIFromPath(m.Path(filepath.Join(root, "tmp", "cache.rb")))))
}

func TestFileWatcher_ReportsFilesOfDirectoryMovedIn(t *testing.T) {
	root := t.TempDir()
	recorder := startWatcher(t, root, "**/*.rb")

	staging := filepath.Join(t.TempDir(), "pkg")
	require.NoError(t, os.MkdirAll(filepath.Join(staging, "lib"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(staging, "lib", "client.rb"), []byte("class Client; end\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(staging, "NOTES.md"), []byte("notes\n"), 0o644))

	require.NoError(t, os.Rename(staging, filepath.Join(root, "pkg")))

	client := m.URIFromPath(m.Path(filepath.Join(root, "pkg", "lib", "client.rb")))
	require.Eventually(t, func() bool { return recorder.has(client, m.ChangeCreated) }, 3*time.Second, 20*time.Millisecond)
	assert.False(t, recorder.hasURI(m.URIFromPath(m.Path(filepath.Join(root, "pkg", "NOTES.md")))))
}

func TestFileWatcher_ClassifyCreatedDirectory(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "app")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "tmp"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "user.rb"), []byte("class User; end\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tmp", "cache.rb"), []byte("x\n"), 0o644))

	watcher, err := NewFileWatcher(m.Path(root), &FileWatcherOptions{Debounce: time.Millisecond, Ignore: []string{"tmp"}})
	require.NoError(t, err)
	t.Cleanup(func() { _ = watcher.watcher.Close() })

	changes := watcher.classify(fsnotify.Event{Name: dir, Op: fsnotify.Create})

	assert.Equal(t, []pathChange{{path: filepath.Join(dir, "user.rb"), kind: m.ChangeCreated}}, changes)
	assert.Contains(t, watcher.dirs, dir)
}

func TestFileWatcher_RegisterWatchersRejectsBadGlob(t *testing.T) {
	watcher, err := NewFileWatcher(m.Path(t.TempDir()), nil)
	require.NoError(t, err)

	err = watcher.RegisterWatchers(context.Background(), []m.FileSystemWatcher{{GlobPattern: "[", Kind: m.WatchCreate}})
	assert.Error(t, err)
}
