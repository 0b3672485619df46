package domain

import m "warden.dev/pkg/warden/internal/model"

// AdditionalWatchGlobs are the non-source files that affect findings: view
// templates, dependency manifests and version files. Clients already report
// ordinary source files. warden.yaml is left out since settings are only read
// at startup.
var AdditionalWatchGlobs = []string{
	"**/*.html.erb",
	"**/*.js.erb",
	"**/*.html.haml",
	"**/*.html.slim",
	"**/*.rhtml",
	"**/Gemfile",
	"**/Gemfile.lock",
	"**/gems.rb",
	"**/gems.locked",
	"**/*.gemspec",
	"**/.ruby-version",
}

// SourceGlobs are the files a client watches natively. A local file watcher
// has to be told about them too.
var SourceGlobs = []string{
	"**/*.rb",
	"**/*.rake",
	"**/*.ru",
}

// WatchGlobs merges AdditionalWatchGlobs with extra, dropping duplicates and
// empty entries while keeping order.
func WatchGlobs(extra ...[]string) []string {
	seen := map[string]bool{}

	var globs []string

	add := func(list []string) {
		for _, glob := range list {
			if glob == "" || seen[glob] {
				continue
			}

			seen[glob] = true
			globs = append(globs, glob)
		}
	}

	add(AdditionalWatchGlobs)

	for _, list := range extra {
		add(list)
	}

	return globs
}

// Watchers builds one registration per glob, interested in creation, change
// and deletion.
func Watchers(globs []string) []m.FileSystemWatcher {
	watchers := make([]m.FileSystemWatcher, 0, len(globs))
	for _, glob := range globs {
		watchers = append(watchers, m.FileSystemWatcher{
			GlobPattern: glob,
			Kind:        m.WatchCreate | m.WatchChange | m.WatchDelete,
		})
	}

	return watchers
}
