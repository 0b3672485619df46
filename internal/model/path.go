package model

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// Path represents a file system path.
type Path string

// ChangeKind mirrors the editor protocol's FileChangeType.
type ChangeKind int

const (
	// ChangeCreated indicates a file was created.
	ChangeCreated ChangeKind = 1
	// ChangeChanged indicates a file was modified.
	ChangeChanged ChangeKind = 2
	// ChangeDeleted indicates a file was deleted.
	ChangeDeleted ChangeKind = 3
)

// String returns the lowercase name of the change kind.
func (k ChangeKind) String() string {
	switch k {
	case ChangeCreated:
		return "created"
	case ChangeChanged:
		return "changed"
	case ChangeDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// FileChange is one entry of a workspace/didChangeWatchedFiles notification.
// The rescan pipeline only uses the path; Kind is carried for logging.
type FileChange struct {
	URI  string     `json:"uri"`
	Kind ChangeKind `json:"type"`
}

// URIFromPath converts an absolute path to a file:// URI.
func URIFromPath(path Path) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(string(path))}
	return u.String()
}

// PathFromURI extracts the filesystem path from a file URI. Bare paths are
// accepted as-is so hosts that send plain paths keep working.
func PathFromURI(uri string) (Path, error) {
	if strings.TrimSpace(uri) == "" {
		return "", fmt.Errorf("empty uri")
	}

	if !strings.Contains(uri, "://") {
		return Path(filepath.Clean(uri)), nil
	}

	u, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("parse uri %q: %w", uri, err)
	}

	if u.Scheme != "file" {
		return "", fmt.Errorf("unsupported uri scheme %q", u.Scheme)
	}

	if u.Path == "" {
		return "", fmt.Errorf("uri %q has no path", uri)
	}

	return Path(filepath.Clean(filepath.FromSlash(u.Path))), nil
}
