package model

// Severity is the editor protocol's DiagnosticSeverity.
type Severity int

// Available Severity values.
const (
	SeverityError       Severity = 1
	SeverityWarning     Severity = 2
	SeverityInformation Severity = 3
	SeverityHint        Severity = 4
)

// Position is a zero-based line/character pair.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// Range spans two positions.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// CodeDescription carries a link for the diagnostic code.
type CodeDescription struct {
	Href string `json:"href"`
}

// Diagnostic is the protocol representation of a Finding.
type Diagnostic struct {
	Range           Range            `json:"range"`
	Severity        Severity         `json:"severity"`
	Code            string           `json:"code,omitempty"`
	CodeDescription *CodeDescription `json:"codeDescription,omitempty"`
	Source          string           `json:"source,omitempty"`
	Message         string           `json:"message"`
}

// PublishDiagnosticsParams replaces the full diagnostic list of one document.
type PublishDiagnosticsParams struct {
	URI         string       `json:"uri"`
	Diagnostics []Diagnostic `json:"diagnostics"`
}

// MessageType is the editor protocol's log message type.
type MessageType int

// Available MessageType values.
const (
	MessageError   MessageType = 1
	MessageWarning MessageType = 2
	MessageInfo    MessageType = 3
	MessageLog     MessageType = 4
)

// LogMessageParams is a free-text notice for the client log.
type LogMessageParams struct {
	Type    MessageType `json:"type"`
	Message string      `json:"message"`
}

// WatchKind is a bit set of filesystem events a watcher is interested in.
type WatchKind int

// Available WatchKind bits.
const (
	WatchCreate WatchKind = 1
	WatchChange WatchKind = 2
	WatchDelete WatchKind = 4
)

// FileSystemWatcher is one glob registration for workspace/didChangeWatchedFiles.
type FileSystemWatcher struct {
	GlobPattern string    `json:"globPattern"`
	Kind        WatchKind `json:"kind"`
}
