// Package model defines the data structures shared by the scanner, the rescan
// pipeline and the notification sinks.
package model

import (
	"fmt"
	"strings"
)

// Confidence ranks how certain a detector is about a finding.
// Lower values are more certain.
type Confidence int

const (
	// ConfidenceHigh is the most certain level.
	ConfidenceHigh Confidence = iota
	// ConfidenceMedium is the middle level.
	ConfidenceMedium
	// ConfidenceLow is the least certain known level.
	ConfidenceLow
)

// String returns the lowercase name of the level, or "other" for values
// outside the known range.
func (c Confidence) String() string {
	switch c {
	case ConfidenceHigh:
		return "high"
	case ConfidenceMedium:
		return "medium"
	case ConfidenceLow:
		return "low"
	default:
		return "other"
	}
}

// ParseConfidence converts a textual level (high, medium, low) to a Confidence.
func ParseConfidence(value string) (Confidence, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "high":
		return ConfidenceHigh, nil
	case "medium", "":
		return ConfidenceMedium, nil
	case "low", "weak":
		return ConfidenceLow, nil
	}

	return 0, fmt.Errorf("unknown confidence %q", value)
}

// Finding is one reported issue from a scan pass. Findings are immutable;
// every rescan produces fresh values.
type Finding struct {
	File       Path
	Line       int // 1-based
	Confidence Confidence
	Category   string
	Message    string
	Input      string // tainted input, empty when unknown
	Code       string
	Link       string
	Source     string // engine that produced the finding
}

// Fingerprint identifies a finding across scans of the same file.
func (f Finding) Fingerprint() string {
	return fmt.Sprintf("%s:%d:%s:%s:%s", f.File, f.Line, f.Code, f.Category, f.Input)
}

// RescanResult is the delta produced by a partial rescan.
type RescanResult struct {
	// New holds findings that did not exist before the rescan.
	New []Finding
	// All holds every current finding of the rescanned files.
	All []Finding
	// Fixed holds findings that existed before and are gone now.
	Fixed []Finding
}

// AnalysisState is the opaque incremental context carried between scans.
// Only the scanner that produced a state knows how to use it.
type AnalysisState interface {
	Root() Path
	Files() int
}
