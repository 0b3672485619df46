package adapter

import (
	"errors"
	"fmt"

	m "warden.dev/pkg/warden/internal/model"
)

var (
	// ErrScanUnavailable is returned by FullScan when the engine cannot run at all.
	ErrScanUnavailable = errors.New("scan unavailable")

	// ErrRescan is matched by every *RescanError.
	ErrRescan = errors.New("rescan failed")

	// ErrForeignState is the cause of a RescanError when the state was not
	// produced by the scanner it is handed to.
	ErrForeignState = errors.New("analysis state was produced by a different scanner")
)

// RescanError reports a partial rescan that failed for a given path.
type RescanError struct {
	Path m.Path
	Err  error
}

func (e *RescanError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("rescan: %v", e.Err)
	}

	return fmt.Sprintf("rescan %s: %v", e.Path, e.Err)
}

func (e *RescanError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrRescan) match any RescanError.
func (e *RescanError) Is(target error) bool {
	return target == ErrRescan
}

// TransportError reports a notification the sink could not deliver.
type TransportError struct {
	Method string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("send %s: %v", e.Method, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
