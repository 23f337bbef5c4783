package capture

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions.
var (
	// ErrInvalidInterval is returned when the capture interval is not positive.
	ErrInvalidInterval = errors.New("capture: interval must be positive")

	// ErrInvalidDuration is returned when the session duration is negative.
	ErrInvalidDuration = errors.New("capture: duration must not be negative")

	// ErrEmptySession is returned when a session finishes with zero
	// successful captures. Downstream analysis cannot proceed without frames.
	ErrEmptySession = errors.New("capture: session produced no frames")

	// ErrSourceClosed is returned when reading from a source that is not open.
	ErrSourceClosed = errors.New("capture: source not open")

	// ErrNoDisplay is returned when no display is available for screen capture.
	ErrNoDisplay = errors.New("capture: no active display")
)

// Stages of device interaction that can fail.
const (
	StageOpen = "open"
	StageRead = "read"
)

// DeviceError reports a failure for a specific index/backend pair.
// Stage distinguishes an open failure from a liveness (read) failure;
// the Resolver treats both the same and tries the next candidate.
type DeviceError struct {
	Index   int
	Backend Backend
	Stage   string
	Err     error
}

// Error implements the error interface.
func (e *DeviceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("capture: device %d (%s) %s failed: %v", e.Index, e.Backend, e.Stage, e.Err)
	}
	return fmt.Sprintf("capture: device %d (%s) %s failed", e.Index, e.Backend, e.Stage)
}

// Unwrap returns the underlying error.
func (e *DeviceError) Unwrap() error {
	return e.Err
}

// PersistError reports a failure writing a frame to disk. The Recorder
// treats it like any other per-tick failure and keeps the session alive.
type PersistError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *PersistError) Error() string {
	return fmt.Sprintf("capture: persist %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *PersistError) Unwrap() error {
	return e.Err
}
