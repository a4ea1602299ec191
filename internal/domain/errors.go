package domain

import (
	"errors"
	"fmt"
)

// Capture failures.
var (
	ErrNoMultiplexerSession = errors.New("not running inside a tmux session")
	ErrUnsupportedShell     = errors.New("unsupported shell")
	ErrHistoryUnavailable   = errors.New("shell history unavailable")
)

// ErrCompletionTimeout is returned when the completion service does not answer in time.
var ErrCompletionTimeout = errors.New("completion timed out")

// Edit failures.
var (
	ErrConcurrentModification = errors.New("file changed since it was read")
	ErrWritePermissionDenied  = errors.New("permission denied")
	ErrPathIsDirectory        = errors.New("path is a directory")
)

// CaptureError reports which capture source failed.
type CaptureError struct {
	Source string
	Err    error
}

func (e *CaptureError) Error() string {
	return fmt.Sprintf("capture %s: %v", e.Source, e.Err)
}

func (e *CaptureError) Unwrap() error { return e.Err }

// EditError reports the path and step of a failed file edit.
type EditError struct {
	Path string
	Op   string
	Err  error
}

func (e *EditError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *EditError) Unwrap() error { return e.Err }
