package contracts

import (
	"errors"
	"fmt"
)

// Error definitions shared by the dispatch engine and device ports.
var (
	ErrMalformedMessage  = errors.New("malformed MIDI message")
	ErrDeviceUnavailable = errors.New("device unavailable")
	ErrDeviceRead        = errors.New("device read failed")
	ErrDeviceWrite       = errors.New("device write failed")
	ErrHandlerFailure    = errors.New("handler failed")
	ErrAlreadyStarted    = errors.New("board already started")
	ErrNotRunning        = errors.New("board is not running")
	ErrNilHandler        = errors.New("nil handler")
	ErrUnknownControl    = errors.New("unknown control")
)

// TaskError reports the failure of one task of a board run.
type TaskError struct {
	Task string // Task names the failing task ("reader", "subscriber <name>", "spawn <id>").
	Err  error  // Err is the underlying cause.
}

func (e *TaskError) Error() string {
	return fmt.Sprintf("%s: %v", e.Task, e.Err)
}

func (e *TaskError) Unwrap() error {
	return e.Err
}
