package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDuration = errors.New("invalid duration: must be > 0 minutes")
	ErrNoActiveSession = errors.New("no active session")
)

// ActiveSessionRunningError rejects a start while an unexpired session is
// persisted and --force was not given.
type ActiveSessionRunningError struct {
	RemainingSecs uint64
}

func (e *ActiveSessionRunningError) Error() string {
	return fmt.Sprintf("a session is already running with approximately %d seconds remaining; use --force to overwrite", e.RemainingSecs)
}

// IOError wraps a filesystem failure from one of the stores.
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("io error: %s: %v", e.Op, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// SerializationError wraps malformed or unwritable persisted JSON.
type SerializationError struct {
	Op  string
	Err error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("serialization error: %s: %v", e.Op, e.Err)
}

func (e *SerializationError) Unwrap() error {
	return e.Err
}

func IO(op string, err error) error {
	return &IOError{Op: op, Err: err}
}

func Serialization(op string, err error) error {
	return &SerializationError{Op: op, Err: err}
}
