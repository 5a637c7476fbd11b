package input

import (
	"errors"
	"fmt"
)

var (
	ErrNilCallback      = errors.New("nil callback")
	ErrCallbackMismatch = errors.New("callback kind does not match action type")
	ErrNilObserver      = errors.New("nil observer")
)

// ErrorKind classifies failures contained inside a tick.
type ErrorKind int

const (
	CallbackFailure ErrorKind = iota
	ObserverFailure
)

func (k ErrorKind) String() string {
	switch k {
	case CallbackFailure:
		return "callback failure"
	case ObserverFailure:
		return "observer failure"
	}
	return "unknown failure"
}

// CallbackError is produced when a registered callback or observer returns
// an error or panics. It is logged and handed to the error handler, never
// returned from Resolve or Notify.
type CallbackError struct {
	Kind   ErrorKind
	Handle Handle
	Owner  Owner
	Action string
	Device DeviceKind
	Err    error
}

func (e *CallbackError) Error() string {
	if e.Action == "" {
		return fmt.Sprintf("input: %s (handle %d, owner %s): %v", e.Kind, e.Handle, e.Owner, e.Err)
	}
	return fmt.Sprintf("input: %s in action %q on %s (handle %d, owner %s): %v",
		e.Kind, e.Action, e.Device, e.Handle, e.Owner, e.Err)
}

func (e *CallbackError) Unwrap() error { return e.Err }

// PanicError wraps a value recovered from a panicking callback.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string { return fmt.Sprintf("panic: %v", e.Value) }
