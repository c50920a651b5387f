package command

import (
	"errors"
	"fmt"

	"github.com/rasenga223/luminicad/kernel"
)

var (
	// ErrCommit wraps every failure of the commit derivation.
	ErrCommit = errors.New("command: commit failed")
	// ErrStepFailed is returned when a step resolved to fail.
	ErrStepFailed = errors.New("command: step failed")
	// ErrRunning is returned by Execute while the command is running.
	ErrRunning = errors.New("command: already running")
	// ErrNoSelection is returned by derivations that need selected nodes.
	ErrNoSelection = errors.New("command: nothing selected")
)

// Code is a machine-readable failure code, used as a message key.
type Code string

const (
	CodeUnknown     Code = "COMMAND_UNKNOWN"
	CodeDegenerate  Code = "COMMAND_DEGENERATE_GEOMETRY"
	CodeEmptyResult Code = "COMMAND_EMPTY_RESULT"
	CodeUnsupported Code = "COMMAND_UNSUPPORTED"
	CodeNoSelection Code = "COMMAND_NO_SELECTION"
	CodeStepFailed  Code = "COMMAND_STEP_FAILED"
)

// Error is a command failure with its code.
type Error struct {
	Code    Code
	Command string
	Cause   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrCommit.Error(), e.Command, e.Cause)
}

// Unwrap returns ErrCommit and the cause.
func (e *Error) Unwrap() []error {
	return []error{ErrCommit, e.Cause}
}

func commitError(name string, err error) *Error {
	return &Error{Code: codeOf(err), Command: name, Cause: err}
}

func codeOf(err error) Code {
	switch {
	case errors.Is(err, kernel.ErrDegenerate):
		return CodeDegenerate
	case errors.Is(err, kernel.ErrEmptyResult):
		return CodeEmptyResult
	case errors.Is(err, kernel.ErrUnsupported):
		return CodeUnsupported
	case errors.Is(err, ErrNoSelection):
		return CodeNoSelection
	case errors.Is(err, ErrStepFailed):
		return CodeStepFailed
	default:
		return CodeUnknown
	}
}

// CodeOf returns the code of a command error, CodeUnknown otherwise.
func CodeOf(err error) Code {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Code
	}
	if errors.Is(err, ErrStepFailed) {
		return CodeStepFailed
	}
	return CodeUnknown
}
