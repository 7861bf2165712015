// Package codes defines the exit-code taxonomy shared by both entry points.
//
// Every operation reports failure as a *Error tagged with the phase it
// originated in. Only the command layer turns an error into a process exit
// status, through ExitCode.
package codes

import (
	"errors"
	"fmt"
)

const (
	// Success is returned when every step completed.
	Success = 0

	// Failure is the generic status for usage errors, a missing artifact and
	// commands that could not be launched.
	Failure = 1
)

// Phase identifies where in a run a failure originated
type Phase string

const (
	PhaseUsage       Phase = "usage"
	PhaseBuildTarget Phase = "build-target"
	PhaseReset       Phase = "reset"
	PhaseEnsure      Phase = "ensure"
	PhaseConfigure   Phase = "configure"
	PhaseBuild       Phase = "build"
	PhaseLocate      Phase = "locate"
	PhaseExecute     Phase = "execute"
)

// Descriptions maps each phase to a short human-readable label
var Descriptions = map[Phase]string{
	PhaseUsage:       "Invalid usage",
	PhaseBuildTarget: "Target build failed",
	PhaseReset:       "Cleaning the build directory failed",
	PhaseEnsure:      "Creating the build directory failed",
	PhaseConfigure:   "Configure step failed",
	PhaseBuild:       "Build step failed",
	PhaseLocate:      "Executable not found",
	PhaseExecute:     "Executable exited with an error",
}

// Error is a failure tagged with its originating phase and the exit code the
// program should terminate with.
type Error struct {
	Phase Phase
	Code  int
	Err   error
}

// New creates a tagged failure. A zero code is promoted to Failure so that a
// failure can never be reported as success.
func New(phase Phase, code int, err error) *Error {
	if code == Success {
		code = Failure
	}

	return &Error{Phase: phase, Code: code, Err: err}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s (exit code %d)", Describe(e.Phase), e.Code)
	}

	return fmt.Sprintf("%s (exit code %d): %v", Describe(e.Phase), e.Code, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Describe returns the label for a phase, or a generic message if unknown
func Describe(phase Phase) string {
	if msg, ok := Descriptions[phase]; ok {
		return msg
	}

	return "Unknown error"
}

// ExitCode maps an error returned by an operation to a process exit status.
func ExitCode(err error) int {
	if err == nil {
		return Success
	}

	var tagged *Error
	if errors.As(err, &tagged) {
		return tagged.Code
	}

	return Failure
}

// PhaseOf reports the phase an error originated in, if it carries one.
func PhaseOf(err error) (Phase, bool) {
	var tagged *Error
	if errors.As(err, &tagged) {
		return tagged.Phase, true
	}

	return "", false
}
