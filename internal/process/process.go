// Package process runs external commands and reports their exit status.
//
// Children inherit the parent's standard streams so tool progress is visible
// live. A non-zero exit is a normal result, not an error: Run only returns an
// error when the command could not be launched at all.
package process

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/rotisserie/eris"
)

// ErrEmptyCommand is returned for a Command without an executable name.
var ErrEmptyCommand = eris.New("empty command")

// Command is one external invocation
type Command struct {
	// Executable name or path
	Name string

	// Arguments passed after the name
	Args []string

	// Working directory; empty means the caller's current directory
	Dir string
}

// Argv returns the full argument vector, name first
func (c Command) Argv() []string {
	return append([]string{c.Name}, c.Args...)
}

func (c Command) String() string {
	return strings.Join(c.Argv(), " ")
}

// Runner launches a command, waits for it and returns its exit status.
//
//go:generate go run go.uber.org/mock/mockgen -source=process.go -destination=mocks/mock_runner.go -package=mocks -exclude_interfaces=Commander
type Runner interface {
	// Run blocks until the command exits. A *LaunchError is returned if the
	// command could not be started, in which case the status is -1.
	Run(ctx context.Context, cmd Command) (int, error)
}

// LaunchError reports a command that could not be found or started.
type LaunchError struct {
	Name string
	Err  error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("failed to launch %s: %v", e.Name, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

// Commander interface for testing
type Commander interface {
	Run() error
}

// ExecRunner implements Runner with os/exec
type ExecRunner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	execCommand func(ctx context.Context, name string, args ...string) Commander
}

// NewExecRunner creates a runner wired to the process' own standard streams
func NewExecRunner() *ExecRunner {
	return &ExecRunner{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		execCommand: func(ctx context.Context, name string, args ...string) Commander {
			return exec.CommandContext(ctx, name, args...) //nolint:gosec // commands come from configuration
		},
	}
}

// Run executes cmd and returns its exit status
func (r *ExecRunner) Run(ctx context.Context, cmd Command) (int, error) {
	if cmd.Name == "" {
		return -1, ErrEmptyCommand
	}

	c := r.execCommand(ctx, cmd.Name, cmd.Args...)
	if ec, ok := c.(*exec.Cmd); ok {
		ec.Dir = cmd.Dir
		ec.Stdin = r.Stdin
		ec.Stdout = r.Stdout
		ec.Stderr = r.Stderr
	}

	err := c.Run()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// -1 means the child was killed by a signal
		if code := exitErr.ExitCode(); code > 0 {
			return code, nil
		}

		return 1, nil
	}

	return -1, &LaunchError{Name: cmd.Name, Err: err}
}
