package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockCommander stubs Commander in-package; the generated mocks import this
// package and cannot be used here.
type mockCommander struct {
	runFunc func() error
}

func (m *mockCommander) Run() error {
	return m.runFunc()
}

// helperRunner re-executes the test binary as the child process so exit
// codes and working directories can be checked on every platform.
func helperRunner(stdout *bytes.Buffer) *ExecRunner {
	r := NewExecRunner()
	r.Stdin = nil
	r.Stdout = stdout
	r.Stderr = stdout
	r.execCommand = func(ctx context.Context, name string, args ...string) Commander {
		cs := append([]string{"-test.run=TestHelperProcess", "--", name}, args...)
		cmd := exec.CommandContext(ctx, os.Args[0], cs...)
		cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1")
		return cmd
	}

	return r
}

func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}

	args := os.Args
	for len(args) > 0 && args[0] != "--" {
		args = args[1:]
	}

	if len(args) < 2 {
		os.Exit(2)
	}

	switch args[1] {
	case "exit":
		code, err := strconv.Atoi(args[2])
		if err != nil {
			os.Exit(2)
		}
		os.Exit(code)
	case "pwd":
		wd, err := os.Getwd()
		if err != nil {
			os.Exit(2)
		}
		fmt.Println(wd)
		os.Exit(0)
	case "echo":
		fmt.Println(strings.Join(args[2:], " "))
		os.Exit(0)
	}

	os.Exit(2)
}

func TestCommand_String(t *testing.T) {
	cmd := Command{Name: "cmake", Args: []string{"--build", ".", "--config", "Debug"}, Dir: "build"}
	assert.Equal(t, "cmake --build . --config Debug", cmd.String())
	assert.Equal(t, []string{"cmake", "--build", ".", "--config", "Debug"}, cmd.Argv())

	bare := Command{Name: "game"}
	assert.Equal(t, "game", bare.String())
}

func TestExecRunner_Run_ExitCodes(t *testing.T) {
	tests := []struct {
		name string
		code int
	}{
		{"success", 0},
		{"generic failure", 1},
		{"build tool failure", 2},
		{"custom code", 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			r := helperRunner(&out)

			code, err := r.Run(context.Background(), Command{Name: "exit", Args: []string{strconv.Itoa(tt.code)}})
			require.NoError(t, err)
			assert.Equal(t, tt.code, code)
		})
	}
}

func TestExecRunner_Run_WorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	r := helperRunner(&out)

	code, err := r.Run(context.Background(), Command{Name: "pwd", Dir: dir})
	require.NoError(t, err)
	assert.Equal(t, 0, code)

	want, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(strings.TrimSpace(out.String()))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestExecRunner_Run_StreamsOutput(t *testing.T) {
	var out bytes.Buffer
	r := helperRunner(&out)

	code, err := r.Run(context.Background(), Command{Name: "echo", Args: []string{"hello", "world"}})
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Contains(t, out.String(), "hello world")
}

func TestExecRunner_Run_EmptyCommand(t *testing.T) {
	r := NewExecRunner()
	r.execCommand = func(ctx context.Context, name string, args ...string) Commander {
		t.Fatal("empty command must not be launched")
		return nil
	}

	code, err := r.Run(context.Background(), Command{})
	assert.ErrorIs(t, err, ErrEmptyCommand)
	assert.Equal(t, -1, code)
}

func TestExecRunner_Run_NotFound(t *testing.T) {
	r := NewExecRunner()

	code, err := r.Run(context.Background(), Command{Name: "gamebuild-definitely-not-a-real-tool"})
	require.Error(t, err)
	assert.Equal(t, -1, code)

	var launchErr *LaunchError
	require.ErrorAs(t, err, &launchErr)
	assert.Equal(t, "gamebuild-definitely-not-a-real-tool", launchErr.Name)
	assert.ErrorIs(t, err, exec.ErrNotFound)
}

func TestExecRunner_Run_MissingWorkingDirectory(t *testing.T) {
	var out bytes.Buffer
	r := helperRunner(&out)

	missing := filepath.Join(t.TempDir(), "does-not-exist")
	code, err := r.Run(context.Background(), Command{Name: "pwd", Dir: missing})

	var launchErr *LaunchError
	require.ErrorAs(t, err, &launchErr)
	assert.Equal(t, -1, code)
}

func TestExecRunner_Run_NonExitError(t *testing.T) {
	r := NewExecRunner()
	r.execCommand = func(ctx context.Context, name string, args ...string) Commander {
		return &mockCommander{
			runFunc: func() error {
				return errors.New("permission denied")
			},
		}
	}

	code, err := r.Run(context.Background(), Command{Name: "cmake"})
	assert.Equal(t, -1, code)
	assert.Contains(t, err.Error(), "failed to launch cmake")
	assert.Contains(t, err.Error(), "permission denied")
}

func TestExecRunner_Run_MockSuccess(t *testing.T) {
	r := NewExecRunner()

	var gotName string
	var gotArgs []string
	r.execCommand = func(ctx context.Context, name string, args ...string) Commander {
		gotName = name
		gotArgs = args
		return &mockCommander{runFunc: func() error { return nil }}
	}

	code, err := r.Run(context.Background(), Command{Name: "cmake", Args: []string{"--build", "out"}})
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "cmake", gotName)
	assert.Equal(t, []string{"--build", "out"}, gotArgs)
}

func TestNewExecRunner(t *testing.T) {
	r := NewExecRunner()
	assert.NotNil(t, r)
	assert.NotNil(t, r.execCommand)
	assert.Equal(t, os.Stdout, r.Stdout)
	assert.Equal(t, os.Stderr, r.Stderr)
}
