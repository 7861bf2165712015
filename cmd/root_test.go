package cmd

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Norgate-AV/gamebuild/internal/codes"
	"github.com/Norgate-AV/gamebuild/internal/process"
	"github.com/Norgate-AV/gamebuild/internal/version"
)

// setupCommandTest isolates viper and the working directory, returning the
// absolute working directory the command will see.
func setupCommandTest(t *testing.T) string {
	t.Helper()

	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("APPDATA", t.TempDir())
	dir := t.TempDir()
	prevWD, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prevWD) })
	t.Setenv("PWD", dir)

	wd, err := os.Getwd()
	require.NoError(t, err)

	return wd
}

func runCommand(cmd *cobra.Command, args ...string) (int, string) {
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	return execute(cmd), out.String()
}

func TestExecute(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		verbose      bool
		wantCode     int
		wantOutput   []string
		wantNoOutput bool
	}{
		{
			name:         "success",
			wantCode:     codes.Success,
			wantNoOutput: true,
		},
		{
			name:         "status line already printed keeps the cause at debug level",
			err:          codes.New(codes.PhaseExecute, 42, errors.New("game exited with code 42")),
			wantCode:     42,
			wantNoOutput: true,
		},
		{
			name:       "status line cause shown when verbose",
			err:        codes.New(codes.PhaseExecute, 42, errors.New("game exited with code 42")),
			verbose:    true,
			wantCode:   42,
			wantOutput: []string{"DBG", "Executable exited with an error", "game exited with code 42", "phase=execute"},
		},
		{
			name:       "ensure failure is logged",
			err:        codes.New(codes.PhaseEnsure, codes.Failure, errors.New("mkdir build: not a directory")),
			wantCode:   codes.Failure,
			wantOutput: []string{"ERR", "Creating the build directory failed", "mkdir build: not a directory"},
		},
		{
			name:       "reset failure is logged",
			err:        codes.New(codes.PhaseReset, codes.Failure, errors.New("permission denied")),
			wantCode:   codes.Failure,
			wantOutput: []string{"ERR", "Cleaning the build directory failed", "permission denied"},
		},
		{
			name: "launch failure is logged",
			err: codes.New(codes.PhaseConfigure, codes.Failure,
				&process.LaunchError{Name: "cmake", Err: os.ErrNotExist}),
			wantCode:   codes.Failure,
			wantOutput: []string{"ERR", "Configure step failed", "failed to launch cmake", "file does not exist"},
		},
		{
			name:       "untagged failure is reported",
			err:        errors.New("boom"),
			wantCode:   codes.Failure,
			wantOutput: []string{"Error: boom\n"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Reset()
			t.Cleanup(viper.Reset)
			viper.Set("verbose", tt.verbose)

			cmd := newRootCmd("test", "", "")
			cmd.RunE = func(*cobra.Command, []string) error {
				return tt.err
			}

			code, out := runCommand(cmd)

			assert.Equal(t, tt.wantCode, code)
			if tt.wantNoOutput {
				assert.Empty(t, out)
			}
			for _, want := range tt.wantOutput {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestExecute_UnknownFlag(t *testing.T) {
	cmd := newRootCmd("test", "", "")
	cmd.RunE = func(*cobra.Command, []string) error { return nil }

	code, out := runCommand(cmd, "--bogus")

	assert.Equal(t, codes.Failure, code)
	assert.Contains(t, out, "unknown flag: --bogus")
}

func TestNewRootCmd(t *testing.T) {
	cmd := newRootCmd("test", "short", "long")

	assert.True(t, cmd.SilenceUsage)
	assert.True(t, cmd.SilenceErrors)
	assert.Equal(t, version.String(), cmd.Version)
	assert.NotNil(t, cmd.Flags().Lookup("tool"))
	assert.NotNil(t, cmd.Flags().ShorthandLookup("v"))
}
