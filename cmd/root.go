// Package cmd wires the two command-line entry points, build-backends and
// build-run, to their components.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Norgate-AV/gamebuild/internal/codes"
	"github.com/Norgate-AV/gamebuild/internal/config"
	"github.com/Norgate-AV/gamebuild/internal/logging"
	"github.com/Norgate-AV/gamebuild/internal/process"
	"github.com/Norgate-AV/gamebuild/internal/version"
)

// Execute runs a root command and terminates the process with the exit code
// its result maps to.
func Execute(rootCmd *cobra.Command) {
	os.Exit(execute(rootCmd))
}

func execute(rootCmd *cobra.Command) int {
	err := rootCmd.Execute()
	if err == nil {
		return codes.Success
	}

	var tagged *codes.Error
	if !errors.As(err, &tagged) {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		return codes.ExitCode(err)
	}

	verbose := viper.GetBool("verbose")
	log := logging.New(rootCmd.ErrOrStderr(), verbose)

	event := log.Debug()
	if causeUnreported(tagged) {
		event = log.Error()
	}

	if verbose {
		event = event.Stack()
	}

	event.Err(tagged.Err).
		Str("phase", string(tagged.Phase)).
		Int("exit_code", tagged.Code).
		Msg(codes.Describe(tagged.Phase))

	return codes.ExitCode(err)
}

// causeUnreported reports whether the status line printed for a failure
// leaves out its cause
func causeUnreported(tagged *codes.Error) bool {
	var launch *process.LaunchError
	if errors.As(tagged.Err, &launch) {
		return true
	}

	return tagged.Phase == codes.PhaseReset || tagged.Phase == codes.PhaseEnsure
}

// newRootCmd holds the settings shared by both entry points
func newRootCmd(use, short, long string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           use,
		Short:         short,
		Long:          long,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.String(),
	}

	rootCmd.Flags().String("tool", "", "Build tool executable (default \"cmake\")")
	rootCmd.Flags().BoolP("verbose", "v", false, "Verbose output")

	return rootCmd
}

// loadConfig loads the layered configuration and a logger matching it
func loadConfig(cmd *cobra.Command) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.NewLoader().Load(cmd)
	if err != nil {
		return nil, logging.Nop(), err
	}

	log := logging.New(cmd.ErrOrStderr(), cfg.Verbose)
	log.Debug().
		Str("tool", cfg.Tool).
		Str("build_dir", cfg.BuildDir).
		Str("target_dir", cfg.TargetDir).
		Strs("backends", cfg.Backends).
		Msg("configuration loaded")

	return cfg, log, nil
}

func runnerOrDefault(runner process.Runner) process.Runner {
	if runner == nil {
		return process.NewExecRunner()
	}

	return runner
}
