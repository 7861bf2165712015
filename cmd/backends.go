package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Norgate-AV/gamebuild/internal/backend"
	"github.com/Norgate-AV/gamebuild/internal/buildtool"
	"github.com/Norgate-AV/gamebuild/internal/process"
)

// NewBackendsCmd creates the build-backends root command. A nil runner
// launches real processes.
func NewBackendsCmd(runner process.Runner) *cobra.Command {
	runner = runnerOrDefault(runner)

	backendsCmd := newRootCmd(
		"build-backends",
		"Build renderer backend targets",
		`Build one, all, or all-but-one of the registered backend targets in the
configured build tree, stopping at the first target that fails.`,
	)

	backendsCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runBackends(cmd, args, runner)
	}

	backendsCmd.Flags().StringP("dir", "C", "", "Configured build tree to build targets in (default current directory)")
	backendsCmd.Flags().String("prefix", "", "Prefix that turns a backend into a target name (default \"game_\")")
	backendsCmd.Flags().StringSlice("backends", nil, "Registered backends, in build order (default [gl,vk])")
	backendsCmd.Flags().BoolP("list", "l", false, "List the target of every registered backend")
	backendsCmd.Flags().BoolP("dry-run", "n", false, "Print the build commands without running them")

	return backendsCmd
}

func runBackends(cmd *cobra.Command, args []string, runner process.Runner) error {
	cfg, log, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	registry, err := backend.NewRegistry(cfg.TargetPrefix, cfg.Backends)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	selector := backend.NewSelector(registry, buildtool.NewCommandBuilder(cfg.Tool), runner, cfg.TargetDir, out, log)

	if list, _ := cmd.Flags().GetBool("list"); list {
		selector.List()
		return nil
	}

	selector.DryRun, _ = cmd.Flags().GetBool("dry-run")

	err = selector.Build(cmd.Context(), args)

	var unknown *backend.UnknownBackendError
	switch {
	case errors.As(err, &unknown):
		fmt.Fprintln(out, unknown.Error())
	case errors.Is(err, backend.ErrUsage):
		fmt.Fprint(out, backend.Usage(cmd.Name()))
	}

	return err
}
