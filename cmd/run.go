package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Norgate-AV/gamebuild/internal/buildtool"
	"github.com/Norgate-AV/gamebuild/internal/devcycle"
	"github.com/Norgate-AV/gamebuild/internal/process"
)

// NewRunCmd creates the build-run root command. A nil runner launches real
// processes.
func NewRunCmd(runner process.Runner) *cobra.Command {
	runner = runnerOrDefault(runner)

	runCmd := newRootCmd(
		"build-run [--clean]",
		"Configure, build and run the game",
		`Configure the build tree, build it and run the produced executable from
its own directory. --clean deletes the build tree first.`,
	)

	runCmd.Args = cobra.NoArgs
	runCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runDevCycle(cmd, runner)
	}

	runCmd.Flags().Bool("clean", false, "Delete the build directory before configuring")
	runCmd.Flags().Bool("no-run", false, "Stop after building and locating the executable")
	runCmd.Flags().StringP("build-dir", "B", "", "Build directory (default \"build\")")
	runCmd.Flags().StringP("generator", "G", "", "Generator for the configure step (default \"Ninja\")")
	runCmd.Flags().String("configuration", "", "Build configuration (default \"Debug\")")
	runCmd.Flags().String("artifact", "", "Executable name below bin/<configuration> (default \"game\")")

	return runCmd
}

func runDevCycle(cmd *cobra.Command, runner process.Runner) error {
	cfg, log, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	clean, _ := cmd.Flags().GetBool("clean")
	noRun, _ := cmd.Flags().GetBool("no-run")

	builder := buildtool.NewCommandBuilder(cfg.Tool)
	out := cmd.OutOrStdout()

	if cfg.Verbose {
		builder.PrintBuildInfo(out, cfg, builder.Configure(cfg.BuildDir, cfg.Generator))
	}

	cycle := devcycle.New(cfg, builder, runner, out, log)

	return cycle.Run(cmd.Context(), devcycle.Options{
		Clean: clean,
		NoRun: noRun,
	})
}
