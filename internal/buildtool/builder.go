// Package buildtool builds the fixed argument vectors passed to the external
// build tool.
package buildtool

import (
	"fmt"
	"io"

	"github.com/Norgate-AV/gamebuild/internal/config"
	"github.com/Norgate-AV/gamebuild/internal/process"
)

// ProjectDir is where the configure step looks for the project description,
// relative to the build tree.
const ProjectDir = ".."

// CommandBuilder handles building build-tool commands
type CommandBuilder struct {
	tool string
}

// NewCommandBuilder creates a new command builder for the given tool
func NewCommandBuilder(tool string) *CommandBuilder {
	return &CommandBuilder{tool: tool}
}

// Tool returns the build tool executable
func (cb *CommandBuilder) Tool() string {
	return cb.tool
}

// BuildTarget builds one named target of the project configured in dir.
// It runs from the caller's working directory.
func (cb *CommandBuilder) BuildTarget(dir, target string) process.Command {
	return process.Command{
		Name: cb.tool,
		Args: []string{"--build", dir, "--target", target},
	}
}

// Configure generates the build system inside buildDir from the project one
// level up.
func (cb *CommandBuilder) Configure(buildDir, generator string) process.Command {
	return process.Command{
		Name: cb.tool,
		Args: []string{ProjectDir, "-G", generator},
		Dir:  buildDir,
	}
}

// Build compiles the configured tree for the given configuration
func (cb *CommandBuilder) Build(buildDir, configuration string) process.Command {
	return process.Command{
		Name: cb.tool,
		Args: []string{"--build", ".", "--config", configuration},
		Dir:  buildDir,
	}
}

// PrintBuildInfo prints verbose build information
func (cb *CommandBuilder) PrintBuildInfo(w io.Writer, cfg *config.Config, cmd process.Command) {
	fmt.Fprintf(w, "Tool: %s\nGenerator: %s\nConfiguration: %s\nBuild dir: %s\nCommand: %s\n",
		cb.tool, cfg.Generator, cfg.Configuration, cfg.BuildDir, cmd.String())
}
