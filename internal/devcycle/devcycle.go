// Package devcycle drives one configure, build and run cycle against a
// single build tree.
package devcycle

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/Norgate-AV/gamebuild/internal/buildtool"
	"github.com/Norgate-AV/gamebuild/internal/codes"
	"github.com/Norgate-AV/gamebuild/internal/config"
	"github.com/Norgate-AV/gamebuild/internal/process"
)

// ErrArtifactMissing is returned when a successful build left no executable
var ErrArtifactMissing = eris.New("executable not found")

// Options selects the optional parts of a cycle
type Options struct {
	// Clean removes the build tree before configuring
	Clean bool

	// NoRun stops after the artifact has been located
	NoRun bool
}

// Cycle runs the phases against the build tree named by its config
type Cycle struct {
	cfg     *config.Config
	builder *buildtool.CommandBuilder
	runner  process.Runner
	out     io.Writer
	log     zerolog.Logger
}

// New creates a cycle. cfg is treated as read-only.
func New(cfg *config.Config, builder *buildtool.CommandBuilder, runner process.Runner, out io.Writer, log zerolog.Logger) *Cycle {
	return &Cycle{
		cfg:     cfg,
		builder: builder,
		runner:  runner,
		out:     out,
		log:     log,
	}
}

// Run executes reset (if requested), ensure, configure, build, locate and
// execute in order. The first failing phase ends the cycle.
func (c *Cycle) Run(ctx context.Context, opts Options) error {
	if opts.Clean {
		if err := c.Reset(); err != nil {
			return err
		}
	}

	if err := c.Ensure(); err != nil {
		return err
	}

	if err := c.Configure(ctx); err != nil {
		return err
	}

	if err := c.Build(ctx); err != nil {
		return err
	}

	artifact, err := c.Locate()
	if err != nil {
		return err
	}

	if opts.NoRun {
		c.log.Debug().Str("artifact", artifact).Msg("skipping execution")
		return nil
	}

	return c.Execute(ctx, artifact)
}

// Reset removes the build tree. It is a no-op when the tree is absent.
func (c *Cycle) Reset() error {
	dir := c.cfg.BuildDir

	if _, err := os.Lstat(dir); err != nil {
		if os.IsNotExist(err) {
			c.log.Debug().Str("dir", dir).Msg("nothing to clean")
			return nil
		}

		fmt.Fprintf(c.out, "Failed to clean build directory '%s'\n", dir)
		return codes.New(codes.PhaseReset, codes.Failure, eris.Wrapf(err, "failed to check %s", dir))
	}

	fmt.Fprintf(c.out, "Cleaning build directory '%s'\n", dir)

	if err := os.RemoveAll(dir); err != nil {
		fmt.Fprintf(c.out, "Failed to clean build directory '%s'\n", dir)
		return codes.New(codes.PhaseReset, codes.Failure, eris.Wrapf(err, "failed to remove %s", dir))
	}

	return nil
}

// Ensure creates the build tree and any missing parents
func (c *Cycle) Ensure() error {
	if err := os.MkdirAll(c.cfg.BuildDir, 0o755); err != nil {
		fmt.Fprintf(c.out, "Failed to create build directory '%s'\n", c.cfg.BuildDir)
		return codes.New(codes.PhaseEnsure, codes.Failure, eris.Wrapf(err, "failed to create %s", c.cfg.BuildDir))
	}

	return nil
}

// Configure generates the build system inside the tree
func (c *Cycle) Configure(ctx context.Context) error {
	return c.invoke(ctx, codes.PhaseConfigure, c.builder.Configure(c.cfg.BuildDir, c.cfg.Generator))
}

// Build compiles the configured tree
func (c *Cycle) Build(ctx context.Context) error {
	return c.invoke(ctx, codes.PhaseBuild, c.builder.Build(c.cfg.BuildDir, c.cfg.Configuration))
}

// Locate returns the artifact path, which must be a regular file
func (c *Cycle) Locate() (string, error) {
	artifact := c.cfg.ArtifactPath()

	info, err := os.Stat(artifact)
	if err == nil && info.Mode().IsRegular() {
		return artifact, nil
	}

	fmt.Fprintf(c.out, "Executable not found: %s\n", artifact)

	cause := eris.Wrapf(ErrArtifactMissing, "%s", artifact)
	if err == nil {
		cause = eris.Wrapf(ErrArtifactMissing, "%s is not a regular file", artifact)
	}

	return "", codes.New(codes.PhaseLocate, codes.Failure, cause)
}

// Execute runs the artifact from its own directory so files next to it
// resolve.
func (c *Cycle) Execute(ctx context.Context, artifact string) error {
	fmt.Fprintf(c.out, "Running executable: %s\n", artifact)

	return c.invoke(ctx, codes.PhaseExecute, process.Command{
		Name: artifact,
		Dir:  filepath.Dir(artifact),
	})
}

func (c *Cycle) invoke(ctx context.Context, phase codes.Phase, cmd process.Command) error {
	fmt.Fprintf(c.out, "Running: %s (cwd=%s)\n", cmd.String(), cmd.Dir)

	code, err := c.runner.Run(ctx, cmd)
	if err != nil {
		fmt.Fprintf(c.out, "Command failed: %s\n", cmd.String())
		return codes.New(phase, codes.Failure, err)
	}

	c.log.Debug().Str("phase", string(phase)).Int("exit_code", code).Msg("command finished")

	if code != codes.Success {
		fmt.Fprintf(c.out, "Command failed: %s\n", cmd.String())
		return codes.New(phase, code, eris.Errorf("%s exited with code %d", cmd.Name, code))
	}

	return nil
}
