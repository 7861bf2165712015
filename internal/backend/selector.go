package backend

import (
	"context"
	"fmt"
	"io"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/Norgate-AV/gamebuild/internal/buildtool"
	"github.com/Norgate-AV/gamebuild/internal/codes"
	"github.com/Norgate-AV/gamebuild/internal/process"
)

// Selector builds the targets of a resolved selection
type Selector struct {
	registry *Registry
	builder  *buildtool.CommandBuilder
	runner   process.Runner
	dir      string
	out      io.Writer
	log      zerolog.Logger

	// DryRun prints the commands instead of running them
	DryRun bool
}

// NewSelector creates a selector that builds targets of the tree in dir
func NewSelector(registry *Registry, builder *buildtool.CommandBuilder, runner process.Runner, dir string, out io.Writer, log zerolog.Logger) *Selector {
	return &Selector{
		registry: registry,
		builder:  builder,
		runner:   runner,
		dir:      dir,
		out:      out,
		log:      log,
	}
}

// Build resolves args and builds each selected backend in registry order
func (s *Selector) Build(ctx context.Context, args []string) error {
	backends, err := s.registry.Resolve(args)
	if err != nil {
		return err
	}

	s.log.Debug().Strs("backends", backends).Str("dir", s.dir).Msg("resolved selection")

	return s.BuildBackends(ctx, backends)
}

// BuildBackends builds the given backends one at a time, stopping at the
// first failure.
func (s *Selector) BuildBackends(ctx context.Context, backends []string) error {
	for _, backend := range backends {
		target := s.registry.TargetName(backend)
		cmd := s.builder.BuildTarget(s.dir, target)

		fmt.Fprintf(s.out, "Building target: %s in %s\n", target, s.dir)

		if s.DryRun {
			fmt.Fprintln(s.out, cmd.String())
			continue
		}

		code, err := s.runner.Run(ctx, cmd)
		if err != nil {
			fmt.Fprintf(s.out, "Build failed for target %s\n", target)
			return codes.New(codes.PhaseBuildTarget, codes.Failure, err)
		}

		s.log.Debug().Str("target", target).Int("exit_code", code).Msg("target finished")

		if code != codes.Success {
			fmt.Fprintf(s.out, "Build failed for target %s\n", target)
			return codes.New(codes.PhaseBuildTarget, code, eris.Errorf("target %s exited with code %d", target, code))
		}
	}

	return nil
}

// List prints the target of every registered backend
func (s *Selector) List() {
	for _, target := range s.registry.Targets() {
		fmt.Fprintln(s.out, target)
	}
}

// Usage returns the help text for the selection forms
func Usage(prog string) string {
	return fmt.Sprintf(`Usage:
  %[1]s all               # Build all backends
  %[1]s <backend>         # Build one backend (e.g. gl or vk)
  %[1]s other <backend>   # Build all backends except <backend>
`, prog)
}
