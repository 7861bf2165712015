// Package backend resolves backend selections and builds their targets.
//
// A selection is one of:
//
//	all              every registered backend
//	other <backend>  every registered backend except <backend>
//	<backend>        exactly one registered backend
//
// Backends are always built one at a time in registry order and the first
// failing build stops the run.
package backend

import (
	"fmt"
	"slices"

	"github.com/rotisserie/eris"

	"github.com/Norgate-AV/gamebuild/internal/codes"
	"github.com/Norgate-AV/gamebuild/internal/utils"
)

// Selection keywords
const (
	SelectAll   = "all"
	SelectOther = "other"
)

var (
	// ErrUsage is returned when the arguments do not form a selection
	ErrUsage = eris.New("invalid usage")

	// ErrEmptyRegistry is returned for a registry without backends
	ErrEmptyRegistry = eris.New("no backends registered")
)

// UnknownBackendError reports a name that is not in the registry
type UnknownBackendError struct {
	Name string

	// Skip is set when the name was the argument of "other"
	Skip bool
}

func (e *UnknownBackendError) Error() string {
	if e.Skip {
		return fmt.Sprintf("Unknown backend to skip: %s", e.Name)
	}

	return fmt.Sprintf("Unknown backend: %s", e.Name)
}

// Registry is the ordered set of buildable backends
type Registry struct {
	prefix string
	names  []string
}

// NewRegistry creates a registry; names must be unique and non-empty
func NewRegistry(prefix string, names []string) (*Registry, error) {
	if len(names) == 0 {
		return nil, ErrEmptyRegistry
	}

	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if name == "" {
			return nil, eris.New("backend name must not be empty")
		}

		if seen[name] {
			return nil, eris.Errorf("duplicate backend %q", name)
		}

		seen[name] = true
	}

	return &Registry{
		prefix: prefix,
		names:  slices.Clone(names),
	}, nil
}

// Names returns the backends in registry order
func (r *Registry) Names() []string {
	return slices.Clone(r.names)
}

// Contains reports whether name is registered (case-sensitive)
func (r *Registry) Contains(name string) bool {
	return slices.Contains(r.names, name)
}

// TargetName returns the build-tool target for a backend
func (r *Registry) TargetName(backend string) string {
	return utils.TargetName(r.prefix, backend)
}

// Targets returns the target name of every backend, in order
func (r *Registry) Targets() []string {
	targets := make([]string, 0, len(r.names))
	for _, name := range r.names {
		targets = append(targets, r.TargetName(name))
	}

	return targets
}

// Resolve turns command-line arguments into the backends to build.
// Every error it returns is a usage failure with exit code 1.
func (r *Registry) Resolve(args []string) ([]string, error) {
	if len(args) == 0 {
		return nil, usageError(ErrUsage)
	}

	switch args[0] {
	case SelectAll:
		return r.Names(), nil

	case SelectOther:
		if len(args) < 2 {
			return nil, usageError(ErrUsage)
		}

		skip := args[1]
		if !r.Contains(skip) {
			return nil, usageError(&UnknownBackendError{Name: skip, Skip: true})
		}

		backends := make([]string, 0, len(r.names)-1)
		for _, name := range r.names {
			if name != skip {
				backends = append(backends, name)
			}
		}

		return backends, nil

	default:
		if !r.Contains(args[0]) {
			return nil, usageError(&UnknownBackendError{Name: args[0]})
		}

		return []string{args[0]}, nil
	}
}

func usageError(err error) error {
	return codes.New(codes.PhaseUsage, codes.Failure, err)
}
