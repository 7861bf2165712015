package config

import (
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"

	"github.com/Norgate-AV/gamebuild/internal/utils"
)

// Default configuration values
const (
	DefaultTool          = "cmake"
	DefaultBuildDir      = "build"
	DefaultGenerator     = "Ninja"
	DefaultConfiguration = "Debug"
	DefaultArtifactDir   = "bin"
	DefaultArtifactName  = "game"
	DefaultTargetPrefix  = "game_"
	DefaultTargetDir     = "."
	DefaultVerbose       = false
)

// DefaultBackends returns the built-in backend registry
func DefaultBackends() []string {
	return []string{"gl", "vk"}
}

// Holds the configuration options shared by both commands
type Config struct {
	// Build tool executable (name on PATH or a path)
	Tool string

	// Build tree managed by build-run
	BuildDir string

	// Generator passed to the configure step
	Generator string

	// Build configuration name, also the artifact's parent folder
	Configuration string

	// Artifact layout below the build tree: <ArtifactDir>/<Configuration>/<ArtifactName>
	ArtifactDir  string
	ArtifactName string

	// Backend registry and the prefix that turns a backend into a target
	TargetPrefix string
	Backends     []string

	// Configured tree that build-backends builds targets in
	TargetDir string

	// Enable verbose output
	Verbose bool
}

func Load() (*Config, error) {
	cfg := &Config{
		Tool:          viper.GetString("tool"),
		BuildDir:      viper.GetString("build_dir"),
		Generator:     viper.GetString("generator"),
		Configuration: viper.GetString("configuration"),
		ArtifactDir:   viper.GetString("artifact_dir"),
		ArtifactName:  viper.GetString("artifact_name"),
		TargetPrefix:  viper.GetString("target_prefix"),
		Backends:      viper.GetStringSlice("backends"),
		TargetDir:     viper.GetString("target_dir"),
		Verbose:       viper.GetBool("verbose"),
	}

	// Apply defaults if not set
	if cfg.Tool == "" {
		cfg.Tool = DefaultTool
	}

	if cfg.BuildDir == "" {
		cfg.BuildDir = DefaultBuildDir
	}

	if cfg.Generator == "" {
		cfg.Generator = DefaultGenerator
	}

	if cfg.Configuration == "" {
		cfg.Configuration = DefaultConfiguration
	}

	if cfg.ArtifactName == "" {
		cfg.ArtifactName = DefaultArtifactName
	}

	if len(cfg.Backends) == 0 {
		cfg.Backends = DefaultBackends()
	}

	if cfg.TargetDir == "" {
		cfg.TargetDir = DefaultTargetDir
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Tool == "" {
		return eris.New("build tool not specified")
	}

	// bare names are looked up on PATH, anything else is a path
	if filepath.Base(c.Tool) != c.Tool {
		abs, err := filepath.Abs(c.Tool)
		if err != nil {
			return eris.Wrap(err, "invalid build tool path")
		}

		c.Tool = abs
	}

	if c.Generator == "" {
		return eris.New("generator not specified")
	}

	if c.Configuration == "" {
		return eris.New("build configuration not specified")
	}

	if c.ArtifactName == "" {
		return eris.New("artifact name not specified")
	}

	if len(c.Backends) == 0 {
		return eris.New("no backends configured")
	}

	buildDir, err := filepath.Abs(c.BuildDir)
	if err != nil {
		return eris.Wrap(err, "invalid build directory")
	}

	c.BuildDir = buildDir

	targetDir, err := filepath.Abs(c.TargetDir)
	if err != nil {
		return eris.Wrap(err, "invalid target directory")
	}

	c.TargetDir = targetDir

	return nil
}

// ArtifactPath returns the executable produced by a successful build
func (c *Config) ArtifactPath() string {
	return filepath.Join(c.BuildDir, c.ArtifactDir, c.Configuration, utils.ExecutableName(c.ArtifactName))
}
