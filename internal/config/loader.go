package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// flagKeys maps config keys to the command flags that override them
var flagKeys = map[string]string{
	"tool":          "tool",
	"build_dir":     "build-dir",
	"generator":     "generator",
	"configuration": "configuration",
	"artifact_name": "artifact",
	"target_prefix": "prefix",
	"backends":      "backends",
	"target_dir":    "dir",
	"verbose":       "verbose",
}

// Loader assembles a Config from defaults, config files and flags
type Loader struct {
	getwd func() (string, error)
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{getwd: os.Getwd}
}

// Load layers defaults, the global config, the nearest local config and the
// command's flags, in increasing priority.
func (l *Loader) Load(cmd *cobra.Command) (*Config, error) {
	l.setupViperDefaults()
	l.loadGlobalConfig()

	if wd, err := l.getwd(); err == nil {
		l.loadLocalConfig(wd)
	}

	l.bindCommandFlags(cmd)

	return Load()
}

// setupViperDefaults registers the built-in build layout
func (l *Loader) setupViperDefaults() {
	viper.SetDefault("tool", DefaultTool)
	viper.SetDefault("build_dir", DefaultBuildDir)
	viper.SetDefault("generator", DefaultGenerator)
	viper.SetDefault("configuration", DefaultConfiguration)
	viper.SetDefault("artifact_dir", DefaultArtifactDir)
	viper.SetDefault("artifact_name", DefaultArtifactName)
	viper.SetDefault("target_prefix", DefaultTargetPrefix)
	viper.SetDefault("backends", DefaultBackends())
	viper.SetDefault("target_dir", DefaultTargetDir)
	viper.SetDefault("verbose", DefaultVerbose)
}

// globalConfigDir is the per-user gamebuild directory. APPDATA wins so
// Windows shells and tests can redirect it.
func globalConfigDir() string {
	if appdata := os.Getenv("APPDATA"); appdata != "" {
		return filepath.Join(appdata, "gamebuild")
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}

	return filepath.Join(dir, "gamebuild")
}

// loadGlobalConfig reads the first config.<ext> in the per-user directory
func (l *Loader) loadGlobalConfig() {
	globalDir := globalConfigDir()
	if globalDir == "" {
		return
	}

	for _, ext := range Extensions {
		path := filepath.Join(globalDir, "config."+ext)

		if _, err := os.Stat(path); err == nil {
			viper.SetConfigFile(path)

			if err := viper.ReadInConfig(); err == nil {
				break
			}
		}
	}
}

// loadLocalConfig merges the nearest project config found from dir upwards
func (l *Loader) loadLocalConfig(dir string) {
	localPath := FindLocalConfig(dir)
	if localPath != "" {
		viper.SetConfigFile(localPath)
		_ = viper.MergeInConfig()
	}
}

// bindCommandFlags binds the flags a command defines to viper
func (l *Loader) bindCommandFlags(cmd *cobra.Command) {
	if cmd == nil {
		return
	}

	for key, name := range flagKeys {
		if flag := cmd.Flags().Lookup(name); flag != nil {
			_ = viper.BindPFlag(key, flag)
		}
	}
}
