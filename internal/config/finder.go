package config

import (
	"os"
	"path/filepath"
)

// LocalConfigName is the base name of a per-project config file
const LocalConfigName = ".gamebuild"

// Extensions lists the accepted config formats by precedence
var Extensions = []string{"yml", "yaml", "json", "toml"}

// FindLocalConfig returns the first .gamebuild file in dir or its ancestors,
// or an empty string when the project has none.
func FindLocalConfig(dir string) string {
	for {
		for _, ext := range Extensions {
			path := filepath.Join(dir, LocalConfigName+"."+ext)

			if _, err := os.Stat(path); err == nil {
				return path
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}

		dir = parent
	}

	return ""
}
