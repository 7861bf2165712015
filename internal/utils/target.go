package utils

import (
	"runtime"
	"strings"
)

// TargetName builds the build-tool target for a backend
func TargetName(prefix, backend string) string {
	return prefix + backend
}

// ExecutableName appends the platform executable suffix to name if missing
func ExecutableName(name string) string {
	return executableName(name, runtime.GOOS)
}

func executableName(name, goos string) string {
	if goos != "windows" || name == "" {
		return name
	}

	if strings.HasSuffix(strings.ToLower(name), ".exe") {
		return name
	}

	return name + ".exe"
}
