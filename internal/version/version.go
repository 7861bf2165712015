// Package version holds build metadata injected with -ldflags.
package version

var (
	Version   = "dev"
	Commit    = "none"
	BuildTime = "unknown"
)

// String returns the version line shown by --version.
func String() string {
	return Version + " (" + Commit + ") " + BuildTime
}
