// Package version holds build metadata for the docsearch binaries,
// injected with -ldflags "-X .../internal/version.Version=..." by the
// release build.
package version

//nolint:revive // Set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String renders the build info in one line for startup logs and CLIs.
func String() string {
	return Version + " (" + Commit + ", " + Date + ")"
}
