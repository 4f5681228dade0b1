package version

import "fmt"

// Version contains the lessonindex release version.
// This should be set via build-time ldflags in production:
// go build -ldflags "-X git.home.luguber.info/inful/lessonindex/internal/version.Version=v1.0.0".
var Version = "unknown"

// BuildInfo contains additional build metadata.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String renders the version line printed by --version.
func String() string {
	return fmt.Sprintf("lessonindex %s (commit %s, built %s)", Version, GitCommit, BuildTime)
}
