package buildconfig

import "fmt"

// Build-time variables injected via ldflags:
//
//	-X github.com/Harshitk-cp/casebook/internal/buildconfig.version=v1.2.3
var (
	version = "dev"
	commit  = "unknown"
)

// Version returns the build version
func Version() string {
	return version
}

// Commit returns the git commit hash
func Commit() string {
	return commit
}

// String formats version and commit for -version output and logs.
func String() string {
	return fmt.Sprintf("%s (%s)", version, commit)
}
