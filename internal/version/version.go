package version

import "fmt"

// These variables are set at build time using -ldflags
// Example: go build -ldflags "-X github.com/WSDOT/PGSuper-sub013/internal/version.Version=0.3.0"
var (
	// Version is the semantic version of the application
	Version = "0.3.0"

	// BuildTime is the time the binary was built (set via ldflags)
	BuildTime = "unknown"

	// GitCommit is the git commit hash (set via ldflags)
	GitCommit = "unknown"
)

// String is the one-line version banner
func String() string {
	s := fmt.Sprintf("pgdesign v%s", Version)
	if GitCommit != "unknown" {
		commit := GitCommit
		if len(commit) > 7 {
			commit = commit[:7]
		}
		s += fmt.Sprintf(" (%s)", commit)
	}
	if BuildTime != "unknown" {
		s += " built " + BuildTime
	}
	return s
}
