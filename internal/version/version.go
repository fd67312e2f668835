package version

import "fmt"

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// BuildInfo describes the partnerctl binary. Values are populated via -ldflags.
type BuildInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Get returns the build info of the running binary.
func Get() BuildInfo {
	return BuildInfo{Version: version, Commit: commit, Date: date}
}

func (b BuildInfo) String() string {
	return fmt.Sprintf("partnerctl %s (commit=%s date=%s)", b.Version, b.Commit, b.Date)
}
