package buildinfo

import (
	"fmt"
	"runtime"
)

// Info is the build information reported by "autocore version".
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version"`
}

// GetInfo returns the current build information.
func GetInfo() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: runtime.Version(),
	}
}

// String returns a human-readable version string, e.g.
// "autocore v1.2.0 (commit: a1b2c3d, built: 2026-02-17T10:00:00Z, go1.24.2)".
func (i Info) String() string {
	return fmt.Sprintf("autocore v%s (commit: %s, built: %s, %s)", i.Version, i.Commit, i.Date, i.GoVersion)
}
