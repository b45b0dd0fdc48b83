// Package buildinfo identifies the autocore binary: its release, the source
// revision it was built from and when. The linker fills the variables, e.g.
//
//	go build -ldflags "-X github.com/AbdelazizMoustafa10m/autocore/internal/buildinfo.Version=0.3.0" ./cmd/autocore
//
// A plain go build keeps the placeholders below.
package buildinfo

var (
	// Version is the release, without a leading "v".
	Version = "dev"

	// Commit is the abbreviated source revision.
	Commit = "unknown"

	// Date is the build time, RFC3339 in UTC.
	Date = "unknown"
)
