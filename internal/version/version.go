// Package version carries build metadata injected with -ldflags.
package version

var (
	// Version is the release tag.
	Version = "0.3.0-dev"
	// Commit is the git revision the binary was built from.
	Commit = ""
	// BuildDate is the RFC 3339 build timestamp.
	BuildDate = ""
)
