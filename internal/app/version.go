package app

import "fmt"

// Version and Commit can be overridden at build time:
// go build -ldflags "-X pathpack/internal/app.Version=v0.2.0 -X pathpack/internal/app.Commit=abcdef0" ./cmd/pth
var (
	Version = "v0.1.0"
	Commit  = "dev"
)

func VersionString() string {
	return fmt.Sprintf("pathpack %s (%s)", Version, Commit)
}
