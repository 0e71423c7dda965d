// Package version reports the build identity of the endpoints binary.
//
// Version, commit and build time are stamped at link time:
//
//	go build -ldflags "-X github.com/kbukum/endpoints/version.Version=1.2.0 \
//	  -X github.com/kbukum/endpoints/version.Commit=$(git rev-parse --short HEAD)"
//
// Unstamped builds fall back to the VCS settings recorded by the Go toolchain.
package version
