// Package version carries the build version, overridden at link time with
// -ldflags "-X ligysis/internal/version.Version=...".
package version

var Version = "dev"
