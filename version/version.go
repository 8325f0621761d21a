// Package version reports the version of the powledger binaries
package version

import (
	"fmt"
	"strings"
	"sync"
)

// buildCharacters are the characters allowed in appBuild
const buildCharacters = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz-"

const (
	appMajor uint = 0
	appMinor uint = 1
	appPatch uint = 0
)

// appBuild may be set at link time with
// '-ldflags "-X github.com/kaspanet/powledger/version.appBuild=foo"'.
var appBuild string

var (
	versionOnce sync.Once
	version     string
)

// Version returns the semantic version of the binary. Build metadata that
// contains characters outside buildCharacters is dropped.
func Version() string {
	versionOnce.Do(func() {
		version = formatVersion(appMajor, appMinor, appPatch, appBuild)
	})
	return version
}

func formatVersion(major, minor, patch uint, build string) string {
	semver := fmt.Sprintf("%d.%d.%d", major, minor, patch)
	if build == "" || strings.Trim(build, buildCharacters) != "" {
		return semver
	}
	return semver + "-" + build
}
