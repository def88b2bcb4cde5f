// Package version reports the build of the wxglade binary. The variables
// are set with -ldflags "-X github.com/wxglade/wxglade/version.Version=...".
package version

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/Masterminds/semver/v3"
)

var (
	Version    = "dev"
	CommitHash = "dev"
	BuildTime  = "unknown"
)

// Info describes one build.
type Info struct {
	Version    string `json:"version"`
	Release    bool   `json:"release"`
	CommitHash string `json:"commit_hash"`
	BuildTime  string `json:"build_time"`
	GoVersion  string `json:"go_version"`
	Platform   string `json:"platform"`
}

// Get returns the running build.
func Get() Info {
	return Info{
		Version:    Version,
		Release:    isRelease(Version),
		CommitHash: CommitHash,
		BuildTime:  BuildTime,
		GoVersion:  runtime.Version(),
		Platform:   runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// isRelease reports whether v is a tagged version without a prerelease
// suffix, e.g. "1.1.0" or "v1.1.0" but not "dev" or "1.1.0-rc1".
func isRelease(v string) bool {
	sv, err := semver.NewVersion(strings.TrimPrefix(v, "v"))
	return err == nil && sv.Prerelease() == ""
}

// String is the line printed by "wxglade version".
func (i Info) String() string {
	return fmt.Sprintf("wxglade %s (commit %s, built %s)", i.Version, i.Commit(), i.BuildTime)
}

// Commit returns the abbreviated commit hash.
func (i Info) Commit() string {
	if len(i.CommitHash) > 7 {
		return i.CommitHash[:7]
	}
	return i.CommitHash
}

// Banner is the tool identification written into generated files and
// project documents. It carries the version only, so output stays stable
// between builds of the same release.
func (i Info) Banner() string {
	return "wxGlade " + i.Version
}
