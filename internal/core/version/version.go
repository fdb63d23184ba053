// Package version reports what build of the back office is running
package version

import "runtime/debug"

// overridden with -ldflags "-X backoffice/internal/core/version.release=v1.2.0"
var (
	release = "dev"
	commit  = ""
	date    = "unknown"
)

// BuildInfo identifies a binary
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Go      string `json:"go"`
}

// Info describes the running binary
// the commit falls back to the vcs stamp go build embeds
func Info() BuildInfo {
	b := BuildInfo{Service: "backoffice-api", Version: release, Commit: commit, Date: date, Go: "unknown"}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		if b.Commit == "" {
			b.Commit = "none"
		}
		return b
	}
	b.Go = bi.GoVersion
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" && b.Commit == "" && len(s.Value) >= 7 {
			b.Commit = s.Value[:7]
		}
	}
	if b.Commit == "" {
		b.Commit = "none"
	}
	return b
}
