// Package version reports build metadata for wcagdemo binaries.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// These variables can be set at build time via ldflags:
//
//	go build -ldflags="-X github.com/muurk/wcagdemo/internal/version.Version=v0.3.0 \
//	                   -X github.com/muurk/wcagdemo/internal/version.Commit=abc123"
//
// Unset values are filled from the embedded VCS build info, then fall back
// to "dev" and "unknown".
var (
	Version = ""
	Commit  = ""
	Date    = ""
)

func init() {
	if Version == "" || Commit == "" || Date == "" {
		fromBuildInfo(debug.ReadBuildInfo())
	}
	if Version == "" {
		Version = "dev"
	}
	if Commit == "" {
		Commit = "unknown"
	}
}

// fromBuildInfo fills unset values from VCS stamps. Tagged module builds
// (go install ...@v1.2.3) carry their version in Main.Version.
func fromBuildInfo(info *debug.BuildInfo, ok bool) {
	if !ok || info == nil {
		return
	}
	if Version == "" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}

	var revision, modified, vcsTime string
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.modified":
			modified = s.Value
		case "vcs.time":
			vcsTime = s.Value
		}
	}
	if Commit == "" && revision != "" {
		Commit = shortHash(revision)
		if modified == "true" {
			Commit += "-dirty"
		}
	}
	if Date == "" {
		Date = vcsTime
	}
}

func shortHash(rev string) string {
	if len(rev) > 7 {
		return rev[:7]
	}
	return rev
}

// Info is the build metadata, as printed by the version command and the
// discovery TXT record.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date,omitempty"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// Get returns the current build metadata.
func Get() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// Full returns the full version string including commit
func Full() string {
	return fmt.Sprintf("%s (commit: %s)", Version, Commit)
}
