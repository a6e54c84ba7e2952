// Package version reports build metadata for dmxstrobe.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Set at build time via ldflags:
//
//	go build -ldflags="-X github.com/muurk/dmxstrobe/internal/version.Version=v0.3.0 \
//	                   -X github.com/muurk/dmxstrobe/internal/version.Commit=abc1234"
var (
	Version = ""
	Commit  = ""
)

const devVersion = "dev"

// Info is the resolved build metadata
type Info struct {
	Version   string
	Commit    string
	Modified  bool
	GoVersion string
	Platform  string
}

// Get resolves build metadata, filling gaps from the embedded build info
func Get() Info {
	bi, _ := debug.ReadBuildInfo()
	return resolve(Version, Commit, bi)
}

func resolve(version, commit string, bi *debug.BuildInfo) Info {
	info := Info{
		Version:   version,
		Commit:    commit,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}

	if bi != nil {
		if info.Version == "" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			info.Version = bi.Main.Version
		}
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if info.Commit == "" {
					info.Commit = shortRevision(s.Value)
				}
			case "vcs.modified":
				info.Modified = s.Value == "true"
			}
		}
		if bi.GoVersion != "" {
			info.GoVersion = bi.GoVersion
		}
	}

	if info.Version == "" {
		info.Version = devVersion
	}
	if info.Commit == "" {
		info.Commit = "unknown"
	}
	return info
}

func shortRevision(rev string) string {
	if len(rev) > 7 {
		return rev[:7]
	}
	return rev
}

// String returns "v0.3.0 (commit abc1234, go1.24.0 linux/amd64)"
func (i Info) String() string {
	commit := i.Commit
	if i.Modified {
		commit += "-dirty"
	}
	return fmt.Sprintf("%s (commit %s, %s %s)", i.Version, commit, i.GoVersion, i.Platform)
}

// Full returns the full version string for the running binary
func Full() string {
	return Get().String()
}
