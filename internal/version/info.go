// Package version exposes the build metadata stamped into the gm binary.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

// Overridden at build time with -ldflags "-X".
var (
	Version   = "dev"
	Commit    = ""
	BuildDate = ""
)

// Info describes the running binary.
type Info struct {
	Version   string `yaml:"version"`
	Commit    string `yaml:"commit"`
	BuildDate string `yaml:"build_date"`
	Platform  string `yaml:"platform"`
	GoVersion string `yaml:"go_version"`
}

// Get returns the build metadata. Values missing from -ldflags are taken
// from the module build info when the binary was built with VCS stamping.
func Get() Info {
	info := Info{
		Version:   fallback(Version, "dev"),
		Commit:    strings.TrimSpace(Commit),
		BuildDate: strings.TrimSpace(BuildDate),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
		GoVersion: runtime.Version(),
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if info.Commit == "" {
					info.Commit = s.Value
				}
			case "vcs.time":
				if info.BuildDate == "" {
					info.BuildDate = s.Value
				}
			}
		}
	}

	info.Commit = fallback(info.Commit, "unknown")
	info.BuildDate = fallback(info.BuildDate, "unknown")

	return info
}

// String is the one-line form printed by `gm version`.
func (i Info) String() string {
	commit := i.Commit
	if len(commit) > 12 {
		commit = commit[:12]
	}

	return fmt.Sprintf("gm %s (%s, %s) %s %s", i.Version, commit, i.BuildDate, i.Platform, i.GoVersion)
}

func fallback(value, defaultValue string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}

	return defaultValue
}
