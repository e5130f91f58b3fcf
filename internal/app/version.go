package app

import (
	"fmt"
	"runtime/debug"
)

// Set with -ldflags "-X .../internal/app.Version=1.2.0". Commit and
// BuildTime fall back to the VCS stamp the toolchain embeds.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// BuildVersion is the version string reported in startup logs and /health.
func BuildVersion() string {
	info, _ := debug.ReadBuildInfo()
	return buildVersion(Version, Commit, BuildTime, info)
}

func buildVersion(version, commit, built string, info *debug.BuildInfo) string {
	if info != nil {
		for _, s := range info.Settings {
			switch {
			case s.Key == "vcs.revision" && commit == "unknown":
				commit = s.Value
				if len(commit) > 12 {
					commit = commit[:12]
				}
			case s.Key == "vcs.time" && built == "unknown":
				built = s.Value
			case s.Key == "vcs.modified" && s.Value == "true":
				version += "+dirty"
			}
		}
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, built)
}
