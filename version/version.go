package version

import (
	"runtime/debug"
	"strings"
)

// Injected at link time, e.g.
//
//	go build -ldflags "-X github.com/juniorwebdev83/auto-qa/version.Version=1.2.0"
//
// Unset values are recovered from the binary's embedded build info where
// possible.
var (
	Version   = "dev"
	GitCommit = ""
	BuildTime = ""
)

// Info is the build metadata reported on the version endpoint.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildTime string `json:"build_time"`
	GoVersion string `json:"go_version"`
	Dirty     bool   `json:"dirty,omitempty"`
}

// GetVersionInfo assembles the build metadata. Linker-injected values win;
// gaps are filled from debug.ReadBuildInfo.
func GetVersionInfo() *Info {
	info := &Info{Version: Version, GitCommit: GitCommit, BuildTime: BuildTime}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	info.GoVersion = bi.GoVersion
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.GitCommit == "" {
				info.GitCommit = shortCommit(s.Value)
			}
		case "vcs.time":
			if info.BuildTime == "" {
				info.BuildTime = s.Value
			}
		case "vcs.modified":
			info.Dirty = s.Value == "true"
		}
	}
	return info
}

func shortCommit(rev string) string {
	if len(rev) > 7 {
		return rev[:7]
	}
	return rev
}

// GetShortVersion is the one-line form used in startup logs: the version
// plus the commit when known, with a dirty marker for unclean builds.
func GetShortVersion() string {
	info := GetVersionInfo()
	if info.GitCommit == "" {
		return info.Version
	}
	short := info.Version + "+" + info.GitCommit
	if info.Dirty {
		short += ".dirty"
	}
	return short
}

// GetFullVersion is the -version flag output.
func GetFullVersion() string {
	info := GetVersionInfo()
	var b strings.Builder
	b.WriteString("auto-qa ")
	b.WriteString(GetShortVersion())
	if info.BuildTime != "" {
		b.WriteString(" built ")
		b.WriteString(info.BuildTime)
	}
	if info.GoVersion != "" {
		b.WriteString(" with ")
		b.WriteString(info.GoVersion)
	}
	return b.String()
}
