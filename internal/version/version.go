// Package version reports the build information of the sassdocgen binary.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
	"sync"
	"time"
)

// BuildInfo contains version and build information
type BuildInfo struct {
	Version   string    `json:"version"`
	GitCommit string    `json:"git_commit"`
	BuildTime time.Time `json:"build_time"`
	GoVersion string    `json:"go_version"`
	Platform  string    `json:"platform"`
	Dirty     bool      `json:"is_dirty"`
	Release   bool      `json:"is_release"`
}

// Set at build time with -ldflags "-X ...".
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

// vcs holds the version control settings embedded by the go tool.
type vcs struct {
	module   string
	revision string
	time     string
	modified bool
}

var readVCS = sync.OnceValue(func() vcs {
	var v vcs
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return v
	}
	v.module = info.Main.Version
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			v.revision = setting.Value
		case "vcs.time":
			v.time = setting.Value
		case "vcs.modified":
			v.modified = setting.Value == "true"
		}
	}
	return v
})

// Get returns the build information, preferring values set at link time.
func Get() BuildInfo {
	v := readVCS()
	info := BuildInfo{
		Version:   Version,
		GitCommit: GitCommit,
		BuildTime: parseTime(BuildTime),
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
		Dirty:     v.modified,
	}

	if info.GitCommit == "" || info.GitCommit == "unknown" {
		info.GitCommit = "unknown"
		if v.revision != "" {
			info.GitCommit = v.revision
		}
	}
	if info.BuildTime.IsZero() {
		info.BuildTime = parseTime(v.time)
	}
	if info.Version == "" || info.Version == "dev" {
		info.Version = devVersion(v)
	}
	info.Release = info.Version != "dev" && !strings.HasPrefix(info.Version, "dev-")
	return info
}

func devVersion(v vcs) string {
	if v.module != "" && v.module != "(devel)" {
		return v.module
	}
	if len(v.revision) >= 7 {
		return "dev-" + v.revision[:7]
	}
	return "dev"
}

// Short returns the version with an abbreviated commit, if known.
func (b BuildInfo) Short() string {
	if len(b.GitCommit) < 7 || b.GitCommit == "unknown" {
		return b.Version
	}
	commit := b.GitCommit[:7]
	if strings.HasSuffix(b.Version, commit) {
		return b.Version
	}
	return fmt.Sprintf("%s (%s)", b.Version, commit)
}

// Detailed returns one "Key: value" line per known field.
func (b BuildInfo) Detailed() string {
	lines := []string{"Version: " + b.Version}
	if b.GitCommit != "unknown" {
		lines = append(lines, "Commit: "+b.GitCommit)
	}
	if !b.BuildTime.IsZero() {
		lines = append(lines, "Built: "+b.BuildTime.UTC().Format(time.RFC3339))
	}
	lines = append(lines, "Go: "+b.GoVersion, "Platform: "+b.Platform)
	if b.Dirty {
		lines = append(lines, "Working directory: dirty")
	}
	if b.Release {
		lines = append(lines, "Build type: release")
	} else {
		lines = append(lines, "Build type: development")
	}
	return strings.Join(lines, "\n")
}

// parseTime parses an RFC 3339 style timestamp, returning the zero time
// when it is missing or malformed.
func parseTime(value string) time.Time {
	if value == "" || value == "unknown" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
