package version

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseTime(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
	}{
		{"2024-03-01T10:00:00Z", time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)},
		{"2024-03-01T10:00:00", time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)},
		{"2024-03-01 10:00:00", time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)},
		{"unknown", time.Time{}},
		{"", time.Time{}},
		{"yesterday", time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.True(t, tt.want.Equal(parseTime(tt.input)))
		})
	}
}

func TestBuildInfo_Short(t *testing.T) {
	tests := []struct {
		name string
		info BuildInfo
		want string
	}{
		{"release", BuildInfo{Version: "v1.2.0", GitCommit: "0123456789abcdef"}, "v1.2.0 (0123456)"},
		{"dev build", BuildInfo{Version: "dev-0123456", GitCommit: "0123456789abcdef"}, "dev-0123456"},
		{"no commit", BuildInfo{Version: "dev", GitCommit: "unknown"}, "dev"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.info.Short())
		})
	}
}

func TestBuildInfo_Detailed(t *testing.T) {
	info := BuildInfo{
		Version:   "v1.2.0",
		GitCommit: "abc",
		GoVersion: "go1.24.4",
		Platform:  "linux/amd64",
		Release:   true,
	}

	assert.Equal(t, "Version: v1.2.0\nCommit: abc\nGo: go1.24.4\nPlatform: linux/amd64\nBuild type: release", info.Detailed())
}

func TestDevVersion(t *testing.T) {
	assert.Equal(t, "v0.3.0", devVersion(vcs{module: "v0.3.0"}))
	assert.Equal(t, "dev-0123456", devVersion(vcs{module: "(devel)", revision: "0123456789"}))
	assert.Equal(t, "dev", devVersion(vcs{}))
}

func TestGet(t *testing.T) {
	info := Get()
	assert.NotEmpty(t, info.Version)
	assert.NotEmpty(t, info.GoVersion)
	assert.Contains(t, info.Platform, "/")
}
