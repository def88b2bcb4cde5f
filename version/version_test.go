package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsRelease(t *testing.T) {
	tests := []struct {
		version string
		want    bool
	}{
		{"dev", false},
		{"1.1.0", true},
		{"v1.1.0", true},
		{"1.1.0-rc1", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			assert.Equal(t, tt.want, isRelease(tt.version))
		})
	}
}

func TestInfo(t *testing.T) {
	i := Info{Version: "1.1.0", CommitHash: "0123456789abcdef", BuildTime: "2026-10-17"}
	assert.Equal(t, "wxglade 1.1.0 (commit 0123456, built 2026-10-17)", i.String())
	assert.Equal(t, "wxGlade 1.1.0", i.Banner())

	i.CommitHash = "dev"
	assert.Equal(t, "dev", i.Commit())
}

func TestGet(t *testing.T) {
	i := Get()
	assert.Equal(t, Version, i.Version)
	assert.NotEmpty(t, i.GoVersion)
	assert.Contains(t, i.Platform, "/")
}
