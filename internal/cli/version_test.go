package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteVersion(t *testing.T) {
	info := VersionInfo{
		Version:        "1.2.3",
		Commit:         "abc1234",
		Built:          "2026-01-08T12:00:00Z",
		Go:             "go1.24.11",
		Platform:       "linux/amd64",
		CatalogDevices: 15,
	}

	tests := []struct {
		name  string
		short bool
		want  []string
	}{
		{
			name: "full",
			want: []string{"stordash v1.2.3", "commit: abc1234", "built: 2026-01-08T12:00:00Z", "os/arch: linux/amd64", "catalog: 15 devices"},
		},
		{
			name:  "short",
			short: true,
			want:  []string{"1.2.3\n"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, writeVersion(&buf, info, tt.short, false))
			for _, w := range tt.want {
				assert.Contains(t, buf.String(), w)
			}
		})
	}
}

func TestWriteVersion_JSON(t *testing.T) {
	info := VersionInfo{Version: "1.2.3", Commit: "abc1234", CatalogDevices: 15}

	var buf bytes.Buffer
	require.NoError(t, writeVersion(&buf, info, true, true), "json wins over short")

	var env struct {
		Success bool        `json:"success"`
		Data    VersionInfo `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &env))
	assert.True(t, env.Success)
	assert.Equal(t, info, env.Data)
}

func TestCurrentVersion(t *testing.T) {
	orig := []string{version, commit, date}
	defer SetVersionInfo(orig[0], orig[1], orig[2])

	SetVersionInfo("dev", "none", "unknown")
	info := currentVersion()
	assert.Equal(t, "dev", info.Version)
	assert.Equal(t, 15, info.CatalogDevices, "built-in catalog size")

	var buf bytes.Buffer
	require.NoError(t, writeVersion(&buf, info, false, false))
	assert.Contains(t, buf.String(), "stordash dev\n", "dev builds have no v prefix")
}

func TestFormatVersion(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"dev", "dev"},
		{"1.2.3", "v1.2.3"},
		{"v1.2.3", "v1.2.3"},
		{"1.2.3-beta.1", "v1.2.3-beta.1"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatVersion(tt.input), "input %q", tt.input)
	}
}
