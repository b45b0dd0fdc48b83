package buildinfo_test

import (
	"encoding/json"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AbdelazizMoustafa10m/autocore/internal/buildinfo"
)

func TestGetInfo_DefaultValues(t *testing.T) {
	t.Parallel()

	info := buildinfo.GetInfo()
	assert.Equal(t, "dev", info.Version)
	assert.Equal(t, "unknown", info.Commit)
	assert.Equal(t, "unknown", info.Date)
	assert.Equal(t, runtime.Version(), info.GoVersion)
}

func TestInfoString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		info buildinfo.Info
		want string
	}{
		{
			name: "default values",
			info: buildinfo.Info{Version: "dev", Commit: "unknown", Date: "unknown", GoVersion: "go1.24.2"},
			want: "autocore vdev (commit: unknown, built: unknown, go1.24.2)",
		},
		{
			name: "release values",
			info: buildinfo.Info{Version: "1.2.0", Commit: "a1b2c3d", Date: "2026-02-17T10:00:00Z", GoVersion: "go1.24.2"},
			want: "autocore v1.2.0 (commit: a1b2c3d, built: 2026-02-17T10:00:00Z, go1.24.2)",
		},
		{
			name: "git describe with dirty suffix",
			info: buildinfo.Info{Version: "1.2.0-14-gabcdef0-dirty", Commit: "abcdef0", Date: "2026-01-15T08:30:00Z", GoVersion: "go1.25.0"},
			want: "autocore v1.2.0-14-gabcdef0-dirty (commit: abcdef0, built: 2026-01-15T08:30:00Z, go1.25.0)",
		},
		{
			name: "all empty strings",
			info: buildinfo.Info{},
			want: "autocore v (commit: , built: , )",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.info.String())
		})
	}
}

func TestInfoJSON_FieldNames(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(buildinfo.Info{Version: "1.2.0", Commit: "a1b2c3d", Date: "2026-02-17", GoVersion: "go1.24.2"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":"1.2.0","commit":"a1b2c3d","date":"2026-02-17","go_version":"go1.24.2"}`, string(data))
}
