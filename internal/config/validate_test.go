package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validConfig returns a Config that passes all validation checks when paired
// with foundTool.
func validConfig(t *testing.T) *Config {
	t.Helper()
	return &Config{
		Build: BuildConfig{Tool: "make", InstanceVar: "INSTANCE", DryRunFlag: "-n"},
		Store: StoreConfig{Root: t.TempDir()},
	}
}

func foundTool(file string) (string, error) { return "/usr/bin/" + file, nil }

func missingTool(string) (string, error) { return "", errors.New("not found") }

// decodeMetadata parses TOML content and returns the metadata.
func decodeMetadata(t *testing.T, content string) toml.MetaData {
	t.Helper()
	var cfg Config
	md, err := toml.Decode(content, &cfg)
	require.NoError(t, err)
	return md
}

func fields(issues []ValidationIssue) []string {
	out := make([]string, len(issues))
	for i, is := range issues {
		out[i] = is.Field
	}
	return out
}

func TestValidate_Valid(t *testing.T) {
	t.Parallel()
	vr := Validate(validConfig(t), nil, foundTool)
	assert.False(t, vr.HasErrors())
	assert.False(t, vr.HasWarnings())
	assert.Empty(t, vr.Issues)
}

func TestValidate_Nil(t *testing.T) {
	t.Parallel()
	vr := Validate(nil, nil, foundTool)
	assert.True(t, vr.HasErrors())
}

func TestValidate_Build(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		mutate       func(*Config)
		lookPath     LookPathFunc
		wantErrors   []string
		wantWarnings []string
	}{
		{
			name:       "empty tool",
			mutate:     func(c *Config) { c.Build.Tool = "  " },
			lookPath:   foundTool,
			wantErrors: []string{"build.tool"},
		},
		{
			name:       "tool with arguments",
			mutate:     func(c *Config) { c.Build.Tool = "make -j8" },
			lookPath:   foundTool,
			wantErrors: []string{"build.tool"},
		},
		{
			name:         "tool not on path",
			mutate:       func(*Config) {},
			lookPath:     missingTool,
			wantWarnings: []string{"build.tool"},
		},
		{
			name:       "bad instance var",
			mutate:     func(c *Config) { c.Build.InstanceVar = "1NSTANCE" },
			lookPath:   foundTool,
			wantErrors: []string{"build.instance_var"},
		},
		{
			name:       "empty instance var",
			mutate:     func(c *Config) { c.Build.InstanceVar = "" },
			lookPath:   foundTool,
			wantErrors: []string{"build.instance_var"},
		},
		{
			name:         "empty dry run flag",
			mutate:       func(c *Config) { c.Build.DryRunFlag = "" },
			lookPath:     foundTool,
			wantWarnings: []string{"build.dry_run_flag"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := validConfig(t)
			tt.mutate(cfg)
			vr := Validate(cfg, nil, tt.lookPath)
			assert.ElementsMatch(t, tt.wantErrors, fields(vr.Errors()))
			assert.ElementsMatch(t, tt.wantWarnings, fields(vr.Warnings()))
		})
	}
}

func TestValidate_Store(t *testing.T) {
	t.Parallel()

	cfg := validConfig(t)
	cfg.Store.Root = ""
	vr := Validate(cfg, nil, foundTool)
	assert.Equal(t, []string{"store.root"}, fields(vr.Errors()))

	cfg = validConfig(t)
	cfg.Store.Root = filepath.Join(t.TempDir(), "missing")
	vr = Validate(cfg, nil, foundTool)
	assert.False(t, vr.HasErrors())
	assert.Equal(t, []string{"store.root"}, fields(vr.Warnings()))

	cfg = validConfig(t)
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	cfg.Store.Root = file
	vr = Validate(cfg, nil, foundTool)
	assert.Equal(t, []string{"store.root"}, fields(vr.Errors()))
}

func TestValidate_UnknownKeys(t *testing.T) {
	t.Parallel()

	md := decodeMetadata(t, "[build]\ntool = \"make\"\nparallel = true\n")
	vr := Validate(validConfig(t), &md, foundTool)
	assert.False(t, vr.HasErrors())
	require.Len(t, vr.Warnings(), 1)
	assert.Equal(t, "build.parallel", vr.Warnings()[0].Field)
	assert.Equal(t, "unknown configuration key", vr.Warnings()[0].Message)
}

func TestValidationResult_Filters(t *testing.T) {
	t.Parallel()

	vr := &ValidationResult{Issues: []ValidationIssue{
		{Severity: SeverityWarning, Field: "a"},
		{Severity: SeverityError, Field: "b"},
		{Severity: SeverityWarning, Field: "c"},
	}}
	assert.True(t, vr.HasErrors())
	assert.True(t, vr.HasWarnings())
	assert.Equal(t, []string{"b"}, fields(vr.Errors()))
	assert.Equal(t, []string{"a", "c"}, fields(vr.Warnings()))

	empty := &ValidationResult{}
	assert.False(t, empty.HasErrors())
	assert.False(t, empty.HasWarnings())
	assert.Nil(t, empty.Errors())
}
