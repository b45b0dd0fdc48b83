package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetSettingsFlags(t *testing.T) {
	t.Helper()
	initForce = false
	initTool, initInstanceVar, initDryRunFlag = "", "", ""
	settingsInitCmd.Flags().VisitAll(func(f *pflag.Flag) {
		f.Changed = false
	})
}

func TestSettingsDebug_Sources(t *testing.T) {
	resetSettingsFlags(t)
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "autocore.toml"),
		[]byte("[build]\ntool = \"gmake\"\n"), 0o644))
	t.Setenv("AUTOCORE_INSTANCE_VAR", "NAME")

	code, stdout, stderr := runCLI(t, "--no-color", "--dir", root, "settings", "debug")
	require.Equal(t, 0, code, stderr)

	assert.Contains(t, stdout, "Settings file: "+filepath.Join(root, "autocore.toml"))
	assert.Regexp(t, `tool\s+= "gmake"\s+\(source: file\)`, stdout)
	assert.Regexp(t, `instance_var\s+= "NAME"\s+\(source: env\)`, stdout)
	assert.Regexp(t, `dry_run_flag\s+= "-n"\s+\(source: default\)`, stdout)
	assert.Regexp(t, `root\s+= ".+"\s+\(source: cli\)`, stdout)
}

func TestSettingsValidate(t *testing.T) {
	resetSettingsFlags(t)
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "autocore.toml"),
		[]byte("[build]\ntool = \"make -j8\"\nparallel = 4\n"), 0o644))

	code, stdout, _ := runCLI(t, "--no-color", "--dir", root, "settings", "validate")
	assert.Equal(t, 1, code)
	assert.Contains(t, stdout, "[build.tool]")
	assert.Contains(t, stdout, "[build.parallel] unknown configuration key")
}

func TestSettingsValidate_Clean(t *testing.T) {
	resetSettingsFlags(t)
	root := t.TempDir()
	t.Setenv("AUTOCORE_BUILD_TOOL", "sh")

	code, stdout, stderr := runCLI(t, "--no-color", "--dir", root, "settings", "validate")
	require.Equal(t, 0, code, stderr)
	assert.NotContains(t, stdout, "Errors:")
}

func TestSettingsInit(t *testing.T) {
	resetSettingsFlags(t)
	root := t.TempDir()

	code, stdout, stderr := runCLI(t, "--dir", root, "settings", "init", "--tool", "gmake")
	require.Equal(t, 0, code, stderr)
	path := filepath.Join(root, "autocore.toml")
	assert.Contains(t, stdout, "Wrote "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `tool = "gmake"`)

	resetSettingsFlags(t)
	code, _, stderr = runCLI(t, "--dir", root, "settings", "init")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "exists")

	resetSettingsFlags(t)
	code, _, stderr = runCLI(t, "--dir", root, "settings", "init", "--force")
	require.Equal(t, 0, code, stderr)
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `tool = "make"`)
}
