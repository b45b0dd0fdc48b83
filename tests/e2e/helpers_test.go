package e2e_test

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// mockTool records its arguments one per line in $MOCK_ARGS_FILE and exits
// with $MOCK_EXIT.
const mockTool = `#!/bin/sh
: "${MOCK_ARGS_FILE:?}"
printf '%s\n' "$@" > "$MOCK_ARGS_FILE"
exit "${MOCK_EXIT:-0}"
`

// testProject is an isolated configuration root with a freshly built
// autocore binary and a mock build tool on PATH.
type testProject struct {
	Dir        string
	BinaryPath string
	ArgsFile   string
	env        []string
	t          *testing.T
}

func newTestProject(t *testing.T) *testProject {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping E2E test in short mode")
	}
	if runtime.GOOS == "windows" {
		t.Skip("E2E tests with a shell mock build tool are not supported on Windows")
	}

	dir := t.TempDir()
	binDir := t.TempDir()

	binary := filepath.Join(binDir, "autocore")
	build := exec.Command("go", "build", "-o", binary, "./cmd/autocore")
	build.Dir = projectRoot()
	out, err := build.CombinedOutput()
	require.NoError(t, err, "building autocore: %s", string(out))

	toolPath := filepath.Join(binDir, "mock-make")
	require.NoError(t, os.WriteFile(toolPath, []byte(mockTool), 0o755))

	argsFile := filepath.Join(binDir, "args")
	return &testProject{
		Dir:        dir,
		BinaryPath: binary,
		ArgsFile:   argsFile,
		env: []string{
			"PATH=" + binDir + string(os.PathListSeparator) + os.Getenv("PATH"),
			"MOCK_ARGS_FILE=" + argsFile,
			"NO_COLOR=1",
			"AUTOCORE_BUILD_TOOL=mock-make",
		},
		t: t,
	}
}

// projectRoot returns the repository root, two directories above this file.
func projectRoot() string {
	_, thisFile, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(thisFile), "..", "..")
}

func (tp *testProject) writeSettings(content string) {
	tp.t.Helper()
	require.NoError(tp.t, os.WriteFile(filepath.Join(tp.Dir, "autocore.toml"), []byte(content), 0o644))
}

func (tp *testProject) readConf(name string) string {
	tp.t.Helper()
	data, err := os.ReadFile(filepath.Join(tp.Dir, "conf", name+".conf"))
	require.NoError(tp.t, err)
	return string(data)
}

// toolArgs returns the arguments the mock build tool last received, or nil
// if it never ran.
func (tp *testProject) toolArgs() []string {
	tp.t.Helper()
	data, err := os.ReadFile(tp.ArgsFile)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	require.NoError(tp.t, err)
	return strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
}

// run creates an exec.Cmd for autocore rooted at tp.Dir.
func (tp *testProject) run(extraEnv []string, args ...string) *exec.Cmd {
	cmd := exec.Command(tp.BinaryPath, append([]string{"--dir", tp.Dir}, args...)...)
	cmd.Env = append(append(os.Environ(), tp.env...), extraEnv...)
	return cmd
}

// runExpectSuccess runs autocore and asserts exit code 0. Returns combined
// stdout and stderr.
func (tp *testProject) runExpectSuccess(args ...string) string {
	tp.t.Helper()
	out, err := tp.run(nil, args...).CombinedOutput()
	require.NoError(tp.t, err, "autocore %v failed:\n%s", args, string(out))
	return string(out)
}

// runExpectFailure runs autocore with extraEnv and asserts a non-zero exit
// code. Returns combined output and the exit code.
func (tp *testProject) runExpectFailure(extraEnv []string, args ...string) (string, int) {
	tp.t.Helper()
	out, err := tp.run(extraEnv, args...).CombinedOutput()
	require.Error(tp.t, err, "autocore %v expected to fail but succeeded:\n%s", args, string(out))
	var exitErr *exec.ExitError
	require.True(tp.t, errors.As(err, &exitErr), "expected *exec.ExitError, got %T: %v", err, err)
	return string(out), exitErr.ExitCode()
}

var scenario = []string{"--core", "Piccolo", "--arch", "rv32imac", "--priv", "mu", "--fabric", "32"}

func withScenario(args ...string) []string {
	return append(args, scenario...)
}
