// CLI integration tests build the entlog binary once and run it in a fresh
// catalog per test, exercising command parsing, the catalog service and
// SQLite together. HOME points at a temporary directory so global config and
// the audit log never touch the developer's own.

package cmd

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	binaryPath string
	buildOnce  sync.Once
	buildErr   error
)

// buildBinary compiles the entlog binary once for all tests.
func buildBinary(t *testing.T) string {
	t.Helper()

	buildOnce.Do(func() {
		tmpDir, err := os.MkdirTemp("", "entlog-test-bin-*")
		if err != nil {
			buildErr = err
			return
		}

		name := "entlog"
		if os.PathSeparator == '\\' {
			name = "entlog.exe"
		}
		binaryPath = filepath.Join(tmpDir, name)

		wd, err := os.Getwd()
		if err != nil {
			buildErr = err
			return
		}
		c := exec.Command("go", "build", "-o", binaryPath, ".")
		c.Dir = filepath.Dir(wd)
		if out, err := c.CombinedOutput(); err != nil {
			buildErr = &buildError{err: err, output: string(out)}
		}
	})

	if buildErr != nil {
		t.Fatalf("failed to build binary: %v", buildErr)
	}
	return binaryPath
}

type buildError struct {
	err    error
	output string
}

func (e *buildError) Error() string {
	return e.err.Error() + "\n" + e.output
}

// testEnv holds test environment state.
type testEnv struct {
	t      *testing.T
	dir    string
	home   string
	binary string
}

// newBareEnv creates a working directory with no catalog.
func newBareEnv(t *testing.T) *testEnv {
	t.Helper()
	return &testEnv{t: t, dir: t.TempDir(), home: t.TempDir(), binary: buildBinary(t)}
}

// newTestEnv creates a working directory with an initialised catalog.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := newBareEnv(t)
	env.run("init")
	return env
}

func (e *testEnv) command(args ...string) *exec.Cmd {
	c := exec.Command(e.binary, args...)
	c.Dir = e.dir
	env := []string{"HOME=" + e.home, "USERPROFILE=" + e.home, "ENTLOG_AUTHOR=tester"}
	for _, kv := range os.Environ() {
		if !strings.HasPrefix(kv, "ENTLOG_") && !strings.HasPrefix(kv, "HOME=") && !strings.HasPrefix(kv, "USERPROFILE=") {
			env = append(env, kv)
		}
	}
	c.Env = env
	return c
}

// run executes entlog with the given args and returns its output.
func (e *testEnv) run(args ...string) string {
	e.t.Helper()
	out, err := e.runErr(args...)
	if err != nil {
		e.t.Fatalf("entlog %v failed: %v\noutput: %s", args, err, out)
	}
	return out
}

// runErr executes entlog and returns its output and any error.
func (e *testEnv) runErr(args ...string) (string, error) {
	e.t.Helper()
	out, err := e.command(args...).CombinedOutput()
	return string(out), err
}

// runStdin executes entlog with stdin input.
func (e *testEnv) runStdin(input string, args ...string) string {
	e.t.Helper()
	c := e.command(args...)
	c.Stdin = strings.NewReader(input)
	out, err := c.CombinedOutput()
	if err != nil {
		e.t.Fatalf("entlog %v failed: %v\noutput: %s", args, err, out)
	}
	return string(out)
}

// runJSON executes entlog with -o json and decodes stdout into v.
func (e *testEnv) runJSON(v any, args ...string) {
	e.t.Helper()
	c := e.command(append(args, "-o", "json")...)
	out, err := c.Output()
	require.NoError(e.t, err, "entlog %v", args)
	require.NoError(e.t, json.Unmarshal(out, v), "decoding %s", out)
}

// contains checks if output contains expected string.
func (e *testEnv) contains(output, expected string, msgAndArgs ...any) {
	e.t.Helper()
	assert.Contains(e.t, output, expected, msgAndArgs...)
}

// notContains checks if output lacks a string.
func (e *testEnv) notContains(output, unexpected string, msgAndArgs ...any) {
	e.t.Helper()
	assert.NotContains(e.t, output, unexpected, msgAndArgs...)
}

// seed adds the entities most tests search over.
func (e *testEnv) seed() {
	e.t.Helper()
	e.run("add", "website", "Foo", "https://foo.example", "-d", "bar site", "--tag", "web", "--tag", "demo")
	e.run("add", "service", "Billing API", "10.0.0.5:8080", "--tag", "internal", "--attr", "owner=payments team")
	e.run("add", "device", "Printer", "floor-2", "--tag", "webby")
}
