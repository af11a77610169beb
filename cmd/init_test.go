package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	env := newBareEnv(t)
	out := env.run("init")
	env.contains(out, "Initialised entlog catalog in .entlog/entlog.db")
	assert.FileExists(t, filepath.Join(env.dir, ".entlog", "entlog.db"))

	_, err := env.runErr("init")
	assert.Error(t, err, "second init without --force fails")

	env.run("init", "--force")
}

func TestInit_LocalAndNamed(t *testing.T) {
	env := newBareEnv(t)
	env.run("init", "--db", "work", "--local")

	data, err := os.ReadFile(filepath.Join(env.dir, ".entlog", ".gitignore"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "entlog-work.db")
}

func TestInit_LocalWithDirRejected(t *testing.T) {
	env := newBareEnv(t)
	_, err := env.runErr("init", "--local", "--dir", t.TempDir())
	assert.Error(t, err)
}

func TestNotInitialised(t *testing.T) {
	env := newBareEnv(t)
	out, err := env.runErr("ls")
	assert.Error(t, err)
	env.contains(out, "entlog not initialised")

	out, err = env.runErr("ls", "-o", "json")
	assert.Error(t, err)
	env.contains(out, `"error"`)
}

func TestDirFlag(t *testing.T) {
	env := newBareEnv(t)
	other := t.TempDir()
	env.run("init", "--dir", other)
	env.run("add", "website", "Remote", "r", "--dir", other)

	out := env.run("ls", "--dir", other)
	env.contains(out, "Remote")

	_, err := env.runErr("ls")
	assert.Error(t, err, "without --dir the working directory has no catalog")
}

func TestVersionAndGuide(t *testing.T) {
	env := newBareEnv(t)
	env.contains(env.run("version"), "Go Version:")

	out := env.run("guide")
	env.contains(out, "# entlog")
	env.contains(env.run("guide", "search"), "above 60")

	out, err := env.runErr("guide", "nope")
	assert.Error(t, err)
	env.contains(out, "Available:")
}
