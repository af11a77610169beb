package cmd

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tagJSON struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// tagID looks a registry entry up by name.
func (e *testEnv) tagID(name string) int64 {
	e.t.Helper()
	var tags []tagJSON
	e.runJSON(&tags, "tag", "ls")
	for _, tg := range tags {
		if tg.Name == name {
			return tg.ID
		}
	}
	e.t.Fatalf("tag %q not registered", name)
	return 0
}

func (e *testEnv) tags(id string) []string {
	e.t.Helper()
	return e.entity(id).Tags
}

func TestTagLs(t *testing.T) {
	env := newTestEnv(t)
	env.seed()

	var tags []tagJSON
	env.runJSON(&tags, "tag", "ls")
	names := make([]string, len(tags))
	for i, tg := range tags {
		names[i] = tg.Name
	}
	assert.Equal(t, []string{"demo", "internal", "web", "webby"}, names)

	env.runJSON(&tags, "tag", "ls", "web")
	assert.Len(t, tags, 2)

	env.runJSON(&tags, "tag", "ls", "-n", "1", "--skip", "1")
	require.Len(t, tags, 1)
	assert.Equal(t, "internal", tags[0].Name)
}

func TestTagMv_Cascades(t *testing.T) {
	env := newTestEnv(t)
	env.seed()

	id := env.tagID("web")
	out := env.run("tag", "mv", itoa(id), "site")
	env.contains(out, `Renamed tag`)
	env.contains(out, `"site"`)

	assert.Equal(t, []string{"site", "demo"}, env.tags("1"))
	assert.Equal(t, []string{"webby"}, env.tags("3"), "similar names are untouched")
}

func TestTagMv_Merge(t *testing.T) {
	env := newTestEnv(t)
	env.seed()

	env.run("tag", "mv", itoa(env.tagID("demo")), "web")
	assert.Equal(t, []string{"web"}, env.tags("1"))

	var tags []tagJSON
	env.runJSON(&tags, "tag", "ls", "demo")
	assert.Empty(t, tags)
}

func TestTagRm_Cascades(t *testing.T) {
	env := newTestEnv(t)
	env.seed()

	out := env.run("tag", "rm", itoa(env.tagID("demo")))
	env.contains(out, `Deleted tag "demo"`)
	assert.Equal(t, []string{"web"}, env.tags("1"))

	_, err := env.runErr("tag", "rm", "999")
	assert.Error(t, err)
}

func TestTagSync(t *testing.T) {
	env := newTestEnv(t)
	env.seed()

	// Everything added through the CLI is already registered.
	env.contains(env.run("tag", "sync"), "Registered 0 tag(s)")
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
