package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entityJSON struct {
	ID          int64    `json:"id"`
	EntityType  string   `json:"entity_type"`
	Name        string   `json:"name"`
	Locator     string   `json:"locator"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	ImageURL    string   `json:"image_url"`
	Attributes  map[string]struct {
		Description string `json:"description"`
		Active      bool   `json:"active"`
	} `json:"attributes"`
}

// entity decodes "show <id>" into a fresh value so omitted fields read as
// zero.
func (e *testEnv) entity(id string) entityJSON {
	e.t.Helper()
	var ent entityJSON
	e.runJSON(&ent, "show", id)
	return ent
}

func TestAddShow(t *testing.T) {
	env := newTestEnv(t)
	out := env.run("add", "website", "Foo", "https://foo.example", "-d", "bar site", "--tag", " web ", "--tag", "web", "--attr", "port=443")
	env.contains(out, "Added entity 1 (Foo)")

	out = env.run("show", "1")
	env.contains(out, "# Foo")
	env.contains(out, "- **Tags:** web")
	env.contains(out, "| port | 443 |")

	var e entityJSON
	env.runJSON(&e, "show", "1")
	assert.Equal(t, []string{"web"}, e.Tags, "tags are trimmed and deduplicated")
	assert.Equal(t, "443", e.Attributes["port"].Description)
	assert.True(t, e.Attributes["port"].Active)
}

func TestAdd_Invalid(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.runErr("add", "website", " ", "loc")
	assert.Error(t, err)

	_, err = env.runErr("add", "website", "n", "loc", "--attr", "novalue")
	assert.Error(t, err)
}

func TestShow_Errors(t *testing.T) {
	env := newTestEnv(t)
	out, err := env.runErr("show", "9")
	assert.Error(t, err)
	env.contains(out, "not found")

	_, err = env.runErr("show", "abc")
	assert.Error(t, err)
	_, err = env.runErr("show", "0")
	assert.Error(t, err)
}

func TestEdit(t *testing.T) {
	env := newTestEnv(t)
	env.seed()

	out := env.run("edit", "1", "--name", "Foo v2", "--add-tag", "prod", "--rm-tag", "demo")
	env.contains(out, "- name: Foo")
	env.contains(out, "+ name: Foo v2")

	e := env.entity("1")
	assert.Equal(t, "Foo v2", e.Name)
	assert.Equal(t, []string{"web", "prod"}, e.Tags)
	assert.Equal(t, "bar site", e.Description, "untouched fields are kept")

	env.run("edit", "1", "-d", "")
	assert.Empty(t, env.entity("1").Description, "an explicit empty value clears the field")

	env.run("edit", "1", "--tags", "a,b")
	assert.Equal(t, []string{"a", "b"}, env.entity("1").Tags)

	out = env.run("tag", "ls", "prod")
	env.contains(out, "prod")
}

func TestEdit_NoChanges(t *testing.T) {
	env := newTestEnv(t)
	env.seed()
	out, err := env.runErr("edit", "1")
	assert.Error(t, err)
	env.contains(out, "no changes")
}

func TestRm(t *testing.T) {
	env := newTestEnv(t)
	env.seed()

	out := env.run("rm", "1", "2")
	env.contains(out, "Deleted entity 1 (Foo)")
	env.contains(out, "Deleted entity 2 (Billing API)")

	_, err := env.runErr("show", "1")
	assert.Error(t, err)

	env.contains(env.run("tag", "ls"), "web")

	_, err = env.runErr("rm", "1")
	assert.Error(t, err)
}

func TestLs(t *testing.T) {
	env := newTestEnv(t)
	env.seed()

	out := env.run("ls")
	env.contains(out, "3  Printer  floor-2\n2  Billing API  10.0.0.5:8080\n1  Foo  https://foo.example\n")

	out = env.run("ls", "--skip", "1", "-n", "1")
	env.contains(out, "Billing API")
	env.notContains(out, "Printer")
	env.notContains(out, "Foo")

	out = env.run("ls", "-l")
	env.contains(out, "TYPE")
	env.contains(out, "website")

	var list []entityJSON
	env.runJSON(&list, "ls")
	require.Len(t, list, 3)
	assert.Equal(t, int64(3), list[0].ID)

	_, err := env.runErr("ls", "--skip", "-1")
	assert.Error(t, err)
}
