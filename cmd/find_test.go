package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type hitJSON struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

func TestFind(t *testing.T) {
	env := newTestEnv(t)
	env.seed()

	out := env.run("find", "bar", "site")
	env.contains(out, "100  1  Foo  https://foo.example")
	env.notContains(out, "Printer")

	var hits []hitJSON
	env.runJSON(&hits, "find", "BILLING")
	require.NotEmpty(t, hits)
	assert.Equal(t, int64(2), hits[0].ID)
	assert.Equal(t, 100, hits[0].Score)
	for _, h := range hits {
		assert.Greater(t, h.Score, 60)
	}
}

func TestFind_Fields(t *testing.T) {
	env := newTestEnv(t)
	env.seed()

	var hits []hitJSON
	env.runJSON(&hits, "find", "payments", "-f", "name")
	assert.Empty(t, hits, "attributes are not part of the name field")

	env.runJSON(&hits, "find", "payments")
	require.Len(t, hits, 1)
	assert.Equal(t, int64(2), hits[0].ID)

	env.runJSON(&hits, "find", "web", "-f", "tags")
	assert.Len(t, hits, 2, "fuzzy tag match includes webby")

	env.runJSON(&hits, "find", "web", "-f", "tags", "--exact")
	require.Len(t, hits, 1)
	assert.Equal(t, int64(1), hits[0].ID)

	out, err := env.runErr("find", "x", "-f", "bogus")
	assert.Error(t, err)
	env.contains(out, "bogus")
}

func TestFind_EmptyQueryAndIDs(t *testing.T) {
	env := newTestEnv(t)
	env.seed()

	var hits []hitJSON
	env.runJSON(&hits, "find")
	require.Len(t, hits, 3)
	assert.Equal(t, int64(3), hits[0].ID)
	assert.Zero(t, hits[0].Score)

	out := env.run("find", "web", "-f", "tags", "--exact", "--ids")
	assert.Equal(t, "1\n", out)

	env.contains(env.run("find", "zzzzzz"), "No matches")
}
