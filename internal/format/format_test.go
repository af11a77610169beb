package format_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jpl-au/entlog/internal/format"
	"github.com/jpl-au/entlog/internal/search"
	"github.com/jpl-au/entlog/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, format.List(&buf, []store.Entity{{ID: 2, Name: "b", Locator: "lb"}, {ID: 1, Name: "a", Locator: "la"}}))
	assert.Equal(t, "2  b  lb\n1  a  la\n", buf.String())
}

func TestLong(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, format.Long(&buf, []store.Entity{
		{ID: 10, EntityType: "website", Name: "longer-name", Tags: []string{"a", "b"}},
		{ID: 9, EntityType: "svc", Name: "x"},
	}))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "ID  TYPE     NAME"))
	assert.True(t, strings.HasSuffix(lines[1], "a,b"))
	assert.True(t, strings.HasSuffix(lines[2], "-"))

	buf.Reset()
	require.NoError(t, format.Long(&buf, nil))
	assert.Empty(t, buf.String())
}

func TestSearchResults(t *testing.T) {
	var buf bytes.Buffer
	results := []search.Result{{Entity: store.Entity{ID: 3, Name: "n", Locator: "l"}, Score: 87}}
	require.NoError(t, format.SearchResults(&buf, results))
	assert.Equal(t, " 87  3  n  l\n", buf.String())

	buf.Reset()
	require.NoError(t, format.IDs(&buf, results))
	assert.Equal(t, "3\n", buf.String())
}

func TestTags(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, format.Tags(&buf, []store.Tag{{ID: 1, Name: "web"}}))
	assert.Equal(t, "1  web\n", buf.String())
}
