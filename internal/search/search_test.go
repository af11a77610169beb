package search_test

import (
	"testing"

	"github.com/jpl-au/entlog/internal/search"
	"github.com/jpl-au/entlog/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(results []search.Result) []int64 {
	out := make([]int64, len(results))
	for i, r := range results {
		out[i] = r.Entity.ID
	}
	return out
}

func named(id int64, name string, tags ...string) store.Entity {
	return store.Entity{ID: id, EntityType: "website", Name: name, Locator: "loc", Tags: tags}
}

// --- PartialRatio ---

func TestPartialRatio(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"substring", "bar", "foo bar site", 100},
		{"equal", "abc", "abc", 100},
		{"empty left", "", "abc", 0},
		{"empty right", "abc", "", 0},
		{"one edit of four", "abcd", "abxd", 75},
		{"rounds up", "abc", "abd", 67},
		{"two edits of five", "abcde", "abxye", 60},
		{"best window wins", "abcd", "zzzz abxd zzzz", 75},
		{"runes not bytes", "café", "cafe", 75},
		{"no overlap", "abc", "xyz", 0},
		{"transposition is two edits", "abcd", "abdc", 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, search.PartialRatio(tt.a, tt.b))
		})
	}
}

func TestPartialRatio_Symmetric(t *testing.T) {
	pairs := [][2]string{{"abcd", "zzzz abxd zzzz"}, {"bar", "foo bar"}, {"kitten", "sitting"}}
	for _, p := range pairs {
		assert.Equal(t, search.PartialRatio(p[0], p[1]), search.PartialRatio(p[1], p[0]), "%q vs %q", p[0], p[1])
	}
}

func TestPartialRatio_CaseSensitive(t *testing.T) {
	assert.Less(t, search.PartialRatio("FOO", "foo"), 100)
}

// --- Project ---

func TestProject_All(t *testing.T) {
	e := store.Entity{Name: "Foo", Description: "bar site", Tags: []string{"web", "demo"}}
	text := search.Project(e, search.ScopeAll)
	assert.Contains(t, text, "Foo bar site")
	assert.Contains(t, text, "web demo")
	assert.Equal(t, "Foo bar site   web demo", text)

	assert.Equal(t, text, search.Project(e, ""), "empty scope projects like all")
}

func TestProject_Fields(t *testing.T) {
	e := store.Entity{
		EntityType:  "service",
		Name:        "Foo",
		Locator:     "10.0.0.1",
		Description: "desc",
		Tags:        []string{"a", "b"},
	}
	assert.Equal(t, "Foo", search.Project(e, search.ScopeName))
	assert.Equal(t, "desc", search.Project(e, search.ScopeDescription))
	assert.Equal(t, "a b", search.Project(e, search.ScopeTags))
	assert.Equal(t, "10.0.0.1", search.Project(e, search.ScopeLocator))
	assert.Equal(t, "service", search.Project(e, search.ScopeType))
	assert.Equal(t, "", search.Project(store.Entity{}, search.ScopeDescription))
}

func TestProject_Attributes(t *testing.T) {
	off := false
	on := true
	e := store.Entity{
		Name:    "n",
		Locator: "l",
		Attributes: map[string]store.Attribute{
			"zeta":  {Key: "zeta", Description: "last", Remarks: "r2"},
			"alpha": {Key: "alpha", Description: "first", Remarks: "r1", Active: &on},
			"gone":  {Key: "gone", Description: "hidden", Remarks: "x", Active: &off},
		},
	}
	text := search.Project(e, search.ScopeAll)
	assert.Equal(t, "n  l   alpha first r1 zeta last r2", text)
	assert.NotContains(t, text, "hidden")
	assert.NotContains(t, search.Project(e, search.ScopeName), "alpha")
}

// --- Rank ---

func TestRank_EmptyQueryNewestFirst(t *testing.T) {
	entities := []store.Entity{named(1, "a"), named(2, "b"), named(3, "c")}

	results := search.Rank(entities, search.Query{Limit: 10})
	assert.Equal(t, []int64{3, 2, 1}, ids(results))
	for _, r := range results {
		assert.Zero(t, r.Score)
	}
}

func TestRank_EmptyCollection(t *testing.T) {
	results := search.Rank(nil, search.Query{Text: "foo", Limit: 10})
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestRank_FuzzyOrderingAndThreshold(t *testing.T) {
	entities := []store.Entity{
		named(1, "abxye"), // 60, not above threshold
		named(2, "abcdz"), // 80
		named(3, "abcde"), // 100
		named(4, "zabcdez"),
		named(5, "qqqqq"),
	}

	results := search.Rank(entities, search.Query{Text: "abcde", Scope: search.ScopeName, Limit: -1})
	assert.Equal(t, []int64{3, 4, 2}, ids(results))

	prev := 101
	for _, r := range results {
		assert.Greater(t, r.Score, search.Threshold)
		assert.LessOrEqual(t, r.Score, prev)
		prev = r.Score
	}
}

func TestRank_StableTies(t *testing.T) {
	entities := []store.Entity{named(7, "foo"), named(2, "foo"), named(5, "foo")}

	results := search.Rank(entities, search.Query{Text: "foo", Scope: search.ScopeName, Limit: 10})
	assert.Equal(t, []int64{7, 2, 5}, ids(results), "ties keep input order")
}

func TestRank_CaseInsensitive(t *testing.T) {
	entities := []store.Entity{{ID: 1, Name: "Foo", Description: "bar site", Tags: []string{"web", "demo"}}}

	results := search.Rank(entities, search.Query{Text: "BAR", Limit: 10})
	require.Len(t, results, 1)
	assert.Equal(t, 100, results[0].Score)
}

func TestRank_ExactTagMatch(t *testing.T) {
	entities := []store.Entity{
		named(1, "a", "web"),
		named(2, "b", "webby"),
		named(3, "c", "Web"),
		named(4, "d", "x", "web"),
	}

	results := search.Rank(entities, search.Query{Text: "web", Scope: search.ScopeTags, ExactMatch: true, Limit: 10})
	assert.Equal(t, []int64{1, 4}, ids(results))
	for _, r := range results {
		assert.Equal(t, 100, r.Score)
	}
}

func TestRank_ExactIgnoredOutsideTags(t *testing.T) {
	entities := []store.Entity{named(1, "webby", "none")}

	results := search.Rank(entities, search.Query{Text: "web", Scope: search.ScopeName, ExactMatch: true, Limit: 10})
	require.Len(t, results, 1, "exact_match only applies to the tags scope")
	assert.Equal(t, 100, results[0].Score)
}

func TestRank_WhitespaceQueryIsFuzzy(t *testing.T) {
	entities := []store.Entity{named(1, "two words"), named(2, "single")}

	results := search.Rank(entities, search.Query{Text: " ", Scope: search.ScopeName, Limit: 10})
	assert.Equal(t, []int64{1}, ids(results))
}

func TestRank_Window(t *testing.T) {
	var entities []store.Entity
	for i := int64(1); i <= 6; i++ {
		entities = append(entities, named(i, "foo"))
	}
	q := search.Query{Text: "foo", Scope: search.ScopeName, Limit: -1}
	full := search.Rank(entities, q)
	require.Len(t, full, 6)

	for skip := 0; skip <= 7; skip++ {
		for limit := 0; limit <= 7; limit++ {
			q.Skip, q.Limit = skip, limit
			got := search.Rank(entities, q)

			lo := min(skip, len(full))
			hi := min(skip+limit, len(full))
			assert.Equal(t, ids(full[lo:hi]), ids(got), "skip=%d limit=%d", skip, limit)
		}
	}
}

func TestWindow(t *testing.T) {
	items := []int{1, 2, 3, 4}
	assert.Equal(t, []int{2, 3}, search.Window(items, 1, 2))
	assert.Equal(t, []int{3, 4}, search.Window(items, 2, 10))
	assert.Equal(t, []int{2, 3, 4}, search.Window(items, 1, -1))
	assert.Empty(t, search.Window(items, 4, 1))
	assert.Empty(t, search.Window(items, 0, 0))
	assert.Equal(t, []int{1}, search.Window(items, -3, 1))
}

func TestScope_Valid(t *testing.T) {
	for _, sc := range search.Scopes {
		assert.True(t, sc.Valid(), sc)
	}
	assert.True(t, search.Scope("").Valid())
	assert.False(t, search.Scope("bogus").Valid())
	assert.False(t, search.Scope("Name").Valid())
}
