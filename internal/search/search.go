// Package search ranks catalog entities against a free-text query.
//
// The engine is a full scan: every call projects each candidate into a
// searchable string, scores it with PartialRatio and orders the survivors.
// It knows nothing about storage or transport; callers hand it a slice of
// entities in storage order and receive an ordered, windowed slice back.
package search

import (
	"sort"
	"strings"

	"github.com/jpl-au/entlog/internal/store"
)

// Threshold is the score a fuzzy match must exceed to be returned.
const Threshold = 60

// Scope selects which entity fields feed the searchable text.
type Scope string

// Supported scopes. ScopeAll is also used when the scope is empty.
const (
	ScopeAll         Scope = "all"
	ScopeName        Scope = "name"
	ScopeDescription Scope = "description"
	ScopeTags        Scope = "tags"
	ScopeLocator     Scope = "locator"
	ScopeType        Scope = "type"
)

// Scopes lists every accepted scope value in display order.
var Scopes = []Scope{ScopeAll, ScopeName, ScopeDescription, ScopeTags, ScopeLocator, ScopeType}

// Valid reports whether sc is empty or one of Scopes.
func (sc Scope) Valid() bool {
	if sc == "" {
		return true
	}
	for _, s := range Scopes {
		if s == sc {
			return true
		}
	}
	return false
}

// Query describes one search request.
type Query struct {
	Text       string
	Scope      Scope
	ExactMatch bool // only honoured with ScopeTags
	Skip       int
	Limit      int // negative means no limit
}

// Result pairs an entity with its score. Score is 0 for the recency listing
// returned by an empty query and 100 for exact tag matches.
type Result struct {
	Entity store.Entity
	Score  int
}

// Rank scores entities against q and returns the requested window.
//
// An empty query lists everything newest first. An exact tag query keeps
// literal tag holders in input order. Anything else is fuzzy matched,
// filtered by Threshold and stably sorted by score, so ties keep input order.
func Rank(entities []store.Entity, q Query) []Result {
	if len(entities) == 0 {
		return []Result{}
	}

	var results []Result
	switch {
	case q.Text == "":
		results = make([]Result, len(entities))
		for i, e := range entities {
			results[i] = Result{Entity: e}
		}
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].Entity.ID > results[j].Entity.ID
		})

	case q.ExactMatch && q.Scope == ScopeTags:
		for _, e := range entities {
			if e.HasTag(q.Text) {
				results = append(results, Result{Entity: e, Score: 100})
			}
		}

	default:
		text := strings.ToLower(q.Text)
		for _, e := range entities {
			score := PartialRatio(text, strings.ToLower(Project(e, q.Scope)))
			if score > Threshold {
				results = append(results, Result{Entity: e, Score: score})
			}
		}
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].Score > results[j].Score
		})
	}

	return Window(results, q.Skip, q.Limit)
}

// Window returns results[skip:skip+limit], clamped to the slice. A negative
// limit keeps everything after skip.
func Window[T any](items []T, skip, limit int) []T {
	if skip < 0 {
		skip = 0
	}
	if limit == 0 || skip >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit > 0 && skip+limit < end {
		end = skip + limit
	}
	return items[skip:end]
}
