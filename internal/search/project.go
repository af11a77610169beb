package search

import (
	"strings"

	"github.com/jpl-au/entlog/internal/store"
)

// Project builds the searchable text of e for scope. The text is returned as
// stored; case folding is left to the ranker.
//
// The "all" projection joins name, description, locator, type and tags with
// single spaces (absent fields leave an empty segment), then appends
// " key description remarks" for each active attribute in key order.
// Unknown scopes project like "all".
func Project(e store.Entity, scope Scope) string {
	switch scope {
	case ScopeName:
		return e.Name
	case ScopeDescription:
		return e.Description
	case ScopeTags:
		return strings.Join(e.Tags, " ")
	case ScopeLocator:
		return e.Locator
	case ScopeType:
		return e.EntityType
	}

	var b strings.Builder
	b.WriteString(e.Name)
	b.WriteByte(' ')
	b.WriteString(e.Description)
	b.WriteByte(' ')
	b.WriteString(e.Locator)
	b.WriteByte(' ')
	b.WriteString(e.EntityType)
	b.WriteByte(' ')
	b.WriteString(strings.Join(e.Tags, " "))

	for _, k := range e.AttributeKeys() {
		a := e.Attributes[k]
		if !a.IsActive() {
			continue
		}
		b.WriteByte(' ')
		b.WriteString(a.Key)
		b.WriteByte(' ')
		b.WriteString(a.Description)
		b.WriteByte(' ')
		b.WriteString(a.Remarks)
	}
	return b.String()
}
