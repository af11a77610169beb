// Package format provides output formatting utilities for CLI display.
//
// Centralises formatting logic so that command implementations focus on
// catalog calls while this package handles column alignment and layout.
package format

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jpl-au/entlog/internal/search"
	"github.com/jpl-au/entlog/internal/store"
)

// List prints entities one per line: id, name and locator.
func List(w io.Writer, entities []store.Entity) error {
	for _, e := range entities {
		fmt.Fprintf(w, "%d  %s  %s\n", e.ID, e.Name, e.Locator)
	}
	return nil
}

// Long prints entities as an aligned table with type, tags and update date.
func Long(w io.Writer, entities []store.Entity) error {
	if len(entities) == 0 {
		return nil
	}

	idW, typeW, nameW := len("ID"), len("TYPE"), len("NAME")
	for _, e := range entities {
		idW = max(idW, len(fmt.Sprint(e.ID)))
		typeW = max(typeW, len(e.EntityType))
		nameW = max(nameW, len(e.Name))
	}

	fmt.Fprintf(w, "%-*s  %-*s  %-*s  %-10s  %s\n", idW, "ID", typeW, "TYPE", nameW, "NAME", "UPDATED", "TAGS")
	for _, e := range entities {
		date := time.Unix(e.UpdatedAt, 0).Format("2006-01-02")
		tags := strings.Join(e.Tags, ",")
		if tags == "" {
			tags = "-"
		}
		fmt.Fprintf(w, "%-*d  %-*s  %-*s  %s  %s\n", idW, e.ID, typeW, e.EntityType, nameW, e.Name, date, tags)
	}
	return nil
}

// SearchResults prints ranked results with their score first.
func SearchResults(w io.Writer, results []search.Result) error {
	for _, r := range results {
		fmt.Fprintf(w, "%3d  %d  %s  %s\n", r.Score, r.Entity.ID, r.Entity.Name, r.Entity.Locator)
	}
	return nil
}

// IDs prints one entity id per line.
func IDs(w io.Writer, results []search.Result) error {
	for _, r := range results {
		fmt.Fprintln(w, r.Entity.ID)
	}
	return nil
}

// Tags prints tag registry entries: id and name.
func Tags(w io.Writer, tags []store.Tag) error {
	for _, t := range tags {
		fmt.Fprintf(w, "%d  %s\n", t.ID, t.Name)
	}
	return nil
}
