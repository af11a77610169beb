// Package diff renders human-readable differences between two states of an
// entity, as printed by "entlog edit".
package diff

import (
	"fmt"
	"slices"
	"strings"

	"github.com/jpl-au/entlog/internal/store"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// contextLines is the number of unchanged lines shown before/after changes.
// When equal sections exceed 2*contextLines, they're collapsed with "...".
const contextLines = 3

// Result holds diff output.
type Result struct {
	Old  string // old label
	New  string // new label
	Diff string // plain diff text
}

// Changed reports whether the diff contains any insertions or deletions.
func (r Result) Changed() bool {
	for _, line := range strings.Split(r.Diff, "\n") {
		if strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "+ ") {
			return true
		}
	}
	return false
}

// Entities diffs two states of an entity using their Text rendering.
func Entities(before, after *store.Entity) Result {
	return Compute(Text(before), Text(after),
		fmt.Sprintf("entity %d (before)", before.ID),
		fmt.Sprintf("entity %d (after)", after.ID))
}

// Text renders an entity as one "field: value" line per field so that line
// diffs show which field changed. Attributes follow in key order. Timestamps
// are omitted; they change on every edit.
func Text(e *store.Entity) string {
	var b strings.Builder
	fmt.Fprintf(&b, "entity_type: %s\n", e.EntityType)
	fmt.Fprintf(&b, "name: %s\n", e.Name)
	fmt.Fprintf(&b, "locator: %s\n", e.Locator)
	fmt.Fprintf(&b, "description: %s\n", e.Description)
	fmt.Fprintf(&b, "image_url: %s\n", e.ImageURL)
	fmt.Fprintf(&b, "tags: %s\n", strings.Join(e.Tags, ", "))
	for _, k := range e.AttributeKeys() {
		a := e.Attributes[k]
		state := ""
		if !a.IsActive() {
			state = " (inactive)"
		}
		fmt.Fprintf(&b, "attribute %s:%s description=%q url=%q remarks=%q\n", k, state, a.Description, a.URL, a.Remarks)
	}
	return b.String()
}

// Compute returns a diff between old and new content.
func Compute(oldContent, newContent, oldLabel, newLabel string) Result {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(oldContent, newContent)
	d := dmp.DiffMain(a, b, false)
	d = dmp.DiffCharsToLines(d, lines)

	return Result{
		Old:  oldLabel,
		New:  newLabel,
		Diff: format(d),
	}
}

// format writes each diff line with a two-character marker: "- " removed,
// "+ " added, "  " unchanged. Unchanged runs longer than 2*contextLines keep
// only their edges around a "  ..." marker.
func format(diffs []diffmatchpatch.Diff) string {
	marker := map[diffmatchpatch.Operation]string{
		diffmatchpatch.DiffDelete: "- ",
		diffmatchpatch.DiffInsert: "+ ",
		diffmatchpatch.DiffEqual:  "  ",
	}

	var b strings.Builder
	for _, d := range diffs {
		body := strings.TrimSuffix(d.Text, "\n")
		if body == "" {
			continue
		}
		lines := strings.Split(body, "\n")
		if d.Type == diffmatchpatch.DiffEqual && len(lines) > 2*contextLines {
			head, tail := lines[:contextLines], lines[len(lines)-contextLines:]
			lines = append(append(slices.Clone(head), "..."), tail...)
		}
		for _, l := range lines {
			b.WriteString(marker[d.Type])
			b.WriteString(l)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

const (
	ansiRed   = "\033[31m"
	ansiGreen = "\033[32m"
	ansiReset = "\033[0m"
)

// Colourise paints removed lines red and added lines green.
func Colourise(d string) string {
	var b strings.Builder
	for line := range strings.Lines(d) {
		line = strings.TrimSuffix(line, "\n")
		if line == "" {
			continue
		}
		switch line[0] {
		case '-':
			line = ansiRed + line + ansiReset
		case '+':
			line = ansiGreen + line + ansiReset
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

// Format returns the full diff with header.
func (r Result) Format(colour bool) string {
	header := fmt.Sprintf("--- %s\n+++ %s\n", r.Old, r.New)
	if colour {
		return header + Colourise(r.Diff)
	}
	return header + r.Diff
}
