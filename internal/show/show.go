// Package show renders a single entity as markdown.
//
// The markdown is plain text that reads well when piped; the CLI passes it
// through glamour when stdout is a terminal.
package show

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jpl-au/entlog/internal/service"
	"github.com/jpl-au/entlog/internal/store"
)

// Markdown renders e as a markdown document: a heading, a field list, the
// description and an attribute table.
func Markdown(e *store.Entity) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", e.Name)
	fmt.Fprintf(&b, "- **ID:** %d\n", e.ID)
	fmt.Fprintf(&b, "- **Type:** %s\n", e.EntityType)
	fmt.Fprintf(&b, "- **Locator:** %s\n", e.Locator)
	if len(e.Tags) > 0 {
		fmt.Fprintf(&b, "- **Tags:** %s\n", strings.Join(e.Tags, ", "))
	}
	if e.ImageURL != "" {
		fmt.Fprintf(&b, "- **Image:** %s\n", e.ImageURL)
	}
	fmt.Fprintf(&b, "- **Created:** %s\n", stamp(e.CreatedAt))
	fmt.Fprintf(&b, "- **Updated:** %s\n", stamp(e.UpdatedAt))

	if e.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", e.Description)
	}

	if len(e.Attributes) > 0 {
		b.WriteString("\n## Attributes\n\n")
		b.WriteString("| Key | Description | URL | Remarks | Active |\n")
		b.WriteString("|-----|-------------|-----|---------|--------|\n")
		for _, k := range e.AttributeKeys() {
			a := e.Attributes[k]
			active := "yes"
			if !a.IsActive() {
				active = "no"
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
				cell(k), cell(a.Description), cell(a.URL), cell(a.Remarks), active)
		}
	}
	return b.String()
}

// cell escapes table separators and line breaks.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

func stamp(ts int64) string {
	if ts == 0 {
		return "-"
	}
	return time.Unix(ts, 0).UTC().Format("2006-01-02 15:04")
}

// Run loads entity id and writes its markdown to w.
func Run(ctx context.Context, w io.Writer, svc service.Service, id int64) (*store.Entity, error) {
	e, err := svc.Entity(ctx, id)
	if err != nil {
		return nil, err
	}
	_, err = io.WriteString(w, Markdown(e))
	return e, err
}
