// Package exporter writes the catalog out of the database, either as a JSON
// dump that importer can read back or as one markdown file per entity.
package exporter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/jpl-au/entlog/internal/progress"
	"github.com/jpl-au/entlog/internal/service"
	"github.com/jpl-au/entlog/internal/show"
	"github.com/jpl-au/entlog/internal/store"
	"github.com/jpl-au/entlog/internal/version"
)

// DumpVersion is the dump format version written by Run.
const DumpVersion = 1

// Dump is the JSON export format.
type Dump struct {
	Version    int                `json:"version"`
	Generator  string             `json:"generator,omitempty"`
	ExportedAt string             `json:"exported_at"`
	Entities   []store.EntityJSON `json:"entities"`
	Tags       []string           `json:"tags"`
}

// Options configures an export operation.
type Options struct {
	Force    bool // Overwrite existing files
	Markdown bool // One <id>.md file per entity under dst
}

// Result contains the outcome of an export operation.
type Result struct {
	Exported int      // Number of entities exported
	Paths    []string // Filesystem paths that were written
}

// Run exports every entity. A JSON dump goes to dst, or to w when dst is ""
// or "-". Markdown export requires dst to name a directory.
func Run(ctx context.Context, w io.Writer, svc service.Service, dst string, opts Options) (Result, error) {
	entities, err := svc.AllEntities(ctx)
	if err != nil {
		return Result{}, err
	}
	if opts.Markdown {
		return exportMarkdown(w, entities, dst, opts)
	}
	return exportJSON(ctx, w, svc, entities, dst, opts)
}

// Build assembles a dump of entities and every registered tag.
func Build(ctx context.Context, svc service.Service, entities []store.Entity) (Dump, error) {
	d := Dump{
		Version:    DumpVersion,
		Generator:  "entlog " + version.Short(),
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Entities:   make([]store.EntityJSON, len(entities)),
		Tags:       []string{},
	}
	for i := range entities {
		d.Entities[i] = entities[i].ToJSON()
	}
	stats, err := svc.Stats(ctx)
	if err != nil {
		return d, err
	}
	tags, err := svc.ListTags(ctx, "", 0, int(stats.Tags))
	if err != nil {
		return d, err
	}
	for _, t := range tags {
		d.Tags = append(d.Tags, t.Name)
	}
	return d, nil
}

func exportJSON(ctx context.Context, w io.Writer, svc service.Service, entities []store.Entity, dst string, opts Options) (Result, error) {
	var result Result

	d, err := Build(ctx, svc, entities)
	if err != nil {
		return result, err
	}
	data, err := store.MarshalJSON(d)
	if err != nil {
		return result, err
	}
	data = append(data, '\n')

	if dst == "" || dst == "-" {
		_, err := w.Write(data)
		result.Exported = len(entities)
		return result, err
	}

	if !opts.Force {
		if _, err := os.Stat(dst); err == nil {
			return result, fmt.Errorf("file exists: %s (use --force to overwrite)", dst)
		}
	}
	if dir := filepath.Dir(dst); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return result, fmt.Errorf("creating directory: %w", err)
		}
	}
	if err := os.WriteFile(dst, data, 0644); err != nil {
		return result, err
	}

	result.Exported = len(entities)
	result.Paths = []string{dst}
	fmt.Fprintf(w, "Exported %d entities -> %s\n", len(entities), dst)
	return result, nil
}

// exportMarkdown writes <id>.md files inside dst through an os.Root so that
// nothing escapes the destination directory.
func exportMarkdown(w io.Writer, entities []store.Entity, dst string, opts Options) (Result, error) {
	var result Result
	if dst == "" || dst == "-" {
		return result, errors.New("markdown export needs a destination directory")
	}
	if len(entities) == 0 {
		return result, errors.New("no entities to export")
	}

	if err := os.MkdirAll(dst, 0755); err != nil {
		return result, fmt.Errorf("creating destination directory: %w", err)
	}
	root, err := os.OpenRoot(dst)
	if err != nil {
		return result, fmt.Errorf("opening destination root: %w", err)
	}
	defer root.Close()

	prog := progress.New("Exporting", len(entities))
	defer prog.Done()

	for i := range entities {
		e := &entities[i]
		name := fmt.Sprintf("%d.md", e.ID)
		if err := writeFileInRoot(root, name, show.Markdown(e), opts.Force); err != nil {
			return result, err
		}

		prog.Increment()
		prog.Print()
		outPath := filepath.Join(dst, name)
		result.Paths = append(result.Paths, outPath)
		result.Exported++
		fmt.Fprintf(w, "Exported: %d (%s) -> %s\n", e.ID, e.Name, outPath)
	}
	return result, nil
}

func writeFileInRoot(root *os.Root, name, content string, force bool) error {
	if !force {
		if _, err := root.Stat(name); err == nil {
			return fmt.Errorf("file exists: %s (use --force to overwrite)", name)
		}
	}
	f, err := root.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("creating file %s: %w", name, err)
	}
	defer f.Close()

	_, err = f.WriteString(content)
	return err
}
