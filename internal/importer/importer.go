// Package importer loads a JSON dump written by exporter back into a catalog.
// Entities receive new ids; the dump's ids and timestamps are not preserved.
package importer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jpl-au/entlog/internal/exporter"
	"github.com/jpl-au/entlog/internal/progress"
	"github.com/jpl-au/entlog/internal/service"
	"github.com/jpl-au/entlog/internal/store"
)

// ErrUnsupportedVersion is returned for dumps written by a newer format.
var ErrUnsupportedVersion = errors.New("unsupported dump version")

// Options configures an import operation.
type Options struct {
	DryRun bool // Show what would be imported without importing
}

// Result contains the outcome of an import operation.
type Result struct {
	Imported int     // Entities created (or that would be created)
	IDs      []int64 // New ids, empty on a dry run
	Tags     int     // Tags in the dump's registry
}

// Load reads a dump from src, or from stdin when src is "-".
func Load(src string, stdin io.Reader) (exporter.Dump, error) {
	if src == "-" {
		return Read(stdin)
	}
	f, err := os.Open(src)
	if err != nil {
		return exporter.Dump{}, err
	}
	defer f.Close()
	return Read(f)
}

// Read decodes and checks a dump.
func Read(r io.Reader) (exporter.Dump, error) {
	var d exporter.Dump
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return d, fmt.Errorf("decoding dump: %w", err)
	}
	if d.Version < 1 || d.Version > exporter.DumpVersion {
		return d, fmt.Errorf("%w: %d", ErrUnsupportedVersion, d.Version)
	}
	return d, nil
}

// Input converts an exported entity into create input.
func Input(e store.EntityJSON) store.EntityInput {
	in := store.EntityInput{
		EntityType:  e.EntityType,
		Name:        e.Name,
		Locator:     e.Locator,
		Description: e.Description,
		Tags:        e.Tags,
		ImageURL:    e.ImageURL,
	}
	if len(e.Attributes) > 0 {
		in.Attributes = make(map[string]store.AttributeInput, len(e.Attributes))
		for k, a := range e.Attributes {
			ai := store.AttributeInput{Key: a.Key, Description: a.Description, URL: a.URL, Remarks: a.Remarks}
			if !a.Active {
				off := false
				ai.Active = &off
			}
			in.Attributes[k] = ai
		}
	}
	return in
}

// Run creates every entity in d and then registers the dump's tags. svc may
// be nil on a dry run.
func Run(ctx context.Context, w io.Writer, svc service.Service, d exporter.Dump, opts Options) (Result, error) {
	result := Result{Tags: len(d.Tags)}
	if len(d.Entities) == 0 && len(d.Tags) == 0 {
		return result, nil
	}

	prog := progress.New("Importing", len(d.Entities))
	defer prog.Done()

	for _, ej := range d.Entities {
		if opts.DryRun {
			fmt.Fprintf(w, "Would import: %d (%s) %s\n", ej.ID, ej.EntityType, ej.Name)
			result.Imported++
			prog.Increment()
			prog.Print()
			continue
		}

		e, err := svc.CreateEntity(ctx, Input(ej))
		if err != nil {
			return result, fmt.Errorf("importing entity %d (%s): %w", ej.ID, ej.Name, err)
		}
		result.Imported++
		result.IDs = append(result.IDs, e.ID)
		prog.Increment()
		prog.Print()
		fmt.Fprintf(w, "Imported: %d -> %d (%s)\n", ej.ID, e.ID, e.Name)
	}

	if !opts.DryRun {
		svc.SyncTags(ctx, d.Tags)
	}
	return result, nil
}
