// Package tag provides tag registry operations for the CLI layer.
//
// Renames and deletes cascade into entity tag sets inside the catalog; this
// package only orchestrates the calls and prints the outcome.
package tag

import (
	"context"
	"fmt"
	"io"

	"github.com/jpl-au/entlog/internal/format"
	"github.com/jpl-au/entlog/internal/service"
	"github.com/jpl-au/entlog/internal/store"
)

// Result contains the outcome of a tag operation.
type Result struct {
	Action  string          `json:"action"`
	Tag     *store.TagJSON  `json:"tag,omitempty"`
	Tags    []store.TagJSON `json:"tags,omitempty"`
	Created int             `json:"created,omitempty"`
}

// List prints registry entries matching query.
func List(ctx context.Context, w io.Writer, svc service.Service, query string, skip, limit int) (Result, error) {
	result := Result{Action: "list", Tags: []store.TagJSON{}}

	tags, err := svc.ListTags(ctx, query, skip, limit)
	if err != nil {
		return result, err
	}
	for i := range tags {
		result.Tags = append(result.Tags, tags[i].ToJSON())
	}
	return result, format.Tags(w, tags)
}

// Rename renames tag id to name everywhere it is used.
func Rename(ctx context.Context, w io.Writer, svc service.Service, id int64, name string) (Result, error) {
	result := Result{Action: "rename"}

	t, err := svc.RenameTag(ctx, id, name)
	if err != nil {
		return result, err
	}
	j := t.ToJSON()
	result.Tag = &j

	fmt.Fprintf(w, "Renamed tag %d to %q\n", id, t.Name)
	return result, nil
}

// Delete removes tag id from the registry and every entity.
func Delete(ctx context.Context, w io.Writer, svc service.Service, id int64) (Result, error) {
	result := Result{Action: "delete"}

	t, err := svc.DeleteTag(ctx, id)
	if err != nil {
		return result, err
	}
	j := t.ToJSON()
	result.Tag = &j

	fmt.Fprintf(w, "Deleted tag %q\n", t.Name)
	return result, nil
}

// Sync registers every tag found on an entity but missing from the registry.
func Sync(ctx context.Context, w io.Writer, svc service.Service) (Result, error) {
	result := Result{Action: "sync"}

	n, err := svc.ReconcileTags(ctx)
	if err != nil {
		return result, err
	}
	result.Created = n

	fmt.Fprintf(w, "Registered %d tag(s)\n", n)
	return result, nil
}
