// Package ls provides newest-first entity listing for the CLI.
package ls

import (
	"context"
	"io"

	"github.com/jpl-au/entlog/internal/format"
	"github.com/jpl-au/entlog/internal/service"
	"github.com/jpl-au/entlog/internal/store"
)

// Options configures a list operation.
type Options struct {
	Skip  int
	Limit int
	Long  bool // Table with type, tags and update date
}

// Result contains the outcome of a list operation.
type Result struct {
	Entities []store.Entity
}

// ToJSON converts the result to its JSON form.
func (r Result) ToJSON() []store.EntityJSON {
	out := make([]store.EntityJSON, len(r.Entities))
	for i := range r.Entities {
		out[i] = r.Entities[i].ToJSON()
	}
	return out
}

// Run lists entities and writes formatted output to w.
func Run(ctx context.Context, w io.Writer, svc service.Service, opts Options) (Result, error) {
	var result Result

	entities, err := svc.ListEntities(ctx, opts.Skip, opts.Limit)
	if err != nil {
		return result, err
	}
	result.Entities = entities

	if opts.Long {
		return result, format.Long(w, entities)
	}
	return result, format.List(w, entities)
}
