// Package find provides fuzzy entity search for the CLI.
//
// This wraps service.Search with output formatting, separating the ranking
// from presentation.
package find

import (
	"context"
	"io"

	"github.com/jpl-au/entlog/internal/format"
	"github.com/jpl-au/entlog/internal/search"
	"github.com/jpl-au/entlog/internal/service"
	"github.com/jpl-au/entlog/internal/store"
)

// Options configures a search operation.
type Options struct {
	Field   search.Scope // Field to match against (empty for all)
	Exact   bool         // Literal tag membership, only with Field=tags
	Skip    int
	Limit   int
	IDsOnly bool // Only output entity ids
}

// Result contains the outcome of a search operation.
type Result struct {
	Results []search.Result
}

// Hit is one ranked entity in JSON output.
type Hit struct {
	store.EntityJSON
	Score int `json:"score"`
}

// ToJSON converts the result to its JSON form.
func (r Result) ToJSON() []Hit {
	out := make([]Hit, len(r.Results))
	for i := range r.Results {
		out[i] = Hit{EntityJSON: r.Results[i].Entity.ToJSON(), Score: r.Results[i].Score}
	}
	return out
}

// Run searches entities and writes output to w.
func Run(ctx context.Context, w io.Writer, svc service.Service, query string, opts Options) (Result, error) {
	var result Result

	results, err := svc.Search(ctx, search.Query{
		Text:       query,
		Scope:      opts.Field,
		ExactMatch: opts.Exact,
		Skip:       opts.Skip,
		Limit:      opts.Limit,
	})
	if err != nil {
		return result, err
	}
	result.Results = results

	if opts.IDsOnly {
		return result, format.IDs(w, results)
	}
	return result, format.SearchResults(w, results)
}
