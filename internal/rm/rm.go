// Package rm deletes entities. Deletion is permanent; tags the entity used
// stay in the registry.
package rm

import (
	"context"
	"fmt"
	"io"

	"github.com/jpl-au/entlog/internal/service"
)

// Result contains the outcome of a delete operation.
type Result struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Run deletes each id in turn, stopping at the first failure.
func Run(ctx context.Context, w io.Writer, svc service.Service, ids ...int64) ([]Result, error) {
	var results []Result
	for _, id := range ids {
		e, err := svc.DeleteEntity(ctx, id)
		if err != nil {
			return results, err
		}
		results = append(results, Result{ID: e.ID, Name: e.Name})
		fmt.Fprintf(w, "Deleted entity %d (%s)\n", e.ID, e.Name)
	}
	return results, nil
}
