package catalog

import (
	"context"

	"github.com/jpl-au/entlog/internal/search"
	"github.com/jpl-au/entlog/internal/validate"
)

// Search validates q, loads every entity and ranks them.
func (s *Service) Search(ctx context.Context, q search.Query) ([]search.Result, error) {
	if err := validate.Scope(q.Scope); err != nil {
		return nil, err
	}
	if err := validate.Window(q.Skip, q.Limit); err != nil {
		return nil, err
	}
	entities, err := s.store.AllEntities(ctx)
	if err != nil {
		return nil, err
	}
	return search.Rank(entities, q), nil
}
