// tags.go keeps the tag registry in step with entity tag sets.
//
// Design: Registration is best effort. Entities are the source of truth for
// which tags are in use, so a failed registration never fails the entity
// write that triggered it; ReconcileTags repairs the registry afterwards.

package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jpl-au/entlog/internal/log"
	"github.com/jpl-au/entlog/internal/store"
	"github.com/jpl-au/entlog/internal/validate"
)

// SyncTags ensures a registry entry exists for every distinct trimmed name.
func (s *Service) SyncTags(ctx context.Context, names []string) {
	s.syncTags(ctx, names)
}

// syncTags registers names and returns how many entries were created.
func (s *Service) syncTags(ctx context.Context, names []string) int {
	created := 0
	for _, name := range NormaliseTags(names) {
		_, err := s.store.CreateTag(ctx, name)
		switch {
		case err == nil:
			created++
		case errors.Is(err, store.ErrAlreadyExists):
		default:
			log.Event("catalog:sync_tags", "create").Tag(name).Write(err)
		}
	}
	return created
}

// ListTags lists registry entries.
func (s *Service) ListTags(ctx context.Context, query string, skip, limit int) ([]store.Tag, error) {
	if err := validate.Window(skip, limit); err != nil {
		return nil, err
	}
	return s.store.ListTags(ctx, strings.TrimSpace(query), skip, limit)
}

// RenameTag renames tag id to name across the registry and every entity.
// A missing id reports ErrNotFound whatever the new name.
func (s *Service) RenameTag(ctx context.Context, id int64, name string) (*store.Tag, error) {
	if _, err := s.store.Tag(ctx, id); err != nil {
		return nil, fmt.Errorf("tag %d: %w", id, err)
	}
	name = strings.TrimSpace(name)
	if err := validate.Tag(name, s.cfg.MaxField()); err != nil {
		return nil, err
	}
	t, n, err := s.store.RenameTag(ctx, id, name)
	if err != nil {
		return nil, fmt.Errorf("tag %d: %w", id, err)
	}
	log.Event("catalog:rename_tag", "rename").Tag(t.Name).Count(int(n)).Detail("id", id).Write(nil)
	return t, nil
}

// DeleteTag removes tag id from the registry and every entity.
func (s *Service) DeleteTag(ctx context.Context, id int64) (*store.Tag, error) {
	t, n, err := s.store.DeleteTag(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("tag %d: %w", id, err)
	}
	log.Event("catalog:delete_tag", "delete").Tag(t.Name).Count(int(n)).Write(nil)
	return t, nil
}

// ReconcileTags registers every tag in use on an entity that the registry
// is missing.
func (s *Service) ReconcileTags(ctx context.Context) (int, error) {
	names, err := s.store.DistinctEntityTags(ctx)
	if err != nil {
		return 0, err
	}
	return s.syncTags(ctx, names), nil
}
