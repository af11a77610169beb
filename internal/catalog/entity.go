// entity.go implements entity lifecycle operations for the catalog.
//
// Design: Callers send whole entities (EntityInput). Create and update both
// validate, normalise tags and then stamp attributes; the only asymmetry is
// that update carries created_at over for attribute keys that survive.

package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/jpl-au/entlog/internal/store"
	"github.com/jpl-au/entlog/internal/validate"
)

// CreateEntity validates in, stores it and registers its tags.
func (s *Service) CreateEntity(ctx context.Context, in store.EntityInput) (*store.Entity, error) {
	if err := validate.Entity(in, s.entityOptions()); err != nil {
		return nil, err
	}

	now := s.now().Unix()
	e := &store.Entity{
		EntityType:  in.EntityType,
		Name:        in.Name,
		Locator:     in.Locator,
		Description: in.Description,
		Tags:        NormaliseTags(in.Tags),
		ImageURL:    in.ImageURL,
		Attributes:  mergeAttributes(nil, in.Attributes, now),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.CreateEntity(ctx, e); err != nil {
		return nil, err
	}
	s.SyncTags(ctx, e.Tags)
	return e, nil
}

// Entity returns one entity.
func (s *Service) Entity(ctx context.Context, id int64) (*store.Entity, error) {
	e, err := s.store.Entity(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("entity %d: %w", id, err)
	}
	return e, nil
}

// UpdateEntity replaces the fields of id with in.
func (s *Service) UpdateEntity(ctx context.Context, id int64, in store.EntityInput) (*store.Entity, error) {
	if err := validate.Entity(in, s.entityOptions()); err != nil {
		return nil, err
	}

	old, err := s.store.Entity(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("entity %d: %w", id, err)
	}

	now := s.now().Unix()
	e := &store.Entity{
		ID:          id,
		EntityType:  in.EntityType,
		Name:        in.Name,
		Locator:     in.Locator,
		Description: in.Description,
		Tags:        NormaliseTags(in.Tags),
		ImageURL:    in.ImageURL,
		Attributes:  mergeAttributes(old.Attributes, in.Attributes, now),
		UpdatedAt:   now,
	}
	if err := s.store.UpdateEntity(ctx, e); err != nil {
		return nil, fmt.Errorf("entity %d: %w", id, err)
	}
	s.SyncTags(ctx, e.Tags)
	return e, nil
}

// DeleteEntity removes id and returns the deleted entity.
func (s *Service) DeleteEntity(ctx context.Context, id int64) (*store.Entity, error) {
	e, err := s.store.DeleteEntity(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("entity %d: %w", id, err)
	}
	return e, nil
}

// ListEntities returns a newest-first window.
func (s *Service) ListEntities(ctx context.Context, skip, limit int) ([]store.Entity, error) {
	if err := validate.Window(skip, limit); err != nil {
		return nil, err
	}
	return s.store.ListEntities(ctx, skip, limit)
}

// AllEntities returns every entity in storage order.
func (s *Service) AllEntities(ctx context.Context) ([]store.Entity, error) {
	return s.store.AllEntities(ctx)
}

// NormaliseTags trims each tag, drops empty ones and removes duplicates
// keeping the first occurrence. Returns nil for an empty result.
func NormaliseTags(tags []string) []string {
	var out []string
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// mergeAttributes builds the stored attribute set from input. Keys present in
// old keep their created_at; every key gets updated_at = now.
func mergeAttributes(old map[string]store.Attribute, in map[string]store.AttributeInput, now int64) map[string]store.Attribute {
	out := make(map[string]store.Attribute, len(in))
	for k, a := range in {
		created := now
		if prev, ok := old[k]; ok && prev.CreatedAt != 0 {
			created = prev.CreatedAt
		}
		key := a.Key
		if key == "" {
			key = k
		}
		out[k] = store.Attribute{
			Key:         key,
			Description: a.Description,
			URL:         a.URL,
			Remarks:     a.Remarks,
			Active:      a.Active,
			CreatedAt:   created,
			UpdatedAt:   now,
		}
	}
	return out
}
