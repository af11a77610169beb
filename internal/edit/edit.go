// Package edit applies field-level changes to an existing entity.
//
// The catalog replaces whole entities on update, so edit loads the current
// state, overlays only the fields the caller set and writes the result back.
// The before/after difference is printed so a user can see what changed.
package edit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jpl-au/entlog/internal/diff"
	"github.com/jpl-au/entlog/internal/service"
	"github.com/jpl-au/entlog/internal/store"
)

// ErrNoChanges is returned when Changes sets nothing.
var ErrNoChanges = errors.New("no changes given")

// ErrInvalidAttribute is returned for attribute flags that are not key=value.
var ErrInvalidAttribute = errors.New("attribute must be key=description")

// Changes lists the field edits to apply. Nil pointers leave a field alone.
type Changes struct {
	EntityType  *string
	Name        *string
	Locator     *string
	Description *string
	ImageURL    *string

	Tags    []string // Replace the whole tag set when non-nil
	AddTags []string
	RmTags  []string

	SetAttrs []string // "key=description"
	RmAttrs  []string
}

// Empty reports whether c makes no changes.
func (c Changes) Empty() bool {
	return c.EntityType == nil && c.Name == nil && c.Locator == nil &&
		c.Description == nil && c.ImageURL == nil && c.Tags == nil &&
		len(c.AddTags) == 0 && len(c.RmTags) == 0 &&
		len(c.SetAttrs) == 0 && len(c.RmAttrs) == 0
}

// Options configures an edit.
type Options struct {
	Colour bool // ANSI colours in the printed diff
}

// Result contains the outcome of an edit.
type Result struct {
	Before *store.Entity
	After  *store.Entity
	Diff   diff.Result
}

// Apply overlays c onto in.
func Apply(in *store.EntityInput, c Changes) error {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&in.EntityType, c.EntityType)
	set(&in.Name, c.Name)
	set(&in.Locator, c.Locator)
	set(&in.Description, c.Description)
	set(&in.ImageURL, c.ImageURL)

	if c.Tags != nil {
		in.Tags = append([]string(nil), c.Tags...)
	}
	in.Tags = append(in.Tags, c.AddTags...)
	if len(c.RmTags) > 0 {
		drop := make(map[string]bool, len(c.RmTags))
		for _, t := range c.RmTags {
			drop[strings.TrimSpace(t)] = true
		}
		kept := in.Tags[:0]
		for _, t := range in.Tags {
			if !drop[strings.TrimSpace(t)] {
				kept = append(kept, t)
			}
		}
		in.Tags = kept
	}

	for _, kv := range c.SetAttrs {
		k, v, ok := strings.Cut(kv, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return fmt.Errorf("%w: %q", ErrInvalidAttribute, kv)
		}
		if in.Attributes == nil {
			in.Attributes = make(map[string]store.AttributeInput)
		}
		a := in.Attributes[k]
		a.Key = k
		a.Description = v
		in.Attributes[k] = a
	}
	for _, k := range c.RmAttrs {
		delete(in.Attributes, strings.TrimSpace(k))
	}
	return nil
}

// Run applies c to entity id and prints the resulting diff to w.
func Run(ctx context.Context, w io.Writer, svc service.Service, id int64, c Changes, opts Options) (Result, error) {
	var result Result
	if c.Empty() {
		return result, ErrNoChanges
	}

	before, err := svc.Entity(ctx, id)
	if err != nil {
		return result, err
	}

	in := before.Input()
	if err := Apply(&in, c); err != nil {
		return result, err
	}

	after, err := svc.UpdateEntity(ctx, id, in)
	if err != nil {
		return result, err
	}

	result = Result{Before: before, After: after, Diff: diff.Entities(before, after)}
	if !result.Diff.Changed() {
		fmt.Fprintf(w, "Entity %d unchanged\n", id)
		return result, nil
	}
	fmt.Fprint(w, result.Diff.Format(opts.Colour))
	return result, nil
}
