// entity.go implements validation of caller-supplied entity input.

package validate

import (
	"fmt"
	"strings"

	"github.com/jpl-au/entlog/internal/store"
)

// EntityOptions bounds entity input. Zero values mean no limit.
type EntityOptions struct {
	MaxField int // Max bytes in any single text field
	MaxTags  int // Max tags per entity
}

// Entity validates in before it is normalised and stored.
//
// Validation rules:
//   - entity_type, name and locator must be non-blank
//   - no text field may contain a null byte or exceed MaxField
//   - at most MaxTags tags, each valid after trimming (blank tags are allowed
//     here because the service drops them)
//   - every attribute key must be non-blank and, when the attribute carries
//     its own key, match the map key
func Entity(in store.EntityInput, opts EntityOptions) error {
	required := []struct{ name, value string }{
		{"entity_type", in.EntityType},
		{"name", in.Name},
		{"locator", in.Locator},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidEntity, f.name)
		}
	}

	fields := []struct{ name, value string }{
		{"entity_type", in.EntityType},
		{"name", in.Name},
		{"locator", in.Locator},
		{"description", in.Description},
		{"image_url", in.ImageURL},
	}
	for _, f := range fields {
		if err := text(f.name, f.value, opts.MaxField); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidEntity, err)
		}
	}

	if opts.MaxTags > 0 && len(in.Tags) > opts.MaxTags {
		return fmt.Errorf("%w: %d tags exceeds limit of %d", ErrInvalidEntity, len(in.Tags), opts.MaxTags)
	}
	for _, t := range in.Tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if err := Tag(t, opts.MaxField); err != nil {
			return err
		}
	}

	for k, a := range in.Attributes {
		if err := Attribute(k, a, opts.MaxField); err != nil {
			return err
		}
	}
	return nil
}

// Attribute validates one dynamic attribute stored under key.
func Attribute(key string, a store.AttributeInput, maxField int) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("%w: empty key", ErrInvalidAttribute)
	}
	if a.Key != "" && a.Key != key {
		return fmt.Errorf("%w: key %q stored under %q", ErrInvalidAttribute, a.Key, key)
	}
	fields := []struct{ name, value string }{
		{"key", key},
		{"description", a.Description},
		{"url", a.URL},
		{"remarks", a.Remarks},
	}
	for _, f := range fields {
		if err := text(f.name, f.value, maxField); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidAttribute, key, err)
		}
	}
	return nil
}

// text checks a single free-text field.
func text(name, value string, maxLen int) error {
	if strings.ContainsRune(value, 0) {
		return fmt.Errorf("null byte in %s", name)
	}
	if maxLen > 0 && len(value) > maxLen {
		return fmt.Errorf("%s longer than %d bytes", name, maxLen)
	}
	return nil
}
