// Package store defines catalog persistence types and the Store interface.
// Implementations handle the actual database operations while consumers
// depend only on this interface, enabling testing and alternative backends.
package store

import (
	"encoding/json"
	"sort"
	"time"
)

// Entity is a cataloged record. Tags are a set: order is the order the caller
// supplied them in, duplicates never appear.
type Entity struct {
	ID          int64                // Assigned by storage, immutable
	EntityType  string               // Classification label (e.g., "website")
	Name        string               // Display name
	Locator     string               // External reference such as a URL or address
	Description string               // Optional free text
	Tags        []string             // Tag names, set semantics
	ImageURL    string               // Optional image or media reference
	Attributes  map[string]Attribute // Dynamic attributes keyed by attribute key
	CreatedAt   int64                // Unix timestamp of creation
	UpdatedAt   int64                // Unix timestamp of last update
}

// HasTag reports whether name is literally present in the tag set.
func (e *Entity) HasTag(name string) bool {
	for _, t := range e.Tags {
		if t == name {
			return true
		}
	}
	return false
}

// AttributeKeys returns attribute keys in sorted order so callers that walk
// attributes produce deterministic output.
func (e *Entity) AttributeKeys() []string {
	keys := make([]string, 0, len(e.Attributes))
	for k := range e.Attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Attribute is a dynamic key/value record attached to an entity. It is stored
// as JSON inside the entity row, so these tags define the column format.
type Attribute struct {
	Key         string `json:"key"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url,omitempty"`
	Remarks     string `json:"remarks,omitempty"`
	Active      *bool  `json:"active,omitempty"` // nil means active
	CreatedAt   int64  `json:"created_at,omitempty"`
	UpdatedAt   int64  `json:"updated_at,omitempty"`
}

// IsActive reports whether the attribute takes part in search text.
func (a Attribute) IsActive() bool {
	return a.Active == nil || *a.Active
}

// Tag is an entry in the tag registry. Names are unique across the registry.
type Tag struct {
	ID        int64
	Name      string
	CreatedAt int64
}

// EntityInput carries caller-supplied fields for create and update. The JSON
// shape is shared by the HTTP API, MCP tools and the importer.
type EntityInput struct {
	EntityType  string                    `json:"entity_type"`
	Name        string                    `json:"name"`
	Locator     string                    `json:"locator"`
	Description string                    `json:"description,omitempty"`
	Tags        []string                  `json:"tags,omitempty"`
	ImageURL    string                    `json:"image_url,omitempty"`
	Attributes  map[string]AttributeInput `json:"attributes,omitempty"`
}

// AttributeInput is the caller-supplied part of an Attribute.
type AttributeInput struct {
	Key         string `json:"key"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url,omitempty"`
	Remarks     string `json:"remarks,omitempty"`
	Active      *bool  `json:"active,omitempty"`
}

// Input converts an entity back into the input shape. Used when a caller edits
// a subset of fields and the rest must be carried over unchanged.
func (e *Entity) Input() EntityInput {
	in := EntityInput{
		EntityType:  e.EntityType,
		Name:        e.Name,
		Locator:     e.Locator,
		Description: e.Description,
		Tags:        append([]string(nil), e.Tags...),
		ImageURL:    e.ImageURL,
	}
	if len(e.Attributes) > 0 {
		in.Attributes = make(map[string]AttributeInput, len(e.Attributes))
		for k, a := range e.Attributes {
			in.Attributes[k] = AttributeInput{
				Key:         a.Key,
				Description: a.Description,
				URL:         a.URL,
				Remarks:     a.Remarks,
				Active:      a.Active,
			}
		}
	}
	return in
}

// EntityJSON is the API-friendly representation of an Entity with RFC3339
// timestamps.
type EntityJSON struct {
	ID          int64                    `json:"id"`
	EntityType  string                   `json:"entity_type"`
	Name        string                   `json:"name"`
	Locator     string                   `json:"locator"`
	Description string                   `json:"description,omitempty"`
	Tags        []string                 `json:"tags"`
	ImageURL    string                   `json:"image_url,omitempty"`
	Attributes  map[string]AttributeJSON `json:"attributes"`
	CreatedAt   string                   `json:"created_at"`
	UpdatedAt   string                   `json:"updated_at"`
}

// AttributeJSON is the API-friendly representation of an Attribute.
type AttributeJSON struct {
	Key         string `json:"key"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url,omitempty"`
	Remarks     string `json:"remarks,omitempty"`
	Active      bool   `json:"active"`
	CreatedAt   string `json:"created_at,omitempty"`
	UpdatedAt   string `json:"updated_at,omitempty"`
}

// ToJSON converts an Entity to its API representation.
func (e *Entity) ToJSON() EntityJSON {
	j := EntityJSON{
		ID:          e.ID,
		EntityType:  e.EntityType,
		Name:        e.Name,
		Locator:     e.Locator,
		Description: e.Description,
		Tags:        e.Tags,
		ImageURL:    e.ImageURL,
		Attributes:  make(map[string]AttributeJSON, len(e.Attributes)),
		CreatedAt:   formatTime(e.CreatedAt),
		UpdatedAt:   formatTime(e.UpdatedAt),
	}
	if j.Tags == nil {
		j.Tags = []string{}
	}
	for k, a := range e.Attributes {
		j.Attributes[k] = AttributeJSON{
			Key:         a.Key,
			Description: a.Description,
			URL:         a.URL,
			Remarks:     a.Remarks,
			Active:      a.IsActive(),
			CreatedAt:   formatTime(a.CreatedAt),
			UpdatedAt:   formatTime(a.UpdatedAt),
		}
	}
	return j
}

// TagJSON is the API-friendly representation of a Tag.
type TagJSON struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at,omitempty"`
}

// ToJSON converts a Tag to its API representation.
func (t *Tag) ToJSON() TagJSON {
	return TagJSON{ID: t.ID, Name: t.Name, CreatedAt: formatTime(t.CreatedAt)}
}

// formatTime renders a unix timestamp as RFC3339 UTC, or "" for zero.
func formatTime(ts int64) string {
	if ts == 0 {
		return ""
	}
	return time.Unix(ts, 0).UTC().Format(time.RFC3339)
}

// MarshalJSON encodes a value with indentation for human-readable CLI output.
// Use this instead of json.Marshal when the output will be displayed to users.
func MarshalJSON(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// Stats provides aggregate catalog statistics for operational visibility.
type Stats struct {
	Entities       int64 `json:"entities"`        // Entity count
	EntityTypes    int64 `json:"entity_types"`    // Distinct entity_type values
	Tags           int64 `json:"tags"`            // Tag registry size
	TagAssignments int64 `json:"tag_assignments"` // Rows in the entity/tag join table
	OldestEntity   int64 `json:"oldest_entity"`   // Unix timestamp of earliest entity
	NewestUpdate   int64 `json:"newest_update"`   // Unix timestamp of most recent entity update
}
