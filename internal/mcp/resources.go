// resources.go implements MCP resource handlers for entity access.
//
// Resources give read-only access by URI so a client can pull an entity
// into context without a tool call. URIs follow entlog://entities/{id}.

package mcp

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jpl-au/entlog/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
)

// ErrInvalidURI indicates a malformed resource URI.
var ErrInvalidURI = errors.New("invalid URI")

const entityURIPrefix = "entlog://entities/"

func (h *handlers) readEntityResource(ctx context.Context, uri string) ([]mcp.ResourceContents, error) {
	if h.svc == nil {
		return nil, errors.New(ErrNotInitialised)
	}

	id, err := parseEntityURI(uri)
	if err != nil {
		return nil, err
	}

	e, err := h.svc.Entity(ctx, id)
	if err != nil {
		return nil, err
	}
	data, err := store.MarshalJSON(e.ToJSON())
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// parseEntityURI extracts the id from entlog://entities/{id}.
func parseEntityURI(uri string) (int64, error) {
	rest, ok := strings.CutPrefix(uri, entityURIPrefix)
	if !ok || rest == "" {
		return 0, fmt.Errorf("%w: %s", ErrInvalidURI, uri)
	}
	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid id %s", ErrInvalidURI, rest)
	}
	return id, nil
}
