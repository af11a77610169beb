// query.go validates search and listing parameters.

package validate

import (
	"fmt"

	"github.com/jpl-au/entlog/internal/search"
)

// Scope rejects search fields the projector does not know.
func Scope(sc search.Scope) error {
	if !sc.Valid() {
		return fmt.Errorf("%w: %q (want one of %v)", ErrInvalidScope, string(sc), search.Scopes)
	}
	return nil
}

// Window rejects negative pagination values.
func Window(skip, limit int) error {
	if skip < 0 {
		return fmt.Errorf("%w: skip %d is negative", ErrInvalidWindow, skip)
	}
	if limit < 0 {
		return fmt.Errorf("%w: limit %d is negative", ErrInvalidWindow, limit)
	}
	return nil
}
