// tag.go implements tag string validation.
//
// Tags are free-form labels. Callers trim them before validating; only
// clearly broken input (empty, null bytes, oversized) is rejected.

package validate

import (
	"fmt"
	"strings"
)

// Tag validates a trimmed tag name. maxLen of 0 means no limit.
func Tag(t string, maxLen int) error {
	if t == "" {
		return fmt.Errorf("%w: empty tag", ErrInvalidTag)
	}
	if strings.ContainsRune(t, 0) {
		return fmt.Errorf("%w: null byte in tag", ErrInvalidTag)
	}
	if maxLen > 0 && len(t) > maxLen {
		return fmt.Errorf("%w: longer than %d bytes", ErrInvalidTag, maxLen)
	}
	return nil
}
