// errors.go defines sentinel errors for validation failures.
//
// Detail is added by wrapping these with fmt.Errorf in the validation
// functions; the sentinel itself only names the category.

package validate

import "errors"

var (
	ErrInvalidEntity    = errors.New("invalid entity")
	ErrInvalidAttribute = errors.New("invalid attribute")
	ErrInvalidTag       = errors.New("invalid tag")
	ErrInvalidScope     = errors.New("invalid search field")
	ErrInvalidWindow    = errors.New("invalid skip/limit")
)
