// File path: internal/casebook/errors.go
package casebook

import (
	"errors"
	"fmt"
)

// ErrNotFound reports that the referenced entity (or a party image) does not
// exist.
var ErrNotFound = errors.New("not found")

// MissingFieldError reports a mandatory input field that was absent or blank.
// It is always returned before any storage statement runs.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

func missing(field string) error {
	return &MissingFieldError{Field: field}
}
