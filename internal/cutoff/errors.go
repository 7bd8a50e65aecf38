package cutoff

import (
	"errors"
	"fmt"
)

// ErrNotReady is returned by queries and catalogue calls made before the
// first successful build has been swapped in.
var ErrNotReady = errors.New("no cutoff generation built yet")

// InvalidQueryError names the query field that failed validation against the
// live catalogue. It is surfaced verbatim, never coerced into an empty result.
type InvalidQueryError struct {
	Field string
	Value string
}

func (e *InvalidQueryError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid query: missing %s", e.Field)
	}
	return fmt.Sprintf("invalid query: unknown %s %q", e.Field, e.Value)
}

func invalidQuery(field, value string) error {
	return &InvalidQueryError{Field: field, Value: value}
}
