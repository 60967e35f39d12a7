package model

import "fmt"

// ValidationError marks input that failed a required-field or range
// check. Mutating operations return it without touching the store.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("model: invalid %s: %s", e.Field, e.Reason)
}
