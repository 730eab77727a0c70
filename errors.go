package emc

import (
	"fmt"
	"sort"
	"strings"
)

// NotAuthorizedError is returned when the caller fails the access
// check guarding an action. It always surfaces to the caller
// unchanged.
type NotAuthorizedError struct {
	Action  string
	Message string
}

func (e *NotAuthorizedError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("not authorized for %s: %s", e.Action, e.Message)
	}
	return fmt.Sprintf("not authorized for %s", e.Action)
}

// ValidationError carries per-field validation failures, keyed by
// field name.
type ValidationError struct {
	Errors map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "validation failed"
	}
	fields := make([]string, 0, len(e.Errors))
	for f := range e.Errors {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e.Errors[f])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Errors: map[string]string{field: message}}
}
