package model

import (
	"fmt"
	"strings"
)

// ValidationError holds a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation failure on a named field.
type FieldError struct {
	Field   string
	Message string
}

// Error formats the validation error as a semicolon-separated list of field messages.
func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// HasErrors reports whether the validation error contains any field errors.
func (e *ValidationError) HasErrors() bool {
	return len(e.Errors) > 0
}

// ValidateRecord checks a Record for constraint violations.
// It returns a *ValidationError if any rules fail, or nil if the record is valid.
func ValidateRecord(r *Record) error {
	var ve ValidationError

	if strings.TrimSpace(r.ID) == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "id", Message: "is required"})
	}

	if !r.Kind.IsValid() {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   "kind",
			Message: fmt.Sprintf("invalid value %q", r.Kind),
		})
		return &ve
	}

	if err := ValidateFields(r.Fields, SchemaFor(r.Kind).Fields); err != nil {
		if fe, ok := err.(*ValidationError); ok {
			ve.Errors = append(ve.Errors, fe.Errors...)
		}
	}

	if ve.HasErrors() {
		return &ve
	}
	return nil
}
