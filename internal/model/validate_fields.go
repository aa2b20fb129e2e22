package model

import (
	"fmt"
	"sort"
	"strings"
)

// ValidateFields checks that fields conforms to the provided field
// definitions. It rejects unknown keys, validates types, and enforces required
// constraints. Returns a *ValidationError on failure, nil on success.
func ValidateFields(fields map[string]any, defs []FieldDef) error {
	defsByName := make(map[string]*FieldDef, len(defs))
	for i := range defs {
		defsByName[defs[i].Name] = &defs[i]
	}

	var ve ValidationError

	// Reject unknown keys, in a stable order so messages are reproducible.
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if _, ok := defsByName[key]; !ok {
			ve.Errors = append(ve.Errors, FieldError{
				Field:   key,
				Message: "unknown field",
			})
		}
	}

	for _, d := range defs {
		val, present := fields[d.Name]
		if !present || val == nil {
			if d.Required {
				ve.Errors = append(ve.Errors, FieldError{
					Field:   d.Name,
					Message: "is required",
				})
			}
			continue
		}
		if err := validateFieldValue(d, val); err != nil {
			ve.Errors = append(ve.Errors, FieldError{
				Field:   d.Name,
				Message: err.Error(),
			})
		}
	}

	if ve.HasErrors() {
		return &ve
	}
	return nil
}

func validateFieldValue(d FieldDef, val any) error {
	switch d.Type {
	case FieldTypeText:
		if _, ok := val.(string); !ok {
			return fmt.Errorf("must be a string")
		}
	case FieldTypeCategory:
		s, ok := val.(string)
		if !ok {
			return fmt.Errorf("must be a string")
		}
		if len(d.Values) > 0 && !containsFold(d.Values, s) {
			return fmt.Errorf("must be one of %v", d.Values)
		}
	case FieldTypeNumeric:
		switch val.(type) {
		case float64, float32, int, int32, int64:
		default:
			return fmt.Errorf("must be a number")
		}
	case FieldTypeFlag:
		if _, ok := val.(bool); !ok {
			return fmt.Errorf("must be a boolean")
		}
	default:
		return fmt.Errorf("unknown field type %q", d.Type)
	}
	return nil
}

func contains(slice []string, val string) bool {
	for _, s := range slice {
		if s == val {
			return true
		}
	}
	return false
}

func containsFold(slice []string, val string) bool {
	for _, s := range slice {
		if strings.EqualFold(s, val) {
			return true
		}
	}
	return false
}
