package model

import (
	"strings"
	"testing"
)

// validLawyer returns a lawyer Record that passes all validation rules.
func validLawyer() Record {
	return Record{
		ID:   "lw-1",
		Kind: KindLawyer,
		Fields: map[string]any{
			"name":           "Adv. Priya Sharma",
			"specialization": "Criminal Law",
			"location":       "New Delhi",
			"experience":     float64(8),
			"status":         "verified",
			"available":      true,
		},
	}
}

// fieldErrors extracts a *ValidationError from err or fails the test.
func fieldErrors(t *testing.T, err error) []FieldError {
	t.Helper()
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
	ve, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	return ve.Errors
}

// hasFieldError reports whether the error list contains an error for the given field.
func hasFieldError(errs []FieldError, field string) bool {
	for _, fe := range errs {
		if fe.Field == field {
			return true
		}
	}
	return false
}

func TestValidate_ValidLawyer(t *testing.T) {
	r := validLawyer()
	if err := ValidateRecord(&r); err != nil {
		t.Fatalf("expected valid record, got %v", err)
	}
}

func TestValidate_IDRequired(t *testing.T) {
	r := validLawyer()
	r.ID = "  "
	errs := fieldErrors(t, ValidateRecord(&r))
	if !hasFieldError(errs, "id") {
		t.Error("expected error on field 'id' for blank id")
	}
}

func TestValidate_InvalidKind(t *testing.T) {
	r := validLawyer()
	r.Kind = "judge"
	errs := fieldErrors(t, ValidateRecord(&r))
	if !hasFieldError(errs, "kind") {
		t.Error("expected error on field 'kind'")
	}
}

func TestValidate_RequiredField(t *testing.T) {
	r := validLawyer()
	delete(r.Fields, "name")
	errs := fieldErrors(t, ValidateRecord(&r))
	if !hasFieldError(errs, "name") {
		t.Error("expected error on missing required field 'name'")
	}
}

func TestValidate_UnknownField(t *testing.T) {
	r := validLawyer()
	r.Fields["shoe_size"] = "9"
	errs := fieldErrors(t, ValidateRecord(&r))
	if !hasFieldError(errs, "shoe_size") {
		t.Error("expected error on unknown field")
	}
}

func TestValidate_FieldTypes(t *testing.T) {
	for _, tc := range []struct {
		field string
		value any
	}{
		{"name", 42.0},
		{"experience", "eight"},
		{"available", "yes"},
		{"status", "suspended"},
		{"status", 1.0},
	} {
		r := validLawyer()
		r.Fields[tc.field] = tc.value
		errs := fieldErrors(t, ValidateRecord(&r))
		if !hasFieldError(errs, tc.field) {
			t.Errorf("%s=%v: expected field error", tc.field, tc.value)
		}
	}
}

func TestValidate_CategoryCaseInsensitive(t *testing.T) {
	r := validLawyer()
	r.Fields["status"] = "Verified"
	if err := ValidateRecord(&r); err != nil {
		t.Fatalf("expected mixed-case category to validate, got %v", err)
	}
}

func TestValidationError_Message(t *testing.T) {
	ve := &ValidationError{Errors: []FieldError{
		{Field: "name", Message: "is required"},
		{Field: "status", Message: "must be a string"},
	}}
	got := ve.Error()
	if !strings.HasPrefix(got, "validation failed: ") {
		t.Errorf("unexpected prefix: %q", got)
	}
	if !strings.Contains(got, "name: is required; status: must be a string") {
		t.Errorf("unexpected message: %q", got)
	}
}

func TestSchemaFor_AllKinds(t *testing.T) {
	for _, k := range Kinds {
		s := SchemaFor(k)
		if len(s.Fields) == 0 {
			t.Errorf("%s: schema has no fields", k)
		}
		for _, name := range s.SearchFields {
			fd, ok := s.Field(name)
			if !ok {
				t.Errorf("%s: search field %q not in schema", k, name)
				continue
			}
			if fd.Type != FieldTypeText {
				t.Errorf("%s: search field %q has type %s, want text", k, name, fd.Type)
			}
		}
	}
}
