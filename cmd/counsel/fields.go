package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alfredjeanlab/counsel/internal/filter"
	"github.com/alfredjeanlab/counsel/internal/model"
)

// parseFieldValues turns key=value flags into record fields, typing each
// value by the kind's schema. Fields the schema does not know stay strings.
func parseFieldValues(kind model.Kind, pairs []string) (map[string]any, error) {
	schema := model.SchemaFor(kind)
	fields := make(map[string]any, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid field %q: must be key=value", p)
		}
		def, known := schema.Field(k)
		if !known {
			fields[k] = v
			continue
		}
		switch def.Type {
		case model.FieldTypeNumeric:
			n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				return nil, fmt.Errorf("field %q: %q is not a number", k, v)
			}
			fields[k] = n
		case model.FieldTypeFlag:
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				return nil, fmt.Errorf("field %q: %q is not true or false", k, v)
			}
			fields[k] = b
		default:
			fields[k] = v
		}
	}
	return fields, nil
}

// canonicalRanges rewrites criteria on the kind's numeric fields to the
// canonical bucket label, so "6 – 10 years" is sent as "6-10". Labels that
// are not ranges are rejected here instead of silently matching nothing.
func canonicalRanges(kind model.Kind, c model.Criteria) (model.Criteria, error) {
	schema := model.SchemaFor(kind)
	for k, v := range c.Active() {
		def, ok := schema.Field(k)
		if !ok || def.Type != model.FieldTypeNumeric {
			continue
		}
		b, err := filter.ParseBucket(v)
		if err != nil {
			return nil, fmt.Errorf("criterion %s: %w", k, err)
		}
		c = c.With(k, b.String())
	}
	return c, nil
}
