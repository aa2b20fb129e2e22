package filter

import (
	"sort"
	"strings"

	"github.com/alfredjeanlab/counsel/internal/model"
)

// categoryAll is the category value that selects every record.
const categoryAll = "all"

// predicate reports whether a record satisfies one criterion.
type predicate func(fields map[string]any) bool

// Matcher is a compiled set of criteria for one schema. The zero Matcher
// matches every record. A Matcher holds no mutable state and may be shared.
type Matcher struct {
	preds  []predicate
	sortID bool
}

// Compile prepares criteria for repeated matching against records of schema.
// Blank values and keys the schema does not know are ignored.
func Compile(schema model.Schema, c model.Criteria) Matcher {
	var m Matcher
	// Iterate keys in sorted order so predicate order is deterministic.
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		raw := c[key]
		if strings.TrimSpace(raw) == "" {
			continue
		}
		switch key {
		case model.CriterionSearch:
			if len(schema.SearchFields) > 0 {
				m.preds = append(m.preds, searchPredicate(schema.SearchFields, Normalize(raw)))
			}
			continue
		case model.CriterionSort:
			m.sortID = Normalize(raw) == "id"
			continue
		}

		fd, ok := schema.Field(key)
		if !ok {
			continue
		}
		switch fd.Type {
		case model.FieldTypeText:
			m.preds = append(m.preds, textPredicate(fd.Name, Normalize(raw)))
		case model.FieldTypeCategory:
			want := Normalize(raw)
			if want == categoryAll {
				continue
			}
			m.preds = append(m.preds, categoryPredicate(fd.Name, want))
		case model.FieldTypeNumeric:
			b, err := ParseBucket(raw)
			if err != nil {
				m.preds = append(m.preds, matchNone)
				continue
			}
			m.preds = append(m.preds, numericPredicate(fd.Name, b))
		}
	}
	return m
}

// Match reports whether rec satisfies every compiled criterion. A nil record
// has no fields, so it passes only when nothing is constrained.
func (m Matcher) Match(rec *model.Record) bool {
	var fields map[string]any
	if rec != nil {
		fields = rec.Fields
	}
	for _, p := range m.preds {
		if !p(fields) {
			return false
		}
	}
	return true
}

// Apply returns the records matching m as a new slice, in input order
// unless the criteria asked for identifier order.
func (m Matcher) Apply(records []*model.Record) []*model.Record {
	out := make([]*model.Record, 0, len(records))
	for _, r := range records {
		if m.Match(r) {
			out = append(out, r)
		}
	}
	if m.sortID {
		sort.SliceStable(out, func(i, j int) bool { return recordID(out[i]) < recordID(out[j]) })
	}
	return out
}

// Apply filters records of schema by criteria. See Compile.
func Apply(records []*model.Record, schema model.Schema, c model.Criteria) []*model.Record {
	return Compile(schema, c).Apply(records)
}

// Match reports whether a single record satisfies criteria.
func Match(rec *model.Record, schema model.Schema, c model.Criteria) bool {
	return Compile(schema, c).Match(rec)
}

func recordID(r *model.Record) string {
	if r == nil {
		return ""
	}
	return r.ID
}

func matchNone(map[string]any) bool { return false }

func textPredicate(field, want string) predicate {
	return func(fields map[string]any) bool {
		s, ok := fields[field].(string)
		return ok && strings.Contains(Normalize(s), want)
	}
}

func searchPredicate(searchFields []string, want string) predicate {
	return func(fields map[string]any) bool {
		for _, f := range searchFields {
			if s, ok := fields[f].(string); ok && strings.Contains(Normalize(s), want) {
				return true
			}
		}
		return false
	}
}

func categoryPredicate(field, want string) predicate {
	return func(fields map[string]any) bool {
		s, ok := fields[field].(string)
		return ok && Normalize(s) == want
	}
}

func numericPredicate(field string, b Bucket) predicate {
	return func(fields map[string]any) bool {
		v, ok := numericValue(fields[field])
		return ok && b.Contains(v)
	}
}
