package model

import (
	"maps"
	"net/url"
	"strings"
)

// Reserved criteria keys. They are not field names.
const (
	// CriterionSearch matches free text against a schema's search fields.
	CriterionSearch = "search"
	// CriterionSort re-orders the result; only "id" is recognised.
	CriterionSort = "sort"
)

// Criteria maps field names to filter values. An absent key or an empty
// value leaves the field unconstrained.
type Criteria map[string]string

// Active returns the criteria whose values are non-blank.
func (c Criteria) Active() Criteria {
	out := make(Criteria, len(c))
	for k, v := range c {
		if strings.TrimSpace(v) != "" {
			out[k] = v
		}
	}
	return out
}

// With returns a copy of c with key set to value.
func (c Criteria) With(key, value string) Criteria {
	out := maps.Clone(c)
	if out == nil {
		out = Criteria{}
	}
	out[key] = value
	return out
}

// Merge returns a copy of c overlaid with other. Keys in other win.
func (c Criteria) Merge(other Criteria) Criteria {
	out := maps.Clone(c)
	if out == nil {
		out = Criteria{}
	}
	maps.Copy(out, other)
	return out
}

// ParseCriteria builds criteria from query parameters, keeping the first
// value of each key. Keys listed in skip are not treated as criteria.
func ParseCriteria(q url.Values, skip ...string) Criteria {
	c := make(Criteria, len(q))
	for k, vs := range q {
		if len(vs) == 0 || contains(skip, k) {
			continue
		}
		c[k] = vs[0]
	}
	return c
}

// ParseCriteriaPairs parses "key=value" pairs as given on the command line.
func ParseCriteriaPairs(pairs []string) (Criteria, error) {
	c := make(Criteria, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || strings.TrimSpace(k) == "" {
			return nil, &ValidationError{Errors: []FieldError{{Field: p, Message: "must be key=value"}}}
		}
		c[strings.TrimSpace(k)] = v
	}
	return c, nil
}
