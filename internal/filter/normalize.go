// Package filter narrows record rosters by user-supplied criteria.
//
// Filtering is a pure function of (records, schema, criteria): it never
// mutates its inputs, preserves input order, and never fails. Records that
// cannot be evaluated against a criterion are excluded; a nil entry counts
// as a record with no fields.
package filter

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Normalize folds s for comparison: NFKC composition, full Unicode case
// folding, and surrounding whitespace removed.
func Normalize(s string) string {
	// A Caser is stateful, so each call gets its own.
	return strings.TrimSpace(cases.Fold().String(norm.NFKC.String(s)))
}
