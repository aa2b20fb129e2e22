package filter

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Bucket is an inclusive numeric range. Open buckets have no upper bound.
type Bucket struct {
	Min  float64
	Max  float64
	Open bool
}

// Contains reports whether v falls inside the bucket.
func (b Bucket) Contains(v float64) bool {
	if math.IsNaN(v) || v < b.Min {
		return false
	}
	return b.Open || v <= b.Max
}

// String renders the bucket in the label form ParseBucket accepts.
func (b Bucket) String() string {
	lo := strconv.FormatFloat(b.Min, 'f', -1, 64)
	if b.Open {
		return lo + "+"
	}
	if b.Min == b.Max {
		return lo
	}
	return lo + "-" + strconv.FormatFloat(b.Max, 'f', -1, 64)
}

var unitSuffixes = []string{"years", "year", "yrs", "yr"}

// ParseBucket parses a bucket label such as "6-10", "1–5 years", "15+" or
// "15+ years". A bare number is a single-value bucket.
func ParseBucket(label string) (Bucket, error) {
	s := Normalize(label)
	for _, suf := range unitSuffixes {
		if strings.HasSuffix(s, suf) {
			s = strings.TrimSpace(strings.TrimSuffix(s, suf))
			break
		}
	}
	// En and em dashes come from display labels.
	s = strings.NewReplacer("–", "-", "—", "-").Replace(s)
	if s == "" {
		return Bucket{}, fmt.Errorf("empty bucket label %q", label)
	}

	if lo, ok := strings.CutSuffix(s, "+"); ok {
		from, err := parseBound(lo)
		if err != nil {
			return Bucket{}, fmt.Errorf("bucket %q: %w", label, err)
		}
		return Bucket{Min: from, Open: true}, nil
	}

	// Split on the first dash after a leading digit so negative lower bounds
	// are not mistaken for separators.
	if i := strings.Index(s[1:], "-"); i >= 0 {
		lo, hi := s[:i+1], s[i+2:]
		from, err := parseBound(lo)
		if err != nil {
			return Bucket{}, fmt.Errorf("bucket %q: %w", label, err)
		}
		to, err := parseBound(hi)
		if err != nil {
			return Bucket{}, fmt.Errorf("bucket %q: %w", label, err)
		}
		if to < from {
			return Bucket{}, fmt.Errorf("bucket %q: upper bound below lower bound", label)
		}
		return Bucket{Min: from, Max: to}, nil
	}

	v, err := parseBound(s)
	if err != nil {
		return Bucket{}, fmt.Errorf("bucket %q: %w", label, err)
	}
	return Bucket{Min: v, Max: v}, nil
}

func parseBound(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid bound %q", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid bound %q", s)
	}
	return v, nil
}

// numericValue extracts a finite number from a record field value. Numeric
// strings are accepted; anything else is malformed.
func numericValue(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case string:
		p, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		f = p
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
