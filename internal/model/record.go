package model

import (
	"fmt"
	"maps"
	"time"
)

// Kind identifies which roster a record belongs to.
type Kind string

const (
	KindLawyer       Kind = "lawyer"
	KindCustomer     Kind = "customer"
	KindHistory      Kind = "history"
	KindCase         Kind = "case"
	KindAppointment  Kind = "appointment"
	KindNotification Kind = "notification"
)

// Kinds lists every record kind in declaration order.
var Kinds = []Kind{
	KindLawyer,
	KindCustomer,
	KindHistory,
	KindCase,
	KindAppointment,
	KindNotification,
}

// String returns the string representation of the kind.
func (k Kind) String() string {
	return string(k)
}

// IsValid checks whether the kind is a known value.
func (k Kind) IsValid() bool {
	switch k {
	case KindLawyer, KindCustomer, KindHistory, KindCase, KindAppointment, KindNotification:
		return true
	}
	return false
}

// IDPrefix returns the prefix used for generated IDs of this kind.
func (k Kind) IDPrefix() string {
	switch k {
	case KindLawyer:
		return "lw-"
	case KindCustomer:
		return "cu-"
	case KindHistory:
		return "hi-"
	case KindCase:
		return "cs-"
	case KindAppointment:
		return "ap-"
	case KindNotification:
		return "nt-"
	}
	return "rec-"
}

// ParseKind converts s into a Kind, rejecting unknown values.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.IsValid() {
		return "", fmt.Errorf("unknown record kind %q", s)
	}
	return k, nil
}

// Record is a single searchable roster entry. Field values are strings,
// numbers (float64 after JSON decoding, or any Go integer/float), or booleans.
type Record struct {
	ID        string         `json:"id"`
	Kind      Kind           `json:"kind"`
	Fields    map[string]any `json:"fields"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// Clone returns a copy of r whose field map can be modified independently.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	c := *r
	c.Fields = maps.Clone(r.Fields)
	return &c
}

// String returns the named field as a string, or "" when it is absent or not
// a string.
func (r *Record) String(name string) string {
	s, _ := r.Fields[name].(string)
	return s
}
