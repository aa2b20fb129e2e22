package model

import (
	"net/url"
	"testing"
)

func TestKind_IsValid(t *testing.T) {
	for _, k := range Kinds {
		if !k.IsValid() {
			t.Errorf("Kind(%q).IsValid() = false, want true", k)
		}
	}
	for _, k := range []Kind{"", "judge", "Lawyer"} {
		if k.IsValid() {
			t.Errorf("Kind(%q).IsValid() = true, want false", k)
		}
	}
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("case")
	if err != nil || k != KindCase {
		t.Fatalf("ParseKind(case) = %q, %v", k, err)
	}
	if _, err := ParseKind("court"); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

func TestKind_IDPrefixUnique(t *testing.T) {
	seen := map[string]Kind{}
	for _, k := range Kinds {
		p := k.IDPrefix()
		if other, dup := seen[p]; dup {
			t.Errorf("prefix %q shared by %s and %s", p, k, other)
		}
		seen[p] = k
	}
}

func TestRecord_CloneIsIndependent(t *testing.T) {
	r := &Record{ID: "lw-1", Kind: KindLawyer, Fields: map[string]any{"name": "A"}}
	c := r.Clone()
	c.Fields["name"] = "B"
	if r.String("name") != "A" {
		t.Errorf("original mutated through clone: %q", r.String("name"))
	}
	var nilRec *Record
	if nilRec.Clone() != nil {
		t.Error("Clone of nil should be nil")
	}
}

func TestCriteria_Active(t *testing.T) {
	c := Criteria{"name": "priya", "location": "", "language": "   "}
	got := c.Active()
	if len(got) != 1 || got["name"] != "priya" {
		t.Errorf("Active() = %v, want only name", got)
	}
}

func TestCriteria_WithAndMergeCopy(t *testing.T) {
	base := Criteria{"status": "pending"}
	w := base.With("name", "raj")
	if _, ok := base["name"]; ok {
		t.Error("With mutated the receiver")
	}
	m := base.Merge(Criteria{"status": "verified"})
	if base["status"] != "pending" || m["status"] != "verified" {
		t.Errorf("Merge: base=%v merged=%v", base, m)
	}
	if w["status"] != "pending" || w["name"] != "raj" {
		t.Errorf("With = %v", w)
	}
	var nilC Criteria
	if got := nilC.With("a", "b"); got["a"] != "b" {
		t.Errorf("With on nil = %v", got)
	}
}

func TestParseCriteria(t *testing.T) {
	q := url.Values{"name": {"priya", "ignored"}, "tab": {"history"}, "location": {"delhi"}}
	c := ParseCriteria(q, "tab")
	if c["name"] != "priya" || c["location"] != "delhi" {
		t.Errorf("ParseCriteria = %v", c)
	}
	if _, ok := c["tab"]; ok {
		t.Error("skipped key was parsed")
	}
}

func TestParseCriteriaPairs(t *testing.T) {
	c, err := ParseCriteriaPairs([]string{"specialization=criminal", "experience=15+", "search=a=b"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c["specialization"] != "criminal" || c["experience"] != "15+" || c["search"] != "a=b" {
		t.Errorf("ParseCriteriaPairs = %v", c)
	}
	if _, err := ParseCriteriaPairs([]string{"novalue"}); err == nil {
		t.Error("expected error for pair without '='")
	}
}
