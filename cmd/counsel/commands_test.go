package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/alfredjeanlab/counsel/internal/client"
	"github.com/alfredjeanlab/counsel/internal/fixtures"
	"github.com/alfredjeanlab/counsel/internal/model"
	"github.com/alfredjeanlab/counsel/internal/server"
	"github.com/alfredjeanlab/counsel/internal/store/memory"
	"github.com/alfredjeanlab/counsel/internal/ui"
)

// runCLI executes the root command against a seeded roster server and
// returns what it printed.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	ui.ForceNoColor()
	resetFlags(rootCmd)

	st := memory.New()
	if _, err := fixtures.Seed(context.Background(), st); err != nil {
		t.Fatalf("seeding fixtures: %v", err)
	}
	srv := httptest.NewServer(server.New(st, nil, nil).NewHTTPHandler(""))
	t.Cleanup(srv.Close)

	t.Cleanup(func() {
		resetFlags(rootCmd)
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(append([]string{"--http-url", srv.URL, "--token", ""}, args...))
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

// resetFlags restores every flag to its default so one execution's flags do
// not leak into the next.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func TestSearchCommand_JSON(t *testing.T) {
	out, err := runCLI(t, "search", "lawyer", "location=delhi", "--field", "experience=5-10", "--json")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	var resp client.SearchResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("decoding output %q: %v", out, err)
	}
	var ids []string
	for _, r := range resp.Records {
		ids = append(ids, r.ID)
	}
	if diff := cmp.Diff([]string{"lw-1", "lw-4"}, ids); diff != "" {
		t.Errorf("matched ids (-want +got):\n%s", diff)
	}
}

func TestSearchCommand_Table(t *testing.T) {
	out, err := runCLI(t, "search", "lawyer", "status=pending")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	for _, want := range []string{"NAME", "SPECIALIZATION", "lw-5", "lw-6", "2 lawyer record(s)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "lw-1") {
		t.Errorf("verified lawyer listed among pending:\n%s", out)
	}
}

func TestSearchCommand_BadArgs(t *testing.T) {
	if _, err := runCLI(t, "search", "judge"); err == nil {
		t.Error("expected error for unknown kind")
	}
	if _, err := runCLI(t, "search", "lawyer", "novalue"); err == nil {
		t.Error("expected error for malformed criterion")
	}
}

func TestSearchCommand_RangeLabels(t *testing.T) {
	out, err := runCLI(t, "search", "lawyer", "experience=6 – 10 years", "--sort", "id", "--json")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	var resp client.SearchResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("decoding output %q: %v", out, err)
	}
	var ids []string
	for _, r := range resp.Records {
		ids = append(ids, r.ID)
	}
	if diff := cmp.Diff([]string{"lw-1", "lw-4"}, ids); diff != "" {
		t.Errorf("matched ids (-want +got):\n%s", diff)
	}

	if _, err := runCLI(t, "search", "lawyer", "experience=lots"); err == nil || !strings.Contains(err.Error(), "experience") {
		t.Errorf("expected range error naming the field, got %v", err)
	}
}

func TestCanonicalRanges(t *testing.T) {
	in := model.Criteria{"experience": "15+ Years", "rating": "4", "location": "6-10", "search": "Iyer", "consultation_fee": " "}
	got, err := canonicalRanges(model.KindLawyer, in)
	if err != nil {
		t.Fatal(err)
	}
	want := model.Criteria{"experience": "15+", "rating": "4", "location": "6-10", "search": "Iyer", "consultation_fee": " "}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("criteria (-want +got):\n%s", diff)
	}
	if in["experience"] != "15+ Years" {
		t.Error("input criteria were modified")
	}
	if _, err := canonicalRanges(model.KindLawyer, model.Criteria{"rating": "high"}); err == nil {
		t.Error("expected error for a non-range label")
	}
}

func TestShowCommand(t *testing.T) {
	out, err := runCLI(t, "show", "case", "cs-1")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if !strings.Contains(out, "PROP/2024/001") || !strings.Contains(out, "status:") {
		t.Errorf("unexpected output:\n%s", out)
	}
	if _, err := runCLI(t, "show", "case", "cs-404"); err == nil {
		t.Error("expected error for missing record")
	}
}

func TestPutCommand_TypesFields(t *testing.T) {
	out, err := runCLI(t, "put", "lawyer", "lw-9",
		"-f", "name=Adv. Kavya Rao", "-f", "specialization=Tax Law", "-f", "status=pending", "-f", "experience=3", "-f", "available=true", "--json")
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	var rec model.Record
	if err := json.Unmarshal([]byte(out), &rec); err != nil {
		t.Fatalf("decoding output %q: %v", out, err)
	}
	if rec.Fields["experience"] != float64(3) || rec.Fields["available"] != true {
		t.Errorf("fields not typed: %#v", rec.Fields)
	}
}

func TestVerifyCommand(t *testing.T) {
	out, err := runCLI(t, "verify", "lw-6", "reject")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !strings.Contains(out, "rejected lw-6 (Adv. Lakshmi Iyer)") {
		t.Errorf("unexpected output %q", out)
	}
	if _, err := runCLI(t, "verify", "lw-5", "maybe"); err == nil {
		t.Error("expected error for unknown action")
	}
}

func TestDashboardCommand(t *testing.T) {
	out, err := runCLI(t, "dashboard", "lawyer")
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	for _, want := range []string{"[dashboard]", "requests", "active-cases", "ap-2", "cs-1"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestHealthCommand(t *testing.T) {
	out, err := runCLI(t, "health")
	if err != nil || !strings.Contains(out, "Health: ok") {
		t.Fatalf("health = %q, %v", out, err)
	}
}

func TestExportCommand(t *testing.T) {
	for _, key := range []string{"COUNSEL_DATABASE_URL", "COUNSEL_SEED", "COUNSEL_SYNC_INTERVAL"} {
		t.Setenv(key, "")
	}
	path := filepath.Join(t.TempDir(), "roster.jsonl")
	if _, err := runCLI(t, "export", "-o", path); err != nil {
		t.Fatalf("export: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	lines := 0
	for sc := bufio.NewScanner(f); sc.Scan(); {
		lines++
	}
	want, err := fixtures.Load()
	if err != nil {
		t.Fatal(err)
	}
	if lines != len(want)+1 {
		t.Errorf("export wrote %d lines, want header plus %d records", lines, len(want))
	}
}

func TestParseFieldValues(t *testing.T) {
	got, err := parseFieldValues(model.KindLawyer, []string{"name=Adv. Rao", "rating=4.5", "available=false", "nickname=KR"})
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]any{"name": "Adv. Rao", "rating": 4.5, "available": false, "nickname": "KR"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("fields (-want +got):\n%s", diff)
	}

	for _, bad := range []string{"experience=lots", "available=maybe", "=x", "noequals"} {
		if _, err := parseFieldValues(model.KindLawyer, []string{bad}); err == nil {
			t.Errorf("parseFieldValues(%q): expected error", bad)
		}
	}
}
