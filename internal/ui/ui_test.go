package ui

import (
	"strings"
	"testing"
)

func TestShouldUseColor(t *testing.T) {
	for _, tc := range []struct {
		name string
		env  map[string]string
		want bool
	}{
		{"NoColorWins", map[string]string{"NO_COLOR": "1", "CLICOLOR_FORCE": "1"}, false},
		{"Forced", map[string]string{"CLICOLOR_FORCE": "1"}, true},
		{"Disabled", map[string]string{"CLICOLOR": "0"}, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			for _, k := range []string{"NO_COLOR", "CLICOLOR_FORCE", "CLICOLOR"} {
				t.Setenv(k, tc.env[k])
			}
			if got := ShouldUseColor(); got != tc.want {
				t.Errorf("ShouldUseColor() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestRenderStatus(t *testing.T) {
	prev := noColor
	t.Cleanup(func() { noColor = prev })
	noColor = false

	if got := RenderStatus("verified"); !strings.Contains(got, "\x1b[38;5;71m") {
		t.Errorf("verified = %q, want green", got)
	}
	if got := RenderStatus("pending"); !strings.Contains(got, "\x1b[38;5;179m") {
		t.Errorf("pending = %q, want amber", got)
	}
	if got := RenderStatus("unknown"); got != "unknown" {
		t.Errorf("unknown status should be plain, got %q", got)
	}

	ForceNoColor()
	if got := RenderStatus("verified"); got != "verified" {
		t.Errorf("with color off got %q", got)
	}
}

func TestTruncate(t *testing.T) {
	for _, tc := range []struct {
		in   string
		n    int
		want string
	}{
		{"Adv. Priya Sharma", 40, "Adv. Priya Sharma"},
		{"Adv. Priya Sharma", 8, "Adv. Pr…"},
		{"न्यायालय", 3, "न्…"},
		{"abc", 1, "…"},
		{"abc", 0, "abc"},
	} {
		if got := Truncate(tc.in, tc.n); got != tc.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tc.in, tc.n, got, tc.want)
		}
	}
}
