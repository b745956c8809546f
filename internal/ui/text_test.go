package ui

import (
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestFormatterWithColor(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	// t.Setenv cannot unset, so clear the variable explicitly for this test.
	unsetNoColor(t)
	original := color.NoColor
	color.NoColor = false
	t.Cleanup(func() { color.NoColor = original })

	result := Name.Sprint("github")
	if strings.Contains(result, "'") {
		t.Errorf("Name.Sprint should not contain quotes when color is enabled, got: %s", result)
	}
	if !strings.Contains(result, "\x1b[") {
		t.Errorf("Name.Sprint should contain ANSI escape codes when color is enabled, got: %s", result)
	}
}

func TestFormatterWithNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	tests := []struct {
		name      string
		formatter Formatter
		input     string
		want      string
	}{
		{"Code adds backticks", Code, "lockbox secrets init", "`lockbox secrets init`"},
		{"Path has no decoration", Path, "/tmp/store", "/tmp/store"},
		{"Name adds quotes", Name, "github", "'github'"},
		{"Field has no decoration", Field, "password", "password"},
		{"Success has no decoration", Success, "✓", "✓"},
		{"Error has no decoration", Error, "✗", "✗"},
		{"Highlight adds quotes", Highlight, "me@example.com", "'me@example.com'"},
		{"Muted adds parentheses", Muted, "3f2a9c1", "(3f2a9c1)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.formatter.Sprint(tt.input)
			if got != tt.want {
				t.Errorf("%s.Sprint(%q) = %q, want %q", tt.name, tt.input, got, tt.want)
			}
		})
	}
}

func TestSprintfAppliesDecoration(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	got := Muted.Sprintf("%d commits", 3)
	if got != "(3 commits)" {
		t.Errorf("Expected %q, got %q", "(3 commits)", got)
	}
}

func TestEnsureNewline(t *testing.T) {
	tests := map[string]string{
		"":       "\n",
		"done":   "done\n",
		"done\n": "done\n",
		"a\nb":   "a\nb\n",
	}
	for in, want := range tests {
		if got := EnsureNewline(in); got != want {
			t.Errorf("EnsureNewline(%q) = %q, want %q", in, got, want)
		}
	}
}
