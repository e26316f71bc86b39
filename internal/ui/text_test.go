package ui

import (
	"strings"
	"testing"

	"github.com/fatih/color"
)

func forceColor(t *testing.T) {
	t.Helper()
	original := color.NoColor
	color.NoColor = false
	t.Cleanup(func() { color.NoColor = original })
}

func TestFormatterWithColor(t *testing.T) {
	forceColor(t)

	result := Code.Sprint("vellum configure")
	if strings.Contains(result, "`") {
		t.Errorf("Code.Sprint should not contain backticks when color is enabled, got: %s", result)
	}
	if !strings.Contains(result, "\x1b[") {
		t.Errorf("Code.Sprint should contain ANSI escape codes when color is enabled, got: %s", result)
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
		{"Code adds backticks", Code, "vellum rekey", "`vellum rekey`"},
		{"Path has no decoration", Path, "secrets/db.env", "secrets/db.env"},
		{"Flag has no decoration", Flag, "--force", "--force"},
		{"Cipher adds brackets", Cipher, "aes-256-cbc", "[aes-256-cbc]"},
		{"Secret has no decoration", Secret, "hunter2", "hunter2"},
		{"Success has no decoration", Success, "✓", "✓"},
		{"Error has no decoration", Error, "✗", "✗"},
		{"Highlight adds quotes", Highlight, "bob@example.com", "'bob@example.com'"},
		{"Muted adds parentheses", Muted, "plaintext", "(plaintext)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.formatter.Sprint(tt.input)
			if got != tt.want {
				t.Errorf("Sprint(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatterSprintf(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	result := Code.Sprintf("vellum %s --force", "flush")
	if want := "`vellum flush --force`"; result != want {
		t.Errorf("Code.Sprintf() = %q, want %q", result, want)
	}
}

func TestNoColorFunction(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	if !noColor() {
		t.Error("noColor() should return true when NO_COLOR is set")
	}
}

func TestEnsureNewline(t *testing.T) {
	for in, want := range map[string]string{"": "\n", "a": "a\n", "a\n": "a\n"} {
		if got := EnsureNewline(in); got != want {
			t.Errorf("EnsureNewline(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatPaths(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	got := FormatPaths([]string{"a.env", "b.env", "c.env"}, 2)
	want := "\n    - a.env\n    - b.env\n    (1 more)\n"
	if got != want {
		t.Errorf("FormatPaths() = %q, want %q", got, want)
	}

	if got := FormatPaths([]string{"a.env"}, 0); got != "\n    - a.env\n" {
		t.Errorf("FormatPaths() without limit = %q", got)
	}
}
