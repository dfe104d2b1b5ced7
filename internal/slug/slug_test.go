package slug

import (
	"strings"
	"testing"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "simple two words",
			input: "Hello World",
			want:  "hello-world",
		},
		{
			name:  "title with year and punctuation",
			input: "Hello, World! 2026",
			want:  "hello-world-2026",
		},
		{
			name:  "surrounding whitespace",
			input: "   Trim Me   ",
			want:  "trim-me",
		},
		{
			name:  "already a slug",
			input: "my-portfolio",
			want:  "my-portfolio",
		},
		{
			name:  "underscores become hyphens",
			input: "snake_case_title",
			want:  "snake-case-title",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Generate(tt.input); got != tt.want {
				t.Errorf("Generate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestGeneratePersianTitleIsTransliterated(t *testing.T) {
	got := Generate("پروژه نمونه")
	if got == "" {
		t.Fatal("expected a transliterated slug, got empty string")
	}
	if !Valid(got) {
		t.Errorf("Generate produced invalid slug %q", got)
	}
}

func TestGenerateTruncatesLongInput(t *testing.T) {
	got := Generate(strings.Repeat("word ", 100))
	if len(got) > MaxLen {
		t.Errorf("length %d exceeds MaxLen", len(got))
	}
	if strings.HasSuffix(got, "-") {
		t.Errorf("truncated slug ends with hyphen: %q", got)
	}
}

func TestValid(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"demo", true},
		{"hello-world-2026", true},
		{"a", true},
		{"", false},
		{"Demo", false},
		{"-demo", false},
		{"demo-", false},
		{"de--mo", false},
		{"de mo", false},
		{"دمو", false},
		{"demo/x", false},
		{strings.Repeat("a", MaxLen+1), false},
	}
	for _, tt := range tests {
		if got := Valid(tt.in); got != tt.want {
			t.Errorf("Valid(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
