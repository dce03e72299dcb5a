package security

import (
	"strings"
	"testing"
)

func TestSanitizeString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "trims whitespace",
			input: "  hello  ",
			want:  "hello",
		},
		{
			name:  "removes null bytes",
			input: "hel\x00lo",
			want:  "hello",
		},
		{
			name:  "truncates long input",
			input: strings.Repeat("a", 1500),
			want:  strings.Repeat("a", 1000),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeString(tt.input); got != tt.want {
				t.Errorf("SanitizeString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSanitizeHTML(t *testing.T) {
	got := SanitizeHTML(`<script>alert("x")</script>What is 2+2?`)
	if strings.Contains(got, "<script>") {
		t.Errorf("SanitizeHTML() left script tag in %q", got)
	}
	if !strings.Contains(got, "What is 2+2?") {
		t.Errorf("SanitizeHTML() dropped plain text: %q", got)
	}
}

func TestSanitizeUserInput(t *testing.T) {
	got := SanitizeUserInput("  <b>Paris</b>  ")
	if got != "Paris" {
		t.Errorf("SanitizeUserInput() = %q, want %q", got, "Paris")
	}
}
