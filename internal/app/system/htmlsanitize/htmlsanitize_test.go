package htmlsanitize

import (
	"strings"
	"testing"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains []string // Strings that should be in output
		excludes []string // Strings that should NOT be in output
	}{
		{
			name:     "empty string",
			input:    "",
			contains: []string{},
			excludes: []string{},
		},
		{
			name:     "safe HTML preserved",
			input:    "<p>Founded in <strong>1995</strong>.</p>",
			contains: []string{"<p>", "<strong>", "1995"},
			excludes: []string{},
		},
		{
			name:     "script tag removed",
			input:    "<p>Our mission</p><script>alert('xss')</script>",
			contains: []string{"<p>Our mission</p>"},
			excludes: []string{"<script>", "alert", "xss"},
		},
		{
			name:     "onclick removed",
			input:    `<p onclick="alert('xss')">History</p>`,
			contains: []string{"<p>", "History"},
			excludes: []string{"onclick", "alert"},
		},
		{
			name:     "javascript URL removed",
			input:    `<a href="javascript:alert('xss')">Admissions</a>`,
			contains: []string{"Admissions"},
			excludes: []string{"javascript:", "alert"},
		},
		{
			name:     "safe link preserved",
			input:    `<a href="https://example.edu/calendar">Calendar</a>`,
			contains: []string{"<a", "href", "https://example.edu/calendar"},
			excludes: []string{},
		},
		{
			name:     "table elements preserved",
			input:    "<table><tr><td>Grade 1</td></tr></table>",
			contains: []string{"<table>", "<tr>", "<td>", "Grade 1"},
			excludes: []string{},
		},
		{
			name:     "iframe removed",
			input:    `<iframe src="https://evil.com"></iframe><p>Vision</p>`,
			contains: []string{"<p>Vision</p>"},
			excludes: []string{"<iframe", "evil.com"},
		},
		{
			name:     "style tag removed",
			input:    "<style>body{display:none}</style><p>Vision</p>",
			contains: []string{"<p>Vision</p>"},
			excludes: []string{"<style>", "display:none"},
		},
		{
			name:     "list and formatting preserved",
			input:    "<ul><li><em>Integrity</em></li><li><u>Excellence</u></li></ul>",
			contains: []string{"<ul>", "<li>", "<em>", "<u>"},
			excludes: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Sanitize(tt.input)

			for _, s := range tt.contains {
				if !strings.Contains(result, s) {
					t.Errorf("Sanitize() result should contain %q, got %q", s, result)
				}
			}

			for _, s := range tt.excludes {
				if strings.Contains(result, s) {
					t.Errorf("Sanitize() result should NOT contain %q, got %q", s, result)
				}
			}
		})
	}
}

func TestSanitize_Idempotent(t *testing.T) {
	// Sanitizing twice should give the same result
	input := "<p>Founded in <strong>1995</strong>.</p>"

	result1 := Sanitize(input)
	result2 := Sanitize(result1)

	if result1 != result2 {
		t.Errorf("Sanitize() not idempotent: first=%q, second=%q", result1, result2)
	}
}
