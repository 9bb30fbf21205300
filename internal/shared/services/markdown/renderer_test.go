package markdown

import (
	"strings"
	"testing"
)

func TestRenderer_Render(t *testing.T) {
	r := NewRenderer()

	tests := []struct {
		name        string
		input       string
		wantContain []string
		wantAbsent  []string
	}{
		{
			name:        "basic formatting",
			input:       "**bold** and *italic*",
			wantContain: []string{"<strong>bold</strong>", "<em>italic</em>"},
		},
		{
			name:        "code block survives sanitization",
			input:       "```\nselect 1;\n```",
			wantContain: []string{"<pre>", "select 1;"},
		},
		{
			name:        "script tags are stripped",
			input:       "hello <script>alert(1)</script> world",
			wantContain: []string{"hello", "world"},
			wantAbsent:  []string{"<script>", "alert(1)"},
		},
		{
			name:        "raw event handlers are stripped",
			input:       `<img src=x onerror="alert(1)">`,
			wantAbsent:  []string{"onerror"},
		},
		{
			name:        "autolinked urls get nofollow",
			input:       "see https://example.com/docs",
			wantContain: []string{`rel="nofollow"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Render(tt.input)
			if err != nil {
				t.Fatalf("Render() unexpected error: %v", err)
			}
			for _, want := range tt.wantContain {
				if !strings.Contains(got, want) {
					t.Errorf("Render() = %q, want it to contain %q", got, want)
				}
			}
			for _, absent := range tt.wantAbsent {
				if strings.Contains(got, absent) {
					t.Errorf("Render() = %q, must not contain %q", got, absent)
				}
			}
		})
	}
}

func TestRenderer_Sanitize(t *testing.T) {
	r := NewRenderer()

	got := r.Sanitize(`<p onclick="steal()">ok</p>`)
	if strings.Contains(got, "onclick") {
		t.Errorf("Sanitize() = %q, must not contain onclick", got)
	}
	if !strings.Contains(got, "ok") {
		t.Errorf("Sanitize() = %q, want it to keep text content", got)
	}
}
