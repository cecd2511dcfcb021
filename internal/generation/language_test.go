package generation

import "testing"

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		prompt string
		want   string
	}{
		{"write a python script to parse csv", "python"},
		{"make a web server in Go", "go"},
		{"golang worker pool", "go"},
		{"a javascript debounce helper", "javascript"},
		{"typescript types for an api client", "typescript"},
		{"java class for bank accounts", "java"},
		{"rust iterator example", "rust"},
		{"simple bash script to rotate logs", "bash"},
		{"a shell one-liner", "bash"},
		{"c++ vector sort", "cpp"},
		{"c# linq query", "csharp"},
		{"react component for a counter", "javascript"},
		{"flask route with validation", "python"},
		{"sort a list of numbers", DefaultLanguage},
		{"", DefaultLanguage},
	}

	for _, tt := range tests {
		if got := DetectLanguage(tt.prompt); got != tt.want {
			t.Errorf("DetectLanguage(%q) = %q, want %q", tt.prompt, got, tt.want)
		}
	}
}

func TestDetectLanguage_JavaScriptNotMistakenForJava(t *testing.T) {
	if got := DetectLanguage("refactor this JavaScript module"); got != "javascript" {
		t.Errorf("got %q, want javascript", got)
	}
}
