package generation

import "strings"

// DefaultLanguage is used when nothing in the prompt names a language.
const DefaultLanguage = "javascript"

// languageKeywords maps prompt words to a canonical language name. Checked in
// order so multi-word hints ("c++", "c#") win over bare letters.
var languageKeywords = []struct {
	keyword  string
	language string
}{
	{"golang", "go"},
	{"typescript", "typescript"},
	{"javascript", "javascript"},
	{"python", "python"},
	{"rust", "rust"},
	{"java", "java"},
	{"kotlin", "kotlin"},
	{"ruby", "ruby"},
	{"php", "php"},
	{"c++", "cpp"},
	{"cpp", "cpp"},
	{"c#", "csharp"},
	{"csharp", "csharp"},
	{"bash", "bash"},
	{"shell", "bash"},
	{"sql", "sql"},
	{"html", "html"},
	{"css", "css"},
	{"node", "javascript"},
	{"react", "javascript"},
	{"django", "python"},
	{"flask", "python"},
	{" go ", "go"},
}

// DetectLanguage guesses the target language of a generation request by
// keyword matching. Single-pass and stateless; falls back to DefaultLanguage.
func DetectLanguage(userPrompt string) string {
	// Padded so " go " can match at the boundaries too.
	lower := " " + strings.ToLower(userPrompt) + " "
	for _, entry := range languageKeywords {
		if strings.Contains(lower, entry.keyword) {
			return entry.language
		}
	}
	return DefaultLanguage
}
