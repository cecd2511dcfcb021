package generation

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed templates.yaml
var templateCatalog []byte

type templateSnippet struct {
	Keywords []string `yaml:"keywords"`
	Code     string   `yaml:"code"`
}

type languageTemplates struct {
	Default  string            `yaml:"default"`
	Snippets []templateSnippet `yaml:"snippets"`
}

type catalogFile struct {
	Languages map[string]languageTemplates `yaml:"languages"`
}

// TemplateEngine serves static per-language snippets selected by keyword
// matching. It is the offline fallback when no completion API is reachable.
type TemplateEngine struct {
	languages map[string]languageTemplates
}

// NewTemplateEngine parses the embedded catalog.
func NewTemplateEngine() (*TemplateEngine, error) {
	var catalog catalogFile
	if err := yaml.Unmarshal(templateCatalog, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse template catalog: %w", err)
	}
	if len(catalog.Languages) == 0 {
		return nil, fmt.Errorf("template catalog is empty")
	}
	return &TemplateEngine{languages: catalog.Languages}, nil
}

// Languages returns the languages the catalog covers.
func (t *TemplateEngine) Languages() []string {
	out := make([]string, 0, len(t.languages))
	for lang := range t.languages {
		out = append(out, lang)
	}
	return out
}

// Generate picks the first snippet whose keyword appears in the prompt, or
// the language default. Unknown languages fall back to DefaultLanguage.
func (t *TemplateEngine) Generate(userPrompt, language string) string {
	lang, ok := t.languages[language]
	if !ok {
		lang = t.languages[DefaultLanguage]
	}

	lower := strings.ToLower(userPrompt)
	for _, snippet := range lang.Snippets {
		for _, kw := range snippet.Keywords {
			if strings.Contains(lower, kw) {
				return strings.TrimRight(snippet.Code, "\n")
			}
		}
	}
	return strings.TrimRight(lang.Default, "\n")
}
