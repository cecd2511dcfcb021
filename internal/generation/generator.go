package generation

import (
	"context"

	"github.com/SoCkEt7/codesphere/internal/logging"
)

// systemPrompt frames every API request; the enriched user prompt carries
// the session context.
const systemPrompt = `You are a code generation assistant. Reply with working,
idiomatic code in the requested language. Prefer a single self-contained
snippet; include brief comments only where the code is not self-explanatory.`

// Source identifies which backend produced a result.
type Source string

const (
	SourceAPI      Source = "api"
	SourceTemplate Source = "template"
)

// Result is one produced piece of code.
type Result struct {
	Code     string
	Language string
	Source   Source
}

// Generator routes a request to the completion API when one is configured
// and falls back to the static template catalog on any failure. Backend
// errors are opaque: the caller only learns that the fallback was used.
type Generator struct {
	client    Client
	templates *TemplateEngine
}

// NewGenerator wires a Generator. client may be nil (offline mode).
func NewGenerator(client Client, templates *TemplateEngine) *Generator {
	return &Generator{client: client, templates: templates}
}

// Generate produces code for an already-enriched prompt. language is the
// hint from DetectLanguage; rawPrompt is the user's original text, used for
// keyword matching in the fallback path.
func (g *Generator) Generate(ctx context.Context, enrichedPrompt, rawPrompt, language string) Result {
	if g.client != nil {
		code, err := g.client.CompleteWithSystem(ctx, systemPrompt, enrichedPrompt+"\n\nTarget language: "+language)
		if err == nil && code != "" {
			return Result{Code: code, Language: language, Source: SourceAPI}
		}
		if err != nil {
			logging.APIError("falling back to templates: %v", err)
		}
	}

	return Result{
		Code:     g.templates.Generate(rawPrompt, language),
		Language: language,
		Source:   SourceTemplate,
	}
}
