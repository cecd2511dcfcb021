// Package prompt builds the prompt actually sent to the generation backend:
// the user's request verbatim, followed by rendered context from the session
// memory when any of it is relevant.
package prompt

import (
	"fmt"
	"strings"

	"github.com/SoCkEt7/codesphere/internal/logging"
	"github.com/SoCkEt7/codesphere/internal/memory"
)

const (
	exchangeHeader = "Context from previous interactions:"
	fileHeader     = "Previously created files:"

	// responsePreview is how much of a stored response is quoted per line.
	responsePreview = 100
)

// Enricher renders relevant session memory into natural-language context
// appended to a prompt. It is stateless; the memory passed in holds the state.
type Enricher struct{}

// NewEnricher returns an Enricher.
func NewEnricher() *Enricher {
	return &Enricher{}
}

// Enrich returns prompt with relevant memory context appended. When the
// memory is nil or holds nothing relevant, the prompt is returned unchanged:
// enrichment is an identity transform on the no-context case. Conversational
// context always precedes file context, and both follow the verbatim prompt.
func (e *Enricher) Enrich(userPrompt string, mem *memory.SessionMemory) string {
	if mem == nil {
		return userPrompt
	}

	exchanges, files := mem.RelevantContext(userPrompt)
	if len(exchanges) == 0 && len(files) == 0 {
		return userPrompt
	}

	logging.Memory("enriching prompt with %d exchange(s), %d file record(s)", len(exchanges), len(files))

	var sb strings.Builder
	sb.WriteString(userPrompt)

	if len(exchanges) > 0 {
		sb.WriteString("\n\n")
		sb.WriteString(exchangeHeader)
		for _, ex := range exchanges {
			// Stored prompts are quoted verbatim, not escaped.
			sb.WriteString(fmt.Sprintf("\nPrevious related request: \"%s\" resulted in code that %s...",
				ex.Prompt, previewResponse(ex.Response)))
		}
	}

	if len(files) > 0 {
		sb.WriteString("\n\n")
		sb.WriteString(fileHeader)
		for _, rec := range files {
			sb.WriteString(fmt.Sprintf("\nI previously created file %s for this request: \"%s\"",
				rec.Path, rec.SourcePrompt))
		}
	}

	return sb.String()
}

func previewResponse(response string) string {
	r := []rune(response)
	if len(r) <= responsePreview {
		return response
	}
	return string(r[:responsePreview])
}
