// Package assistant orchestrates one generation turn: detect the target
// language, enrich the prompt with session context, call the backend, and
// record the outcome in memory. It also writes generated code to disk on
// request and records the file.
package assistant

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/SoCkEt7/codesphere/internal/generation"
	"github.com/SoCkEt7/codesphere/internal/memory"
	"github.com/SoCkEt7/codesphere/internal/prompt"
)

// Assistant owns the session memory and the generation pipeline.
type Assistant struct {
	memory    *memory.SessionMemory
	enricher  *prompt.Enricher
	generator *generation.Generator

	mu         sync.Mutex
	lastResult *generation.Result
	lastPrompt string
}

// New wires an Assistant around an existing memory and generator.
func New(mem *memory.SessionMemory, generator *generation.Generator) *Assistant {
	return &Assistant{
		memory:    mem,
		enricher:  prompt.NewEnricher(),
		generator: generator,
	}
}

// Memory exposes the session memory for slash commands (/compact, /memory).
func (a *Assistant) Memory() *memory.SessionMemory {
	return a.memory
}

// Generator exposes the generation pipeline so the chat UI can rebuild an
// Assistant around fresh memory when a new session starts.
func (a *Assistant) Generator() *generation.Generator {
	return a.generator
}

// Generate runs one full turn for userPrompt and records the exchange. The
// target language is detected from the prompt.
func (a *Assistant) Generate(ctx context.Context, userPrompt string) generation.Result {
	return a.GenerateWithLanguage(ctx, userPrompt, generation.DetectLanguage(userPrompt))
}

// GenerateWithLanguage runs one full turn with an explicit target language,
// bypassing detection. Used when the caller carries a language hint, like the
// run command's --lang flag.
func (a *Assistant) GenerateWithLanguage(ctx context.Context, userPrompt, language string) generation.Result {
	enriched := a.enricher.Enrich(userPrompt, a.memory)

	res := a.generator.Generate(ctx, enriched, userPrompt, language)

	a.memory.RecordExchange(userPrompt, res.Code)

	a.mu.Lock()
	a.lastResult = &res
	a.lastPrompt = userPrompt
	a.mu.Unlock()

	return res
}

// SaveLast writes the most recently generated code to path and records the
// file in memory. Fails when nothing has been generated yet.
func (a *Assistant) SaveLast(path string) error {
	a.mu.Lock()
	res, sourcePrompt := a.lastResult, a.lastPrompt
	a.mu.Unlock()

	if res == nil {
		return fmt.Errorf("nothing generated yet")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, []byte(res.Code), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	a.memory.RecordFile(path, res.Code, sourcePrompt)
	return nil
}
