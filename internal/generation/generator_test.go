package generation

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

type stubClient struct {
	response string
	err      error
	calls    int
}

func (s *stubClient) Complete(ctx context.Context, prompt string) (string, error) {
	return s.CompleteWithSystem(ctx, "", prompt)
}

func (s *stubClient) CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	s.calls++
	return s.response, s.err
}

func mustEngine(t *testing.T) *TemplateEngine {
	t.Helper()
	engine, err := NewTemplateEngine()
	if err != nil {
		t.Fatalf("NewTemplateEngine failed: %v", err)
	}
	return engine
}

func TestTemplateEngine_KeywordSelection(t *testing.T) {
	engine := mustEngine(t)

	code := engine.Generate("write a function that doubles numbers", "python")
	if !strings.Contains(code, "def compute") {
		t.Errorf("expected the python function snippet, got:\n%s", code)
	}

	code = engine.Generate("an http server with one route", "go")
	if !strings.Contains(code, "http.ListenAndServe") {
		t.Errorf("expected the go server snippet, got:\n%s", code)
	}
}

func TestTemplateEngine_DefaultSnippet(t *testing.T) {
	engine := mustEngine(t)
	code := engine.Generate("something unmatched entirely", "python")
	if !strings.Contains(code, "def main") {
		t.Errorf("expected the python default snippet, got:\n%s", code)
	}
}

func TestTemplateEngine_UnknownLanguageFallsBack(t *testing.T) {
	engine := mustEngine(t)
	code := engine.Generate("anything", "cobol")
	if code == "" {
		t.Fatal("unknown language must still produce the default-language snippet")
	}
}

func TestGenerator_PrefersAPI(t *testing.T) {
	client := &stubClient{response: "api generated code"}
	gen := NewGenerator(client, mustEngine(t))

	res := gen.Generate(context.Background(), "enriched", "raw", "python")
	if res.Source != SourceAPI {
		t.Errorf("expected SourceAPI, got %s", res.Source)
	}
	if res.Code != "api generated code" {
		t.Errorf("unexpected code: %q", res.Code)
	}
	if client.calls != 1 {
		t.Errorf("expected 1 API call, got %d", client.calls)
	}
}

func TestGenerator_FallsBackOnAPIError(t *testing.T) {
	client := &stubClient{err: fmt.Errorf("backend unavailable")}
	gen := NewGenerator(client, mustEngine(t))

	res := gen.Generate(context.Background(), "enriched", "a function that doubles", "python")
	if res.Source != SourceTemplate {
		t.Errorf("expected template fallback, got %s", res.Source)
	}
	if !strings.Contains(res.Code, "def compute") {
		t.Errorf("fallback should keyword-match on the raw prompt, got:\n%s", res.Code)
	}
}

func TestGenerator_NilClientGoesStraightToTemplates(t *testing.T) {
	gen := NewGenerator(nil, mustEngine(t))
	res := gen.Generate(context.Background(), "enriched", "raw", "bash")
	if res.Source != SourceTemplate {
		t.Errorf("expected template source with nil client, got %s", res.Source)
	}
	if res.Language != "bash" {
		t.Errorf("language hint should pass through, got %q", res.Language)
	}
}
