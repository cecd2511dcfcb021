package assistant

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/SoCkEt7/codesphere/internal/generation"
	"github.com/SoCkEt7/codesphere/internal/memory"
)

type recordingClient struct {
	lastUserPrompt string
	response       string
	err            error
}

func (c *recordingClient) Complete(ctx context.Context, prompt string) (string, error) {
	return c.CompleteWithSystem(ctx, "", prompt)
}

func (c *recordingClient) CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	c.lastUserPrompt = userPrompt
	return c.response, c.err
}

func newTestAssistant(t *testing.T, client generation.Client) *Assistant {
	t.Helper()
	engine, err := generation.NewTemplateEngine()
	if err != nil {
		t.Fatalf("NewTemplateEngine failed: %v", err)
	}
	return New(memory.New(), generation.NewGenerator(client, engine))
}

func TestGenerate_RecordsExchange(t *testing.T) {
	client := &recordingClient{response: "def scrape(): pass"}
	a := newTestAssistant(t, client)

	res := a.Generate(context.Background(), "python scraper for quotes")
	if res.Source != generation.SourceAPI {
		t.Fatalf("expected API source, got %s", res.Source)
	}
	if res.Language != "python" {
		t.Errorf("expected python language hint, got %q", res.Language)
	}

	exchanges := a.Memory().Exchanges()
	if len(exchanges) != 1 {
		t.Fatalf("expected 1 recorded exchange, got %d", len(exchanges))
	}
	if exchanges[0].Prompt != "python scraper for quotes" {
		t.Errorf("recorded prompt = %q", exchanges[0].Prompt)
	}
	if exchanges[0].Response != "def scrape(): pass" {
		t.Errorf("recorded response = %q", exchanges[0].Response)
	}
}

func TestGenerate_EnrichesFollowUpPrompts(t *testing.T) {
	client := &recordingClient{response: "code"}
	a := newTestAssistant(t, client)

	a.Generate(context.Background(), "python scraper for quotes")
	a.Generate(context.Background(), "extend the scraper with caching")

	if !strings.Contains(client.lastUserPrompt, "Context from previous interactions:") {
		t.Error("second prompt should carry context from the first exchange")
	}
	if !strings.Contains(client.lastUserPrompt, `"python scraper for quotes"`) {
		t.Errorf("enriched prompt should quote the stored prompt, got:\n%s", client.lastUserPrompt)
	}
}

func TestGenerate_FirstPromptIsUnenriched(t *testing.T) {
	client := &recordingClient{response: "code"}
	a := newTestAssistant(t, client)

	a.Generate(context.Background(), "sort a list")
	if strings.Contains(client.lastUserPrompt, "Context from previous interactions:") {
		t.Error("empty memory must yield the identity transform")
	}
}

func TestGenerateWithLanguage_OverridesDetection(t *testing.T) {
	a := newTestAssistant(t, nil)

	// "add two numbers" carries no language keyword, so detection alone
	// would pick the javascript default.
	res := a.GenerateWithLanguage(context.Background(), "add two numbers", "python")
	if res.Language != "python" {
		t.Fatalf("explicit language hint ignored, got %q", res.Language)
	}
	if !strings.Contains(res.Code, "def main():") {
		t.Errorf("expected the python template, got:\n%s", res.Code)
	}
}

func TestGenerateWithLanguage_PassesHintToBackend(t *testing.T) {
	client := &recordingClient{response: "code"}
	a := newTestAssistant(t, client)

	a.GenerateWithLanguage(context.Background(), "add two numbers", "rust")
	if !strings.Contains(client.lastUserPrompt, "Target language: rust") {
		t.Errorf("backend prompt should carry the explicit hint, got:\n%s", client.lastUserPrompt)
	}
}

func TestGenerate_FallsBackWhenBackendFails(t *testing.T) {
	client := &recordingClient{err: fmt.Errorf("backend down")}
	a := newTestAssistant(t, client)

	res := a.Generate(context.Background(), "a python function to add numbers")
	if res.Source != generation.SourceTemplate {
		t.Fatalf("expected template fallback, got %s", res.Source)
	}
	// The fallback result is still a completed exchange.
	if len(a.Memory().Exchanges()) != 1 {
		t.Error("fallback turns must be recorded too")
	}
}

func TestSaveLast(t *testing.T) {
	client := &recordingClient{response: "print('hi')"}
	a := newTestAssistant(t, client)

	if err := a.SaveLast("anything.py"); err == nil {
		t.Fatal("SaveLast before any generation must fail")
	}

	a.Generate(context.Background(), "python greeter")

	path := filepath.Join(t.TempDir(), "out", "greeter.py")
	if err := a.SaveLast(path); err != nil {
		t.Fatalf("SaveLast failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading saved file: %v", err)
	}
	if string(data) != "print('hi')" {
		t.Errorf("saved content = %q", data)
	}

	files := a.Memory().FileRecords()
	if len(files) != 1 {
		t.Fatalf("expected 1 file record, got %d", len(files))
	}
	if files[0].Path != path || files[0].SourcePrompt != "python greeter" {
		t.Errorf("file record = %+v", files[0])
	}
}
