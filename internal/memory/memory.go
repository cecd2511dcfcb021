// Package memory holds the in-process session memory for the assistant:
// a bounded log of prompt/response exchanges and a bounded log of files the
// assistant has written. It lives for the lifetime of the process and is the
// source the prompt enricher draws context from. The persistent session
// history on disk is a separate concern (see internal/history).
package memory

import (
	"strings"
	"sync"
	"time"
)

const (
	// MaxExchanges bounds the exchange log. Oldest entries are evicted first.
	MaxExchanges = 10
	// MaxFileRecords bounds the generated-file log.
	MaxFileRecords = 20

	// snippetLimit is the retention limit for responses and file snippets.
	// This is a display-oriented policy: long content is cut, not summarized.
	snippetLimit = 500
)

// Exchange is one completed prompt/response turn.
type Exchange struct {
	Prompt    string    `json:"prompt"`
	Response  string    `json:"response"`
	Timestamp time.Time `json:"timestamp"`
}

// GeneratedFileRecord is one file the assistant wrote.
type GeneratedFileRecord struct {
	Path           string    `json:"path"`
	ContentSnippet string    `json:"content_snippet"`
	SourcePrompt   string    `json:"source_prompt"`
	Timestamp      time.Time `json:"timestamp"`
}

// SessionMemory owns the two bounded logs. The chat TUI records exchanges
// from a background command goroutine while slash commands mutate from the
// update loop, so access is guarded by a single mutex.
type SessionMemory struct {
	mu          sync.Mutex
	exchanges   []Exchange
	fileRecords []GeneratedFileRecord
}

// New returns an empty SessionMemory.
func New() *SessionMemory {
	return &SessionMemory{}
}

// RecordExchange appends a completed turn. The response is retained only up
// to 500 characters, with no ellipsis marker. Evicts the oldest exchange
// once the log exceeds its capacity.
func (m *SessionMemory) RecordExchange(prompt, response string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.exchanges = append(m.exchanges, Exchange{
		Prompt:    prompt,
		Response:  truncatePlain(response, snippetLimit),
		Timestamp: time.Now(),
	})
	if len(m.exchanges) > MaxExchanges {
		m.exchanges = m.exchanges[len(m.exchanges)-MaxExchanges:]
	}
}

// RecordFile appends a record for a file the assistant wrote. Content over
// 500 characters is cut and marked with a literal "..." suffix. Evicts the
// oldest record once the log exceeds its capacity.
func (m *SessionMemory) RecordFile(path, content, prompt string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.fileRecords = append(m.fileRecords, GeneratedFileRecord{
		Path:           path,
		ContentSnippet: truncateWithEllipsis(content, snippetLimit),
		SourcePrompt:   prompt,
		Timestamp:      time.Now(),
	})
	if len(m.fileRecords) > MaxFileRecords {
		m.fileRecords = m.fileRecords[len(m.fileRecords)-MaxFileRecords:]
	}
}

// RelevantContext returns the stored exchanges and file records whose source
// prompts share at least one word with the query prompt. The result keeps
// chronological order and is cut to the most recent 3 exchanges and 2 file
// records of the relevant subset. Recency wins over overlap strength: this
// is a deliberate simplicity trade-off, not a ranker.
func (m *SessionMemory) RelevantContext(prompt string) ([]Exchange, []GeneratedFileRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()

	query := tokenize(prompt)

	var exchanges []Exchange
	for _, ex := range m.exchanges {
		if wordOverlapCount(query, tokenize(ex.Prompt)) > 0 {
			exchanges = append(exchanges, ex)
		}
	}
	if len(exchanges) > 3 {
		exchanges = exchanges[len(exchanges)-3:]
	}

	var files []GeneratedFileRecord
	for _, rec := range m.fileRecords {
		if wordOverlapCount(query, tokenize(rec.SourcePrompt)) > 0 {
			files = append(files, rec)
		}
	}
	if len(files) > 2 {
		files = files[len(files)-2:]
	}

	return exchanges, files
}

// Compact unconditionally discards all but the last keep exchanges,
// regardless of relevance to anything. A non-positive keep clears the log.
func (m *SessionMemory) Compact(keep int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if keep <= 0 {
		m.exchanges = nil
		return
	}
	if len(m.exchanges) > keep {
		m.exchanges = m.exchanges[len(m.exchanges)-keep:]
	}
}

// Exchanges returns a copy of the exchange log, oldest first.
func (m *SessionMemory) Exchanges() []Exchange {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Exchange, len(m.exchanges))
	copy(out, m.exchanges)
	return out
}

// FileRecords returns a copy of the generated-file log, oldest first.
func (m *SessionMemory) FileRecords() []GeneratedFileRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]GeneratedFileRecord, len(m.fileRecords))
	copy(out, m.fileRecords)
	return out
}

// tokenize lowercases s and splits it on runs of whitespace. Duplicates are
// kept: overlap counting is word-level, not set-level.
func tokenize(s string) []string {
	return strings.Fields(strings.ToLower(s))
}

// wordOverlapCount counts how many words of query also occur in stored.
// A word repeated in the query counts once per repetition.
func wordOverlapCount(query, stored []string) int {
	if len(query) == 0 || len(stored) == 0 {
		return 0
	}
	present := make(map[string]struct{}, len(stored))
	for _, w := range stored {
		present[w] = struct{}{}
	}
	count := 0
	for _, w := range query {
		if _, ok := present[w]; ok {
			count++
		}
	}
	return count
}
