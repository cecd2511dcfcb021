// Package history persists full chat sessions to JSON files under
// .codesphere/sessions/. This is the durable audit log; it is independent of
// the in-process session memory, which is never written to disk.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SoCkEt7/codesphere/internal/logging"
)

// SessionState represents the current session state.
type SessionState struct {
	SessionID    string    `json:"session_id"`
	StartedAt    time.Time `json:"started_at"`
	LastActiveAt time.Time `json:"last_active_at"`
	TurnCount    int       `json:"turn_count"`
	HistoryFile  string    `json:"history_file,omitempty"`
}

// ChatMessage represents a single message in the conversation.
type ChatMessage struct {
	Role    string    `json:"role"` // "user" or "assistant"
	Content string    `json:"content"`
	Time    time.Time `json:"time"`
}

// SessionHistory represents the full conversation history for a session.
type SessionHistory struct {
	SessionID string        `json:"session_id"`
	Messages  []ChatMessage `json:"messages"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// NewSessionID returns a fresh session identifier.
func NewSessionID() string {
	return "sess_" + uuid.NewString()
}

func stateDir(workspace string) string {
	return filepath.Join(workspace, ".codesphere")
}

func sessionsDir(workspace string) string {
	return filepath.Join(stateDir(workspace), "sessions")
}

// SaveState writes the session state file.
func SaveState(workspace string, state *SessionState) error {
	if err := os.MkdirAll(stateDir(workspace), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(stateDir(workspace), "session.json"), data, 0644)
}

// LoadState reads the session state file.
func LoadState(workspace string) (*SessionState, error) {
	data, err := os.ReadFile(filepath.Join(stateDir(workspace), "session.json"))
	if err != nil {
		return nil, err
	}
	var state SessionState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse session.json: %w", err)
	}
	return &state, nil
}

// SaveHistory writes the full conversation for sessionID.
func SaveHistory(workspace, sessionID string, messages []ChatMessage) error {
	if err := os.MkdirAll(sessionsDir(workspace), 0755); err != nil {
		return err
	}

	hist := SessionHistory{
		SessionID: sessionID,
		Messages:  messages,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	// Preserve original CreatedAt if the history already exists
	if existing, err := LoadHistory(workspace, sessionID); err == nil {
		hist.CreatedAt = existing.CreatedAt
	}

	data, err := json.MarshalIndent(hist, "", "  ")
	if err != nil {
		return err
	}
	path := filepath.Join(sessionsDir(workspace), sessionID+".json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return err
	}
	logging.Session("saved history %s (%d messages)", sessionID, len(messages))
	return nil
}

// LoadHistory reads the conversation for sessionID.
func LoadHistory(workspace, sessionID string) (*SessionHistory, error) {
	data, err := os.ReadFile(filepath.Join(sessionsDir(workspace), sessionID+".json"))
	if err != nil {
		return nil, err
	}
	var hist SessionHistory
	if err := json.Unmarshal(data, &hist); err != nil {
		return nil, fmt.Errorf("failed to parse history for %s: %w", sessionID, err)
	}
	return &hist, nil
}

// ListSessions returns the IDs of all saved sessions, sorted.
func ListSessions(workspace string) ([]string, error) {
	entries, err := os.ReadDir(sessionsDir(workspace))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var ids []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ".json"))
	}
	sort.Strings(ids)
	return ids, nil
}
