package history

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndLoadState(t *testing.T) {
	ws := t.TempDir()

	state := &SessionState{
		SessionID:    NewSessionID(),
		StartedAt:    time.Now().Add(-time.Hour),
		LastActiveAt: time.Now(),
		TurnCount:    7,
	}
	require.NoError(t, SaveState(ws, state))

	loaded, err := LoadState(ws)
	require.NoError(t, err)
	assert.Equal(t, state.SessionID, loaded.SessionID)
	assert.Equal(t, 7, loaded.TurnCount)
}

func TestLoadState_Missing(t *testing.T) {
	_, err := LoadState(t.TempDir())
	assert.Error(t, err)
}

func TestSaveAndLoadHistory(t *testing.T) {
	ws := t.TempDir()
	id := NewSessionID()

	messages := []ChatMessage{
		{Role: "user", Content: "make a scraper", Time: time.Now()},
		{Role: "assistant", Content: "import requests", Time: time.Now()},
	}
	require.NoError(t, SaveHistory(ws, id, messages))

	hist, err := LoadHistory(ws, id)
	require.NoError(t, err)
	assert.Equal(t, id, hist.SessionID)
	require.Len(t, hist.Messages, 2)
	assert.Equal(t, "user", hist.Messages[0].Role)
}

func TestSaveHistory_PreservesCreatedAt(t *testing.T) {
	ws := t.TempDir()
	id := NewSessionID()

	require.NoError(t, SaveHistory(ws, id, []ChatMessage{{Role: "user", Content: "a"}}))
	first, err := LoadHistory(ws, id)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	require.NoError(t, SaveHistory(ws, id, []ChatMessage{{Role: "user", Content: "a"}, {Role: "assistant", Content: "b"}}))

	second, err := LoadHistory(ws, id)
	require.NoError(t, err)
	assert.True(t, second.CreatedAt.Equal(first.CreatedAt), "CreatedAt must survive re-saves")
	assert.True(t, second.UpdatedAt.After(first.UpdatedAt) || second.UpdatedAt.Equal(first.UpdatedAt))
}

func TestListSessions(t *testing.T) {
	ws := t.TempDir()

	ids, err := ListSessions(ws)
	require.NoError(t, err)
	assert.Empty(t, ids, "no sessions dir means no sessions, not an error")

	require.NoError(t, SaveHistory(ws, "sess_b", nil))
	require.NoError(t, SaveHistory(ws, "sess_a", nil))

	ids, err = ListSessions(ws)
	require.NoError(t, err)
	assert.Equal(t, []string{"sess_a", "sess_b"}, ids)
}

func TestNewSessionID_Unique(t *testing.T) {
	a, b := NewSessionID(), NewSessionID()
	assert.NotEqual(t, a, b)
	assert.Contains(t, a, "sess_")
}
