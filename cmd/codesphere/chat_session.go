// Package main provides the codesphere CLI entry point.
// This file contains session setup and persistence for the chat interface.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/glamour"

	"github.com/SoCkEt7/codesphere/cmd/codesphere/config"
	"github.com/SoCkEt7/codesphere/cmd/codesphere/ui"
	"github.com/SoCkEt7/codesphere/internal/history"
	"github.com/SoCkEt7/codesphere/internal/logging"
	"github.com/SoCkEt7/codesphere/internal/shell"
)

// initChat builds the chat model: config, styles, backend pipeline, and the
// previous session's state when one exists.
func initChat() chatModel {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}

	var theme ui.Theme
	switch cfg.Theme {
	case "light":
		theme = ui.LightTheme()
	case "dark":
		theme = ui.DarkTheme()
	default:
		theme = ui.DetectTheme()
	}
	styles := ui.NewStyles(theme)

	ti := textinput.New()
	ti.Placeholder = "Describe the code you want, or /help..."
	ti.Focus()
	ti.CharLimit = 4096
	ti.Width = 80

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	renderer, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)

	workspace, err := os.Getwd()
	if err != nil {
		workspace = "."
	}

	asst, err := buildAssistant(cfg)
	if err != nil {
		// Template engine failures are fatal for the chat; surface and bail.
		fmt.Fprintf(os.Stderr, "failed to initialize: %v\n", err)
		os.Exit(1)
	}

	m := chatModel{
		textinput: ti,
		spinner:   sp,
		styles:    styles,
		renderer:  renderer,
		config:    cfg,
		workspace: workspace,
		sessionID: history.NewSessionID(),
		assistant: asst,
		executor:  shell.NewExecutor(),
	}

	// Restore the previous session when one was left behind.
	if state, err := history.LoadState(workspace); err == nil && state.SessionID != "" {
		m.sessionID = state.SessionID
		m.turnCount = state.TurnCount
		if hist, err := history.LoadHistory(workspace, state.SessionID); err == nil {
			for _, msg := range hist.Messages {
				m.history = append(m.history, chatMessage{
					role:    msg.Role,
					content: msg.Content,
					time:    msg.Time,
				})
			}
			logging.Session("restored session %s with %d messages", state.SessionID, len(hist.Messages))
		}
	}

	if len(m.history) == 0 {
		m.history = append(m.history, chatMessage{
			role:    "assistant",
			content: welcomeMessage(cfg),
			time:    time.Now(),
		})
	}

	logging.Session("chat started: session=%s workspace=%s", m.sessionID, workspace)
	return m
}

func welcomeMessage(cfg config.Config) string {
	msg := "## Welcome to codesphere\n\n" +
		"Describe the code you want in plain language and I will generate it. " +
		"Follow-up requests reuse context from earlier in the session.\n\n" +
		"Type `/help` for commands."
	if resolveAPIKey(cfg) == "" {
		msg += "\n\n*No API key configured — running in offline template mode. " +
			"Set one with `/config set-key <key>` or the CODESPHERE_API_KEY environment variable.*"
	}
	return msg
}

// saveSessionState persists the session pointer and the full chat history.
func (m chatModel) saveSessionState() {
	state := &history.SessionState{
		SessionID:    m.sessionID,
		StartedAt:    time.Now(),
		LastActiveAt: time.Now(),
		TurnCount:    m.turnCount,
		HistoryFile:  m.sessionID + ".json",
	}
	if err := history.SaveState(m.workspace, state); err != nil {
		logging.Session("failed to save session state: %v", err)
	}

	messages := make([]history.ChatMessage, 0, len(m.history))
	for _, msg := range m.history {
		messages = append(messages, history.ChatMessage{
			Role:    msg.role,
			Content: msg.content,
			Time:    msg.time,
		})
	}
	if err := history.SaveHistory(m.workspace, m.sessionID, messages); err != nil {
		logging.Session("failed to save session history: %v", err)
	}
}
