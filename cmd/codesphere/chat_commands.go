// Package main provides the codesphere CLI entry point.
// This file contains command handling for the chat interface.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/SoCkEt7/codesphere/cmd/codesphere/config"
	"github.com/SoCkEt7/codesphere/internal/assistant"
	"github.com/SoCkEt7/codesphere/internal/generation"
	"github.com/SoCkEt7/codesphere/internal/history"
	"github.com/SoCkEt7/codesphere/internal/memory"
	"github.com/SoCkEt7/codesphere/internal/shell"
)

// reply pushes an assistant-role message, resets the input and scrolls down.
// Every slash command goes through here.
func (m *chatModel) reply(content string) {
	m.history = append(m.history, chatMessage{
		role:    "assistant",
		content: content,
		time:    time.Now(),
	})
	m.textinput.Reset()
	m.viewport.SetContent(m.renderHistory())
	m.viewport.GotoBottom()
}

// handleCommand processes all /command inputs from the user.
// Commands are organized by category: session, memory, files, shell, config.
func (m chatModel) handleCommand(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	cmd := parts[0]
	args := parts[1:]

	switch cmd {
	case "/quit", "/exit", "/q":
		m.saveSessionState()
		return m, tea.Quit

	case "/clear":
		m.history = []chatMessage{}
		m.viewport.SetContent("")
		m.textinput.Reset()
		m.saveSessionState()
		return m, nil

	case "/help":
		m.reply(helpText)
		return m, nil

	case "/new-session":
		m.saveSessionState()
		m.history = []chatMessage{}
		m.sessionID = history.NewSessionID()
		m.turnCount = 0
		m.assistant = assistant.New(memory.New(), m.assistant.Generator())
		m.reply(fmt.Sprintf("Started new session: `%s`\n\nPrevious history saved.", m.sessionID))
		m.saveSessionState()
		return m, nil

	case "/sessions":
		sessions, err := history.ListSessions(m.workspace)
		if err != nil || len(sessions) == 0 {
			m.reply("No saved sessions found.")
			return m, nil
		}
		var sb strings.Builder
		sb.WriteString("## Saved Sessions\n\n")
		for _, sess := range sessions {
			current := ""
			if sess == m.sessionID {
				current = " *(current)*"
			}
			sb.WriteString(fmt.Sprintf("- `%s`%s\n", sess, current))
		}
		m.reply(sb.String())
		return m, nil

	case "/memory":
		m.reply(m.renderMemory())
		return m, nil

	case "/compact":
		keep := 3
		if len(args) > 0 {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				m.reply("Usage: `/compact [n]` — n must be a number")
				return m, nil
			}
			keep = n
		}
		mem := m.assistant.Memory()
		before := len(mem.Exchanges())
		mem.Compact(keep)
		after := len(mem.Exchanges())
		m.reply(fmt.Sprintf("Compacted memory: %d → %d exchanges kept.", before, after))
		return m, nil

	case "/save":
		if len(args) < 1 {
			m.reply("Usage: `/save <path>`")
			return m, nil
		}
		path := args[0]
		if err := m.assistant.SaveLast(path); err != nil {
			m.reply(fmt.Sprintf("Error: %v", err))
			return m, nil
		}
		m.reply(fmt.Sprintf("Saved generated code to `%s`.", path))
		return m, nil

	case "/ls":
		dir := m.workspace
		if len(args) > 0 {
			dir = m.resolvePath(args[0])
		}
		entries, err := shell.ListDir(dir)
		if err != nil {
			m.reply(fmt.Sprintf("Error: %v", err))
			return m, nil
		}
		if len(entries) == 0 {
			m.reply(fmt.Sprintf("`%s` is empty.", dir))
			return m, nil
		}
		m.reply(fmt.Sprintf("## %s\n\n```\n%s\n```", dir, strings.Join(entries, "\n")))
		return m, nil

	case "/cat":
		if len(args) < 1 {
			m.reply("Usage: `/cat <file>`")
			return m, nil
		}
		path := m.resolvePath(args[0])
		content, err := shell.ReadFile(path)
		if err != nil {
			m.reply(fmt.Sprintf("Error: %v", err))
			return m, nil
		}
		lang := strings.TrimPrefix(filepath.Ext(path), ".")
		m.reply(fmt.Sprintf("## %s\n\n```%s\n%s\n```", args[0], lang, content))
		return m, nil

	case "/grep":
		if len(args) < 1 {
			m.reply("Usage: `/grep <pattern> [glob]`")
			return m, nil
		}
		glob := "*"
		if len(args) > 1 {
			glob = args[1]
		}
		matches, err := shell.Grep(m.workspace, args[0], glob)
		if err != nil {
			m.reply(fmt.Sprintf("Error: %v", err))
			return m, nil
		}
		if len(matches) == 0 {
			m.reply(fmt.Sprintf("No matches for `%s`.", args[0]))
			return m, nil
		}
		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("## Matches for `%s`\n\n```\n", args[0]))
		for _, match := range matches {
			sb.WriteString(fmt.Sprintf("%s:%d: %s\n", match.Path, match.Line, match.Text))
		}
		sb.WriteString("```")
		m.reply(sb.String())
		return m, nil

	case "/glob":
		if len(args) < 1 {
			m.reply("Usage: `/glob <pattern>`")
			return m, nil
		}
		paths, err := shell.Glob(m.workspace, args[0])
		if err != nil {
			m.reply(fmt.Sprintf("Error: %v", err))
			return m, nil
		}
		if len(paths) == 0 {
			m.reply(fmt.Sprintf("No files match `%s`.", args[0]))
			return m, nil
		}
		m.reply(fmt.Sprintf("```\n%s\n```", strings.Join(paths, "\n")))
		return m, nil

	case "/run":
		if len(args) < 1 {
			m.reply("Usage: `/run <command> [args...]`")
			return m, nil
		}
		output, err := m.executor.Execute(context.Background(), shell.Command{
			Binary:           args[0],
			Arguments:        args[1:],
			WorkingDirectory: m.workspace,
		})
		if err != nil {
			m.reply(fmt.Sprintf("Error: %v", err))
			return m, nil
		}
		if strings.TrimSpace(output) == "" {
			output = "(no output)"
		}
		m.reply(fmt.Sprintf("```\n%s\n```", strings.TrimRight(output, "\n")))
		return m, nil

	case "/cd":
		if len(args) < 1 {
			m.reply("Usage: `/cd <dir>`")
			return m, nil
		}
		dir := m.resolvePath(args[0])
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			m.reply(fmt.Sprintf("Not a directory: `%s`", args[0]))
			return m, nil
		}
		m.workspace = dir
		m.reply(fmt.Sprintf("Workspace is now `%s`.", dir))
		return m, nil

	case "/config":
		return m.handleConfigCommand(args)

	default:
		m.reply(fmt.Sprintf("Unknown command: `%s`. Type `/help` for available commands.", cmd))
		return m, nil
	}
}

func (m chatModel) handleConfigCommand(args []string) (tea.Model, tea.Cmd) {
	if len(args) < 2 {
		m.reply("Usage: `/config set-key <key>`, `/config set-model <model>` or `/config set-theme <light|dark>`")
		return m, nil
	}

	switch args[0] {
	case "set-key":
		m.config.APIKey = args[1]
		if err := config.Save(m.config); err != nil {
			m.reply(fmt.Sprintf("Error saving config: %v", err))
			return m, nil
		}
		m.rebuildPipeline()
		m.reply("API key saved to .codesphere/config.json and client updated.")

	case "set-model":
		m.config.Model = args[1]
		if err := config.Save(m.config); err != nil {
			m.reply(fmt.Sprintf("Error saving config: %v", err))
			return m, nil
		}
		m.rebuildPipeline()
		m.reply(fmt.Sprintf("Model set to `%s`.", args[1]))

	case "set-theme":
		theme := args[1]
		if theme != "light" && theme != "dark" {
			m.reply("Invalid theme. Use 'light' or 'dark'.")
			return m, nil
		}
		m.config.Theme = theme
		if err := config.Save(m.config); err != nil {
			m.reply(fmt.Sprintf("Error saving config: %v", err))
			return m, nil
		}
		m.reply(fmt.Sprintf("Theme set to `%s`. Restart to apply.", theme))

	default:
		m.reply(fmt.Sprintf("Unknown config command: `%s`", args[0]))
	}

	return m, nil
}

// rebuildPipeline recreates the generation backend from the current config
// while keeping the session memory intact.
func (m *chatModel) rebuildPipeline() {
	templates, err := generation.NewTemplateEngine()
	if err != nil {
		return
	}
	var client generation.Client
	if key := resolveAPIKey(m.config); key != "" {
		apiCfg := generation.DefaultAPIConfig(key)
		if m.config.Endpoint != "" {
			apiCfg.BaseURL = m.config.Endpoint
		}
		if m.config.Model != "" {
			apiCfg.Model = m.config.Model
		}
		client = generation.NewAPIClientWithConfig(apiCfg)
	}
	m.assistant = assistant.New(m.assistant.Memory(), generation.NewGenerator(client, templates))
}

// resolvePath interprets a user-supplied path relative to the workspace.
func (m chatModel) resolvePath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(m.workspace, path)
}

// renderMemory summarizes the session memory for /memory.
func (m chatModel) renderMemory() string {
	mem := m.assistant.Memory()
	exchanges := mem.Exchanges()
	files := mem.FileRecords()

	var sb strings.Builder
	sb.WriteString("## Session Memory\n\n")
	sb.WriteString(fmt.Sprintf("**Exchanges:** %d / %d\n\n", len(exchanges), memory.MaxExchanges))
	for i, ex := range exchanges {
		sb.WriteString(fmt.Sprintf("%d. `%s` (%d chars of response retained)\n",
			i+1, truncateForDisplay(ex.Prompt, 60), len(ex.Response)))
	}

	sb.WriteString(fmt.Sprintf("\n**Generated files:** %d / %d\n\n", len(files), memory.MaxFileRecords))
	for _, f := range files {
		sb.WriteString(fmt.Sprintf("- `%s` — from `%s`\n", f.Path, truncateForDisplay(f.SourcePrompt, 60)))
	}

	if len(exchanges) == 0 && len(files) == 0 {
		sb.WriteString("\n*Memory is empty. It fills as you chat and save files.*")
	}
	return sb.String()
}

func truncateForDisplay(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "…"
}

const helpText = `## Available Commands

| Command | Description |
|---------|-------------|
| /help | Show this help message |
| /clear | Clear chat history |
| /new-session | Start a fresh session (preserves old) |
| /sessions | List saved sessions |
| /memory | Show what the assistant remembers |
| /compact [n] | Trim memory to the last n exchanges (default 3) |
| /save <path> | Write the last generated code to a file |
| /ls [dir] | List files in the workspace |
| /cat <file> | Show a file |
| /grep <pattern> [glob] | Search file contents |
| /glob <pattern> | Find files by name |
| /run <cmd...> | Run a shell command |
| /cd <dir> | Change the workspace directory |
| /config set-key <key> | Set API key |
| /config set-model <model> | Set the model name |
| /config set-theme <theme> | Set theme (light/dark) |
| /quit, /exit, /q | Exit the CLI |

## Natural Language
Just type what you want built. Examples:
- "create a function to reverse a string in Python"
- "make an Express route for user login"
- "now add error handling to it" (uses session memory)

## Tips
- **Enter** to send a message
- **Ctrl+C** or **Esc** to exit
- Use **↑/↓** to scroll history
`
