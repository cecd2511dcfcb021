// Package shell is the assistant's file and shell access layer: it runs
// user-requested commands with a timeout and an allowlist, and provides the
// file helpers behind the /ls, /cat, /grep and /glob commands.
package shell

import (
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/SoCkEt7/codesphere/internal/logging"
)

// Command describes one shell invocation.
type Command struct {
	Binary           string
	Arguments        []string
	WorkingDirectory string
	TimeoutSeconds   int
}

// Executor runs commands with safety checks. Binaries explicitly denied in
// the allowlist are refused even if the user asks for them directly.
type Executor struct {
	AllowedBinaries map[string]bool
}

// NewExecutor creates an Executor with the default allowlist.
func NewExecutor() *Executor {
	return &Executor{
		AllowedBinaries: map[string]bool{
			"go":     true,
			"node":   true,
			"python": true,
			"grep":   true,
			"git":    true,
			"ls":     true,
			"cat":    true,
			"mkdir":  true,
			"rm":     false, // Explicitly denied
			"bash":   true,
			"sh":     true,
		},
	}
}

// Execute runs a command and returns its combined output. Binaries not in
// the allowlist are permitted; only explicit denials are enforced.
func (e *Executor) Execute(ctx context.Context, cmd Command) (string, error) {
	if allowed, exists := e.AllowedBinaries[cmd.Binary]; exists && !allowed {
		return "", fmt.Errorf("binary not allowed: %s", cmd.Binary)
	}

	timeout := time.Duration(cmd.TimeoutSeconds) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	logging.Shell("exec: %s %v (cwd=%s)", cmd.Binary, cmd.Arguments, cmd.WorkingDirectory)

	c := exec.CommandContext(ctx, cmd.Binary, cmd.Arguments...)
	c.Dir = cmd.WorkingDirectory

	output, err := c.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("command failed: %w, output: %s", err, string(output))
	}

	return string(output), nil
}
