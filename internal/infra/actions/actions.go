// Package actions implements the GitHub Actions runner protocol: step inputs,
// step outputs and workflow commands.
package actions

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
)

// Env reads the runner environment.
type Env struct {
	Getenv       func(string) string
	NewDelimiter func() string
}

// NewEnv returns an Env backed by the process environment.
func NewEnv() *Env {
	return &Env{
		Getenv:       os.Getenv,
		NewDelimiter: func() string { return "ghadelimiter_" + uuid.NewString() },
	}
}

// IsActions reports whether the process runs inside a GitHub Actions job.
func (e *Env) IsActions() bool {
	return e.Getenv("GITHUB_ACTIONS") == "true"
}

// Input returns the value of a step input, trimmed. Empty when unset.
func (e *Env) Input(name string) string {
	key := "INPUT_" + strings.ToUpper(strings.ReplaceAll(name, " ", "_"))
	return strings.TrimSpace(e.Getenv(key))
}

// Repository returns GITHUB_REPOSITORY ("owner/name").
func (e *Env) Repository() string {
	return e.Getenv("GITHUB_REPOSITORY")
}

// SetOutput appends a step output to the GITHUB_OUTPUT file.
// It reports false when the file is not configured.
func (e *Env) SetOutput(name, value string) (bool, error) {
	path := e.Getenv("GITHUB_OUTPUT")
	if path == "" {
		return false, nil
	}

	delim := e.NewDelimiter()
	if strings.Contains(name, delim) || strings.Contains(value, delim) {
		return false, fmt.Errorf("output %s: value contains the delimiter", name)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644) //nolint:gosec // Path comes from the runner
	if err != nil {
		return false, fmt.Errorf("open GITHUB_OUTPUT: %w", err)
	}
	defer func() { _ = f.Close() }()

	if _, err := fmt.Fprintf(f, "%s<<%s\n%s\n%s\n", name, delim, value, delim); err != nil {
		return false, fmt.Errorf("write output %s: %w", name, err)
	}
	return true, nil
}

// EscapeData escapes a workflow command message.
func EscapeData(s string) string {
	s = strings.ReplaceAll(s, "%", "%25")
	s = strings.ReplaceAll(s, "\r", "%0D")
	return strings.ReplaceAll(s, "\n", "%0A")
}

// Command writes a workflow command such as "::warning::msg".
func Command(w io.Writer, command, msg string) error {
	_, err := fmt.Fprintf(w, "::%s::%s\n", command, EscapeData(msg))
	return err
}
