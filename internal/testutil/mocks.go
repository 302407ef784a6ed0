// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"context"
	"fmt"
	"iter"
	"sync"
	"time"

	"github.com/runoshun/git-relnotes/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// MockIssueSource is a test double for domain.IssueSource.
// Fields are ordered to minimize memory padding.
type MockIssueSource struct {
	Issues     map[int]*domain.Issue
	Events     map[int][][]domain.Event // Event pages per issue
	GetErr     map[int]error            // Per-issue GetIssue error
	EventsErr  map[int]error            // Per-issue error yielded after the pages
	GetCalls   []int
	EventCalls []int
	mu         sync.Mutex
}

// NewMockIssueSource creates a new MockIssueSource with initialized maps.
func NewMockIssueSource() *MockIssueSource {
	return &MockIssueSource{
		Issues:    make(map[int]*domain.Issue),
		Events:    make(map[int][][]domain.Event),
		GetErr:    make(map[int]error),
		EventsErr: make(map[int]error),
	}
}

// AddIssue registers an issue.
func (m *MockIssueSource) AddIssue(issue *domain.Issue, eventPages ...[]domain.Event) {
	m.Issues[issue.Number] = issue
	if len(eventPages) > 0 {
		m.Events[issue.Number] = eventPages
	}
}

// GetIssue returns the registered issue or domain.ErrNotFound.
func (m *MockIssueSource) GetIssue(_ context.Context, number int) (*domain.Issue, error) {
	m.mu.Lock()
	m.GetCalls = append(m.GetCalls, number)
	m.mu.Unlock()

	if err := m.GetErr[number]; err != nil {
		return nil, err
	}
	issue, ok := m.Issues[number]
	if !ok {
		return nil, fmt.Errorf("issue #%d: %w", number, domain.ErrNotFound)
	}
	return issue, nil
}

// IssueEvents yields the registered event pages, then the configured error if any.
func (m *MockIssueSource) IssueEvents(_ context.Context, number int) iter.Seq2[domain.Event, error] {
	return func(yield func(domain.Event, error) bool) {
		m.mu.Lock()
		m.EventCalls = append(m.EventCalls, number)
		m.mu.Unlock()

		for _, page := range m.Events[number] {
			for _, e := range page {
				if !yield(e, nil) {
					return
				}
			}
		}
		if err := m.EventsErr[number]; err != nil {
			yield(domain.Event{}, err)
		}
	}
}

// MockCommitSource is a test double for domain.CommitSource.
// Fields are ordered to minimize memory padding.
type MockCommitSource struct {
	Ranges  map[string][]domain.Commit // Keyed by "base...head"
	History map[string][]domain.Commit // Keyed by head
	Err     error                      // Yielded after the commits
	Calls   []string
}

// NewMockCommitSource creates a new MockCommitSource with initialized maps.
func NewMockCommitSource() *MockCommitSource {
	return &MockCommitSource{
		Ranges:  make(map[string][]domain.Commit),
		History: make(map[string][]domain.Commit),
	}
}

// Messages converts commit messages into commits.
func Messages(msgs ...string) []domain.Commit {
	commits := make([]domain.Commit, len(msgs))
	for i, msg := range msgs {
		commits[i] = domain.Commit{SHA: fmt.Sprintf("%040d", i+1), Message: msg}
	}
	return commits
}

// CommitsBetween yields Ranges[base...head].
func (m *MockCommitSource) CommitsBetween(_ context.Context, base, head string) iter.Seq2[domain.Commit, error] {
	key := base + "..." + head
	m.Calls = append(m.Calls, key)
	return m.yield(m.Ranges[key])
}

// CommitsFrom yields History[head].
func (m *MockCommitSource) CommitsFrom(_ context.Context, head string) iter.Seq2[domain.Commit, error] {
	m.Calls = append(m.Calls, head)
	return m.yield(m.History[head])
}

func (m *MockCommitSource) yield(commits []domain.Commit) iter.Seq2[domain.Commit, error] {
	return func(yield func(domain.Commit, error) bool) {
		for _, c := range commits {
			if !yield(c, nil) {
				return
			}
		}
		if m.Err != nil {
			yield(domain.Commit{}, m.Err)
		}
	}
}

// MockReleaseSource is a test double for domain.ReleaseSource.
type MockReleaseSource struct {
	Err    error
	Latest string
}

// LatestReleaseTag returns Latest, Err, or domain.ErrNoRelease when Latest is empty.
func (m *MockReleaseSource) LatestReleaseTag(_ context.Context, _ string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	if m.Latest == "" {
		return "", domain.ErrNoRelease
	}
	return m.Latest, nil
}

// MockConfigSource is a test double for domain.ConfigSource.
// Fields are ordered to minimize memory padding.
type MockConfigSource struct {
	Files map[string]string
	Errs  map[string]error
	Reads []string
}

// NewMockConfigSource creates a new MockConfigSource with initialized maps.
func NewMockConfigSource() *MockConfigSource {
	return &MockConfigSource{
		Files: make(map[string]string),
		Errs:  make(map[string]error),
	}
}

// ReadFile returns Files[path], Errs[path], or domain.ErrNotFound.
func (m *MockConfigSource) ReadFile(_ context.Context, path string) ([]byte, error) {
	m.Reads = append(m.Reads, path)
	if err := m.Errs[path]; err != nil {
		return nil, err
	}
	content, ok := m.Files[path]
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, domain.ErrNotFound)
	}
	return []byte(content), nil
}

// MockConfigLoader is a test double for domain.ConfigLoader.
// Fields are ordered to minimize memory padding.
type MockConfigLoader struct {
	Config   *domain.ReleaseConfig
	LoadErr  error
	Origin   string
	Template string
	Paths    []string
}

// Load returns the configured document.
func (m *MockConfigLoader) Load(_ context.Context, path string) (*domain.ReleaseConfig, string, error) {
	m.Paths = append(m.Paths, path)
	if m.LoadErr != nil {
		return nil, "", m.LoadErr
	}
	origin := m.Origin
	if origin == "" {
		origin = domain.BuiltinConfigOrigin
	}
	return m.Config, origin, nil
}

// DefaultTemplate returns Template.
func (m *MockConfigLoader) DefaultTemplate() string {
	return m.Template
}

// LogEntry is a message captured by MockLogger.
type LogEntry struct {
	Level    string
	Category string
	Msg      string
	Issue    int
}

// MockLogger is a test double for domain.Logger that records every message.
type MockLogger struct {
	Entries []LogEntry
	mu      sync.Mutex
}

func (m *MockLogger) add(level string, issue int, category, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Entries = append(m.Entries, LogEntry{Level: level, Issue: issue, Category: category, Msg: msg})
}

// Debug records a debug message.
func (m *MockLogger) Debug(issue int, category, msg string) { m.add("debug", issue, category, msg) }

// Info records an info message.
func (m *MockLogger) Info(issue int, category, msg string) { m.add("info", issue, category, msg) }

// Warn records a warning.
func (m *MockLogger) Warn(issue int, category, msg string) { m.add("warn", issue, category, msg) }

// Error records an error.
func (m *MockLogger) Error(issue int, category, msg string) { m.add("error", issue, category, msg) }

// Level returns the recorded messages of one level.
func (m *MockLogger) Level(level string) []LogEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []LogEntry
	for _, e := range m.Entries {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

var (
	_ domain.IssueSource   = (*MockIssueSource)(nil)
	_ domain.CommitSource  = (*MockCommitSource)(nil)
	_ domain.ReleaseSource = (*MockReleaseSource)(nil)
	_ domain.ConfigSource  = (*MockConfigSource)(nil)
	_ domain.ConfigLoader  = (*MockConfigLoader)(nil)
	_ domain.Logger        = (*MockLogger)(nil)
)
