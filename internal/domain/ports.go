package domain

import (
	"context"
	"iter"
	"time"
)

// CommitSource lists the commits of a release range.
type CommitSource interface {
	// CommitsBetween yields the commits reachable from head but not from base.
	// The sequence stops after the first error.
	CommitsBetween(ctx context.Context, base, head string) iter.Seq2[Commit, error]

	// CommitsFrom yields every commit reachable from head.
	CommitsFrom(ctx context.Context, head string) iter.Seq2[Commit, error]
}

// ReleaseSource finds the baseline of a release.
type ReleaseSource interface {
	// LatestReleaseTag returns the tag of the latest published release before tag.
	// Returns ErrNoRelease when there is none.
	LatestReleaseTag(ctx context.Context, tag string) (string, error)
}

// IssueSource fetches issue records and their event timelines.
type IssueSource interface {
	// GetIssue returns the issue with the given number. Returns ErrNotFound if absent.
	GetIssue(ctx context.Context, number int) (*Issue, error)

	// IssueEvents yields the issue's event timeline across all pages.
	IssueEvents(ctx context.Context, number int) iter.Seq2[Event, error]
}

// ConfigSource reads configuration documents by repository-relative path.
type ConfigSource interface {
	// ReadFile returns the document content. Returns ErrNotFound if absent.
	ReadFile(ctx context.Context, path string) ([]byte, error)
}

// BuiltinConfigOrigin names the built-in configuration as a load origin.
const BuiltinConfigOrigin = "(built-in)"

// ConfigLoader locates and parses the release configuration document.
type ConfigLoader interface {
	// Load reads path, or the default locations when path is empty, and falls back
	// to the built-in configuration when no document exists.
	// It also returns where the document came from.
	Load(ctx context.Context, path string) (*ReleaseConfig, string, error)

	// DefaultTemplate returns the built-in configuration document.
	DefaultTemplate() string
}

// Logger receives progress messages. issue is 0 for run-level messages.
type Logger interface {
	Debug(issue int, category, msg string)
	Info(issue int, category, msg string)
	Warn(issue int, category, msg string)
	Error(issue int, category, msg string)
}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}
