package domain

import "strings"

// IssueStateClosed is the only issue state eligible for the changelog.
const IssueStateClosed = "closed"

// Issue represents a repository issue as seen by the changelog engine.
// Fields are ordered to minimize memory padding.
type Issue struct {
	Title    string
	URL      string
	State    string
	ClosedBy string // Login of the user who closed the issue, lowercased
	Assignee string // Login of the assignee, empty when unassigned
	Labels   []string
	Number   int
}

// IsClosed reports whether the issue is closed.
func (i *Issue) IsClosed() bool {
	return i.State == IssueStateClosed
}

// NewIssue builds an Issue, normalizing the closer login to lowercase.
func NewIssue(number int, title, url, state, closedBy, assignee string, labels []string) *Issue {
	return &Issue{
		Number:   number,
		Title:    title,
		URL:      url,
		State:    state,
		ClosedBy: strings.ToLower(closedBy),
		Assignee: assignee,
		Labels:   labels,
	}
}

// Event is a single entry of an issue's event timeline.
type Event struct {
	Event    string // Event kind, e.g. "closed" or "referenced"
	CommitID string // Empty when the event is not tied to a commit
	Actor    string // Login of the acting user, empty when unknown
}

// Commit is a commit in the release range. Only the message matters here.
type Commit struct {
	SHA     string
	Message string
}
