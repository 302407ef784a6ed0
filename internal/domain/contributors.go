package domain

import "strings"

// Event kinds that credit the acting user. "commited" is the literal kind emitted
// by the issue events API for commit-backed events and must stay spelled this way.
const (
	EventReferenced = "referenced"
	EventClosed     = "closed"
	EventCommited   = "commited"
)

// Credits reports whether e credits its actor with resolving the issue.
func (e Event) Credits() bool {
	if e.CommitID == "" || e.Actor == "" {
		return false
	}
	switch e.Event {
	case EventReferenced, EventClosed, EventCommited:
		return true
	}
	return false
}

// Contributors is an insertion-ordered set of logins.
type Contributors struct {
	seen   map[string]struct{}
	logins []string
}

// NewContributors returns an empty set.
func NewContributors() *Contributors {
	return &Contributors{seen: make(map[string]struct{})}
}

// Add inserts login, ignoring repeats. It reports whether the set grew.
func (c *Contributors) Add(login string) bool {
	if _, ok := c.seen[login]; ok {
		return false
	}
	c.seen[login] = struct{}{}
	c.logins = append(c.logins, login)
	return true
}

// Has reports whether login is in the set.
func (c *Contributors) Has(login string) bool {
	_, ok := c.seen[login]
	return ok
}

// Logins returns the logins in insertion order.
func (c *Contributors) Logins() []string {
	return c.logins
}

// Len returns the number of contributors.
func (c *Contributors) Len() int {
	return len(c.logins)
}

// Attribution returns the display string for an issue: "@a, @b" for the
// contributors, or the assignee login when nobody was credited.
func (c *Contributors) Attribution(assignee string) string {
	if c == nil || len(c.logins) == 0 {
		return assignee
	}
	mentions := make([]string, len(c.logins))
	for i, l := range c.logins {
		mentions[i] = "@" + l
	}
	return strings.Join(mentions, ", ")
}
