package domain

// DropReason explains why an issue did not land in any category.
type DropReason string

// Drop reasons.
const (
	DropNotClosed      DropReason = "not-closed"
	DropExcludedLabel  DropReason = "excluded-label"
	DropExcludedAuthor DropReason = "excluded-author"
	DropCatchAllAuthor DropReason = "catch-all-author"
	DropUncategorized  DropReason = "uncategorized"
)

// DroppedIssue pairs an issue with the reason it was left out.
type DroppedIssue struct {
	Issue  *Issue
	Reason DropReason
}

// Classification is the result of categorizing a set of issues.
// Entries hold, per category index, the issues in insertion order.
type Classification struct {
	Rules   *Rules
	Entries [][]*Issue
	Dropped []DroppedIssue
}

// IssuesFor returns the issues assigned to c.
func (cl *Classification) IssuesFor(c *Category) []*Issue {
	return cl.Entries[c.index]
}

// Classified returns every categorized issue once, in first-assignment order.
func (cl *Classification) Classified() []*Issue {
	seen := make(map[int]struct{})
	var out []*Issue
	for _, issues := range cl.Entries {
		for _, is := range issues {
			if _, ok := seen[is.Number]; ok {
				continue
			}
			seen[is.Number] = struct{}{}
			out = append(out, is)
		}
	}
	return out
}

// Classify assigns issues to categories. Issues are processed in the given order,
// which becomes the membership order of every category.
//
// An issue fans out to every category one of its labels maps to, unless that category
// excludes one of its labels or its closer. Issues accepted by no category fall through
// to the catch-all, which only checks its own author exclusion.
func (r *Rules) Classify(issues []*Issue) *Classification {
	cl := &Classification{
		Rules:   r,
		Entries: make([][]*Issue, len(r.categories)),
	}

	for _, is := range issues {
		if reason, ok := r.classifyOne(cl, is); !ok {
			cl.Dropped = append(cl.Dropped, DroppedIssue{Issue: is, Reason: reason})
		}
	}
	return cl
}

func (r *Rules) classifyOne(cl *Classification, is *Issue) (DropReason, bool) {
	if !is.IsClosed() {
		return DropNotClosed, false
	}
	if r.exclude.ExcludesAnyLabel(is.Labels) {
		return DropExcludedLabel, false
	}
	if r.exclude.ExcludesAuthor(is.ClosedBy) {
		return DropExcludedAuthor, false
	}

	accepted := make(map[int]struct{})
	for _, label := range is.Labels {
		c := r.byLabel[label]
		if c == nil {
			continue
		}
		if _, ok := accepted[c.index]; ok {
			continue
		}
		if c.Exclude.ExcludesAnyLabel(is.Labels) || c.Exclude.ExcludesAuthor(is.ClosedBy) {
			continue
		}
		cl.Entries[c.index] = append(cl.Entries[c.index], is)
		accepted[c.index] = struct{}{}
	}
	if len(accepted) > 0 {
		return "", true
	}

	if r.catchAll == nil {
		return DropUncategorized, false
	}
	if r.catchAll.Exclude.ExcludesAuthor(is.ClosedBy) {
		return DropCatchAllAuthor, false
	}
	cl.Entries[r.catchAll.index] = append(cl.Entries[r.catchAll.index], is)
	return "", true
}
