package usecase

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"github.com/runoshun/git-relnotes/internal/domain"
)

// CollectIssuesInput contains the parameters for collecting referenced issues.
type CollectIssuesInput struct {
	Commits iter.Seq2[domain.Commit, error] // Commits of the release range
}

// CollectIssuesOutput contains the referenced issues.
type CollectIssuesOutput struct {
	Issues  []*domain.Issue // Fetched issues in first-reference order
	Missing []int           // Referenced numbers with no matching issue
}

// CollectIssues scans commit messages for "#N" references and fetches each
// referenced issue exactly once.
type CollectIssues struct {
	issues domain.IssueSource
	logger domain.Logger
}

// NewCollectIssues creates a new CollectIssues use case.
func NewCollectIssues(issues domain.IssueSource, logger domain.Logger) *CollectIssues {
	return &CollectIssues{
		issues: issues,
		logger: logger,
	}
}

// Execute walks the commits and fetches every newly referenced issue.
// Missing issues are skipped with a warning; any other fetch error aborts.
func (uc *CollectIssues) Execute(ctx context.Context, in CollectIssuesInput) (*CollectIssuesOutput, error) {
	seen := make(map[int]struct{})
	out := &CollectIssuesOutput{}

	for commit, err := range in.Commits {
		if err != nil {
			return nil, fmt.Errorf("list commits: %w", err)
		}
		for _, number := range domain.IssueRefs(commit.Message) {
			if _, ok := seen[number]; ok {
				continue
			}
			seen[number] = struct{}{}

			issue, err := uc.issues.GetIssue(ctx, number)
			if errors.Is(err, domain.ErrNotFound) {
				out.Missing = append(out.Missing, number)
				if uc.logger != nil {
					uc.logger.Warn(number, "issues", fmt.Sprintf("Issue #%d cannot be found in this repository.", number))
				}
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("get issue #%d: %w", number, err)
			}
			out.Issues = append(out.Issues, issue)
			if uc.logger != nil {
				uc.logger.Debug(number, "issues", fmt.Sprintf("fetched (state=%s, labels=%v)", issue.State, issue.Labels))
			}
		}
	}

	return out, nil
}
