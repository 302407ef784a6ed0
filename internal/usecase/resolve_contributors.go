package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/runoshun/git-relnotes/internal/domain"
)

// ResolveContributorsInput contains the parameters for resolving contributors.
type ResolveContributorsInput struct {
	Issue *domain.Issue // Issue to attribute (required)
}

// ResolveContributorsOutput contains the resolved attribution.
type ResolveContributorsOutput struct {
	Contributors *domain.Contributors // Credited logins in discovery order
	Attribution  string               // Display string, falls back to the assignee
}

// ResolveContributors derives who resolved an issue from its event timeline.
type ResolveContributors struct {
	issues domain.IssueSource
	logger domain.Logger
}

// NewResolveContributors creates a new ResolveContributors use case.
func NewResolveContributors(issues domain.IssueSource, logger domain.Logger) *ResolveContributors {
	return &ResolveContributors{
		issues: issues,
		logger: logger,
	}
}

// Execute scans every page of the issue's events. An issue whose timeline
// cannot be found is attributed to its assignee.
func (uc *ResolveContributors) Execute(ctx context.Context, in ResolveContributorsInput) (*ResolveContributorsOutput, error) {
	number := in.Issue.Number
	contributors := domain.NewContributors()

	for event, err := range uc.issues.IssueEvents(ctx, number) {
		if errors.Is(err, domain.ErrNotFound) {
			if uc.logger != nil {
				uc.logger.Warn(number, "contributors", "event timeline not found, using assignee")
			}
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list events for issue #%d: %w", number, err)
		}
		if event.Credits() {
			contributors.Add(event.Actor)
		}
	}

	if uc.logger != nil {
		uc.logger.Debug(number, "contributors", fmt.Sprintf("credited [%s]", strings.Join(contributors.Logins(), ", ")))
	}

	return &ResolveContributorsOutput{
		Contributors: contributors,
		Attribution:  contributors.Attribution(in.Issue.Assignee),
	}, nil
}
