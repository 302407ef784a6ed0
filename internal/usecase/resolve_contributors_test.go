package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/runoshun/git-relnotes/internal/domain"
	"github.com/runoshun/git-relnotes/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func credit(kind, actor string) domain.Event {
	return domain.Event{Event: kind, CommitID: "c0ffee", Actor: actor}
}

func TestResolveContributors_Execute_FallsBackToAssignee(t *testing.T) {
	// Setup
	source := testutil.NewMockIssueSource()
	issue := domain.NewIssue(5, "t", "u", domain.IssueStateClosed, "x", "dave", nil)
	source.AddIssue(issue, []domain.Event{
		{Event: "closed", Actor: "dave"},                    // no commit
		{Event: "labeled", CommitID: "abc", Actor: "dave"}, // wrong kind
	})
	uc := NewResolveContributors(source, nil)

	// Execute
	out, err := uc.Execute(context.Background(), ResolveContributorsInput{Issue: issue})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 0, out.Contributors.Len())
	assert.Equal(t, "dave", out.Attribution)
}

func TestResolveContributors_Execute_MentionsInDiscoveryOrder(t *testing.T) {
	// Setup
	source := testutil.NewMockIssueSource()
	issue := domain.NewIssue(6, "t", "u", domain.IssueStateClosed, "x", "dave", nil)
	source.AddIssue(issue,
		[]domain.Event{credit("referenced", "erin"), credit("closed", "frank")},
		[]domain.Event{credit("commited", "erin"), credit("referenced", "frank")},
	)
	uc := NewResolveContributors(source, nil)

	// Execute
	out, err := uc.Execute(context.Background(), ResolveContributorsInput{Issue: issue})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{"erin", "frank"}, out.Contributors.Logins())
	assert.Equal(t, "@erin, @frank", out.Attribution)
}

func TestResolveContributors_Execute_OrderIndependentMembership(t *testing.T) {
	events := []domain.Event{
		credit("closed", "gina"),
		credit("referenced", "hank"),
		credit("commited", "gina"),
		credit("referenced", "ivan"),
	}
	reversed := make([]domain.Event, len(events))
	for i, e := range events {
		reversed[len(events)-1-i] = e
	}

	resolve := func(pages ...[]domain.Event) []string {
		source := testutil.NewMockIssueSource()
		issue := domain.NewIssue(1, "t", "u", domain.IssueStateClosed, "x", "", nil)
		source.AddIssue(issue, pages...)
		out, err := NewResolveContributors(source, nil).Execute(context.Background(), ResolveContributorsInput{Issue: issue})
		require.NoError(t, err)
		return out.Contributors.Logins()
	}

	assert.ElementsMatch(t, resolve(events), resolve(reversed))
	assert.ElementsMatch(t, resolve(events), resolve(events[:2], events[2:]))
}

func TestResolveContributors_Execute_NotFoundUsesAssignee(t *testing.T) {
	// Setup
	source := testutil.NewMockIssueSource()
	issue := domain.NewIssue(8, "t", "u", domain.IssueStateClosed, "x", "dave", nil)
	source.AddIssue(issue)
	source.EventsErr[8] = fmt.Errorf("events: %w", domain.ErrNotFound)
	logger := &testutil.MockLogger{}
	uc := NewResolveContributors(source, logger)

	// Execute
	out, err := uc.Execute(context.Background(), ResolveContributorsInput{Issue: issue})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "dave", out.Attribution)
	assert.Len(t, logger.Level("warn"), 1)
}

func TestResolveContributors_Execute_ErrorIsFatal(t *testing.T) {
	// Setup
	source := testutil.NewMockIssueSource()
	issue := domain.NewIssue(9, "t", "u", domain.IssueStateClosed, "x", "dave", nil)
	source.AddIssue(issue, []domain.Event{credit("closed", "erin")})
	source.EventsErr[9] = errors.New("500 internal error")
	uc := NewResolveContributors(source, nil)

	// Execute
	out, err := uc.Execute(context.Background(), ResolveContributorsInput{Issue: issue})

	// Assert
	require.Error(t, err)
	assert.Nil(t, out)
	assert.Contains(t, err.Error(), "issue #9")
}
