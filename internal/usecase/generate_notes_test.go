package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/runoshun/git-relnotes/internal/domain"
	"github.com/runoshun/git-relnotes/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type generateFixture struct {
	commits  *testutil.MockCommitSource
	releases *testutil.MockReleaseSource
	issues   *testutil.MockIssueSource
	configs  *testutil.MockConfigLoader
	logger   *testutil.MockLogger
}

func newGenerateFixture() *generateFixture {
	f := &generateFixture{
		commits:  testutil.NewMockCommitSource(),
		releases: &testutil.MockReleaseSource{},
		issues:   testutil.NewMockIssueSource(),
		configs: &testutil.MockConfigLoader{Config: &domain.ReleaseConfig{Changelog: &domain.ChangelogConfig{
			Categories: []domain.CategoryConfig{
				{Title: "Features", Labels: []string{"enhancement"}},
				{Title: "Bugs", Labels: []string{"bug"}, Exclude: &domain.ExcludeConfig{Labels: []string{"wontfix"}}},
				{Title: "Other", Labels: []string{"*"}},
			},
		}}},
		logger: &testutil.MockLogger{},
	}

	alice := closed(1, "alice", "enhancement")
	alice.Title = "Add dark mode"
	bob := closed(2, "bob", "bug", "wontfix")
	bob.Title = "Crash on start"
	bob.Assignee = "bob"
	carol := closed(3, "carol", "chore")
	carol.Title = "Bump deps"
	f.issues.AddIssue(alice, []domain.Event{credit("closed", "alice"), credit("referenced", "zed")})
	f.issues.AddIssue(bob)
	f.issues.AddIssue(carol, []domain.Event{credit("referenced", "carol")})

	f.commits.Ranges["v1.0.0...v1.1.0"] = testutil.Messages("feat: dark mode #1", "fix #2 (#3)", "chore #1")
	return f
}

func (f *generateFixture) useCase() *GenerateNotes {
	return NewGenerateNotes(f.commits, f.releases, f.issues, f.configs, f.logger)
}

const expectedNotes = "### Features\n" +
	" - [Add dark mode](https://github.com/o/r/issues/1) (@alice, @zed)\n" +
	"### Other\n" +
	" - [Crash on start](https://github.com/o/r/issues/2) (bob)\n" +
	" - [Bump deps](https://github.com/o/r/issues/3) (@carol)\n"

func TestGenerateNotes_Execute_Success(t *testing.T) {
	// Setup
	f := newGenerateFixture()

	// Execute
	out, err := f.useCase().Execute(context.Background(), GenerateNotesInput{
		TagName:     "refs/tags/v1.1.0",
		PrevTagName: "refs/tags/v1.0.0",
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, expectedNotes, out.Content)
	assert.Equal(t, "v1.1.0", out.Tag)
	assert.Equal(t, "v1.0.0", out.BaseTag)
	assert.Equal(t, domain.BuiltinConfigOrigin, out.ConfigOrigin)
	assert.Equal(t, []string{"v1.0.0...v1.1.0"}, f.commits.Calls)
	assert.Equal(t, []int{1, 2, 3}, f.issues.GetCalls)
	assert.Equal(t, []int{1, 2, 3}, f.issues.EventCalls)
}

func TestGenerateNotes_Execute_ByteIdenticalReruns(t *testing.T) {
	f := newGenerateFixture()
	in := GenerateNotesInput{TagName: "v1.1.0", PrevTagName: "v1.0.0"}

	first, err := f.useCase().Execute(context.Background(), in)
	require.NoError(t, err)
	second, err := f.useCase().Execute(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, first.Content, second.Content)
}

func TestGenerateNotes_Execute_FallsBackToLatestRelease(t *testing.T) {
	// Setup
	f := newGenerateFixture()
	f.releases.Latest = "v1.0.0"

	// Execute
	out, err := f.useCase().Execute(context.Background(), GenerateNotesInput{TagName: "v1.1.0"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "v1.0.0", out.BaseTag)
	assert.Equal(t, expectedNotes, out.Content)
}

func TestGenerateNotes_Execute_FullHistoryWithoutRelease(t *testing.T) {
	// Setup
	f := newGenerateFixture()
	f.commits.History["v1.1.0"] = testutil.Messages("initial #3")

	// Execute
	out, err := f.useCase().Execute(context.Background(), GenerateNotesInput{TagName: "v1.1.0"})

	// Assert
	require.NoError(t, err)
	assert.Empty(t, out.BaseTag)
	assert.Equal(t, []string{"v1.1.0"}, f.commits.Calls)
	assert.Equal(t, "### Other\n - [Bump deps](https://github.com/o/r/issues/3) (@carol)\n", out.Content)

	var infos []string
	for _, e := range f.logger.Level("info") {
		infos = append(infos, e.Msg)
	}
	assert.Contains(t, infos, "Latest published full release for the repository doesn't exist yet. All suitable related issues will be included.")
}

func TestGenerateNotes_Execute_SkipsUncategorizedContributorLookups(t *testing.T) {
	// Setup
	f := newGenerateFixture()
	f.configs.Config.Changelog.Categories = f.configs.Config.Changelog.Categories[:1]

	// Execute
	out, err := f.useCase().Execute(context.Background(), GenerateNotesInput{TagName: "v1.1.0", PrevTagName: "v1.0.0"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []int{1}, f.issues.EventCalls)
	require.Len(t, out.Classification.Dropped, 2)
}

func TestGenerateNotes_Execute_Errors(t *testing.T) {
	apiErr := errors.New("403 forbidden")

	tests := []struct {
		name    string
		in      GenerateNotesInput
		setup   func(f *generateFixture)
		wantIs  error
		wantMsg string
	}{
		{
			name:   "missing tag",
			in:     GenerateNotesInput{TagName: "  "},
			wantIs: domain.ErrTagRequired,
		},
		{
			name:    "release lookup failure",
			in:      GenerateNotesInput{TagName: "v1.1.0"},
			setup:   func(f *generateFixture) { f.releases.Err = apiErr },
			wantIs:  apiErr,
			wantMsg: "get latest release",
		},
		{
			name:    "config load failure",
			in:      GenerateNotesInput{TagName: "v1.1.0", PrevTagName: "v1.0.0"},
			setup:   func(f *generateFixture) { f.configs.LoadErr = apiErr },
			wantIs:  apiErr,
			wantMsg: "load configuration",
		},
		{
			name:   "malformed config",
			in:     GenerateNotesInput{TagName: "v1.1.0", PrevTagName: "v1.0.0"},
			setup:  func(f *generateFixture) { f.configs.Config = &domain.ReleaseConfig{Changelog: &domain.ChangelogConfig{}} },
			wantIs: domain.ErrInvalidConfig,
		},
		{
			name:    "issue fetch failure",
			in:      GenerateNotesInput{TagName: "v1.1.0", PrevTagName: "v1.0.0"},
			setup:   func(f *generateFixture) { f.issues.GetErr[2] = apiErr },
			wantIs:  apiErr,
			wantMsg: "get issue #2",
		},
		{
			name:    "event listing failure",
			in:      GenerateNotesInput{TagName: "v1.1.0", PrevTagName: "v1.0.0"},
			setup:   func(f *generateFixture) { f.issues.EventsErr[3] = apiErr },
			wantIs:  apiErr,
			wantMsg: "list events for issue #3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newGenerateFixture()
			if tt.setup != nil {
				tt.setup(f)
			}

			out, err := f.useCase().Execute(context.Background(), tt.in)

			require.Error(t, err)
			assert.Nil(t, out)
			assert.ErrorIs(t, err, tt.wantIs)
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}
