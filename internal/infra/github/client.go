// Package github provides the GitHub REST API adapters: issues, issue events,
// commit ranges, releases and repository contents.
package github

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"net/http"
	"strings"

	gh "github.com/google/go-github/v72/github"

	"github.com/runoshun/git-relnotes/internal/domain"
)

// DefaultAPIURL is the public GitHub API endpoint.
const DefaultAPIURL = "https://api.github.com"

const perPage = 100

// Client talks to one repository through the GitHub REST API.
type Client struct {
	gh    *gh.Client
	owner string
	repo  string
}

// Ensure Client implements the domain ports.
var (
	_ domain.IssueSource   = (*Client)(nil)
	_ domain.CommitSource  = (*Client)(nil)
	_ domain.ReleaseSource = (*Client)(nil)
	_ domain.ConfigSource  = (*Client)(nil)
)

// NewClient creates a Client for repository "owner/name".
// apiURL selects a GitHub Enterprise server; empty means api.github.com.
func NewClient(repository, token, apiURL string) (*Client, error) {
	owner, repo, ok := strings.Cut(repository, "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return nil, fmt.Errorf("%w: got %q", domain.ErrNoRepository, repository)
	}

	client := gh.NewClient(nil)
	if token != "" {
		client = client.WithAuthToken(token)
	}
	if apiURL != "" && strings.TrimRight(apiURL, "/") != DefaultAPIURL {
		var err error
		client, err = client.WithEnterpriseURLs(apiURL, apiURL)
		if err != nil {
			return nil, fmt.Errorf("configure api url: %w", err)
		}
	}
	return NewWithClient(client, owner, repo), nil
}

// NewWithClient creates a Client with an existing go-github client.
func NewWithClient(client *gh.Client, owner, repo string) *Client {
	return &Client{
		gh:    client,
		owner: owner,
		repo:  repo,
	}
}

// GetIssue fetches an issue by number.
func (c *Client) GetIssue(ctx context.Context, number int) (*domain.Issue, error) {
	issue, resp, err := c.gh.Issues.Get(ctx, c.owner, c.repo, number)
	if err != nil {
		return nil, translate(resp, err, fmt.Sprintf("issue #%d", number))
	}

	labels := make([]string, 0, len(issue.Labels))
	for _, l := range issue.Labels {
		labels = append(labels, l.GetName())
	}
	return domain.NewIssue(
		issue.GetNumber(),
		issue.GetTitle(),
		issue.GetHTMLURL(),
		issue.GetState(),
		issue.GetClosedBy().GetLogin(),
		issue.GetAssignee().GetLogin(),
		labels,
	), nil
}

// IssueEvents yields the issue's events across all pages.
func (c *Client) IssueEvents(ctx context.Context, number int) iter.Seq2[domain.Event, error] {
	pages := paginate(func(opts gh.ListOptions) ([]*gh.IssueEvent, *gh.Response, error) {
		return c.gh.Issues.ListIssueEvents(ctx, c.owner, c.repo, number, &opts)
	})
	return func(yield func(domain.Event, error) bool) {
		for e, err := range pages {
			if err != nil {
				yield(domain.Event{}, translate(nil, err, fmt.Sprintf("events of issue #%d", number)))
				return
			}
			if !yield(domain.Event{
				Event:    e.GetEvent(),
				CommitID: e.GetCommitID(),
				Actor:    e.GetActor().GetLogin(),
			}, nil) {
				return
			}
		}
	}
}

// CommitsBetween yields the commits of the base...head comparison.
func (c *Client) CommitsBetween(ctx context.Context, base, head string) iter.Seq2[domain.Commit, error] {
	pages := paginate(func(opts gh.ListOptions) ([]*gh.RepositoryCommit, *gh.Response, error) {
		cmp, resp, err := c.gh.Repositories.CompareCommits(ctx, c.owner, c.repo, base, head, &opts)
		if err != nil {
			return nil, resp, err
		}
		return cmp.Commits, resp, nil
	})
	return commits(pages, fmt.Sprintf("compare %s...%s", base, head))
}

// CommitsFrom yields every commit reachable from head.
func (c *Client) CommitsFrom(ctx context.Context, head string) iter.Seq2[domain.Commit, error] {
	pages := paginate(func(opts gh.ListOptions) ([]*gh.RepositoryCommit, *gh.Response, error) {
		return c.gh.Repositories.ListCommits(ctx, c.owner, c.repo, &gh.CommitsListOptions{
			SHA:         head,
			ListOptions: opts,
		})
	})
	return commits(pages, fmt.Sprintf("commits of %s", head))
}

// LatestReleaseTag returns the tag of the latest published full release.
func (c *Client) LatestReleaseTag(ctx context.Context, _ string) (string, error) {
	release, resp, err := c.gh.Repositories.GetLatestRelease(ctx, c.owner, c.repo)
	if err != nil {
		err = translate(resp, err, "latest release")
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrNoRelease
		}
		return "", err
	}
	return release.GetTagName(), nil
}

// ReadFile returns a file of the default branch.
func (c *Client) ReadFile(ctx context.Context, path string) ([]byte, error) {
	file, _, resp, err := c.gh.Repositories.GetContents(ctx, c.owner, c.repo, path, nil)
	if err != nil {
		return nil, translate(resp, err, path)
	}
	if file == nil {
		return nil, fmt.Errorf("%s is not a file", path)
	}
	content, err := file.GetContent()
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return []byte(content), nil
}

func commits(pages iter.Seq2[*gh.RepositoryCommit, error], what string) iter.Seq2[domain.Commit, error] {
	return func(yield func(domain.Commit, error) bool) {
		for rc, err := range pages {
			if err != nil {
				yield(domain.Commit{}, translate(nil, err, what))
				return
			}
			if !yield(domain.Commit{SHA: rc.GetSHA(), Message: rc.GetCommit().GetMessage()}, nil) {
				return
			}
		}
	}
}

// translate maps a 404 to domain.ErrNotFound and wraps everything else.
func translate(resp *gh.Response, err error, what string) error {
	if isNotFound(resp, err) {
		return fmt.Errorf("%s: %w", what, domain.ErrNotFound)
	}
	return fmt.Errorf("%s: %w", what, err)
}

func isNotFound(resp *gh.Response, err error) bool {
	if resp != nil && resp.StatusCode == http.StatusNotFound {
		return true
	}
	var ghErr *gh.ErrorResponse
	return errors.As(err, &ghErr) && ghErr.Response != nil && ghErr.Response.StatusCode == http.StatusNotFound
}
