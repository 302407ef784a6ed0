package usecase

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"github.com/runoshun/git-relnotes/internal/changelog"
	"github.com/runoshun/git-relnotes/internal/domain"
)

// GenerateNotesInput contains the parameters for generating release notes.
type GenerateNotesInput struct {
	TagName     string // Release tag (required), refs/tags/ prefix allowed
	PrevTagName string // Baseline tag, empty = latest release
	ConfigPath  string // Configuration document path, empty = default locations
}

// GenerateNotesOutput contains the generated release notes.
// Fields are ordered to minimize memory padding.
type GenerateNotesOutput struct {
	Classification *domain.Classification
	Attributions   changelog.Attributions
	Content        string // Rendered Markdown
	Tag            string // Normalized release tag
	BaseTag        string // Baseline tag, empty when the full history was scanned
	ConfigOrigin   string // Where the configuration came from
	Missing        []int  // Referenced numbers with no matching issue
}

// GenerateNotes is the use case that turns a tag range into categorized release notes.
type GenerateNotes struct {
	commits  domain.CommitSource
	releases domain.ReleaseSource
	issues   domain.IssueSource
	configs  domain.ConfigLoader
	logger   domain.Logger
}

// NewGenerateNotes creates a new GenerateNotes use case.
func NewGenerateNotes(
	commits domain.CommitSource,
	releases domain.ReleaseSource,
	issues domain.IssueSource,
	configs domain.ConfigLoader,
	logger domain.Logger,
) *GenerateNotes {
	return &GenerateNotes{
		commits:  commits,
		releases: releases,
		issues:   issues,
		configs:  configs,
		logger:   logger,
	}
}

// Execute runs the pipeline: baseline -> configuration -> referenced issues ->
// categorization -> contributors -> Markdown. Nothing is returned on error.
func (uc *GenerateNotes) Execute(ctx context.Context, in GenerateNotesInput) (*GenerateNotesOutput, error) {
	tag := domain.NormalizeTag(in.TagName)
	if tag == "" {
		return nil, domain.ErrTagRequired
	}

	baseTag, err := uc.resolveBaseTag(ctx, tag, domain.NormalizeTag(in.PrevTagName))
	if err != nil {
		return nil, err
	}

	cfg, origin, err := uc.configs.Load(ctx, in.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	rules, err := cfg.Compile()
	if err != nil {
		return nil, err
	}
	uc.info(fmt.Sprintf("using configuration %s", origin))

	collected, err := NewCollectIssues(uc.issues, uc.logger).Execute(ctx, CollectIssuesInput{
		Commits: uc.commitRange(ctx, baseTag, tag),
	})
	if err != nil {
		return nil, err
	}

	cl := rules.Classify(collected.Issues)
	if uc.logger != nil {
		for _, d := range cl.Dropped {
			uc.logger.Debug(d.Issue.Number, "categorize", fmt.Sprintf("dropped: %s", d.Reason))
		}
	}

	resolver := NewResolveContributors(uc.issues, uc.logger)
	attr := make(changelog.Attributions)
	for _, issue := range cl.Classified() {
		resolved, err := resolver.Execute(ctx, ResolveContributorsInput{Issue: issue})
		if err != nil {
			return nil, err
		}
		attr[issue.Number] = resolved.Attribution
	}

	content, err := changelog.RenderString(cl, attr)
	if err != nil {
		return nil, fmt.Errorf("render release notes: %w", err)
	}

	return &GenerateNotesOutput{
		Classification: cl,
		Attributions:   attr,
		Content:        content,
		Tag:            tag,
		BaseTag:        baseTag,
		ConfigOrigin:   origin,
		Missing:        collected.Missing,
	}, nil
}

// resolveBaseTag returns prevTag, or the latest release tag when prevTag is empty.
// An empty result means the whole history of tag is scanned.
func (uc *GenerateNotes) resolveBaseTag(ctx context.Context, tag, prevTag string) (string, error) {
	if prevTag != "" {
		return prevTag, nil
	}

	uc.info("There was no previous tag specified. Falling back to the latest release tag.")
	latest, err := uc.releases.LatestReleaseTag(ctx, tag)
	if errors.Is(err, domain.ErrNoRelease) || errors.Is(err, domain.ErrNotFound) {
		uc.info("Latest published full release for the repository doesn't exist yet. All suitable related issues will be included.")
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get latest release: %w", err)
	}
	return latest, nil
}

func (uc *GenerateNotes) commitRange(ctx context.Context, baseTag, tag string) iter.Seq2[domain.Commit, error] {
	if baseTag == "" {
		return uc.commits.CommitsFrom(ctx, tag)
	}
	uc.info(fmt.Sprintf("collecting commits %s...%s", baseTag, tag))
	return uc.commits.CommitsBetween(ctx, baseTag, tag)
}

func (uc *GenerateNotes) info(msg string) {
	if uc.logger != nil {
		uc.logger.Info(0, "run", msg)
	}
}
