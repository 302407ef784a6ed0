// Package app provides the dependency injection container for the application.
package app

import (
	"fmt"
	"io"
	"os"

	"github.com/runoshun/git-relnotes/internal/domain"
	"github.com/runoshun/git-relnotes/internal/infra/config"
	"github.com/runoshun/git-relnotes/internal/infra/git"
	"github.com/runoshun/git-relnotes/internal/infra/github"
	"github.com/runoshun/git-relnotes/internal/infra/logging"
	"github.com/runoshun/git-relnotes/internal/usecase"
)

// Options holds the run settings resolved from flags and the environment.
type Options struct {
	Stderr     io.Writer // Log destination, defaults to os.Stderr
	Repository string    // "owner/name", empty = origin remote of LocalDir
	Token      string    // GitHub token
	APIURL     string    // GitHub API base URL, empty = api.github.com
	LocalDir   string    // Local clone for commits, tags and config, empty = use the API
	WorkDir    string    // Config file root when neither LocalDir nor Repository is set
	LogLevel   string
	LogFormat  string
	LogFile    string
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	Commits      domain.CommitSource
	Releases     domain.ReleaseSource
	Issues       domain.IssueSource
	ConfigLoader *config.Loader
	Clock        domain.Clock

	// Pointer fields
	Logger *logging.Logger

	// Repository is the resolved "owner/name", empty when unknown.
	Repository string
}

// New creates a new Container from opts.
//
// Issues always come from the GitHub API. Commits, tags and the configuration
// document come from the local clone when LocalDir is set, and from the API otherwise.
func New(opts Options) (*Container, error) {
	logger, err := newLogger(opts)
	if err != nil {
		return nil, err
	}

	c := &Container{
		Clock:      domain.RealClock{},
		Logger:     logger,
		Repository: opts.Repository,
	}

	var configSource domain.ConfigSource
	var local *git.Repository
	if opts.LocalDir != "" {
		local, err = git.Open(opts.LocalDir)
		if err != nil {
			_ = logger.Close()
			return nil, err
		}
		if c.Repository == "" {
			if repo, err := local.OriginRepository(); err == nil {
				c.Repository = repo
			}
		}
	}

	if c.Repository != "" {
		client, err := github.NewClient(c.Repository, opts.Token, opts.APIURL)
		if err != nil {
			_ = logger.Close()
			return nil, err
		}
		c.Issues = client
		c.Commits = client
		c.Releases = client
		configSource = client
	}

	switch {
	case local != nil:
		c.Commits = local
		c.Releases = local
		configSource = config.NewFileSource(local.Root())
	case configSource == nil:
		configSource = config.NewFileSource(opts.WorkDir)
	}
	c.ConfigLoader = config.NewLoader(configSource, logger)

	return c, nil
}

// NewWithDeps creates a new Container with custom dependencies for testing.
func NewWithDeps(
	commits domain.CommitSource,
	releases domain.ReleaseSource,
	issues domain.IssueSource,
	configs domain.ConfigSource,
	logger *logging.Logger,
) *Container {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Container{
		Commits:      commits,
		Releases:     releases,
		Issues:       issues,
		ConfigLoader: config.NewLoader(configs, logger),
		Clock:        domain.RealClock{},
		Logger:       logger,
		Repository:   "test/test",
	}
}

func newLogger(opts Options) (*logging.Logger, error) {
	out := opts.Stderr
	if out == nil {
		out = os.Stderr
	}
	logger := logging.New(out, logging.ParseLevel(opts.LogLevel), logging.ParseFormat(opts.LogFormat), domain.RealClock{})
	if opts.LogFile != "" {
		if err := logger.OpenFile(opts.LogFile); err != nil {
			return nil, err
		}
	}
	return logger, nil
}

// Close releases resources held by the container.
func (c *Container) Close() error {
	return c.Logger.Close()
}

// UseCase factory methods

// GenerateNotesUseCase returns a new GenerateNotes use case.
// It fails when no repository is known, since issues are only available from the API.
func (c *Container) GenerateNotesUseCase() (*usecase.GenerateNotes, error) {
	if c.Issues == nil || c.Commits == nil || c.Releases == nil {
		return nil, fmt.Errorf("%w: pass --repo or set GITHUB_REPOSITORY", domain.ErrNoRepository)
	}
	return usecase.NewGenerateNotes(c.Commits, c.Releases, c.Issues, c.ConfigLoader, c.Logger), nil
}

// CheckConfigUseCase returns a new CheckConfig use case.
func (c *Container) CheckConfigUseCase() *usecase.CheckConfig {
	return usecase.NewCheckConfig(c.ConfigLoader)
}

// ShowConfigTemplateUseCase returns a new ShowConfigTemplate use case.
func (c *Container) ShowConfigTemplateUseCase() *usecase.ShowConfigTemplate {
	return usecase.NewShowConfigTemplate(c.ConfigLoader)
}
