// Package cli provides the command-line interface for git-relnotes.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/runoshun/git-relnotes/internal/app"
	"github.com/runoshun/git-relnotes/internal/infra/actions"
	"github.com/runoshun/git-relnotes/internal/infra/logging"
)

// Command group IDs.
const (
	groupNotes  = "notes"
	groupConfig = "config"
)

// newContainerFunc builds the container, allowing it to be replaced in tests.
var newContainerFunc = app.New

// rootOptions holds the persistent flags shared by all subcommands.
type rootOptions struct {
	env  *actions.Env
	opts app.Options
}

// container builds the dependency container for cmd from the parsed flags.
func (o *rootOptions) container(cmd *cobra.Command) (*app.Container, error) {
	opts := o.opts
	opts.Stderr = cmd.ErrOrStderr()
	return newContainerFunc(opts)
}

// NewRootCommand creates the root command for git-relnotes.
// env supplies the GitHub Actions inputs used as flag defaults.
func NewRootCommand(env *actions.Env, version string) *cobra.Command {
	o := &rootOptions{env: env}

	root := &cobra.Command{
		Use:   "relnotes",
		Short: "Generate categorized release notes from referenced issues",
		Long: `relnotes builds Markdown release notes for a tag.

It collects the issues referenced by "#N" in the commit messages between the
previous release and the tag, sorts them into the categories of
.github/release.yml, and credits the people who closed them.

Every run setting falls back to the GitHub Actions environment, so the
command works as an Action step without flags.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
	}

	defaultFormat := string(logging.FormatText)
	if env.IsActions() {
		defaultFormat = string(logging.FormatActions)
	}

	flags := root.PersistentFlags()
	flags.StringVar(&o.opts.Repository, "repo", env.Repository(), "GitHub repository as owner/name (env GITHUB_REPOSITORY)")
	flags.StringVar(&o.opts.APIURL, "api-url", env.Getenv("GITHUB_API_URL"), "GitHub API URL (env GITHUB_API_URL)")
	flags.StringVar(&o.opts.LocalDir, "local", "", "Read commits, tags and configuration from a local clone")
	flags.StringVar(&o.opts.LogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flags.StringVar(&o.opts.LogFormat, "log-format", defaultFormat, "Log format: text, actions")
	flags.StringVar(&o.opts.LogFile, "log-file", "", "Also append log messages to this file")
	o.opts.Token = env.Getenv("GITHUB_TOKEN")
	o.opts.WorkDir = "."

	root.AddGroup(
		&cobra.Group{ID: groupNotes, Title: "Release Notes:"},
		&cobra.Group{ID: groupConfig, Title: "Configuration:"},
	)

	generateCmd := newGenerateCommand(o)
	generateCmd.GroupID = groupNotes

	previewCmd := newPreviewCommand(o)
	previewCmd.GroupID = groupNotes

	configCmd := newConfigCommand(o)
	configCmd.GroupID = groupConfig

	root.AddCommand(generateCmd, previewCmd, configCmd)

	return root
}
