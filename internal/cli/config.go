package cli

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/runoshun/git-relnotes/internal/domain"
	"github.com/runoshun/git-relnotes/internal/usecase"
)

// newConfigCommand creates the config command.
func newConfigCommand(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the category configuration",
		Long:  `Inspect and validate the release notes category configuration.`,
		// No RunE: shows subcommand list when called without arguments
	}

	cmd.AddCommand(newConfigTemplateCommand(o))
	cmd.AddCommand(newConfigCheckCommand(o))

	return cmd
}

// newConfigTemplateCommand creates the config template subcommand.
func newConfigTemplateCommand(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "template",
		Short: "Print the built-in configuration",
		Long: `Print the built-in configuration document.

It is used when the repository has no .github/release.yml, and is a good
starting point for one:

  relnotes config template > .github/release.yml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := o.container(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			out, err := c.ShowConfigTemplateUseCase().Execute(cmd.Context(), usecase.ShowConfigTemplateInput{})
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out.Template)
			return err
		},
	}
}

// newConfigCheckCommand creates the config check subcommand.
func newConfigCheckCommand(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check [path]",
		Short: "Validate a configuration document",
		Long: `Load and validate a configuration document and print the compiled categories.

Without a path the default locations are tried in order:
  .github/release.yml
  .github/release.yaml
falling back to the built-in configuration.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := o.container(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			var in usecase.CheckConfigInput
			if len(args) == 1 {
				in.Path = args[0]
			}
			out, err := c.CheckConfigUseCase().Execute(cmd.Context(), in)
			if err != nil {
				return err
			}
			writeRules(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

// writeRules prints the compiled categories of a configuration.
func writeRules(w io.Writer, out *usecase.CheckConfigOutput) {
	s := newReportStyles(w)
	rules := out.Rules

	_, _ = fmt.Fprintf(w, "%s %s\n\n", s.Header.Render("Configuration OK:"), out.Origin)

	if ex := rules.Exclude(); !ex.IsEmpty() {
		_, _ = fmt.Fprintln(w, s.Section.Render("Excluded everywhere"))
		writeExclusion(w, s, ex)
	}

	catchAll := rules.CatchAll()
	for _, c := range rules.Categories() {
		title := s.Section.Render(c.Title)
		if c == catchAll {
			title += " " + s.Muted.Render("(catch-all)")
		}
		_, _ = fmt.Fprintln(w, title)
		_, _ = fmt.Fprintln(w, s.Indented.Render(s.Label.Render("labels:")+" "+strings.Join(c.Labels, ", ")))
		writeExclusion(w, s, c.Exclude)
	}

	if catchAll == nil {
		_, _ = fmt.Fprintf(w, "\n%s\n", s.Reason.Render(`No category claims "*": issues without a matching label are left out.`))
	}
}

func writeExclusion(w io.Writer, s reportStyles, ex domain.ExclusionRule) {
	if labels := ex.Labels(); len(labels) > 0 {
		slices.Sort(labels)
		_, _ = fmt.Fprintln(w, s.Indented.Render(s.Label.Render("exclude labels:")+" "+strings.Join(labels, ", ")))
	}
	if authors := ex.Authors(); len(authors) > 0 {
		slices.Sort(authors)
		_, _ = fmt.Fprintln(w, s.Indented.Render(s.Label.Render("exclude authors:")+" "+strings.Join(authors, ", ")))
	}
}
