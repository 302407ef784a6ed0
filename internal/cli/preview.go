package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/runoshun/git-relnotes/internal/domain"
	"github.com/runoshun/git-relnotes/internal/usecase"
)

// newPreviewCommand creates the preview command.
func newPreviewCommand(o *rootOptions) *cobra.Command {
	var in usecase.GenerateNotesInput

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Show how issues are categorized",
		Long: `Run the release notes pipeline and print a categorization report.

Every category is listed with its entries and attributions, followed by the
issues that were left out and why. Nothing is written to GITHUB_OUTPUT.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := runPipeline(cmd, o, in)
			if err != nil {
				return err
			}
			writePreview(cmd.OutOrStdout(), out)
			return nil
		},
	}

	addRunFlags(cmd, &in, o.env)

	return cmd
}

// writePreview prints the categorization report of out.
func writePreview(w io.Writer, out *usecase.GenerateNotesOutput) {
	s := newReportStyles(w)

	since := "full history"
	if out.BaseTag != "" {
		since = "since " + out.BaseTag
	}
	_, _ = fmt.Fprintf(w, "%s %s\n", s.Header.Render("Release "+out.Tag), s.Muted.Render("("+since+")"))
	_, _ = fmt.Fprintf(w, "%s %s\n\n", s.Label.Render("Configuration:"), out.ConfigOrigin)

	cl := out.Classification
	for _, c := range cl.Rules.Categories() {
		issues := cl.IssuesFor(c)
		_, _ = fmt.Fprintf(w, "%s %s\n", s.Section.Render(c.Title), s.Count.Render(fmt.Sprintf("(%d)", len(issues))))
		for _, is := range issues {
			line := s.Number.Render(fmt.Sprintf("#%d", is.Number)) + " " + is.Title
			if credit := out.Attributions[is.Number]; credit != "" {
				line += " " + s.Credit.Render(credit)
			}
			_, _ = fmt.Fprintln(w, s.Indented.Render(line))
		}
	}

	if len(cl.Dropped) > 0 {
		_, _ = fmt.Fprintf(w, "\n%s %s\n", s.Section.Render("Left out"), s.Count.Render(fmt.Sprintf("(%d)", len(cl.Dropped))))
		for _, d := range cl.Dropped {
			line := s.Number.Render(fmt.Sprintf("#%d", d.Issue.Number)) + " " + d.Issue.Title + " " + s.Reason.Render(string(d.Reason))
			_, _ = fmt.Fprintln(w, s.Indented.Render(line))
		}
	}

	if len(out.Missing) > 0 {
		refs := make([]string, 0, len(out.Missing))
		for _, n := range out.Missing {
			refs = append(refs, fmt.Sprintf("#%d", n))
		}
		_, _ = fmt.Fprintf(w, "\n%s %s\n", s.Problem.Render("Not found:"), strings.Join(refs, ", "))
	}

	if len(cl.Classified()) == 0 {
		_, _ = fmt.Fprintf(w, "\n%s\n", s.Muted.Render(emptyNotice(cl)))
	}
}

func emptyNotice(cl *domain.Classification) string {
	if len(cl.Dropped) == 0 {
		return "No referenced issues in this range."
	}
	return "No issue made it into the release notes."
}
