package changelog

import (
	"fmt"
	"io"
	"strings"

	"github.com/runoshun/git-relnotes/internal/domain"
)

// Attributions maps issue numbers to their display attribution.
type Attributions map[int]string

// Render writes the release notes for cl.
// The function is idempotent - given the same input, it produces identical output.
func Render(w io.Writer, cl *domain.Classification, attr Attributions) error {
	for _, c := range cl.Rules.Categories() {
		issues := cl.IssuesFor(c)
		if len(issues) == 0 {
			continue
		}
		if err := renderCategory(w, c.Title, issues, attr); err != nil {
			return fmt.Errorf("rendering category %s: %w", c.Title, err)
		}
	}
	return nil
}

// RenderString is a convenience function that renders to a string.
func RenderString(cl *domain.Classification, attr Attributions) (string, error) {
	var b strings.Builder
	if err := Render(&b, cl, attr); err != nil {
		return "", err
	}
	return b.String(), nil
}

// renderCategory writes a single category section with its entries.
func renderCategory(w io.Writer, title string, issues []*domain.Issue, attr Attributions) error {
	if _, err := io.WriteString(w, "### "+title+"\n"); err != nil {
		return err
	}
	for _, is := range issues {
		if _, err := io.WriteString(w, FormatEntry(is, attr[is.Number])+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// FormatEntry formats one issue line without the trailing newline.
// The attribution suffix is omitted when attribution is empty.
func FormatEntry(is *domain.Issue, attribution string) string {
	line := fmt.Sprintf(" - [%s](%s)", is.Title, is.URL)
	if attribution == "" {
		return line
	}
	return line + " (" + attribution + ")"
}
