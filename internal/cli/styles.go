package cli

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// colors is the report palette.
var colors = struct {
	Primary lipgloss.Color
	Muted   lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
}{
	Primary: lipgloss.Color("#6C5CE7"), // Purple
	Muted:   lipgloss.Color("#636E72"), // Gray
	Success: lipgloss.Color("#00B894"), // Green
	Warning: lipgloss.Color("#FDCB6E"), // Yellow
	Error:   lipgloss.Color("#D63031"), // Red
}

// reportStyles holds the lipgloss styles of the preview and config check reports.
type reportStyles struct {
	Header   lipgloss.Style
	Label    lipgloss.Style
	Section  lipgloss.Style
	Count    lipgloss.Style
	Number   lipgloss.Style
	Credit   lipgloss.Style
	Muted    lipgloss.Style
	Reason   lipgloss.Style
	Problem  lipgloss.Style
	Indented lipgloss.Style
}

// newReportStyles binds the styles to w so color is only emitted on terminals.
func newReportStyles(w io.Writer) reportStyles {
	r := lipgloss.NewRenderer(w)
	return reportStyles{
		Header:   r.NewStyle().Bold(true).Foreground(colors.Primary),
		Label:    r.NewStyle().Foreground(colors.Muted),
		Section:  r.NewStyle().Bold(true),
		Count:    r.NewStyle().Foreground(colors.Muted),
		Number:   r.NewStyle().Foreground(colors.Success),
		Credit:   r.NewStyle().Foreground(colors.Muted).Italic(true),
		Muted:    r.NewStyle().Foreground(colors.Muted),
		Reason:   r.NewStyle().Foreground(colors.Warning),
		Problem:  r.NewStyle().Foreground(colors.Error),
		Indented: r.NewStyle().PaddingLeft(2),
	}
}
