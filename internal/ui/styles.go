package ui

import "github.com/charmbracelet/lipgloss"

var (
	accent  = lipgloss.AdaptiveColor{Light: "#101F38", Dark: "#8BC34A"}
	muted   = lipgloss.AdaptiveColor{Light: "#8a919c", Dark: "#6b7688"}
	danger  = lipgloss.Color("#e53935")
	success = lipgloss.Color("#8BC34A")
)

// styles holds the lipgloss styles used by the view.
type styles struct {
	Title        lipgloss.Style
	Counts       lipgloss.Style
	FilterActive lipgloss.Style
	FilterIdle   lipgloss.Style
	Cursor       lipgloss.Style
	Pending      lipgloss.Style
	Completed    lipgloss.Style
	Empty        lipgloss.Style
	Confirm      lipgloss.Style
	Error        lipgloss.Style
	Info         lipgloss.Style
	Help         lipgloss.Style
	Footer       lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		Title:        lipgloss.NewStyle().Bold(true).Foreground(accent),
		Counts:       lipgloss.NewStyle().Foreground(muted),
		FilterActive: lipgloss.NewStyle().Bold(true).Underline(true).Foreground(accent),
		FilterIdle:   lipgloss.NewStyle().Foreground(muted),
		Cursor:       lipgloss.NewStyle().Bold(true).Foreground(accent),
		Pending:      lipgloss.NewStyle(),
		Completed:    lipgloss.NewStyle().Strikethrough(true).Foreground(muted),
		Empty:        lipgloss.NewStyle().Italic(true).Foreground(muted),
		Confirm:      lipgloss.NewStyle().Bold(true).Foreground(danger),
		Error:        lipgloss.NewStyle().Foreground(danger),
		Info:         lipgloss.NewStyle().Foreground(success),
		Help:         lipgloss.NewStyle().Foreground(muted),
		Footer:       lipgloss.NewStyle().Foreground(muted),
	}
}
