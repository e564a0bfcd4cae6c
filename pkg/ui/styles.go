// Package ui is the terminal front end: a Bubble Tea program that renders
// workflow.ViewState and forwards key presses to the controller.
package ui

import "github.com/charmbracelet/lipgloss"

var (
	Primary     = lipgloss.AdaptiveColor{Light: "#4f46e5", Dark: "#818cf8"}
	Accent      = lipgloss.AdaptiveColor{Light: "#0891b2", Dark: "#22d3ee"}
	Muted       = lipgloss.AdaptiveColor{Light: "#6b7280", Dark: "#9ca3af"}
	Success     = lipgloss.AdaptiveColor{Light: "#15803d", Dark: "#4ade80"}
	Destructive = lipgloss.AdaptiveColor{Light: "#b91c1c", Dark: "#f87171"}
	Border      = lipgloss.AdaptiveColor{Light: "#d1d5db", Dark: "#374151"}
)

// Styles groups every style the views use.
type Styles struct {
	Header   lipgloss.Style
	Footer   lipgloss.Style
	Content  lipgloss.Style
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Muted    lipgloss.Style
	Bold     lipgloss.Style
	Success  lipgloss.Style
	Error    lipgloss.Style

	Card     lipgloss.Style
	Badge    lipgloss.Style
	HaveTag  lipgloss.Style
	NeedTag  lipgloss.Style
	Selected lipgloss.Style
	Progress lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Background(Primary).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 2).
			Bold(true),
		Footer: lipgloss.NewStyle().
			Foreground(Muted).
			Padding(0, 2),
		Content: lipgloss.NewStyle().
			Padding(1, 2),
		Title: lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true),
		Subtitle: lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true),
		Muted: lipgloss.NewStyle().
			Foreground(Muted),
		Bold: lipgloss.NewStyle().
			Bold(true),
		Success: lipgloss.NewStyle().
			Foreground(Success).
			Bold(true),
		Error: lipgloss.NewStyle().
			Foreground(Destructive).
			Bold(true),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 1).
			MarginBottom(1),
		Badge: lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true),
		HaveTag: lipgloss.NewStyle().
			Foreground(Success),
		NeedTag: lipgloss.NewStyle().
			Foreground(Destructive),
		Selected: lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true),
		Progress: lipgloss.NewStyle().
			Foreground(Accent),
	}
}
