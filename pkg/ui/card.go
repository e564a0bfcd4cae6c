package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/careerpilot/careerpilot/pkg/career"
)

// Card is the display form of one recommendation.
type Card struct {
	Title    string
	Category string
	Match    string
	Reason   string
	Have     []string
	Need     []string
	Roadmap  []string
}

func BuildCard(r career.Recommendation) Card {
	c := Card{
		Title:    r.Title,
		Category: r.Category,
		Match:    fmt.Sprintf("%d%% Match", r.MatchScore),
		Reason:   r.Reason,
	}
	for _, s := range r.Analysis.Matching {
		c.Have = append(c.Have, "✓ "+s)
	}
	for _, s := range r.Analysis.Missing {
		c.Need = append(c.Need, "+ "+s)
	}
	for i, step := range r.Roadmap {
		line := fmt.Sprintf("%d. %s", i+1, step.Title)
		if step.Focus != "" {
			line += ": " + step.Focus
		}
		c.Roadmap = append(c.Roadmap, line)
	}
	return c
}

// RenderCareerCard draws a recommendation as a bordered card of the given
// outer width.
func RenderCareerCard(r career.Recommendation, s Styles, width int) string {
	c := BuildCard(r)
	inner := max(width-4, 20)

	var b strings.Builder
	b.WriteString(s.Title.Render(c.Title))
	b.WriteString("  ")
	b.WriteString(s.Badge.Render(c.Match))
	if c.Category != "" {
		b.WriteString("\n")
		b.WriteString(s.Subtitle.Render(c.Category))
	}
	if c.Reason != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Width(inner).Render(c.Reason))
	}

	b.WriteString("\n\n")
	b.WriteString(s.Bold.Render("Skills you have"))
	b.WriteString("\n")
	b.WriteString(tags(c.Have, s.HaveTag, inner))
	b.WriteString("\n")
	b.WriteString(s.Bold.Render("Skills to learn"))
	b.WriteString("\n")
	b.WriteString(tags(c.Need, s.NeedTag, inner))

	if len(c.Roadmap) > 0 {
		b.WriteString("\n\n")
		b.WriteString(s.Bold.Render("6-Month Roadmap"))
		for _, line := range c.Roadmap {
			b.WriteString("\n")
			b.WriteString(lipgloss.NewStyle().Width(inner).Render(line))
		}
	}
	return s.Card.Width(width - 2).Render(b.String())
}

// tags lays out labels left to right, wrapping whole labels.
func tags(labels []string, style lipgloss.Style, width int) string {
	if len(labels) == 0 {
		return style.Faint(true).Render("none")
	}
	var (
		lines   []string
		current []string
		used    int
	)
	for _, l := range labels {
		w := lipgloss.Width(l)
		if used > 0 && used+2+w > width {
			lines = append(lines, strings.Join(current, "  "))
			current, used = nil, 0
		}
		if used > 0 {
			used += 2
		}
		current = append(current, style.Render(l))
		used += w
	}
	lines = append(lines, strings.Join(current, "  "))
	return strings.Join(lines, "\n")
}
