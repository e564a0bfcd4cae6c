package ui

import (
	"fmt"

	"github.com/charmbracelet/glamour"

	"github.com/careerpilot/careerpilot/pkg/report"
)

// RenderReport renders a saved report as terminal markdown.
func RenderReport(r report.Report, width int) (string, error) {
	if width <= 0 {
		width = 80
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}
	out, err := renderer.Render(report.Markdown(r))
	if err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return out, nil
}
