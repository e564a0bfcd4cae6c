package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/careerpilot/careerpilot/pkg/workflow"
)

const emptySavedText = "No saved reports yet. Generate an assessment and save it."

func renderHeader(v workflow.ViewState, s Styles, width int) string {
	title := "CareerPilot AI"
	if v.UserName != "" {
		title += "  ·  " + v.UserName
	}
	return s.Header.Width(max(width, lipgloss.Width(title)+4)).Render(title)
}

func renderToast(t *workflow.Toast, s Styles) string {
	if t == nil {
		return ""
	}
	if t.Kind == workflow.ToastError {
		return s.Error.Render("✗ " + t.Message)
	}
	return s.Success.Render("✓ " + t.Message)
}

func renderSessionLoader(s Styles, spin string) string {
	return spin + " " + s.Muted.Render("Checking your session...")
}

func renderHome(v workflow.ViewState, s Styles) string {
	var b strings.Builder
	b.WriteString(s.Title.Render("Find the career that fits you"))
	b.WriteString("\n")
	b.WriteString(s.Subtitle.Render("Answer three short steps and get personalised career paths, a skill gap analysis and a 6-month roadmap."))
	b.WriteString("\n\n")
	if n := len(v.Saved); n > 0 {
		b.WriteString(s.Muted.Render(fmt.Sprintf("You have %d saved report(s).", n)))
		b.WriteString("\n\n")
	}
	return b.String()
}

// renderLoading lists the loading steps: finished ones are checked, the
// current one carries the spinner.
func renderLoading(v workflow.ViewState, s Styles, spin string) string {
	var b strings.Builder
	b.WriteString(s.Title.Render("Analysing your profile"))
	b.WriteString("\n\n")
	for i, step := range v.LoadingSteps {
		switch {
		case i < v.LoadingStep:
			b.WriteString(s.Success.Render("✓") + " " + s.Muted.Render(step))
		case i == v.LoadingStep:
			b.WriteString(spin + " " + s.Progress.Render(step))
		default:
			b.WriteString("  " + s.Muted.Render(step))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func renderResults(v workflow.ViewState, s Styles, width int) string {
	var b strings.Builder
	heading := "Your career matches"
	if v.Selected != nil {
		heading = fmt.Sprintf("Report for %s · %s", v.Selected.Name, v.Selected.Date)
	}
	b.WriteString(s.Title.Render(heading))
	b.WriteString("\n")
	if v.AlreadySaved {
		b.WriteString(s.Success.Render("Saved"))
	} else {
		b.WriteString(s.Muted.Render("Not saved yet"))
	}
	b.WriteString("\n\n")
	if len(v.Results) == 0 {
		b.WriteString(s.Muted.Render("The AI did not suggest any careers for this profile."))
		return b.String()
	}
	for _, r := range v.Results {
		b.WriteString(RenderCareerCard(r, s, width))
		b.WriteString("\n")
	}
	return b.String()
}

func renderSaved(v workflow.ViewState, s Styles, cursor int) string {
	var b strings.Builder
	b.WriteString(s.Title.Render("Saved reports"))
	b.WriteString("\n\n")
	if len(v.Saved) == 0 {
		b.WriteString(s.Muted.Render(emptySavedText))
		return b.String()
	}
	for i, r := range v.Saved {
		titles := make([]string, 0, len(r.Careers))
		for _, c := range r.Careers {
			titles = append(titles, c.Title)
		}
		line := fmt.Sprintf("%s · %s · %s", r.Date, r.Name, strings.Join(titles, ", "))
		if i == cursor {
			b.WriteString(s.Selected.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func helpFor(v workflow.ViewState) string {
	help := pageHelp(v)
	if v.Toast != nil && v.Gate() == workflow.GatePages {
		help += " · ctrl+x dismiss"
	}
	return help
}

func pageHelp(v workflow.ViewState) string {
	switch v.Gate() {
	case workflow.GateLoading:
		return "ctrl+c quit"
	case workflow.GateAuth:
		return "tab next field · enter submit · ctrl+t login/sign up · ctrl+g Google · ctrl+c quit"
	}
	switch v.Page {
	case workflow.PageHome:
		return "n new assessment · s saved reports · o sign out · q quit"
	case workflow.PageForm:
		if v.CanSubmit {
			return "tab next field · ←/→ work style · enter generate · ctrl+b back · esc cancel"
		}
		return "tab next field · enter next step · ctrl+b back · esc cancel"
	case workflow.PageLoading:
		return "esc cancel"
	case workflow.PageResults:
		if v.AlreadySaved {
			return "↑/↓ scroll · n new assessment · v saved reports · h home"
		}
		return "↑/↓ scroll · s save · n new assessment · v saved reports · h home"
	case workflow.PageSaved:
		return "↑/↓ select · enter open · d delete · h home"
	}
	return ""
}
