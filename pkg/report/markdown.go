package report

import (
	"fmt"
	"strings"
)

// Markdown renders r as a standalone markdown document.
func Markdown(r Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Career report for %s\n\n", r.Name)
	fmt.Fprintf(&b, "*%s · %s*\n\n", r.Date, r.Education)

	p := r.Profile
	b.WriteString("## Profile\n\n")
	fmt.Fprintf(&b, "- **Skills:** %s\n", p.Skills)
	fmt.Fprintf(&b, "- **Interests:** %s\n", p.Interests)
	if p.WorkStyle != "" {
		fmt.Fprintf(&b, "- **Work style:** %s\n", p.WorkStyle.Label())
	}
	if p.Goal != "" {
		fmt.Fprintf(&b, "- **Goal:** %s\n", p.Goal)
	}
	b.WriteString("\n")

	if len(r.Careers) == 0 {
		b.WriteString("_No careers in this report._\n")
		return b.String()
	}

	for i, c := range r.Careers {
		fmt.Fprintf(&b, "## %d. %s (%d%% Match)\n\n", i+1, c.Title, c.MatchScore)
		if c.Category != "" {
			fmt.Fprintf(&b, "_%s_\n\n", c.Category)
		}
		if c.Reason != "" {
			fmt.Fprintf(&b, "%s\n\n", c.Reason)
		}
		if len(c.Analysis.Matching) > 0 {
			fmt.Fprintf(&b, "**Skills you have:** %s\n\n", strings.Join(c.Analysis.Matching, ", "))
		}
		if len(c.Analysis.Missing) > 0 {
			fmt.Fprintf(&b, "**Skills to learn:** %s\n\n", strings.Join(c.Analysis.Missing, ", "))
		}
		if len(c.Roadmap) > 0 {
			b.WriteString("### Roadmap\n\n")
			for j, step := range c.Roadmap {
				fmt.Fprintf(&b, "%d. **%s**: %s\n", j+1, step.Title, step.Focus)
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}
