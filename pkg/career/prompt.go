package career

import (
	"fmt"
	"strings"

	"github.com/careerpilot/careerpilot/pkg/profile"
)

// CareerCount is how many careers the model is asked for.
const CareerCount = 3

const systemPrompt = `You are an elite career navigation AI. You give actionable clarity and professional learning roadmaps.
You answer with a single JSON object and nothing else.`

const schemaInstructions = `For each suggested career, you MUST provide:
1. A match score (0-100) based on how well their interests and skills align.
2. A professional reasoning for the suggestion.
3. A Skill Gap Analysis:
   - required: all skills needed for this career.
   - matching: skills the user already has (from their profile).
   - missing: skills the user needs to acquire.
4. A 6-month learning roadmap divided into 3-4 clear phases.
   - Each phase must have a title and a detailed focus area.

Return the response strictly as a JSON object with this structure:
{
  "careers": [
    {
      "id": "unique-id",
      "title": "Career Title",
      "category": "Field or industry",
      "matchScore": 95,
      "reason": "Professional explanation of why this fits...",
      "analysis": {
        "required": ["Skill A", "Skill B", "Skill C"],
        "matching": ["Skill A"],
        "missing": ["Skill B", "Skill C"]
      },
      "roadmap": [
        { "title": "Month 1-2: Fundamentals", "focus": "What to learn and which resources to look for..." },
        { "title": "Month 3-4: Intermediate Projects", "focus": "Practical application and portfolio building..." },
        { "title": "Month 5-6: Advanced & Certification", "focus": "Complex topics and interview preparation..." }
      ]
    }
  ]
}`

// BuildPrompt returns the system and user prompts for a profile.
func BuildPrompt(p profile.Profile) (system, user string) {
	p = p.Trimmed()
	goal := p.Goal
	if goal == "" {
		goal = "Not specified"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Based on the user profile below, suggest the top %d most suitable career paths.\n\n", CareerCount)
	b.WriteString("User Profile:\n")
	fmt.Fprintf(&b, "- Education: %s\n", p.Education)
	fmt.Fprintf(&b, "- Current Skills: %s\n", p.Skills)
	fmt.Fprintf(&b, "- Interests: %s\n", p.Interests)
	fmt.Fprintf(&b, "- Work Style: %s\n", p.WorkStyle.Label())
	fmt.Fprintf(&b, "- Long-term Goal: %s\n\n", goal)
	b.WriteString(schemaInstructions)
	return systemPrompt, b.String()
}
