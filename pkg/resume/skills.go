package resume

import (
	"strings"

	"github.com/careerpilot/careerpilot/pkg/nlp"
)

// vocabulary is the list of skills DetectSkills looks for, in the spelling
// shown to the user.
var vocabulary = []string{
	"Go", "Python", "Java", "JavaScript", "TypeScript", "C++", "C#", "Rust", "Kotlin", "Swift",
	"PHP", "Ruby", "SQL", "PostgreSQL", "MySQL", "MongoDB", "Redis", "GraphQL", "REST API",
	"Docker", "Kubernetes", "Terraform", "AWS", "GCP", "Azure", "Linux", "Git", "CI/CD",
	"React", "Vue", "Angular", "Node.js", "HTML", "CSS", "Figma", "UI/UX",
	"Machine Learning", "Deep Learning", "TensorFlow", "PyTorch", "Pandas", "Statistics",
	"Excel", "Power BI", "Tableau", "Data Analysis",
	"Project Management", "Agile", "Scrum", "Product Management", "Communication",
	"Leadership", "Public Speaking", "Copywriting", "SEO", "Marketing", "Sales",
	"Photoshop", "Illustrator", "Video Editing", "Accounting", "Research",
}

// Vocabulary returns a copy of the skills DetectSkills recognises.
func Vocabulary() []string {
	return append([]string(nil), vocabulary...)
}

// DetectSkills returns the vocabulary skills mentioned in text, aliases
// included ("golang" finds Go), in vocabulary order.
func DetectSkills(text string, vocab []string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	var found []string
	for _, s := range vocab {
		if nlp.MentionsSkill(text, s) {
			found = append(found, s)
		}
	}
	return nlp.DedupeSkills(found)
}

// SkillsField renders detected skills the way the wizard's skills field
// expects them.
func SkillsField(skills []string) string {
	return strings.Join(skills, ", ")
}

// MergeSkills adds detected skills the field does not already list.
func MergeSkills(field string, detected []string) string {
	merged := nlp.DedupeSkills(append(nlp.SplitSkills(field), detected...))
	return SkillsField(merged)
}
