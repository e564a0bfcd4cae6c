package nlp

import (
	"regexp"
	"strings"
)

var (
	reNonWord = regexp.MustCompile(`[^\p{L}\p{N}+#]+`)
	reSpaces  = regexp.MustCompile(`\s+`)
)

// NormalizeText lowercases s, turns every non-alphanumeric run into a single
// space and trims the result. '+' and '#' survive so that "C++" and "C#" stay
// distinct from "C".
func NormalizeText(s string) string {
	s = strings.ToLower(s)
	s = reNonWord.ReplaceAllString(s, " ")
	s = reSpaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// NormalizeSkill normalizes a (possibly multi-word) skill name for comparison.
func NormalizeSkill(skill string) string {
	return NormalizeText(skill)
}

// ContainsPhrase reports whether the normalized phrase occurs in the normalized
// text as whole words: "rest api" matches "... rest api ..." but not "rest apis".
func ContainsPhrase(normalizedText, normalizedPhrase string) bool {
	if normalizedPhrase == "" {
		return false
	}
	hay := " " + normalizedText + " "
	needle := " " + normalizedPhrase + " "
	return strings.Contains(hay, needle)
}
