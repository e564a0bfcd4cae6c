package nlp

import (
	"sort"
	"strings"
)

// aliases maps a normalized token or phrase to its equivalent spellings.
var aliases = map[string][]string{
	"postgres":         {"postgresql"},
	"postgresql":       {"postgres"},
	"k8s":              {"kubernetes"},
	"kubernetes":       {"k8s"},
	"golang":           {"go"},
	"go":               {"golang"},
	"js":               {"javascript"},
	"javascript":       {"js"},
	"ts":               {"typescript"},
	"typescript":       {"ts"},
	"rest":             {"rest api"},
	"rest api":         {"rest"},
	"ci cd":            {"cicd"},
	"cicd":             {"ci cd"},
	"ml":               {"machine learning"},
	"machine learning": {"ml"},
	"ai":               {"artificial intelligence"},
	"ui ux":            {"ux ui"},
	"ux ui":            {"ui ux"},
	"ms excel":         {"excel"},
	"microsoft excel":  {"excel"},
	"excel":            {"ms excel", "microsoft excel"},
	"powerbi":          {"power bi"},
	"power bi":         {"powerbi"},
}

// SkillVariants returns normalized variants for matching (synonyms/aliases).
func SkillVariants(skill string) []string {
	base := NormalizeSkill(skill)
	if base == "" {
		return []string{}
	}
	var out []string
	seen := map[string]struct{}{}
	add := func(s string) {
		s = NormalizeSkill(s)
		if s == "" {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	add(base)
	for _, a := range aliases[base] {
		add(a)
	}

	// Token-level expansions: "golang developer" also yields "go developer".
	parts := strings.Split(base, " ")
	if len(parts) > 1 {
		for i, p := range parts {
			for _, v := range TokenVariants(p)[1:] {
				expanded := append([]string{}, parts...)
				expanded[i] = v
				add(strings.Join(expanded, " "))
			}
		}
	}

	return out
}

// TokenVariants returns normalized token variants, the token itself first.
func TokenVariants(token string) []string {
	t := NormalizeSkill(token)
	if t == "" {
		return []string{}
	}
	return append([]string{t}, aliases[t]...)
}

// CanonicalSkill is the comparison key of a skill: the smallest of its variants,
// so "Postgres" and "PostgreSQL" share one key.
func CanonicalSkill(skill string) string {
	v := SkillVariants(skill)
	if len(v) == 0 {
		return ""
	}
	sort.Strings(v)
	return v[0]
}

// SplitSkills splits free text ("Python, Excel; SQL") into trimmed,
// de-duplicated skill names.
func SplitSkills(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ';' || r == '\n' || r == '|'
	})
	return DedupeSkills(fields)
}

// DedupeSkills trims names and drops blanks and alias duplicates, keeping the
// first spelling seen and the original order.
func DedupeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	seen := map[string]struct{}{}
	for _, s := range skills {
		s = strings.TrimSpace(s)
		key := CanonicalSkill(s)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	return out
}

// MentionsSkill reports whether free text mentions the skill or an alias as whole words.
func MentionsSkill(text, skill string) bool {
	hay := NormalizeText(text)
	for _, v := range SkillVariants(skill) {
		if ContainsPhrase(hay, v) {
			return true
		}
	}
	return false
}
