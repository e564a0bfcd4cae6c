// Package career turns a profile into ranked career recommendations with a
// skill gap analysis and a learning roadmap.
package career

import "slices"

// Recommendation is one suggested career path. It is immutable once returned.
type Recommendation struct {
	ID         string        `json:"id"`
	Title      string        `json:"title"`
	Category   string        `json:"category,omitempty"`
	MatchScore int           `json:"matchScore"`
	Reason     string        `json:"reason"`
	Analysis   SkillAnalysis `json:"analysis"`
	Roadmap    []RoadmapStep `json:"roadmap"`
}

// SkillAnalysis splits the skills a career needs into the ones the user
// already has and the ones still to learn.
type SkillAnalysis struct {
	Required []string `json:"required"`
	Matching []string `json:"matching"`
	Missing  []string `json:"missing"`
}

// RoadmapStep is one phase of the six month learning plan.
type RoadmapStep struct {
	Title string `json:"title"`
	Focus string `json:"focus"`
}

// Clone returns a deep copy so callers can keep a snapshot.
func (r Recommendation) Clone() Recommendation {
	out := r
	out.Analysis = SkillAnalysis{
		Required: slices.Clone(r.Analysis.Required),
		Matching: slices.Clone(r.Analysis.Matching),
		Missing:  slices.Clone(r.Analysis.Missing),
	}
	out.Roadmap = slices.Clone(r.Roadmap)
	return out
}

// CloneAll deep-copies a batch.
func CloneAll(recs []Recommendation) []Recommendation {
	if recs == nil {
		return nil
	}
	out := make([]Recommendation, len(recs))
	for i, r := range recs {
		out[i] = r.Clone()
	}
	return out
}
