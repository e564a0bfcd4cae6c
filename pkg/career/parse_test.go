package career

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONObject(t *testing.T) {
	got, ok := ExtractJSONObject("```json\n{\"a\":{\"b\":1}}\n```")
	require.True(t, ok)
	assert.Equal(t, `{"a":{"b":1}}`, got)

	_, ok = ExtractJSONObject("no braces here")
	assert.False(t, ok)

	_, ok = ExtractJSONObject("} backwards {")
	assert.False(t, ok)
}

func TestParseResponse_EmptyCareers(t *testing.T) {
	recs, err := ParseResponse(`{"careers":[]}`)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestParseResponse_BareCareerObject(t *testing.T) {
	recs, err := ParseResponse(`{"title":"UX Designer","matchScore":"72%"}`)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "UX Designer", recs[0].Title)
	assert.Equal(t, 72, recs[0].MatchScore)
}

func TestParseResponse_FlexibleFields(t *testing.T) {
	recs, err := ParseResponse(`{"careers":[{"id":7,"title":"ML Engineer","matchScore":91.6}]}`)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "7", recs[0].ID)
	assert.Equal(t, 92, recs[0].MatchScore)
}

func TestParseResponse_UnknownShape(t *testing.T) {
	_, err := ParseResponse(`{"answer":"nope"}`)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, `{"answer":"nope"}`, pe.Raw)
}

func TestNormalize(t *testing.T) {
	in := []Recommendation{
		{
			ID:         "",
			Title:      "  Backend Engineer ",
			MatchScore: 140,
			Analysis: SkillAnalysis{
				Required: []string{"Go", "golang", "PostgreSQL", "postgres"},
			},
			Roadmap: []RoadmapStep{{Title: " Month 1 ", Focus: "basics"}, {}},
		},
		{ID: "same", Title: "A", MatchScore: -3},
		{ID: "same", Title: "B"},
	}
	out := Normalize(in)
	require.Len(t, out, 3)

	assert.NotEmpty(t, out[0].ID)
	assert.Equal(t, "Backend Engineer", out[0].Title)
	assert.Equal(t, 100, out[0].MatchScore)
	assert.Equal(t, []string{"Go", "golang", "PostgreSQL", "postgres"}, out[0].Analysis.Required)
	assert.Equal(t, []RoadmapStep{{Title: "Month 1", Focus: "basics"}, {}}, out[0].Roadmap)

	assert.Equal(t, 0, out[1].MatchScore)
	assert.Equal(t, "same", out[1].ID)
	assert.NotEqual(t, "same", out[2].ID)

	assert.Equal(t, "  Backend Engineer ", in[0].Title, "input is not mutated")
}
