package career

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

var errNoJSONObject = errors.New("no JSON object found in response")

// ExtractJSONObject returns the substring from the first '{' to the last '}'.
// Prose and code fences around the object are dropped.
func ExtractJSONObject(raw string) (string, bool) {
	start := strings.IndexByte(raw, '{')
	end := strings.LastIndexByte(raw, '}')
	if start < 0 || end < start {
		return "", false
	}
	return raw[start : end+1], true
}

// flexString accepts a JSON string or number.
type flexString string

func (s *flexString) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*s = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*s = flexString(n.String())
	return nil
}

// flexScore accepts 88, 88.4, "88" and "88%".
type flexScore float64

func (f *flexScore) UnmarshalJSON(b []byte) error {
	var s flexString
	if err := s.UnmarshalJSON(b); err != nil {
		return err
	}
	v := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(string(s)), "%"))
	if v == "" {
		*f = 0
		return nil
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return err
	}
	*f = flexScore(n)
	return nil
}

type wireRecommendation struct {
	ID         flexString    `json:"id"`
	Title      string        `json:"title"`
	Category   string        `json:"category"`
	MatchScore flexScore     `json:"matchScore"`
	Reason     string        `json:"reason"`
	Analysis   SkillAnalysis `json:"analysis"`
	Roadmap    []RoadmapStep `json:"roadmap"`
}

func (w wireRecommendation) recommendation() Recommendation {
	return Recommendation{
		ID:         string(w.ID),
		Title:      w.Title,
		Category:   w.Category,
		MatchScore: int(math.Round(float64(w.MatchScore))),
		Reason:     w.Reason,
		Analysis:   w.Analysis,
		Roadmap:    w.Roadmap,
	}
}

// ParseResponse extracts and decodes the careers document from raw model
// output. It accepts the {"careers":[...]} envelope and, as a fallback, a
// single bare career object. It never returns a partial result.
func ParseResponse(raw string) ([]Recommendation, error) {
	obj, ok := ExtractJSONObject(raw)
	if !ok {
		return nil, &ParseError{Raw: raw, Err: errNoJSONObject}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(obj), &fields); err != nil {
		return nil, &ParseError{Raw: raw, Err: err}
	}

	if body, ok := fields["careers"]; ok {
		var wire []wireRecommendation
		if err := json.Unmarshal(body, &wire); err != nil {
			return nil, &ParseError{Raw: raw, Err: err}
		}
		out := make([]Recommendation, 0, len(wire))
		for _, w := range wire {
			out = append(out, w.recommendation())
		}
		return out, nil
	}

	if _, ok := fields["title"]; ok {
		var w wireRecommendation
		if err := json.Unmarshal([]byte(obj), &w); err != nil {
			return nil, &ParseError{Raw: raw, Err: err}
		}
		return []Recommendation{w.recommendation()}, nil
	}

	return nil, &ParseError{Raw: raw, Err: errors.New(`response has no "careers" field`)}
}

// Normalize trims text, clamps scores to 0..100 and fills missing or repeated
// ids. Skill lists and roadmap length are kept as the model sent them. It
// returns a new slice.
func Normalize(recs []Recommendation) []Recommendation {
	out := make([]Recommendation, 0, len(recs))
	seen := make(map[string]struct{}, len(recs))
	for _, r := range recs {
		r = r.Clone()
		r.ID = strings.TrimSpace(r.ID)
		if _, dup := seen[r.ID]; r.ID == "" || dup {
			r.ID = uuid.NewString()
		}
		seen[r.ID] = struct{}{}

		r.Title = strings.TrimSpace(r.Title)
		r.Category = strings.TrimSpace(r.Category)
		r.Reason = strings.TrimSpace(r.Reason)
		r.MatchScore = min(max(r.MatchScore, 0), 100)

		for i := range r.Roadmap {
			r.Roadmap[i].Title = strings.TrimSpace(r.Roadmap[i].Title)
			r.Roadmap[i].Focus = strings.TrimSpace(r.Roadmap[i].Focus)
		}
		out = append(out, r)
	}
	return out
}
