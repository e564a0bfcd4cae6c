// Package report persists generated recommendations as named, dated
// snapshots owned by a user.
package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/careerpilot/careerpilot/pkg/career"
	"github.com/careerpilot/careerpilot/pkg/profile"
)

// DateLayout renders the human date label, e.g. "7 Mar 2026".
const DateLayout = "2 Jan 2006"

// Report is a saved set of recommendations. Careers never change after the
// report is stored.
type Report struct {
	ID        uuid.UUID               `json:"id"`
	UserID    uuid.UUID               `json:"userId"`
	Date      string                  `json:"date"`
	Name      string                  `json:"name"`
	Education string                  `json:"education"`
	Careers   []career.Recommendation `json:"careers"`
	Profile   profile.Profile         `json:"profileSnapshot"`
	CreatedAt time.Time               `json:"createdAt"`
}

// New builds an unsaved report for userID. The careers are deep-copied so
// later edits by the caller cannot reach the snapshot.
func New(userID uuid.UUID, p profile.Profile, careers []career.Recommendation, now time.Time) Report {
	p = p.Trimmed()
	return Report{
		UserID:    userID,
		Date:      now.Format(DateLayout),
		Name:      p.Name,
		Education: p.Education,
		Careers:   career.CloneAll(careers),
		Profile:   p,
	}
}

// Clone returns a deep copy.
func (r Report) Clone() Report {
	r.Careers = career.CloneAll(r.Careers)
	return r
}

func cloneAll(in []Report) []Report {
	out := make([]Report, len(in))
	for i, r := range in {
		out[i] = r.Clone()
	}
	return out
}
