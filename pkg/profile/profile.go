package profile

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// WorkStyle is the preferred working environment.
type WorkStyle string

const (
	WorkStyleRemote     WorkStyle = "remote"
	WorkStyleOffice     WorkStyle = "office"
	WorkStyleCreative   WorkStyle = "creative"
	WorkStyleAnalytical WorkStyle = "analytical"
	WorkStyleStartup    WorkStyle = "startup"
)

type WorkStyleOption struct {
	Value WorkStyle
	Label string
}

var workStyles = []WorkStyleOption{
	{Value: WorkStyleRemote, Label: "Remote"},
	{Value: WorkStyleOffice, Label: "In-Office"},
	{Value: WorkStyleCreative, Label: "Creative"},
	{Value: WorkStyleAnalytical, Label: "Analytical"},
	{Value: WorkStyleStartup, Label: "Startup"},
}

// WorkStyles lists the selectable work styles in display order.
func WorkStyles() []WorkStyleOption {
	out := make([]WorkStyleOption, len(workStyles))
	copy(out, workStyles)
	return out
}

// Label returns the display label, or the raw value for unknown styles.
func (w WorkStyle) Label() string {
	for _, o := range workStyles {
		if o.Value == w {
			return o.Label
		}
	}
	return string(w)
}

// ParseWorkStyle accepts a value or a label, case-insensitively.
func ParseWorkStyle(s string) (WorkStyle, error) {
	s = strings.TrimSpace(s)
	for _, o := range workStyles {
		if strings.EqualFold(s, string(o.Value)) || strings.EqualFold(s, o.Label) {
			return o.Value, nil
		}
	}
	return "", fmt.Errorf("unknown work style %q", s)
}

var educationLevels = []string{
	"High School",
	"Associate Degree",
	"Bachelor's Degree",
	"Master's Degree",
	"PhD",
	"Self-Taught / Bootcamp",
}

// EducationLevels lists the suggested education levels. Free text is accepted too.
func EducationLevels() []string {
	out := make([]string, len(educationLevels))
	copy(out, educationLevels)
	return out
}

// Profile is the user's self-description collected by the wizard.
type Profile struct {
	Name      string    `json:"name" validate:"required"`
	Education string    `json:"education" validate:"required"`
	Skills    string    `json:"skills" validate:"required"`
	Interests string    `json:"interests" validate:"required"`
	WorkStyle WorkStyle `json:"workStyle" validate:"required,oneof=remote office creative analytical startup"`
	Goal      string    `json:"goal,omitempty"`
}

// New returns an empty profile with the default work style.
func New() Profile {
	return Profile{WorkStyle: WorkStyleRemote}
}

var validate = validator.New()

// Validate checks the submit-time contract on a whitespace-trimmed copy.
func (p Profile) Validate() error {
	t := p.Trimmed()
	return validate.Struct(&t)
}

// Trimmed returns a copy with surrounding whitespace removed from every field.
func (p Profile) Trimmed() Profile {
	return Profile{
		Name:      strings.TrimSpace(p.Name),
		Education: strings.TrimSpace(p.Education),
		Skills:    strings.TrimSpace(p.Skills),
		Interests: strings.TrimSpace(p.Interests),
		WorkStyle: WorkStyle(strings.TrimSpace(string(p.WorkStyle))),
		Goal:      strings.TrimSpace(p.Goal),
	}
}
