package profile

import (
	"errors"
	"fmt"
	"strings"
)

// Step is a page of the assessment wizard.
type Step int

const (
	StepBackground  Step = 1
	StepSkills      Step = 2
	StepPreferences Step = 3
)

// StepCount is the number of wizard steps.
const StepCount = 3

func (s Step) Title() string {
	switch s {
	case StepBackground:
		return "Your Background"
	case StepSkills:
		return "Skills & Interests"
	case StepPreferences:
		return "Work Preferences"
	default:
		return fmt.Sprintf("Step %d", int(s))
	}
}

var (
	ErrStepIncomplete = errors.New("current step has empty required fields")
	ErrLastStep       = errors.New("already at the last step")
	ErrNotAtFinalStep = errors.New("submission is only possible from the last step")
	ErrFieldNotOnStep = errors.New("field does not belong to the current step")
	ErrUnknownField   = errors.New("unknown profile field")
)

// Field names an input of the wizard.
type Field string

const (
	FieldName      Field = "name"
	FieldEducation Field = "education"
	FieldSkills    Field = "skills"
	FieldInterests Field = "interests"
	FieldWorkStyle Field = "workStyle"
	FieldGoal      Field = "goal"
)

// Fields returns the inputs shown on a step, in display order.
func Fields(s Step) []Field {
	switch s {
	case StepBackground:
		return []Field{FieldName, FieldEducation}
	case StepSkills:
		return []Field{FieldSkills, FieldInterests}
	case StepPreferences:
		return []Field{FieldWorkStyle, FieldGoal}
	default:
		return nil
	}
}

// Draft is the in-progress profile plus the wizard position. Strictly linear:
// Next is gated on the current step, Prev never clears anything.
// Draft is not safe for concurrent use.
type Draft struct {
	profile Profile
	step    Step
}

func NewDraft() *Draft {
	return &Draft{profile: New(), step: StepBackground}
}

func (d *Draft) Step() Step       { return d.step }
func (d *Draft) Profile() Profile { return d.profile }

// CanNext reports whether the required fields of the current step are filled.
func (d *Draft) CanNext() bool {
	p := d.profile
	switch d.step {
	case StepBackground:
		return strings.TrimSpace(p.Name) != "" && strings.TrimSpace(p.Education) != ""
	case StepSkills:
		return strings.TrimSpace(p.Skills) != "" && strings.TrimSpace(p.Interests) != ""
	default:
		return true
	}
}

func (d *Draft) Next() error {
	if d.step >= StepPreferences {
		return ErrLastStep
	}
	if !d.CanNext() {
		return ErrStepIncomplete
	}
	d.step++
	return nil
}

// Prev moves one step back; a no-op on the first step.
func (d *Draft) Prev() {
	if d.step > StepBackground {
		d.step--
	}
}

func (d *Draft) CanSubmit() bool { return d.step == StepPreferences }

// Restart rewinds to the first step keeping the entered data.
func (d *Draft) Restart() { d.step = StepBackground }

// Reset clears every field except the name and rewinds to the first step.
func (d *Draft) Reset() {
	name := d.profile.Name
	d.profile = New()
	d.profile.Name = name
	d.step = StepBackground
}

// Clear drops all entered data.
func (d *Draft) Clear() {
	d.profile = New()
	d.step = StepBackground
}

// ReturnToFinalStep puts the wizard on the last step, used after a failed submission.
func (d *Draft) ReturnToFinalStep() { d.step = StepPreferences }

// PrefillName sets the name only when it is still empty.
func (d *Draft) PrefillName(name string) bool {
	if strings.TrimSpace(d.profile.Name) != "" || strings.TrimSpace(name) == "" {
		return false
	}
	d.profile.Name = name
	return true
}

// Set updates one field. Fields of other steps can only be set through Load.
func (d *Draft) Set(f Field, value string) error {
	onStep := false
	for _, sf := range Fields(d.step) {
		if sf == f {
			onStep = true
			break
		}
	}
	if !onStep {
		if !knownField(f) {
			return ErrUnknownField
		}
		return ErrFieldNotOnStep
	}
	switch f {
	case FieldName:
		d.profile.Name = value
	case FieldEducation:
		d.profile.Education = value
	case FieldSkills:
		d.profile.Skills = value
	case FieldInterests:
		d.profile.Interests = value
	case FieldWorkStyle:
		ws, err := ParseWorkStyle(value)
		if err != nil {
			return err
		}
		d.profile.WorkStyle = ws
	case FieldGoal:
		d.profile.Goal = value
	}
	return nil
}

// Get returns the current value of a field.
func (d *Draft) Get(f Field) string {
	switch f {
	case FieldName:
		return d.profile.Name
	case FieldEducation:
		return d.profile.Education
	case FieldSkills:
		return d.profile.Skills
	case FieldInterests:
		return d.profile.Interests
	case FieldWorkStyle:
		return string(d.profile.WorkStyle)
	case FieldGoal:
		return d.profile.Goal
	default:
		return ""
	}
}

// Load replaces the draft data, e.g. from CLI flags, keeping the step.
func (d *Draft) Load(p Profile) {
	if p.WorkStyle == "" {
		p.WorkStyle = WorkStyleRemote
	}
	d.profile = p
}

// Percent is the progress bar fill for the current step (minimum 5).
func (d *Draft) Percent() int {
	pct := (int(d.step) - 1) * 100 / (StepCount - 1)
	if pct == 0 {
		return 5
	}
	return pct
}

func knownField(f Field) bool {
	switch f {
	case FieldName, FieldEducation, FieldSkills, FieldInterests, FieldWorkStyle, FieldGoal:
		return true
	}
	return false
}
