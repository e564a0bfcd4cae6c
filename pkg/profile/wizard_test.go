package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraft_NextGatedOnStepOne(t *testing.T) {
	tests := []struct {
		name      string
		nameVal   string
		education string
		allowed   bool
	}{
		{"both empty", "", "", false},
		{"name only", "Alex", "", false},
		{"education only", "", "PhD", false},
		{"whitespace name", "   ", "PhD", false},
		{"both filled", "Alex", "Bachelor's Degree", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDraft()
			require.NoError(t, d.Set(FieldName, tt.nameVal))
			require.NoError(t, d.Set(FieldEducation, tt.education))

			assert.Equal(t, tt.allowed, d.CanNext())
			err := d.Next()
			if tt.allowed {
				assert.NoError(t, err)
				assert.Equal(t, StepSkills, d.Step())
			} else {
				assert.ErrorIs(t, err, ErrStepIncomplete)
				assert.Equal(t, StepBackground, d.Step())
			}
		})
	}
}

func TestDraft_NextGatedOnStepTwo(t *testing.T) {
	tests := []struct {
		name      string
		skills    string
		interests string
		allowed   bool
	}{
		{"both empty", "", "", false},
		{"skills only", "Python", "", false},
		{"interests only", "", "data", false},
		{"blank interests", "Python", "\t", false},
		{"both filled", "Python, Excel", "data", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDraft()
			require.NoError(t, d.Set(FieldName, "Alex"))
			require.NoError(t, d.Set(FieldEducation, "PhD"))
			require.NoError(t, d.Next())
			require.NoError(t, d.Set(FieldSkills, tt.skills))
			require.NoError(t, d.Set(FieldInterests, tt.interests))

			err := d.Next()
			if tt.allowed {
				assert.NoError(t, err)
				assert.Equal(t, StepPreferences, d.Step())
				assert.True(t, d.CanSubmit())
			} else {
				assert.ErrorIs(t, err, ErrStepIncomplete)
				assert.False(t, d.CanSubmit())
			}
		})
	}
}

func TestDraft_LastStepAndBackNavigation(t *testing.T) {
	d := fullDraft(t)
	assert.Equal(t, StepPreferences, d.Step())
	assert.True(t, d.CanNext(), "step 3 has no hard requirement")
	assert.ErrorIs(t, d.Next(), ErrLastStep)

	d.Prev()
	d.Prev()
	d.Prev() // no-op on step 1
	assert.Equal(t, StepBackground, d.Step())
	assert.Equal(t, "Alex", d.Profile().Name, "back navigation keeps data")
	assert.Equal(t, "Python, Excel", d.Profile().Skills)
}

func TestDraft_SetRejectsFieldsOfOtherSteps(t *testing.T) {
	d := NewDraft()
	assert.ErrorIs(t, d.Set(FieldSkills, "Go"), ErrFieldNotOnStep)
	assert.ErrorIs(t, d.Set(Field("age"), "30"), ErrUnknownField)
}

func TestDraft_ResetKeepsName(t *testing.T) {
	d := fullDraft(t)
	d.Reset()
	p := d.Profile()
	assert.Equal(t, "Alex", p.Name)
	assert.Empty(t, p.Skills)
	assert.Equal(t, WorkStyleRemote, p.WorkStyle)
	assert.Equal(t, StepBackground, d.Step())
}

func TestDraft_PrefillName(t *testing.T) {
	d := NewDraft()
	assert.True(t, d.PrefillName("alex"))
	assert.False(t, d.PrefillName("someone else"))
	assert.Equal(t, "alex", d.Profile().Name)
}

func TestDraft_Percent(t *testing.T) {
	d := fullDraft(t)
	assert.Equal(t, 100, d.Percent())
	d.Prev()
	assert.Equal(t, 50, d.Percent())
	d.Prev()
	assert.Equal(t, 5, d.Percent())
}

func fullDraft(t *testing.T) *Draft {
	t.Helper()
	d := NewDraft()
	require.NoError(t, d.Set(FieldName, "Alex"))
	require.NoError(t, d.Set(FieldEducation, "Bachelor's Degree"))
	require.NoError(t, d.Next())
	require.NoError(t, d.Set(FieldSkills, "Python, Excel"))
	require.NoError(t, d.Set(FieldInterests, "data"))
	require.NoError(t, d.Next())
	require.NoError(t, d.Set(FieldWorkStyle, "analytical"))
	return d
}
