package form

import (
	"testing"

	"github.com/jonathan/income-strategist/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		skills     string
		goal       string
		wantInput  types.UserInput
		wantErrors Errors
	}{
		{
			name:      "valid",
			skills:    "Python",
			goal:      "25",
			wantInput: types.UserInput{Skills: "Python", Goal: 25},
		},
		{
			name:      "skills kept as entered",
			skills:    " Android, SQL ",
			goal:      " 2.5 ",
			wantInput: types.UserInput{Skills: " Android, SQL ", Goal: 2.5},
		},
		{
			name:       "empty skills",
			skills:     "",
			goal:       "25",
			wantErrors: Errors{Skills: ErrSkillsEmpty},
		},
		{
			name:       "whitespace skills",
			skills:     " \n\t ",
			goal:       "25",
			wantErrors: Errors{Skills: ErrSkillsEmpty},
		},
		{
			name:       "zero goal",
			skills:     "Python",
			goal:       "0",
			wantErrors: Errors{Goal: ErrGoalPositive},
		},
		{
			name:       "negative goal",
			skills:     "Python",
			goal:       "-10",
			wantErrors: Errors{Goal: ErrGoalPositive},
		},
		{
			name:       "unparseable goal",
			skills:     "Python",
			goal:       "lots",
			wantErrors: Errors{Goal: ErrGoalPositive},
		},
		{
			name:       "NaN goal",
			skills:     "Python",
			goal:       "NaN",
			wantErrors: Errors{Goal: ErrGoalPositive},
		},
		{
			name:       "infinite goal",
			skills:     "Python",
			goal:       "+Inf",
			wantErrors: Errors{Goal: ErrGoalPositive},
		},
		{
			name:       "both invalid",
			skills:     "",
			goal:       "",
			wantErrors: Errors{Skills: ErrSkillsEmpty, Goal: ErrGoalPositive},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input, errs := Validate(tt.skills, tt.goal)
			assert.Equal(t, tt.wantErrors, errs)
			assert.Equal(t, tt.wantInput, input)
		})
	}
}

func TestSubmit_Valid(t *testing.T) {
	f := New()
	var got []types.UserInput

	ok := f.Submit("Python", "25", func(in types.UserInput) {
		assert.Equal(t, StateSubmitting, f.State())
		got = append(got, in)
	})

	assert.True(t, ok)
	assert.Equal(t, []types.UserInput{{Skills: "Python", Goal: 25}}, got)
	assert.Equal(t, StateSubmitting, f.State())
	assert.True(t, f.Errors.Empty())

	f.Complete()
	assert.Equal(t, StateIdle, f.State())
}

func TestSubmit_InvalidDoesNotCallBack(t *testing.T) {
	f := New()
	called := false

	ok := f.Submit("Python", "0", func(types.UserInput) { called = true })

	assert.False(t, ok)
	assert.False(t, called)
	assert.Equal(t, StateIdle, f.State())
	assert.Equal(t, ErrGoalPositive, f.Errors.Goal)
	assert.Empty(t, f.Errors.Skills)
	assert.Equal(t, "0", f.Goal, "entered values are kept for re-rendering")
}

func TestSubmit_ClearsPreviousErrors(t *testing.T) {
	f := New()
	f.Submit("", "25", func(types.UserInput) {})
	assert.Equal(t, ErrSkillsEmpty, f.Errors.Skills)

	f.Submit("Go", "25", func(types.UserInput) {})
	assert.True(t, f.Errors.Empty())
}

func TestView(t *testing.T) {
	f := New()
	f.Submit("", "abc", func(types.UserInput) {})

	idle := f.View(false, "")
	assert.False(t, idle.Disabled)
	assert.Equal(t, SubmitLabel, idle.SubmitLabel)
	assert.Equal(t, ErrSkillsEmpty, idle.Errors.Skills)
	assert.Equal(t, "abc", idle.Goal)

	loading := f.View(true, "Failed to generate report: boom")
	assert.True(t, loading.Disabled)
	assert.Equal(t, SubmitLoadingLabel, loading.SubmitLabel)
	assert.Equal(t, "Failed to generate report: boom", loading.Error)
	assert.Equal(t, GoalLabel, loading.GoalLabel)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "validating", StateValidating.String())
	assert.Equal(t, "submitting", StateSubmitting.String())
	assert.Equal(t, "unknown", State(42).String())
}
