// Package form holds the skills/goal form: its values, submit-time validation and the
// view model the page renders. Loading state belongs to the caller.
package form

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/income-strategist/internal/types"
)

// State is the form's position in its submit cycle.
type State int

const (
	StateIdle State = iota
	StateValidating
	StateSubmitting
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateSubmitting:
		return "submitting"
	default:
		return "unknown"
	}
}

// Field error messages.
const (
	ErrSkillsEmpty  = "Skills cannot be empty."
	ErrGoalPositive = "Passive income goal must be a positive number."
)

// Errors holds per-field validation messages; empty means valid.
type Errors struct {
	Skills string `json:"skills,omitempty"`
	Goal   string `json:"goal,omitempty"`
}

// Empty reports whether no field failed.
func (e Errors) Empty() bool {
	return e.Skills == "" && e.Goal == ""
}

// values is what the validator sees after trimming and number parsing.
type values struct {
	Skills string  `validate:"required"`
	Goal   float64 `validate:"gt=0"`
}

var validate = validator.New()

// Form is one instance of the skills/goal form. It is not safe for concurrent use.
type Form struct {
	Skills string
	Goal   string
	Errors Errors
	state  State
}

// New returns an idle, empty form.
func New() *Form {
	return &Form{}
}

// State returns the current state.
func (f *Form) State() State {
	return f.state
}

// Submit records the entered values, validates them and, when valid, calls onSubmit
// exactly once with the parsed input. It returns whether onSubmit was called.
// The form stays in StateSubmitting until Complete is called.
func (f *Form) Submit(skills, goal string, onSubmit func(types.UserInput)) bool {
	f.Skills = skills
	f.Goal = goal
	f.state = StateValidating

	input, errs := Validate(skills, goal)
	f.Errors = errs
	if !errs.Empty() {
		f.state = StateIdle
		return false
	}

	f.state = StateSubmitting
	onSubmit(input)
	return true
}

// Complete returns a submitting form to idle once the caller has finished.
func (f *Form) Complete() {
	f.state = StateIdle
}

// Validate applies the submit-time rules to raw field values.
// Skills are passed through as entered; only the emptiness check trims them.
func Validate(skills, goal string) (types.UserInput, Errors) {
	parsedGoal, parseErr := strconv.ParseFloat(strings.TrimSpace(goal), 64)

	v := values{Skills: strings.TrimSpace(skills), Goal: parsedGoal}
	var errs Errors
	if err := validate.Struct(&v); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				switch fe.Field() {
				case "Skills":
					errs.Skills = ErrSkillsEmpty
				case "Goal":
					errs.Goal = ErrGoalPositive
				}
			}
		}
	}
	if parseErr != nil || math.IsNaN(parsedGoal) || math.IsInf(parsedGoal, 0) {
		errs.Goal = ErrGoalPositive
	}
	if !errs.Empty() {
		return types.UserInput{}, errs
	}
	return types.UserInput{Skills: skills, Goal: parsedGoal}, errs
}
