// Package types provides the data shapes shared across the strategist: the user's submitted
// input, the parsed report, and the JSON API request/response bodies.
package types

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// UserInput is one submission of the form: the skills text and the monthly
// passive income goal in thousands of rupees.
type UserInput struct {
	Skills string  `json:"skills" validate:"required"`
	Goal   float64 `json:"goal" validate:"gt=0"`
}

// Validate checks the invariants a UserInput must hold before it reaches the generator.
func (u *UserInput) Validate() error {
	trimmed := UserInput{Skills: strings.TrimSpace(u.Skills), Goal: u.Goal}
	return validator.New().Struct(&trimmed)
}

// ParsedReport holds the three sections extracted from a raw report.
// Any field may be empty.
type ParsedReport struct {
	SkillGap   string `json:"skillGap"`
	Niche      string `json:"niche"`
	ActionPlan string `json:"actionPlan"`
}

// IsEmpty reports whether no section could be extracted, in which case the
// raw report must be shown verbatim.
func (p ParsedReport) IsEmpty() bool {
	return p.SkillGap == "" && p.Niche == "" && p.ActionPlan == ""
}
