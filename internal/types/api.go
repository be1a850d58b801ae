package types

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// ReportRequest represents the request body for POST /api/report.
type ReportRequest struct {
	Skills string  `json:"skills" validate:"required"`
	Goal   float64 `json:"goal" validate:"gt=0"`
}

// Validate validates the ReportRequest using the validator.
// Skills made only of whitespace count as missing.
func (r *ReportRequest) Validate() error {
	validate := validator.New()
	trimmed := ReportRequest{Skills: strings.TrimSpace(r.Skills), Goal: r.Goal}
	return validate.Struct(&trimmed)
}

// Input converts the request into the generator's input shape.
func (r *ReportRequest) Input() UserInput {
	return UserInput{Skills: r.Skills, Goal: r.Goal}
}

// ReportResponse represents the response body of the report endpoints.
type ReportResponse struct {
	Report    string        `json:"report,omitempty"`
	Parsed    *ParsedReport `json:"parsed,omitempty"`
	Unparsed  bool          `json:"unparsed"`
	Error     string        `json:"error,omitempty"`
	IsLoading bool          `json:"is_loading"`
}
