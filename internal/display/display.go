// Package display turns a raw report into what the user sees: the three titled sections,
// or the raw text when no section could be found.
package display

import (
	"github.com/jonathan/income-strategist/internal/report"
	"github.com/jonathan/income-strategist/internal/types"
)

// Title heads the report card.
const Title = "Your Personalized Passive Income Roadmap"

// UnparsedNotice is shown above the raw text when parsing found nothing.
const UnparsedNotice = "Could not fully parse the report into structured sections."

// Section is one titled block of the report.
type Section struct {
	Title string
	Body  string
}

// Report is the display model of one raw report.
type Report struct {
	Title    string
	Raw      string
	Parsed   types.ParsedReport
	Sections []Section
	Unparsed bool
}

// Build parses raw and decides between structured and raw display.
// It returns nil for an empty report, which renders nothing.
func Build(raw string) *Report {
	if raw == "" {
		return nil
	}

	parsed := report.Parse(raw)
	r := &Report{Title: Title, Raw: raw, Parsed: parsed}
	if parsed.IsEmpty() {
		r.Unparsed = true
		return r
	}

	for _, s := range []Section{
		{Title: report.HeadingSkillGap, Body: parsed.SkillGap},
		{Title: report.HeadingNiche, Body: parsed.Niche},
		{Title: report.HeadingActionPlan, Body: parsed.ActionPlan},
	} {
		if s.Body != "" {
			r.Sections = append(r.Sections, s)
		}
	}
	return r
}

// Response converts a report into the JSON API shape.
func Response(raw string) types.ReportResponse {
	r := Build(raw)
	if r == nil {
		return types.ReportResponse{}
	}
	resp := types.ReportResponse{Report: r.Raw, Unparsed: r.Unparsed}
	if !r.Unparsed {
		parsed := r.Parsed
		resp.Parsed = &parsed
	}
	return resp
}
