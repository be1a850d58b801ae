// Package report extracts the Skill Gap, Niche and Action Plan sections from a raw model report.
//
// Parsing is best-effort and total: a report with no recognisable structure yields an empty
// ParsedReport, never an error.
package report

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/jonathan/income-strategist/internal/llm"
	"github.com/jonathan/income-strategist/internal/schemas"
	"github.com/jonathan/income-strategist/internal/types"
)

// Headings the system instruction asks the model to emit.
const (
	HeadingSkillGap   = "Skill Gap:"
	HeadingNiche      = "Niche:"
	HeadingActionPlan = "Action Plan:"
)

// Each section runs from its heading to the next expected heading or end of text.
// The lazy group followed by the alternation matches the same span a lookahead would.
var (
	skillGapPattern   = regexp.MustCompile(`(?is)Skill Gap:\s*(.*?)(?:Niche:|$)`)
	nichePattern      = regexp.MustCompile(`(?is)Niche:\s*(.*?)(?:Action Plan:|$)`)
	actionPlanPattern = regexp.MustCompile(`(?is)Action Plan:\s*(.*)`)
)

// Parse maps raw report text to its three sections.
// A JSON object matching the structured report schema is used as-is;
// anything else goes through heading extraction.
func Parse(raw string) types.ParsedReport {
	if parsed, ok := parseStructured(raw); ok {
		return parsed
	}
	return ParseHeadings(raw)
}

// ParseHeadings extracts sections by their headings only.
func ParseHeadings(raw string) types.ParsedReport {
	return types.ParsedReport{
		SkillGap:   extract(skillGapPattern, raw),
		Niche:      extract(nichePattern, raw),
		ActionPlan: extract(actionPlanPattern, raw),
	}
}

func extract(pattern *regexp.Regexp, raw string) string {
	match := pattern.FindStringSubmatch(raw)
	if match == nil {
		return ""
	}
	return strings.TrimSpace(match[1])
}

// parseStructured accepts a JSON report, optionally wrapped in a markdown code block.
func parseStructured(raw string) (types.ParsedReport, bool) {
	text := llm.CleanJSONBlock(raw)
	if !strings.HasPrefix(text, "{") {
		return types.ParsedReport{}, false
	}
	if err := schemas.ValidateReport(text); err != nil {
		return types.ParsedReport{}, false
	}

	var parsed types.ParsedReport
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return types.ParsedReport{}, false
	}
	parsed.SkillGap = strings.TrimSpace(parsed.SkillGap)
	parsed.Niche = strings.TrimSpace(parsed.Niche)
	parsed.ActionPlan = strings.TrimSpace(parsed.ActionPlan)
	return parsed, true
}
