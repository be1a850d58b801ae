// Package observability provides formatted terminal output for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"

	"github.com/jonathan/income-strategist/internal/display"
	"github.com/jonathan/income-strategist/internal/strategist"
	"github.com/jonathan/income-strategist/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
)

// Options controls how a Printer renders.
type Options struct {
	// Markdown renders section bodies through glamour.
	Markdown bool
	// Color enables ANSI colors for titles and notices.
	Color bool
	// Style is a glamour style name or path; empty means "auto".
	Style string
}

// Printer handles formatted output for the report command
type Printer struct {
	out      io.Writer
	renderer *glamour.TermRenderer

	title  *color.Color
	notice *color.Color
	failed *color.Color
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer, opts Options) (*Printer, error) {
	p := &Printer{
		out:    out,
		title:  color.New(color.FgCyan, color.Bold),
		notice: color.New(color.FgYellow),
		failed: color.New(color.FgRed, color.Bold),
	}
	if opts.Color {
		for _, c := range []*color.Color{p.title, p.notice, p.failed} {
			c.EnableColor()
		}
	} else {
		for _, c := range []*color.Color{p.title, p.notice, p.failed} {
			c.DisableColor()
		}
	}

	if opts.Markdown {
		style := glamour.WithAutoStyle()
		if opts.Style != "" {
			style = glamour.WithStylePath(opts.Style)
		}
		r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(boxWidth))
		if err != nil {
			return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
		}
		p.renderer = r
	}
	return p, nil
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// pad truncates or right-pads s to width runes.
func pad(s string, width int) string {
	runes := []rune(s)
	if len(runes) > width {
		return string(runes[:width-3]) + "..."
	}
	return s + strings.Repeat(" ", width-len(runes))
}

// PrintRequest outputs the skills and goal being submitted.
func (p *Printer) PrintRequest(input types.UserInput) {
	content := fmt.Sprintf("Skills: %s\nGoal:   ₹%sk / month", input.Skills, strategist.FormatGoal(input.Goal))
	p.printBox("REQUEST", content)
}

// PrintReport outputs a report: a title box followed by each section, or the raw text
// with a notice when no section could be parsed. A nil report prints nothing.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintReport(r *display.Report) {
	if r == nil {
		return
	}

	p.printBox(strings.ToUpper(r.Title), fmt.Sprintf("%d section(s)", len(r.Sections)))
	fmt.Fprintln(p.out)

	if r.Unparsed {
		p.notice.Fprintln(p.out, display.UnparsedNotice)
		fmt.Fprintln(p.out)
		fmt.Fprintln(p.out, r.Raw)
		return
	}

	for i, s := range r.Sections {
		p.title.Fprintln(p.out, s.Title)
		fmt.Fprintln(p.out, p.render(s.Body))
		if i < len(r.Sections)-1 {
			fmt.Fprintln(p.out)
		}
	}
}

// PrintError outputs a failed submission.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintError(message string) {
	p.failed.Fprintf(p.out, "✗ %s\n", message)
}

// PrintFieldErrors outputs form validation messages, one per line.
func (p *Printer) PrintFieldErrors(messages ...string) {
	for _, m := range messages {
		if m != "" {
			p.PrintError(m)
		}
	}
}

// render formats a section body, falling back to indented plain text.
func (p *Printer) render(body string) string {
	if p.renderer != nil {
		if out, err := p.renderer.Render(body); err == nil {
			return strings.TrimRight(out, "\n")
		}
	}
	lines := strings.Split(body, "\n")
	for i, line := range lines {
		lines[i] = "  " + line
	}
	return strings.Join(lines, "\n")
}
