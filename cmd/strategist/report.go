package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/income-strategist/internal/app"
	"github.com/jonathan/income-strategist/internal/display"
	"github.com/jonathan/income-strategist/internal/form"
	"github.com/jonathan/income-strategist/internal/observability"
	"github.com/jonathan/income-strategist/internal/strategist"
	"github.com/jonathan/income-strategist/internal/types"
)

// errInvalidInput is returned after field errors have been printed.
var errInvalidInput = errors.New("invalid input")

type reportOptions struct {
	skills      string
	goal        string
	interactive bool
	jsonOutput  bool
	markdown    bool
	color       bool
}

func newReportCmd(flags *globalFlags) *cobra.Command {
	opts := &reportOptions{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate a passive income roadmap",
		Long:  "Validate your skills and monthly goal (in thousands of rupees), ask the model for a roadmap and print its Skill Gap, Niche and Action Plan.",
		Example: `  strategist report --skills "Android (Kotlin), GenAI, SQL" --goal 25
  strategist report --skills "Python, AWS" --goal 50 --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReport(cmd, flags, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.skills, "skills", "s", "", "Your technical skills, comma separated")
	cmd.Flags().StringVarP(&opts.goal, "goal", "g", "", "Monthly passive income goal in ₹'000")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "Prompt for a new API key if the current one is rejected")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Print the report and its parsed sections as JSON")
	cmd.Flags().BoolVar(&opts.markdown, "markdown", true, "Render section bodies as markdown")
	cmd.Flags().BoolVar(&opts.color, "color", true, "Colorize output")
	return cmd
}

func runReport(cmd *cobra.Command, flags *globalFlags, opts *reportOptions) error {
	cfg, log, err := flags.load()
	if err != nil {
		return err
	}
	defer log.Sync()

	out := cmd.OutOrStdout()
	printer, err := observability.NewPrinter(out, observability.Options{
		Markdown: opts.markdown && !opts.jsonOutput,
		Color:    opts.color && out == os.Stdout,
	})
	if err != nil {
		return err
	}
	status, err := observability.NewPrinter(cmd.ErrOrStderr(), observability.Options{})
	if err != nil {
		return err
	}

	var selector strategist.KeySelector
	if opts.interactive {
		selector = &strategist.TerminalKeySelector{In: cmd.InOrStdin(), Out: cmd.ErrOrStderr()}
	}
	ctrl := app.NewController(newGenerator(cfg, log, selector), log)
	unsubscribe := ctrl.Subscribe(func(s app.State) {
		if s.IsLoading {
			fmt.Fprintln(cmd.ErrOrStderr(), form.SubmitLoadingLabel) //nolint:errcheck
		}
	})
	defer unsubscribe()

	f := form.New()
	submitted := f.Submit(opts.skills, opts.goal, func(input types.UserInput) {
		if !opts.jsonOutput {
			printer.PrintRequest(input)
		}
		_ = ctrl.Submit(cmd.Context(), input)
	})
	if !submitted {
		status.PrintFieldErrors(f.Errors.Skills, f.Errors.Goal)
		return errInvalidInput
	}
	f.Complete()

	state := ctrl.State()
	if opts.jsonOutput {
		resp := display.Response(state.Report)
		resp.Error = state.Error
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(resp); err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
	} else if state.Error == "" {
		printer.PrintReport(display.Build(state.Report))
	}

	if state.Error != "" {
		status.PrintError(state.Error)
		return errors.New(state.Error)
	}
	return nil
}
