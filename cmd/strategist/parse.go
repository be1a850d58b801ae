package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/income-strategist/internal/display"
	"github.com/jonathan/income-strategist/internal/observability"
)

func newParseCmd() *cobra.Command {
	var (
		jsonOutput bool
		markdown   bool
	)

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Split a saved report into its sections",
		Long:  "Read a raw report from a file (or stdin when no file is given) and print its Skill Gap, Niche and Action Plan sections.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				raw []byte
				err error
			)
			if len(args) == 1 {
				raw, err = os.ReadFile(args[0])
			} else {
				raw, err = io.ReadAll(cmd.InOrStdin())
			}
			if err != nil {
				return fmt.Errorf("failed to read report: %w", err)
			}
			if len(raw) == 0 {
				return fmt.Errorf("report is empty")
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(display.Response(string(raw)))
			}

			printer, err := observability.NewPrinter(out, observability.Options{Markdown: markdown})
			if err != nil {
				return err
			}
			printer.PrintReport(display.Build(string(raw)))
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the parsed sections as JSON")
	cmd.Flags().BoolVar(&markdown, "markdown", false, "Render section bodies as markdown")
	return cmd
}
