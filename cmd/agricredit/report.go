package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/bibbank/agricredit/internal/application/dto"
)

func newReportCmd(newLogger func(*cobra.Command) *slog.Logger) *cobra.Command {
	var input, output, kind, lang string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render a credit report or improvement plan",
		Long:  "Scores a farmer JSON record and renders a plain-text credit report or farming improvement plan (en, hi, or mr headings).",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := newApp(newLogger(cmd))

			assessed, err := assessFile(cmd.Context(), a, input)
			if err != nil {
				return err
			}

			report, err := a.export.Execute(cmd.Context(), dto.ExportReportRequest{
				AssessmentID: assessed.ID,
				Kind:         kind,
				Language:     lang,
			})
			if err != nil {
				return err
			}

			if output == "-" {
				return writeOutput(cmd.OutOrStdout(), "", []byte(report.Content))
			}
			if output == "" {
				output = report.Filename
			}
			if err := writeOutput(cmd.OutOrStdout(), output, []byte(report.Content)); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", output)
			return err
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Path to farmer JSON file (required)")
	cmd.Flags().StringVarP(&output, "out", "o", "", "Output file; \"-\" for stdout (default generated filename)")
	cmd.Flags().StringVar(&kind, "kind", "credit_report", "Report kind: credit_report or improvement_plan")
	cmd.Flags().StringVar(&lang, "lang", "en", "Improvement plan language: en, hi, or mr")
	if err := cmd.MarkFlagRequired("input"); err != nil {
		panic(fmt.Sprintf("failed to mark input flag as required: %v", err))
	}
	return cmd
}
