package main

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

func newScoreCmd(newLogger func(*cobra.Command) *slog.Logger) *cobra.Command {
	var input, output string

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a farmer record",
		Long:  "Validates a farmer JSON record, computes its credit score, risk level, ranked factors, and loan eligibility, and prints the result as JSON.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := newApp(newLogger(cmd))

			resp, err := assessFile(cmd.Context(), a, input)
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(resp.CreditScore, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal credit score: %w", err)
			}
			return writeOutput(cmd.OutOrStdout(), output, append(out, '\n'))
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Path to farmer JSON file (required)")
	cmd.Flags().StringVarP(&output, "out", "o", "", "Path to output JSON file (default stdout)")
	if err := cmd.MarkFlagRequired("input"); err != nil {
		panic(fmt.Sprintf("failed to mark input flag as required: %v", err))
	}
	return cmd
}
