package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/bibbank/agricredit/internal/application/dto"
	"github.com/bibbank/agricredit/internal/application/usecase"
	"github.com/bibbank/agricredit/pkg/money"
)

func newEMICmd() *cobra.Command {
	var (
		principal float64
		rate      float64
		months    int
		schedule  bool
		asJSON    bool
		start     string
	)

	cmd := &cobra.Command{
		Use:   "emi",
		Short: "Compute the monthly instalment for a loan",
		Long:  "Computes the reducing-balance EMI, total repayment, and total interest for a loan, optionally with the month-by-month repayment schedule.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			req := dto.CalculateLoanRequest{
				Principal:       principal,
				AnnualRate:      rate,
				TenureMonths:    months,
				IncludeSchedule: schedule,
			}
			if start != "" {
				at, err := time.Parse(time.DateOnly, start)
				if err != nil {
					return fmt.Errorf("invalid --start date %q: %w", start, err)
				}
				req.StartDate = &at
			}

			resp, err := usecase.NewCalculateLoanUseCase().Execute(cmd.Context(), req)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if asJSON {
				out, err := json.MarshalIndent(resp, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal calculation: %w", err)
				}
				_, err = fmt.Fprintln(w, string(out))
				return err
			}

			inr := func(v float64) string { return money.Rupees(v).Format(language.English) }
			fmt.Fprintf(w, "EMI:            %s\n", inr(resp.EMI))
			fmt.Fprintf(w, "Total amount:   %s\n", inr(resp.TotalAmount))
			fmt.Fprintf(w, "Total interest: %s\n", inr(resp.TotalInterest))
			fmt.Fprintf(w, "Tenure:         %d months\n", resp.TenureMonths)

			if len(resp.Schedule) == 0 {
				return nil
			}

			fmt.Fprintln(w)
			tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintln(tw, "Period\tDue\tPrincipal\tInterest\tPayment\tBalance\t")
			for _, e := range resp.Schedule {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t\n",
					e.Period, e.DueDate.Format(time.DateOnly),
					e.Principal.StringFixed(2), e.Interest.StringFixed(2),
					e.Total.StringFixed(2), e.RemainingBalance.StringFixed(2),
				)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().Float64VarP(&principal, "principal", "p", 0, "Loan principal in rupees (required)")
	cmd.Flags().Float64VarP(&rate, "rate", "r", 0, "Annual interest rate in percent")
	cmd.Flags().IntVarP(&months, "months", "m", 12, "Tenure in months")
	cmd.Flags().BoolVar(&schedule, "schedule", false, "Print the repayment schedule")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
	cmd.Flags().StringVar(&start, "start", "", "Schedule start date (YYYY-MM-DD, default today)")
	if err := cmd.MarkFlagRequired("principal"); err != nil {
		panic(fmt.Sprintf("failed to mark principal flag as required: %v", err))
	}
	return cmd
}
