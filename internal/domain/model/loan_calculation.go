package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoanCalculation is the rounded result of amortizing a loan.
type LoanCalculation struct {
	EMI           float64 `json:"emi"`
	TotalAmount   float64 `json:"total_amount"`
	TotalInterest float64 `json:"total_interest"`
	TenureMonths  int     `json:"tenure_months"`
}

// RepaymentEntry is one period of a repayment schedule.
type RepaymentEntry struct {
	DueDate          time.Time
	Principal        decimal.Decimal
	Interest         decimal.Decimal
	Total            decimal.Decimal
	RemainingBalance decimal.Decimal
	Period           int
}

// GenerateRepaymentSchedule computes a fixed-payment reducing-balance
// schedule for an annual rate given in percent:
//
//	monthlyRate = annualRatePercent / 12 / 100
//	payment     = P * r * (1+r)^n / ((1+r)^n - 1)
//
// The last period absorbs rounding so the balance reaches exactly zero.
func GenerateRepaymentSchedule(
	principal decimal.Decimal,
	annualRatePercent decimal.Decimal,
	termMonths int,
	startDate time.Time,
) []RepaymentEntry {
	if termMonths <= 0 || principal.LessThanOrEqual(decimal.Zero) {
		return nil
	}

	monthlyRate := annualRatePercent.Div(decimal.NewFromInt(1200))
	n := decimal.NewFromInt(int64(termMonths))

	var payment decimal.Decimal
	if monthlyRate.IsZero() {
		payment = principal.Div(n).Round(2)
	} else {
		factor := decimal.NewFromInt(1).Add(monthlyRate).Pow(n)
		payment = principal.Mul(monthlyRate).Mul(factor).
			Div(factor.Sub(decimal.NewFromInt(1))).Round(2)
	}

	schedule := make([]RepaymentEntry, 0, termMonths)
	remaining := principal

	for period := 1; period <= termMonths; period++ {
		interest := remaining.Mul(monthlyRate).Round(2)
		principalPart := payment.Sub(interest)

		if period == termMonths || principalPart.GreaterThan(remaining) {
			principalPart = remaining
		}

		remaining = remaining.Sub(principalPart)

		schedule = append(schedule, RepaymentEntry{
			Period:           period,
			DueDate:          startDate.AddDate(0, period, 0),
			Principal:        principalPart,
			Interest:         interest,
			Total:            principalPart.Add(interest),
			RemainingBalance: remaining,
		})

		if remaining.IsZero() {
			break
		}
	}

	return schedule
}
