package service

import (
	"math"

	"github.com/bibbank/agricredit/internal/domain/model"
)

// ---------------------------------------------------------------------------
// EligibilityResolver – maps a credit score to loan terms
// ---------------------------------------------------------------------------

// LoanTier is one band of the lending table. The eligible amount is the
// lesser of RequestedShare of the requested amount and IncomeMultiple
// months of income.
type LoanTier struct {
	MinScore       int
	RequestedShare float64
	IncomeMultiple float64
	InterestRate   float64
	PeriodMonths   int
}

// Terms quoted when no tier applies.
const (
	ineligibleInterestRate = 12
	ineligiblePeriodMonths = 12
)

// DefaultLoanTiers is the lending table, highest band first:
//
//	score >= 70 -> min(requested,     36 x income), 7%,  24 months
//	score >= 50 -> min(0.7 requested, 18 x income), 9%,  18 months
//	score >= 30 -> min(0.4 requested, 12 x income), 12%, 12 months
//	score <  30 -> not eligible
var DefaultLoanTiers = []LoanTier{
	{MinScore: 70, RequestedShare: 1, IncomeMultiple: 36, InterestRate: 7, PeriodMonths: 24},
	{MinScore: 50, RequestedShare: 0.7, IncomeMultiple: 18, InterestRate: 9, PeriodMonths: 18},
	{MinScore: 30, RequestedShare: 0.4, IncomeMultiple: 12, InterestRate: 12, PeriodMonths: 12},
}

// EligibilityResolver resolves loan terms for a score.
type EligibilityResolver struct {
	tiers []LoanTier
}

// NewEligibilityResolver returns a resolver over DefaultLoanTiers.
func NewEligibilityResolver() *EligibilityResolver {
	return &EligibilityResolver{tiers: DefaultLoanTiers}
}

// Resolve returns the loan terms for score. Non-finite or negative amounts
// are treated as zero. The EMI is amortized over the tier's period.
func (r *EligibilityResolver) Resolve(score int, requestedAmount, monthlyIncome float64) model.LoanEligibility {
	requestedAmount = nonNegative(requestedAmount)
	monthlyIncome = nonNegative(monthlyIncome)

	le := model.LoanEligibility{
		InterestRate:      ineligibleInterestRate,
		RecommendedPeriod: ineligiblePeriodMonths,
	}

	for _, tier := range r.tiers {
		if score < tier.MinScore {
			continue
		}
		le.Eligible = true
		le.MaxAmount = math.Min(requestedAmount*tier.RequestedShare, monthlyIncome*tier.IncomeMultiple)
		le.InterestRate = tier.InterestRate
		le.RecommendedPeriod = tier.PeriodMonths
		break
	}

	le.EMI = Amortize(le.MaxAmount, le.InterestRate, le.RecommendedPeriod).EMI
	return le
}
