package service

import (
	"sort"

	"github.com/bibbank/agricredit/internal/domain/model"
	"github.com/bibbank/agricredit/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// ScoringEngine – rule-based farmer credit scoring
// ---------------------------------------------------------------------------

const (
	// BaseScore is the starting point before any rule applies.
	BaseScore = 50
	MinScore  = 0
	MaxScore  = 100

	// MaxFactors is the number of ranked factors kept on a CreditScore.
	MaxFactors = 6
)

const (
	recommendSmallerLoan  = "Consider starting with a smaller loan amount to build credit history."
	recommendImproveFirst = "Focus on improving key factors before reapplying for a larger loan."
)

// ScoringEngine folds an ordered rule table over FarmerData. It holds no
// mutable state and is safe for concurrent use.
type ScoringEngine struct {
	rules    []Rule
	resolver *EligibilityResolver
}

// NewScoringEngine returns an engine with DefaultRules and the default lending tiers.
func NewScoringEngine() *ScoringEngine {
	return NewScoringEngineWithRules(DefaultRules())
}

// NewScoringEngineWithRules returns an engine over a custom rule table.
func NewScoringEngineWithRules(rules []Rule) *ScoringEngine {
	return &ScoringEngine{rules: rules, resolver: NewEligibilityResolver()}
}

// Compute scores data. It never fails: missing numbers behave as zero and
// every degenerate input resolves to a finite result.
func (e *ScoringEngine) Compute(data model.FarmerData) model.CreditScore {
	score := BaseScore
	factors := make([]model.ScoreFactor, 0, len(e.rules))
	explanation := make([]string, 0)
	recommendations := make([]string, 0)

	for _, rule := range e.rules {
		out := rule.Evaluate(data)
		score += out.Delta
		if out.Factor != nil {
			factors = append(factors, *out.Factor)
		}
		if out.Explanation != "" {
			explanation = append(explanation, out.Explanation)
		}
		recommendations = append(recommendations, out.Recommendations...)
	}

	score = clamp(score, MinScore, MaxScore)
	risk := valueobject.RiskLevelForScore(score)

	if score < valueobject.LowRiskMinScore {
		recommendations = append(recommendations, recommendSmallerLoan)
	}
	if risk.Equal(valueobject.RiskLevelHigh) {
		recommendations = append(recommendations, recommendImproveFirst)
	}

	return model.CreditScore{
		Score:           score,
		RiskLevel:       risk,
		Factors:         rankFactors(factors),
		Explanation:     explanation,
		Recommendations: recommendations,
		LoanEligibility: e.resolver.Resolve(
			score,
			data.FinancialData.RequestedLoanAmount,
			data.FinancialData.MonthlyIncome(),
		),
	}
}

// rankFactors orders factors by descending absolute impact, keeping rule
// order among equals, and keeps the top MaxFactors.
func rankFactors(factors []model.ScoreFactor) []model.ScoreFactor {
	sort.SliceStable(factors, func(i, j int) bool {
		return abs(factors[i].Impact) > abs(factors[j].Impact)
	})
	if len(factors) > MaxFactors {
		factors = factors[:MaxFactors]
	}
	return factors
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
