package model

import "github.com/bibbank/agricredit/internal/domain/valueobject"

// ScoreFactor is one contributor to a credit score.
type ScoreFactor struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Impact int    `json:"impact"`
}

// LoanEligibility holds the loan terms a score qualifies for.
type LoanEligibility struct {
	MaxAmount         float64 `json:"max_amount"`
	InterestRate      float64 `json:"interest_rate"` // annual percent
	EMI               float64 `json:"emi"`
	RecommendedPeriod int     `json:"recommended_period"` // months
	Eligible          bool    `json:"eligible"`
}

// CreditScore is the result of one assessment. Score is within [0,100] and
// Factors holds at most six entries ordered by descending absolute impact.
type CreditScore struct {
	RiskLevel       valueobject.RiskLevel `json:"risk_level"`
	Factors         []ScoreFactor         `json:"factors"`
	Explanation     []string              `json:"explanation"`
	Recommendations []string              `json:"recommendations"`
	LoanEligibility LoanEligibility       `json:"loan_eligibility"`
	Score           int                   `json:"score"`
}
