package event

import (
	"github.com/bibbank/agricredit/pkg/events"
)

// DomainEvent is an alias for the shared pkg/events.DomainEvent interface.
type DomainEvent = events.DomainEvent

const (
	aggregateAssessment = "Assessment"

	TypeAssessmentCompleted = "agricredit.assessment.completed"
	TypeLoanIneligible      = "agricredit.assessment.loan_ineligible"
)

// AssessmentCompleted is raised when a farmer has been scored.
type AssessmentCompleted struct {
	events.BaseEvent
	FarmerID     string  `json:"farmer_id"`
	RiskLevel    string  `json:"risk_level"`
	MaxAmount    float64 `json:"max_amount"`
	InterestRate float64 `json:"interest_rate"`
	EMI          float64 `json:"emi"`
	Score        int     `json:"score"`
	Eligible     bool    `json:"eligible"`
}

func NewAssessmentCompleted(
	assessmentID, farmerID string,
	score int, riskLevel string,
	eligible bool, maxAmount, interestRate, emi float64,
) AssessmentCompleted {
	return AssessmentCompleted{
		BaseEvent:    events.NewBaseEvent(TypeAssessmentCompleted, assessmentID, aggregateAssessment),
		FarmerID:     farmerID,
		Score:        score,
		RiskLevel:    riskLevel,
		Eligible:     eligible,
		MaxAmount:    maxAmount,
		InterestRate: interestRate,
		EMI:          emi,
	}
}

// LoanIneligible is raised when a score falls below every lending tier.
type LoanIneligible struct {
	events.BaseEvent
	FarmerID string `json:"farmer_id"`
	Score    int    `json:"score"`
}

func NewLoanIneligible(assessmentID, farmerID string, score int) LoanIneligible {
	return LoanIneligible{
		BaseEvent: events.NewBaseEvent(TypeLoanIneligible, assessmentID, aggregateAssessment),
		FarmerID:  farmerID,
		Score:     score,
	}
}
