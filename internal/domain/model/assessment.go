package model

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/bibbank/agricredit/internal/domain/event"
)

// ---------------------------------------------------------------------------
// Assessment aggregate root
// ---------------------------------------------------------------------------

// Assessment records one scoring of a farmer. It is immutable once created.
type Assessment struct {
	id           string
	farmerID     string
	farmerData   FarmerData
	creditScore  CreditScore
	version      int
	createdAt    time.Time
	domainEvents []event.DomainEvent
}

// NewAssessment wraps a computed score in a new aggregate and records
// AssessmentCompleted, plus LoanIneligible when no lending tier applies.
func NewAssessment(farmerID string, data FarmerData, score CreditScore, now time.Time) (Assessment, error) {
	if farmerID == "" {
		return Assessment{}, errors.New("farmer ID is required")
	}
	if score.RiskLevel.IsZero() {
		return Assessment{}, errors.New("credit score has no risk level")
	}

	id := uuid.New().String()
	a := Assessment{
		id:          id,
		farmerID:    farmerID,
		farmerData:  data,
		creditScore: score,
		version:     1,
		createdAt:   now.UTC(),
	}

	le := score.LoanEligibility
	a.domainEvents = append(a.domainEvents, event.NewAssessmentCompleted(
		id, farmerID, score.Score, score.RiskLevel.String(),
		le.Eligible, le.MaxAmount, le.InterestRate, le.EMI,
	))
	if !le.Eligible {
		a.domainEvents = append(a.domainEvents, event.NewLoanIneligible(id, farmerID, score.Score))
	}
	return a, nil
}

// ReconstructAssessment rebuilds an aggregate from persistence without side-effects.
func ReconstructAssessment(
	id, farmerID string,
	data FarmerData,
	score CreditScore,
	version int,
	createdAt time.Time,
) Assessment {
	return Assessment{
		id:          id,
		farmerID:    farmerID,
		farmerData:  data,
		creditScore: score,
		version:     version,
		createdAt:   createdAt,
	}
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (a Assessment) ID() string                        { return a.id }
func (a Assessment) FarmerID() string                  { return a.farmerID }
func (a Assessment) FarmerData() FarmerData            { return a.farmerData }
func (a Assessment) CreditScore() CreditScore          { return a.creditScore }
func (a Assessment) Version() int                      { return a.version }
func (a Assessment) CreatedAt() time.Time              { return a.createdAt }
func (a Assessment) DomainEvents() []event.DomainEvent { return a.domainEvents }

// FarmerName is the display name of the assessed farmer.
func (a Assessment) FarmerName() string { return a.farmerData.PersonalInfo.FullName() }

// ClearEvents returns a copy with an empty event list (call after publishing).
func (a Assessment) ClearEvents() Assessment {
	next := a
	next.domainEvents = nil
	return next
}

// ---------------------------------------------------------------------------
// Persistence form
// ---------------------------------------------------------------------------

// AssessmentSnapshot is the serialisable form of an Assessment used by the
// key-value stores.
type AssessmentSnapshot struct {
	CreatedAt   time.Time   `json:"created_at"`
	ID          string      `json:"id"`
	FarmerID    string      `json:"farmer_id"`
	FarmerData  FarmerData  `json:"farmer_data"`
	CreditScore CreditScore `json:"credit_score"`
	Version     int         `json:"version"`
}

// Snapshot returns the persistence form of a.
func (a Assessment) Snapshot() AssessmentSnapshot {
	return AssessmentSnapshot{
		ID:          a.id,
		FarmerID:    a.farmerID,
		FarmerData:  a.farmerData,
		CreditScore: a.creditScore,
		Version:     a.version,
		CreatedAt:   a.createdAt,
	}
}

// Restore rebuilds the aggregate from a snapshot.
func (s AssessmentSnapshot) Restore() Assessment {
	return ReconstructAssessment(s.ID, s.FarmerID, s.FarmerData, s.CreditScore, s.Version, s.CreatedAt)
}
