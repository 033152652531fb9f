package port

import (
	"context"
	"errors"

	"github.com/bibbank/agricredit/internal/domain/event"
	"github.com/bibbank/agricredit/internal/domain/model"
)

// ErrAssessmentNotFound is returned by repositories when no assessment has the requested ID.
var ErrAssessmentNotFound = errors.New("assessment not found")

// ---------------------------------------------------------------------------
// Repository ports (driven/secondary adapters)
// ---------------------------------------------------------------------------

// AssessmentRepository persists and retrieves assessments by opaque ID.
type AssessmentRepository interface {
	Save(ctx context.Context, a model.Assessment) error
	FindByID(ctx context.Context, id string) (model.Assessment, error)
	// FindByFarmerID returns the farmer's assessments newest first. A limit of
	// zero or less returns all of them.
	FindByFarmerID(ctx context.Context, farmerID string, limit int) ([]model.Assessment, error)
	Ping(ctx context.Context) error
}

// ---------------------------------------------------------------------------
// Event publisher port
// ---------------------------------------------------------------------------

// EventPublisher publishes domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}

// ---------------------------------------------------------------------------
// Metrics port
// ---------------------------------------------------------------------------

// AssessmentRecorder records assessment outcomes for monitoring.
type AssessmentRecorder interface {
	RecordAssessment(ctx context.Context, score model.CreditScore)
}
