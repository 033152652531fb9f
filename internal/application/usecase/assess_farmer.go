package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/bibbank/agricredit/internal/application/dto"
	"github.com/bibbank/agricredit/internal/domain/model"
	"github.com/bibbank/agricredit/internal/domain/port"
	"github.com/bibbank/agricredit/internal/domain/service"
)

// AssessFarmerUseCase scores a farmer and records the assessment.
type AssessFarmerUseCase struct {
	repo      port.AssessmentRepository
	publisher port.EventPublisher
	recorder  port.AssessmentRecorder
	engine    *service.ScoringEngine
	logger    *slog.Logger
	tracer    trace.Tracer
	now       func() time.Time
}

// NewAssessFarmerUseCase wires dependencies. recorder may be nil.
func NewAssessFarmerUseCase(
	repo port.AssessmentRepository,
	publisher port.EventPublisher,
	recorder port.AssessmentRecorder,
	engine *service.ScoringEngine,
	logger *slog.Logger,
) *AssessFarmerUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &AssessFarmerUseCase{
		repo:      repo,
		publisher: publisher,
		recorder:  recorder,
		engine:    engine,
		logger:    logger,
		tracer:    otel.Tracer("github.com/bibbank/agricredit/usecase"),
		now:       time.Now,
	}
}

// Execute validates, scores, persists, and publishes an assessment.
func (uc *AssessFarmerUseCase) Execute(
	ctx context.Context,
	req dto.AssessFarmerRequest,
) (dto.AssessmentResponse, error) {
	ctx, span := uc.tracer.Start(ctx, "AssessFarmer")
	defer span.End()

	resp, err := uc.execute(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return dto.AssessmentResponse{}, err
	}

	span.SetAttributes(
		attribute.String("assessment.id", resp.ID),
		attribute.Int("assessment.score", resp.CreditScore.Score),
		attribute.String("assessment.risk_level", resp.CreditScore.RiskLevel),
	)
	return resp, nil
}

func (uc *AssessFarmerUseCase) execute(ctx context.Context, req dto.AssessFarmerRequest) (dto.AssessmentResponse, error) {
	// 1. Validate the collected record.
	if err := req.Validate(); err != nil {
		return dto.AssessmentResponse{}, err
	}

	// 2. Score.
	data := req.ToFarmerData()
	score := uc.engine.Compute(data)

	// 3. Create the aggregate.
	assessment, err := model.NewAssessment(req.FarmerID, data, score, uc.now())
	if err != nil {
		return dto.AssessmentResponse{}, fmt.Errorf("create assessment: %w", err)
	}

	// 4. Persist.
	if err := uc.repo.Save(ctx, assessment); err != nil {
		return dto.AssessmentResponse{}, fmt.Errorf("save assessment: %w", err)
	}

	// 5. Publish domain events.
	if err := uc.publisher.Publish(ctx, assessment.DomainEvents()...); err != nil {
		return dto.AssessmentResponse{}, fmt.Errorf("publish events: %w", err)
	}

	if uc.recorder != nil {
		uc.recorder.RecordAssessment(ctx, score)
	}

	uc.logger.InfoContext(ctx, "farmer assessed",
		"assessment_id", assessment.ID(),
		"farmer_id", assessment.FarmerID(),
		"score", score.Score,
		"risk_level", score.RiskLevel.String(),
		"eligible", score.LoanEligibility.Eligible,
	)

	return toAssessmentResponse(assessment), nil
}
