package usecase

import (
	"context"
	"fmt"

	"github.com/bibbank/agricredit/internal/application/dto"
	"github.com/bibbank/agricredit/internal/domain/port"
)

// GetAssessmentUseCase retrieves a single assessment.
type GetAssessmentUseCase struct {
	repo port.AssessmentRepository
}

func NewGetAssessmentUseCase(repo port.AssessmentRepository) *GetAssessmentUseCase {
	return &GetAssessmentUseCase{repo: repo}
}

// Execute loads an assessment by ID. A missing assessment wraps port.ErrAssessmentNotFound.
func (uc *GetAssessmentUseCase) Execute(ctx context.Context, req dto.GetAssessmentRequest) (dto.AssessmentResponse, error) {
	if err := req.Validate(); err != nil {
		return dto.AssessmentResponse{}, err
	}

	a, err := uc.repo.FindByID(ctx, req.AssessmentID)
	if err != nil {
		return dto.AssessmentResponse{}, fmt.Errorf("find assessment: %w", err)
	}
	return toAssessmentResponse(a), nil
}
