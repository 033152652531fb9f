package usecase

import (
	"context"
	"fmt"

	"github.com/bibbank/agricredit/internal/application/dto"
	"github.com/bibbank/agricredit/internal/domain/port"
)

// ListFarmerAssessmentsUseCase returns a farmer's assessment history.
type ListFarmerAssessmentsUseCase struct {
	repo port.AssessmentRepository
}

func NewListFarmerAssessmentsUseCase(repo port.AssessmentRepository) *ListFarmerAssessmentsUseCase {
	return &ListFarmerAssessmentsUseCase{repo: repo}
}

// Execute lists assessments newest first. An unknown farmer yields an empty list.
func (uc *ListFarmerAssessmentsUseCase) Execute(
	ctx context.Context,
	req dto.ListFarmerAssessmentsRequest,
) (dto.ListAssessmentsResponse, error) {
	if err := req.Validate(); err != nil {
		return dto.ListAssessmentsResponse{}, err
	}

	found, err := uc.repo.FindByFarmerID(ctx, req.FarmerID, req.Limit)
	if err != nil {
		return dto.ListAssessmentsResponse{}, fmt.Errorf("list assessments: %w", err)
	}

	resp := dto.ListAssessmentsResponse{Assessments: make([]dto.AssessmentResponse, 0, len(found))}
	for _, a := range found {
		resp.Assessments = append(resp.Assessments, toAssessmentResponse(a))
	}
	return resp, nil
}
