package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/bibbank/agricredit/internal/application/dto"
	"github.com/bibbank/agricredit/internal/application/usecase"
	"github.com/bibbank/agricredit/internal/domain/port"
)

var _ AgriCreditServiceServer = (*AgriCreditHandler)(nil)

// AgriCreditHandler implements the gRPC AgriCreditService.
type AgriCreditHandler struct {
	UnimplementedAgriCreditServiceServer
	assess        *usecase.AssessFarmerUseCase
	getAssessment *usecase.GetAssessmentUseCase
	list          *usecase.ListFarmerAssessmentsUseCase
	export        *usecase.ExportReportUseCase
	calculate     *usecase.CalculateLoanUseCase
}

// NewAgriCreditHandler creates a new gRPC handler.
func NewAgriCreditHandler(
	assess *usecase.AssessFarmerUseCase,
	getAssessment *usecase.GetAssessmentUseCase,
	list *usecase.ListFarmerAssessmentsUseCase,
	export *usecase.ExportReportUseCase,
	calculate *usecase.CalculateLoanUseCase,
) *AgriCreditHandler {
	return &AgriCreditHandler{
		assess:        assess,
		getAssessment: getAssessment,
		list:          list,
		export:        export,
		calculate:     calculate,
	}
}

func (h *AgriCreditHandler) AssessFarmer(ctx context.Context, req *dto.AssessFarmerRequest) (*dto.AssessmentResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	resp, err := h.assess.Execute(ctx, *req)
	if err != nil {
		return nil, toStatus(err)
	}
	return &resp, nil
}

func (h *AgriCreditHandler) GetAssessment(ctx context.Context, req *dto.GetAssessmentRequest) (*dto.AssessmentResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	resp, err := h.getAssessment.Execute(ctx, *req)
	if err != nil {
		return nil, toStatus(err)
	}
	return &resp, nil
}

func (h *AgriCreditHandler) ListFarmerAssessments(
	ctx context.Context,
	req *dto.ListFarmerAssessmentsRequest,
) (*dto.ListAssessmentsResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	resp, err := h.list.Execute(ctx, *req)
	if err != nil {
		return nil, toStatus(err)
	}
	return &resp, nil
}

func (h *AgriCreditHandler) ExportReport(ctx context.Context, req *dto.ExportReportRequest) (*dto.ReportResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	resp, err := h.export.Execute(ctx, *req)
	if err != nil {
		return nil, toStatus(err)
	}
	return &resp, nil
}

func (h *AgriCreditHandler) CalculateLoan(ctx context.Context, req *dto.CalculateLoanRequest) (*dto.LoanCalculationResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	resp, err := h.calculate.Execute(ctx, *req)
	if err != nil {
		return nil, toStatus(err)
	}
	return &resp, nil
}

// toStatus maps application errors onto gRPC status codes.
func toStatus(err error) error {
	switch {
	case errors.Is(err, dto.ErrValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, port.ErrAssessmentNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
