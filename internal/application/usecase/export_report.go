package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/bibbank/agricredit/internal/application/dto"
	"github.com/bibbank/agricredit/internal/domain/port"
	"github.com/bibbank/agricredit/internal/domain/service"
	"github.com/bibbank/agricredit/internal/domain/valueobject"
)

// ExportReportUseCase renders a stored assessment as a text report.
type ExportReportUseCase struct {
	repo      port.AssessmentRepository
	generator *service.ReportGenerator
	now       func() time.Time
}

func NewExportReportUseCase(repo port.AssessmentRepository, generator *service.ReportGenerator) *ExportReportUseCase {
	return &ExportReportUseCase{repo: repo, generator: generator, now: time.Now}
}

// Execute loads the assessment and renders the requested report.
func (uc *ExportReportUseCase) Execute(ctx context.Context, req dto.ExportReportRequest) (dto.ReportResponse, error) {
	if err := req.Validate(); err != nil {
		return dto.ReportResponse{}, err
	}

	kind, err := valueobject.NewReportKind(req.Kind)
	if err != nil {
		return dto.ReportResponse{}, fmt.Errorf("%w: %v", dto.ErrValidation, err)
	}
	lang, err := valueobject.NewLanguage(req.Language)
	if err != nil {
		return dto.ReportResponse{}, fmt.Errorf("%w: %v", dto.ErrValidation, err)
	}

	a, err := uc.repo.FindByID(ctx, req.AssessmentID)
	if err != nil {
		return dto.ReportResponse{}, fmt.Errorf("find assessment: %w", err)
	}

	now := uc.now().UTC()
	content, err := uc.generator.Generate(kind, lang, service.ReportData{
		GeneratedAt:  now,
		AssessmentID: a.ID(),
		FarmerName:   a.FarmerName(),
		CreditScore:  a.CreditScore(),
	})
	if err != nil {
		return dto.ReportResponse{}, fmt.Errorf("generate report: %w", err)
	}

	return dto.ReportResponse{
		Filename:    service.ReportFilename(kind, a.FarmerName(), now),
		ContentType: "text/plain; charset=utf-8",
		Content:     content,
	}, nil
}
