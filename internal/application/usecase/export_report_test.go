package usecase_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/agricredit/internal/application/dto"
	"github.com/bibbank/agricredit/internal/application/usecase"
	"github.com/bibbank/agricredit/internal/domain/port"
	"github.com/bibbank/agricredit/internal/domain/service"
)

func TestExportReport_Execute(t *testing.T) {
	repo := &mockAssessmentRepository{}
	assess := usecase.NewAssessFarmerUseCase(repo, &mockEventPublisher{}, nil, service.NewScoringEngine(), nil)
	created, err := assess.Execute(context.Background(), strongFarmerRequest())
	require.NoError(t, err)

	uc := usecase.NewExportReportUseCase(repo, service.NewReportGenerator())

	t.Run("renders credit report by default", func(t *testing.T) {
		resp, err := uc.Execute(context.Background(), dto.ExportReportRequest{AssessmentID: created.ID})
		require.NoError(t, err)

		assert.Equal(t, "text/plain; charset=utf-8", resp.ContentType)
		assert.True(t, strings.HasPrefix(resp.Filename, "credit_report_"))
		assert.True(t, strings.HasSuffix(resp.Filename, ".txt"))
		assert.Contains(t, resp.Content, "AGRICREDIT SCORE REPORT")
		assert.Contains(t, resp.Content, "Ramesh Patil")
		assert.Contains(t, resp.Content, "AGR-"+created.ID)
		assert.Contains(t, resp.Content, "Score: 100/100")
	})

	t.Run("renders improvement plan in hindi", func(t *testing.T) {
		resp, err := uc.Execute(context.Background(), dto.ExportReportRequest{
			AssessmentID: created.ID,
			Kind:         "improvement_plan",
			Language:     "hi",
		})
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(resp.Filename, "improvement_plan_"))
		assert.Contains(t, resp.Content, "कृषि सुधार योजना")
		assert.Contains(t, resp.Content, "GOVERNMENT SCHEMES TO APPLY")
	})

	t.Run("unknown assessment is not found", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), dto.ExportReportRequest{AssessmentID: "missing"})
		assert.ErrorIs(t, err, port.ErrAssessmentNotFound)
	})

	t.Run("unsupported language fails validation", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), dto.ExportReportRequest{AssessmentID: created.ID, Language: "fr"})
		assert.ErrorIs(t, err, dto.ErrValidation)
	})
}
