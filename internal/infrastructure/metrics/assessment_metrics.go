package metrics

import (
	"context"
	"fmt"
	"strconv"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/bibbank/agricredit/internal/domain/model"
	"github.com/bibbank/agricredit/internal/domain/port"
)

var _ port.AssessmentRecorder = (*AssessmentMetrics)(nil)

// AssessmentMetrics records assessment outcomes on OpenTelemetry instruments.
type AssessmentMetrics struct {
	assessments metric.Int64Counter
	scores      metric.Int64Histogram
	loanAmounts metric.Float64Histogram
}

// NewAssessmentMetrics registers the instruments on meter.
func NewAssessmentMetrics(meter metric.Meter) (*AssessmentMetrics, error) {
	assessments, err := meter.Int64Counter("agricredit_assessments_total",
		metric.WithDescription("Completed farmer credit assessments."),
	)
	if err != nil {
		return nil, fmt.Errorf("create assessments counter: %w", err)
	}

	scores, err := meter.Int64Histogram("agricredit_credit_score",
		metric.WithDescription("Distribution of computed credit scores."),
		metric.WithExplicitBucketBoundaries(10, 20, 30, 40, 50, 60, 70, 80, 90, 100),
	)
	if err != nil {
		return nil, fmt.Errorf("create score histogram: %w", err)
	}

	loanAmounts, err := meter.Float64Histogram("agricredit_eligible_amount",
		metric.WithDescription("Maximum eligible loan amount for eligible assessments."),
		metric.WithUnit("INR"),
		metric.WithExplicitBucketBoundaries(10_000, 25_000, 50_000, 100_000, 250_000, 500_000, 1_000_000),
	)
	if err != nil {
		return nil, fmt.Errorf("create amount histogram: %w", err)
	}

	return &AssessmentMetrics{assessments: assessments, scores: scores, loanAmounts: loanAmounts}, nil
}

func (m *AssessmentMetrics) RecordAssessment(ctx context.Context, score model.CreditScore) {
	attrs := metric.WithAttributes(
		attribute.String("risk_level", score.RiskLevel.String()),
		attribute.String("eligible", strconv.FormatBool(score.LoanEligibility.Eligible)),
	)
	m.assessments.Add(ctx, 1, attrs)
	m.scores.Record(ctx, int64(score.Score), attrs)
	if score.LoanEligibility.Eligible {
		m.loanAmounts.Record(ctx, score.LoanEligibility.MaxAmount, attrs)
	}
}
