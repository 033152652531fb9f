package usecase

import (
	"github.com/bibbank/agricredit/internal/application/dto"
	"github.com/bibbank/agricredit/internal/domain/model"
)

func toAssessmentResponse(a model.Assessment) dto.AssessmentResponse {
	return dto.AssessmentResponse{
		ID:          a.ID(),
		FarmerID:    a.FarmerID(),
		FarmerName:  a.FarmerName(),
		CreatedAt:   a.CreatedAt(),
		CreditScore: ToCreditScoreResponse(a.CreditScore()),
	}
}

// ToCreditScoreResponse maps a domain credit score to its external form.
func ToCreditScoreResponse(cs model.CreditScore) dto.CreditScoreResponse {
	factors := make([]dto.ScoreFactorResponse, 0, len(cs.Factors))
	for _, f := range cs.Factors {
		factors = append(factors, dto.ScoreFactorResponse{Name: f.Name, Impact: f.Impact, Value: f.Value})
	}

	le := cs.LoanEligibility
	return dto.CreditScoreResponse{
		Score:           cs.Score,
		RiskLevel:       cs.RiskLevel.String(),
		Factors:         factors,
		Explanation:     nonNil(cs.Explanation),
		Recommendations: nonNil(cs.Recommendations),
		LoanEligibility: dto.LoanEligibilityResponse{
			Eligible:          le.Eligible,
			MaxAmount:         le.MaxAmount,
			RecommendedPeriod: le.RecommendedPeriod,
			InterestRate:      le.InterestRate,
			EMI:               le.EMI,
		},
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
