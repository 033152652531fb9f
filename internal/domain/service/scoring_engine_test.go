package service_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/agricredit/internal/domain/model"
	"github.com/bibbank/agricredit/internal/domain/service"
	"github.com/bibbank/agricredit/internal/domain/valueobject"
)

func highPerformer() model.FarmerData {
	return model.FarmerData{
		PersonalInfo: model.PersonalInfo{
			FirstName:       "Ramesh",
			Surname:         "Patil",
			ExperienceYears: 10,
			FarmSize:        5,
		},
		FarmingData: model.FarmingData{
			AverageYield:          4,
			SoilHealthScore:       8,
			WeatherRiskManagement: 7,
			IrrigationType:        valueobject.IrrigationDrip,
			RainfallDependency:    valueobject.RainfallIrrigated,
			FarmMechanization:     true,
		},
		FinancialData: model.FinancialData{
			SeasonalIncome:      300_000,
			ExpensesPerMonth:    10_000,
			ExistingLoans:       20_000,
			RequestedLoanAmount: 100_000,
		},
		CommunityData: model.CommunityData{
			CooperativeMember: true,
			TrainingPrograms:  4,
			PeerRating:        9,
		},
	}
}

func defaultedLeaseFarmer() model.FarmerData {
	return model.FarmerData{
		PersonalInfo: model.PersonalInfo{
			FirstName:       "Sunil",
			Surname:         "Jadhav",
			ExperienceYears: 2,
			FarmSize:        1,
		},
		FarmingData: model.FarmingData{
			AverageYield:          1,
			SoilHealthScore:       3,
			WeatherRiskManagement: 3,
			IrrigationType:        valueobject.IrrigationRainfed,
			RainfallDependency:    valueobject.RainfallRainfed,
		},
		FinancialData: model.FinancialData{
			SeasonalIncome:         60_000,
			ExpensesPerMonth:       6_000,
			ExistingLoans:          40_000,
			RequestedLoanAmount:    50_000,
			PreviousLoansDefaulted: true,
		},
		CommunityData: model.CommunityData{
			TrainingPrograms: 0,
			PeerRating:       4,
		},
		LandData: &model.LandData{LandType: valueobject.LandLease, LeasePeriod: 1},
	}
}

func factorNames(factors []model.ScoreFactor) []string {
	names := make([]string, 0, len(factors))
	for _, f := range factors {
		names = append(names, f.Name)
	}
	return names
}

func TestScoringEngine_HighPerformer(t *testing.T) {
	result := service.NewScoringEngine().Compute(highPerformer())

	assert.Equal(t, 100, result.Score)
	assert.Equal(t, valueobject.RiskLevelLow, result.RiskLevel)
	assert.Equal(t, []string{
		"Yield Performance",
		"Repayment Capacity",
		"Farming Experience",
		"Soil Health",
		"Farm Size",
		"Irrigation Efficiency",
	}, factorNames(result.Factors))
	assert.Equal(t, "Net annual income: ₹180000", result.Factors[1].Value)
	assert.Empty(t, result.Recommendations)
	assert.Len(t, result.Explanation, 10)

	le := result.LoanEligibility
	assert.True(t, le.Eligible)
	assert.Equal(t, 100_000.0, le.MaxAmount)
	assert.Equal(t, 7.0, le.InterestRate)
	assert.Equal(t, 24, le.RecommendedPeriod)
	assert.Equal(t, 4477.0, le.EMI)
}

func TestScoringEngine_DefaultedLeaseFarmer(t *testing.T) {
	result := service.NewScoringEngine().Compute(defaultedLeaseFarmer())

	assert.Equal(t, 0, result.Score)
	assert.Equal(t, valueobject.RiskLevelHigh, result.RiskLevel)
	assert.False(t, result.LoanEligibility.Eligible)
	assert.Equal(t, 0.0, result.LoanEligibility.MaxAmount)
	assert.Equal(t, 0.0, result.LoanEligibility.EMI)
	assert.Empty(t, result.Explanation)

	assert.Equal(t, []string{
		"Credit History",
		"Repayment Capacity",
		"Yield Performance",
		"Existing Debt",
		"Land Ownership",
		"Soil Health",
	}, factorNames(result.Factors))
	assert.Equal(t, "High debt burden: ₹40000", result.Factors[3].Value)

	recs := result.Recommendations
	require.Len(t, recs, 15)
	assert.Equal(t, "Attend agricultural training programs to improve farming techniques.", recs[9])
	assert.Equal(t, "Secure longer lease agreements for better creditworthiness.", recs[12])
	assert.Equal(t, "Consider starting with a smaller loan amount to build credit history.", recs[13])
	assert.Equal(t, "Focus on improving key factors before reapplying for a larger loan.", recs[14])
}

func TestScoringEngine_ZeroSeasonalIncome(t *testing.T) {
	data := highPerformer()
	data.FinancialData.SeasonalIncome = 0
	data.FinancialData.ExpensesPerMonth = 0

	result := service.NewScoringEngine().Compute(data)

	var repayment *model.ScoreFactor
	for i := range result.Factors {
		if result.Factors[i].Name == "Repayment Capacity" {
			repayment = &result.Factors[i]
		}
	}
	require.NotNil(t, repayment)
	assert.Equal(t, -15, repayment.Impact)
	assert.Equal(t, "Negative cash flow: ₹0", repayment.Value)

	le := result.LoanEligibility
	assert.False(t, math.IsNaN(le.EMI) || math.IsInf(le.EMI, 0))
	assert.False(t, math.IsNaN(le.MaxAmount) || math.IsInf(le.MaxAmount, 0))
	assert.Equal(t, 0.0, le.MaxAmount)
}

func TestScoringEngine_MediumTier(t *testing.T) {
	data := highPerformer()
	data.PersonalInfo.ExperienceYears = 3
	data.FarmingData.AverageYield = 2
	data.FarmingData.SoilHealthScore = 5
	data.FarmingData.IrrigationType = valueobject.IrrigationFlood
	data.FarmingData.FarmMechanization = false
	data.CommunityData.CooperativeMember = false
	data.CommunityData.TrainingPrograms = 1
	data.CommunityData.PeerRating = 6
	data.FinancialData.PreviousLoansDefaulted = true

	// 50 - 5 + 8 + 5 + 12 + 5 - 20 = 55
	result := service.NewScoringEngine().Compute(data)

	assert.Equal(t, 55, result.Score)
	assert.Equal(t, valueobject.RiskLevelMedium, result.RiskLevel)
	assert.Equal(t, 9.0, result.LoanEligibility.InterestRate)
	assert.Equal(t, 70_000.0, result.LoanEligibility.MaxAmount)
	assert.Contains(t, result.Recommendations, "Consider starting with a smaller loan amount to build credit history.")
	assert.NotContains(t, result.Recommendations, "Focus on improving key factors before reapplying for a larger loan.")
}

func TestScoringEngine_Idempotent(t *testing.T) {
	engine := service.NewScoringEngine()

	assert.Equal(t, engine.Compute(highPerformer()), engine.Compute(highPerformer()))
	assert.Equal(t, engine.Compute(defaultedLeaseFarmer()), engine.Compute(defaultedLeaseFarmer()))
}

func TestScoringEngine_ZeroValueInput(t *testing.T) {
	result := service.NewScoringEngine().Compute(model.FarmerData{})

	assert.GreaterOrEqual(t, result.Score, service.MinScore)
	assert.LessOrEqual(t, result.Score, service.MaxScore)
	assert.LessOrEqual(t, len(result.Factors), service.MaxFactors)
	assert.True(t, result.RiskLevel.Equal(valueobject.RiskLevelForScore(result.Score)))
}

func TestScoringEngine_Properties(t *testing.T) {
	engine := service.NewScoringEngine()

	variants := []func(*model.FarmerData){
		func(d *model.FarmerData) {},
		func(d *model.FarmerData) { d.FarmingData.SoilHealthScore = 1 },
		func(d *model.FarmerData) { d.FarmingData.IrrigationType = valueobject.IrrigationRainfed },
		func(d *model.FarmerData) { d.FinancialData.RequestedLoanAmount = 10_000_000 },
		func(d *model.FarmerData) { d.FinancialData.ExistingLoans = 1_000_000 },
		func(d *model.FarmerData) { d.LandData = &model.LandData{LandType: valueobject.LandLease, LeasePeriod: 5} },
		func(d *model.FarmerData) { d.LandData = &model.LandData{LandType: valueobject.LandOwned} },
		func(d *model.FarmerData) { *d = defaultedLeaseFarmer() },
	}

	for i, mutate := range variants {
		data := highPerformer()
		mutate(&data)
		result := engine.Compute(data)

		assert.GreaterOrEqual(t, result.Score, 0, "variant %d", i)
		assert.LessOrEqual(t, result.Score, 100, "variant %d", i)
		assert.True(t, result.RiskLevel.Equal(valueobject.RiskLevelForScore(result.Score)), "variant %d", i)
		require.LessOrEqual(t, len(result.Factors), service.MaxFactors, "variant %d", i)
		for j := 1; j < len(result.Factors); j++ {
			prev := math.Abs(float64(result.Factors[j-1].Impact))
			cur := math.Abs(float64(result.Factors[j].Impact))
			assert.GreaterOrEqual(t, prev, cur, "variant %d factor %d out of order", i, j)
		}
	}
}

func TestScoringEngine_CustomRules(t *testing.T) {
	engine := service.NewScoringEngineWithRules([]service.Rule{
		{Name: "flat", Evaluate: func(model.FarmerData) service.RuleOutcome {
			return service.RuleOutcome{Delta: 25, Explanation: "flat bonus"}
		}},
	})

	result := engine.Compute(model.FarmerData{})

	assert.Equal(t, 75, result.Score)
	assert.Empty(t, result.Factors)
	assert.Equal(t, []string{"flat bonus"}, result.Explanation)
}
