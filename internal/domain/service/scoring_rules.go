package service

import (
	"fmt"
	"strconv"

	"github.com/bibbank/agricredit/internal/domain/model"
	"github.com/bibbank/agricredit/internal/domain/valueobject"
)

// RuleOutcome is what a single rule contributes to an assessment. Delta is
// applied to the running score; Factor, when set, is a ranked contributor.
// Delta and Factor.Impact usually agree but need not.
type RuleOutcome struct {
	Factor          *model.ScoreFactor
	Explanation     string
	Recommendations []string
	Delta           int
}

// Rule is one independent, pure scoring rule.
type Rule struct {
	Name     string
	Evaluate func(model.FarmerData) RuleOutcome
}

// DefaultRules returns the scoring rules in evaluation order. Order matters:
// it breaks ties when factors are ranked and fixes the order of explanations
// and recommendations.
func DefaultRules() []Rule {
	return []Rule{
		{Name: "experience", Evaluate: experienceRule},
		{Name: "farm_size", Evaluate: farmSizeRule},
		{Name: "yield", Evaluate: yieldRule},
		{Name: "soil_health", Evaluate: soilHealthRule},
		{Name: "irrigation", Evaluate: irrigationRule},
		{Name: "rainfall_dependency", Evaluate: rainfallRule},
		{Name: "mechanization", Evaluate: mechanizationRule},
		{Name: "repayment_capacity", Evaluate: repaymentCapacityRule},
		{Name: "existing_debt", Evaluate: existingDebtRule},
		{Name: "default_history", Evaluate: defaultHistoryRule},
		{Name: "cooperative", Evaluate: cooperativeRule},
		{Name: "training", Evaluate: trainingRule},
		{Name: "peer_rating", Evaluate: peerRatingRule},
		{Name: "land_tenure", Evaluate: landTenureRule},
	}
}

// favorable builds an outcome that adds to the score with an explanation.
func favorable(name string, impact int, value, explanation string) RuleOutcome {
	return RuleOutcome{
		Delta:       impact,
		Factor:      &model.ScoreFactor{Name: name, Impact: impact, Value: value},
		Explanation: explanation,
	}
}

// unfavorable builds an outcome that subtracts from the score with a recommendation.
func unfavorable(name string, impact int, value, recommendation string) RuleOutcome {
	out := RuleOutcome{
		Delta:  impact,
		Factor: &model.ScoreFactor{Name: name, Impact: impact, Value: value},
	}
	if recommendation != "" {
		out.Recommendations = []string{recommendation}
	}
	return out
}

func experienceRule(d model.FarmerData) RuleOutcome {
	years := d.PersonalInfo.ExperienceYears
	value := fmt.Sprintf("%d years of experience", years)
	if years >= 5 {
		return favorable("Farming Experience", 10, value,
			"Good farming experience shows stability and knowledge.")
	}
	return unfavorable("Farming Experience", -5, value,
		"Consider gaining more experience or taking agricultural training programs.")
}

func farmSizeRule(d model.FarmerData) RuleOutcome {
	value := formatNumber(d.PersonalInfo.FarmSize) + " acres"
	if d.PersonalInfo.FarmSize >= 2 {
		return favorable("Farm Size", 8, value,
			"Adequate farm size indicates good production capacity.")
	}
	return unfavorable("Farm Size", -3, value,
		"Consider expanding farm size or intensive farming techniques.")
}

func yieldRule(d model.FarmerData) RuleOutcome {
	y := d.FarmingData.AverageYield
	value := formatNumber(y) + " tons/acre"
	switch {
	case y >= 3:
		return favorable("Yield Performance", 15, value,
			"High yield indicates good farming practices and productivity.")
	case y >= 1.5:
		return favorable("Yield Performance", 5, value, "")
	default:
		return unfavorable("Yield Performance", -10, value,
			"Focus on improving yield through better seeds, fertilizers, and farming techniques.")
	}
}

func soilHealthRule(d model.FarmerData) RuleOutcome {
	s := d.FarmingData.SoilHealthScore
	value := fmt.Sprintf("Score: %d/10", s)
	switch {
	case s >= 7:
		return favorable("Soil Health", 10, value,
			"Good soil health ensures sustainable farming and consistent yields.")
	case s <= 4:
		return unfavorable("Soil Health", -8, value,
			"Invest in soil improvement through organic matter and proper fertilization.")
	}
	return RuleOutcome{}
}

func irrigationRule(d model.FarmerData) RuleOutcome {
	t := d.FarmingData.IrrigationType
	switch {
	case t.IsEfficient():
		return favorable("Irrigation Efficiency", 8, string(t)+" irrigation",
			"Efficient irrigation methods show modern farming practices.")
	case t == valueobject.IrrigationRainfed:
		return unfavorable("Irrigation Risk", -5, "Rainfed farming",
			"Consider investing in irrigation infrastructure to reduce weather dependency.")
	}
	return RuleOutcome{}
}

func rainfallRule(d model.FarmerData) RuleOutcome {
	if d.FarmingData.RainfallDependency != valueobject.RainfallRainfed {
		return RuleOutcome{}
	}
	return unfavorable("Weather Dependency", -8, "High rainfall dependency",
		"Implement water conservation and irrigation systems to reduce weather risks.")
}

func mechanizationRule(d model.FarmerData) RuleOutcome {
	if !d.FarmingData.FarmMechanization {
		return RuleOutcome{}
	}
	return favorable("Farm Mechanization", 6, "Uses modern equipment",
		"Farm mechanization improves efficiency and productivity.")
}

// repaymentCapacityRule rewards positive cash flow when the request is at
// most 24 months of income. Zero income can never satisfy the ratio. A
// positive cash flow with an oversized request contributes nothing.
func repaymentCapacityRule(d model.FarmerData) RuleOutcome {
	f := d.FinancialData
	net := f.NetAnnualIncome()
	monthly := f.MonthlyIncome()

	switch {
	case net > 0 && monthly > 0 && f.RequestedLoanAmount <= 24*monthly:
		return favorable("Repayment Capacity", 12, "Net annual income: ₹"+formatNumber(net),
			"Strong repayment capacity based on income vs. expenses.")
	case net <= 0:
		return unfavorable("Repayment Capacity", -15, "Negative cash flow: ₹"+formatNumber(net),
			"Focus on reducing expenses or increasing income before taking loans.")
	}
	return RuleOutcome{}
}

func existingDebtRule(d model.FarmerData) RuleOutcome {
	f := d.FinancialData
	if f.ExistingLoans < f.SeasonalIncome*0.5 {
		return favorable("Existing Debt", 5, "Manageable debt level: ₹"+formatNumber(f.ExistingLoans), "")
	}
	return unfavorable("Existing Debt", -10, "High debt burden: ₹"+formatNumber(f.ExistingLoans),
		"Consider reducing existing debt before applying for new loans.")
}

func defaultHistoryRule(d model.FarmerData) RuleOutcome {
	if !d.FinancialData.PreviousLoansDefaulted {
		return RuleOutcome{}
	}
	return unfavorable("Credit History", -20, "Previous loan defaults",
		"Work on rebuilding credit history through timely payments.")
}

func cooperativeRule(d model.FarmerData) RuleOutcome {
	if !d.CommunityData.CooperativeMember {
		return RuleOutcome{}
	}
	return favorable("Community Engagement", 7, "Cooperative member",
		"Cooperative membership shows community trust and support.")
}

// trainingRule only recommends when no programs were attended; that case
// changes neither the score nor the factor list.
func trainingRule(d model.FarmerData) RuleOutcome {
	n := d.CommunityData.TrainingPrograms
	switch {
	case n >= 3:
		return favorable("Training & Education", 6, fmt.Sprintf("%d programs attended", n),
			"Regular training participation shows commitment to improvement.")
	case n == 0:
		return RuleOutcome{Recommendations: []string{
			"Attend agricultural training programs to improve farming techniques.",
		}}
	}
	return RuleOutcome{}
}

func peerRatingRule(d model.FarmerData) RuleOutcome {
	r := d.CommunityData.PeerRating
	value := fmt.Sprintf("Peer rating: %d/10", r)
	switch {
	case r >= 8:
		return favorable("Community Reputation", 8, value,
			"High community rating indicates trustworthiness and reliability.")
	case r <= 5:
		return unfavorable("Community Reputation", -5, value,
			"Work on building better relationships within the farming community.")
	}
	return RuleOutcome{}
}

// landTenureRule penalises leased land, with a further 5 points off the
// score (not the factor) for a lease shorter than three years.
func landTenureRule(d model.FarmerData) RuleOutcome {
	if !d.LandData.IsLease() {
		return RuleOutcome{}
	}
	out := unfavorable("Land Ownership", -10, "Lease land (higher risk)",
		"Consider purchasing land for better loan terms in the future.")

	if p := d.LandData.LeasePeriod; p > 0 && p < 3 {
		out.Delta -= 5
		out.Recommendations = append(out.Recommendations,
			"Secure longer lease agreements for better creditworthiness.")
	}
	return out
}

// formatNumber renders v in the shortest exact decimal form, independent of locale.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
