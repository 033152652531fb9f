package model

import "github.com/bibbank/agricredit/internal/domain/valueobject"

// FarmerData is the self-reported record a credit assessment is computed
// from. It is supplied already validated and is never mutated by the engine.
type FarmerData struct {
	PersonalInfo  PersonalInfo  `json:"personal_info"`
	FarmingData   FarmingData   `json:"farming_data"`
	FinancialData FinancialData `json:"financial_data"`
	CommunityData CommunityData `json:"community_data"`
	LandData      *LandData     `json:"land_data,omitempty"`
}

// PersonalInfo identifies the farmer and their holding.
type PersonalInfo struct {
	FirstName       string  `json:"first_name"`
	MiddleName      string  `json:"middle_name,omitempty"`
	Surname         string  `json:"surname"`
	Location        string  `json:"location,omitempty"`
	District        string  `json:"district,omitempty"`
	Village         string  `json:"village,omitempty"`
	Age             int     `json:"age,omitempty"`
	ExperienceYears int     `json:"experience_years"`
	FarmSize        float64 `json:"farm_size"` // acres
}

// FullName joins the non-empty name parts.
func (p PersonalInfo) FullName() string {
	name := p.FirstName
	for _, part := range []string{p.MiddleName, p.Surname} {
		if part == "" {
			continue
		}
		if name != "" {
			name += " "
		}
		name += part
	}
	return name
}

// FarmingData describes production practices.
type FarmingData struct {
	CropTypes             []string                       `json:"crop_types,omitempty"`
	IrrigationType        valueobject.IrrigationType     `json:"irrigation_type"`
	RainfallDependency    valueobject.RainfallDependency `json:"rainfall_dependency"`
	AverageYield          float64                        `json:"average_yield"` // tons per acre
	SoilHealthScore       int                            `json:"soil_health_score"`
	WeatherRiskManagement int                            `json:"weather_risk_management"`
	FarmMechanization     bool                           `json:"farm_mechanization"`
}

// FinancialData holds annual and monthly money figures in rupees.
type FinancialData struct {
	LoanPurpose            string  `json:"loan_purpose,omitempty"`
	SeasonalIncome         float64 `json:"seasonal_income"`
	ExpensesPerMonth       float64 `json:"expenses_per_month"`
	ExistingLoans          float64 `json:"existing_loans"`
	RequestedLoanAmount    float64 `json:"requested_loan_amount"`
	PreviousLoansDefaulted bool    `json:"previous_loans_defaulted"`
}

// MonthlyIncome is the seasonal income spread over twelve months.
func (f FinancialData) MonthlyIncome() float64 {
	return f.SeasonalIncome / 12
}

// NetAnnualIncome is seasonal income less twelve months of expenses.
func (f FinancialData) NetAnnualIncome() float64 {
	return f.SeasonalIncome - f.ExpensesPerMonth*12
}

// CommunityData captures social standing signals.
type CommunityData struct {
	ReferenceContacts []ReferenceContact `json:"reference_contacts,omitempty"`
	TrainingPrograms  int                `json:"training_programs"`
	PeerRating        int                `json:"peer_rating"`
	CooperativeMember bool               `json:"cooperative_member"`
}

// ReferenceContact is someone who can vouch for the farmer.
type ReferenceContact struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// LandData describes land tenure. LeasePeriod is in years and only
// meaningful for leased land; zero means not provided.
type LandData struct {
	LandType    valueobject.LandType `json:"land_type"`
	LeasePeriod int                  `json:"lease_period,omitempty"`
}

// IsLease reports whether the land is leased.
func (l *LandData) IsLease() bool {
	return l != nil && l.LandType == valueobject.LandLease
}
