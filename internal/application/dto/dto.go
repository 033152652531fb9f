package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// AssessFarmerRequest carries the collected farmer record to be scored.
type AssessFarmerRequest struct {
	FarmerID      string           `json:"farmer_id" validate:"required,max=64"`
	PersonalInfo  PersonalInfoDTO  `json:"personal_info"`
	FarmingData   FarmingDataDTO   `json:"farming_data"`
	FinancialData FinancialDataDTO `json:"financial_data"`
	CommunityData CommunityDataDTO `json:"community_data"`
	LandData      *LandDataDTO     `json:"land_data,omitempty" validate:"omitempty"`
}

// PersonalInfoDTO identifies the farmer.
type PersonalInfoDTO struct {
	FirstName       string  `json:"first_name" validate:"required,max=100"`
	MiddleName      string  `json:"middle_name,omitempty" validate:"max=100"`
	Surname         string  `json:"surname" validate:"required,max=100"`
	Location        string  `json:"location,omitempty"`
	District        string  `json:"district,omitempty"`
	Village         string  `json:"village,omitempty"`
	Age             int     `json:"age,omitempty" validate:"omitempty,min=18,max=120"`
	ExperienceYears int     `json:"experience_years" validate:"min=1,max=100"`
	FarmSize        float64 `json:"farm_size" validate:"gt=0"`
}

// FarmingDataDTO describes production practices.
type FarmingDataDTO struct {
	CropTypes             []string `json:"crop_types,omitempty" validate:"dive,required"`
	IrrigationType        string   `json:"irrigation_type" validate:"required,oneof=drip sprinkler flood rainfed"`
	RainfallDependency    string   `json:"rainfall_dependency" validate:"required,oneof=rainfed irrigated mixed"`
	AverageYield          float64  `json:"average_yield" validate:"gte=0"`
	SoilHealthScore       int      `json:"soil_health_score" validate:"min=1,max=10"`
	WeatherRiskManagement int      `json:"weather_risk_management" validate:"min=1,max=10"`
	FarmMechanization     bool     `json:"farm_mechanization"`
}

// FinancialDataDTO holds money figures in rupees.
type FinancialDataDTO struct {
	LoanPurpose            string  `json:"loan_purpose,omitempty" validate:"max=200"`
	SeasonalIncome         float64 `json:"seasonal_income" validate:"gte=0"`
	ExpensesPerMonth       float64 `json:"expenses_per_month" validate:"gte=0"`
	ExistingLoans          float64 `json:"existing_loans" validate:"gte=0"`
	RequestedLoanAmount    float64 `json:"requested_loan_amount" validate:"gt=0"`
	PreviousLoansDefaulted bool    `json:"previous_loans_defaulted"`
}

// CommunityDataDTO captures social standing signals.
type CommunityDataDTO struct {
	ReferenceContacts []ReferenceContactDTO `json:"reference_contacts,omitempty" validate:"dive"`
	TrainingPrograms  int                   `json:"training_programs" validate:"gte=0"`
	PeerRating        int                   `json:"peer_rating" validate:"min=1,max=10"`
	CooperativeMember bool                  `json:"cooperative_member"`
}

// ReferenceContactDTO is a person who can vouch for the farmer.
type ReferenceContactDTO struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone" validate:"required"`
}

// LandDataDTO describes land tenure; lease_period is in years.
type LandDataDTO struct {
	LandType    string `json:"land_type" validate:"required,oneof=owned lease"`
	LeasePeriod int    `json:"lease_period,omitempty" validate:"gte=0,max=99"`
}

// GetAssessmentRequest identifies an assessment to retrieve.
type GetAssessmentRequest struct {
	AssessmentID string `json:"assessment_id" validate:"required"`
}

// ListFarmerAssessmentsRequest selects a farmer's assessment history.
type ListFarmerAssessmentsRequest struct {
	FarmerID string `json:"farmer_id" validate:"required,max=64"`
	Limit    int    `json:"limit" validate:"gte=0,max=100"`
}

// ExportReportRequest selects an assessment and the text export to render.
type ExportReportRequest struct {
	AssessmentID string `json:"assessment_id" validate:"required"`
	Kind         string `json:"kind" validate:"omitempty,oneof=credit_report improvement_plan"`
	Language     string `json:"language" validate:"omitempty,oneof=en hi mr"`
}

// CalculateLoanRequest describes a loan to amortize. AnnualRate is in percent.
type CalculateLoanRequest struct {
	StartDate       *time.Time `json:"start_date,omitempty"`
	Principal       float64    `json:"principal" validate:"gte=0"`
	AnnualRate      float64    `json:"annual_rate" validate:"gte=0,lte=100"`
	TenureMonths    int        `json:"tenure_months" validate:"min=1,max=600"`
	IncludeSchedule bool       `json:"include_schedule"`
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// ScoreFactorResponse is one ranked contributor to a score.
type ScoreFactorResponse struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Impact int    `json:"impact"`
}

// LoanEligibilityResponse holds the loan terms a score qualifies for.
type LoanEligibilityResponse struct {
	MaxAmount         float64 `json:"max_amount"`
	InterestRate      float64 `json:"interest_rate"`
	EMI               float64 `json:"emi"`
	RecommendedPeriod int     `json:"recommended_period"`
	Eligible          bool    `json:"eligible"`
}

// CreditScoreResponse is the external representation of a credit score.
type CreditScoreResponse struct {
	RiskLevel       string                  `json:"risk_level"`
	Factors         []ScoreFactorResponse   `json:"factors"`
	Explanation     []string                `json:"explanation"`
	Recommendations []string                `json:"recommendations"`
	LoanEligibility LoanEligibilityResponse `json:"loan_eligibility"`
	Score           int                     `json:"score"`
}

// AssessmentResponse is the external representation of an assessment.
type AssessmentResponse struct {
	CreatedAt   time.Time           `json:"created_at"`
	ID          string              `json:"id"`
	FarmerID    string              `json:"farmer_id"`
	FarmerName  string              `json:"farmer_name"`
	CreditScore CreditScoreResponse `json:"credit_score"`
}

// ListAssessmentsResponse wraps a farmer's assessment history, newest first.
type ListAssessmentsResponse struct {
	Assessments []AssessmentResponse `json:"assessments"`
}

// ReportResponse is a rendered text export.
type ReportResponse struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Content     string `json:"content"`
}

// RepaymentEntryResponse is one period of a repayment schedule.
type RepaymentEntryResponse struct {
	DueDate          time.Time       `json:"due_date"`
	Principal        decimal.Decimal `json:"principal"`
	Interest         decimal.Decimal `json:"interest"`
	Total            decimal.Decimal `json:"total"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	Period           int             `json:"period"`
}

// LoanCalculationResponse is the result of amortizing a loan.
type LoanCalculationResponse struct {
	Schedule      []RepaymentEntryResponse `json:"schedule,omitempty"`
	EMI           float64                  `json:"emi"`
	TotalAmount   float64                  `json:"total_amount"`
	TotalInterest float64                  `json:"total_interest"`
	TenureMonths  int                      `json:"tenure_months"`
}
