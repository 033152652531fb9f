package dto

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/bibbank/agricredit/internal/domain/model"
	"github.com/bibbank/agricredit/internal/domain/valueobject"
)

// ErrValidation marks request validation failures.
var ErrValidation = errors.New("validation failed")

var validate = validator.New(validator.WithRequiredStructEnabled())

// check runs struct validation and flattens field errors into one ErrValidation.
func check(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msg := fe.Namespace() + " failed " + fe.Tag()
		if fe.Param() != "" {
			msg += "=" + fe.Param()
		}
		msgs = append(msgs, msg)
	}
	return fmt.Errorf("%w: %s", ErrValidation, strings.Join(msgs, "; "))
}

// Validate validates the AssessFarmerRequest using the validator.
func (r *AssessFarmerRequest) Validate() error { return check(r) }

// Validate validates the GetAssessmentRequest using the validator.
func (r *GetAssessmentRequest) Validate() error { return check(r) }

// Validate validates the ListFarmerAssessmentsRequest using the validator.
func (r *ListFarmerAssessmentsRequest) Validate() error { return check(r) }

// Validate validates the ExportReportRequest using the validator.
func (r *ExportReportRequest) Validate() error { return check(r) }

// Validate validates the CalculateLoanRequest using the validator.
func (r *CalculateLoanRequest) Validate() error { return check(r) }

// ToFarmerData converts a validated request into the domain record.
func (r *AssessFarmerRequest) ToFarmerData() model.FarmerData {
	data := model.FarmerData{
		PersonalInfo: model.PersonalInfo{
			FirstName:       r.PersonalInfo.FirstName,
			MiddleName:      r.PersonalInfo.MiddleName,
			Surname:         r.PersonalInfo.Surname,
			Location:        r.PersonalInfo.Location,
			District:        r.PersonalInfo.District,
			Village:         r.PersonalInfo.Village,
			Age:             r.PersonalInfo.Age,
			ExperienceYears: r.PersonalInfo.ExperienceYears,
			FarmSize:        r.PersonalInfo.FarmSize,
		},
		FarmingData: model.FarmingData{
			CropTypes:             r.FarmingData.CropTypes,
			IrrigationType:        valueobject.IrrigationType(r.FarmingData.IrrigationType),
			RainfallDependency:    valueobject.RainfallDependency(r.FarmingData.RainfallDependency),
			AverageYield:          r.FarmingData.AverageYield,
			SoilHealthScore:       r.FarmingData.SoilHealthScore,
			WeatherRiskManagement: r.FarmingData.WeatherRiskManagement,
			FarmMechanization:     r.FarmingData.FarmMechanization,
		},
		FinancialData: model.FinancialData{
			LoanPurpose:            r.FinancialData.LoanPurpose,
			SeasonalIncome:         r.FinancialData.SeasonalIncome,
			ExpensesPerMonth:       r.FinancialData.ExpensesPerMonth,
			ExistingLoans:          r.FinancialData.ExistingLoans,
			RequestedLoanAmount:    r.FinancialData.RequestedLoanAmount,
			PreviousLoansDefaulted: r.FinancialData.PreviousLoansDefaulted,
		},
		CommunityData: model.CommunityData{
			TrainingPrograms:  r.CommunityData.TrainingPrograms,
			PeerRating:        r.CommunityData.PeerRating,
			CooperativeMember: r.CommunityData.CooperativeMember,
		},
	}

	for _, c := range r.CommunityData.ReferenceContacts {
		data.CommunityData.ReferenceContacts = append(data.CommunityData.ReferenceContacts,
			model.ReferenceContact{Name: c.Name, Phone: c.Phone})
	}

	if r.LandData != nil {
		data.LandData = &model.LandData{
			LandType:    valueobject.LandType(r.LandData.LandType),
			LeasePeriod: r.LandData.LeasePeriod,
		}
	}
	return data
}
