package usecase_test

import (
	"context"
	"sort"
	"sync"

	"github.com/bibbank/agricredit/internal/application/dto"
	"github.com/bibbank/agricredit/internal/domain/event"
	"github.com/bibbank/agricredit/internal/domain/model"
	"github.com/bibbank/agricredit/internal/domain/port"
)

// --- Mock implementations ---

type mockAssessmentRepository struct {
	mu                 sync.Mutex
	saveFunc           func(ctx context.Context, a model.Assessment) error
	findByIDFunc       func(ctx context.Context, id string) (model.Assessment, error)
	findByFarmerIDFunc func(ctx context.Context, farmerID string, limit int) ([]model.Assessment, error)
	saved              []model.Assessment
}

func (m *mockAssessmentRepository) Save(ctx context.Context, a model.Assessment) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, a)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved = append(m.saved, a)
	return nil
}

func (m *mockAssessmentRepository) FindByID(ctx context.Context, id string) (model.Assessment, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.saved {
		if a.ID() == id {
			return a, nil
		}
	}
	return model.Assessment{}, port.ErrAssessmentNotFound
}

func (m *mockAssessmentRepository) FindByFarmerID(ctx context.Context, farmerID string, limit int) ([]model.Assessment, error) {
	if m.findByFarmerIDFunc != nil {
		return m.findByFarmerIDFunc(ctx, farmerID, limit)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Assessment
	for _, a := range m.saved {
		if a.FarmerID() == farmerID {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt().After(out[j].CreatedAt()) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockAssessmentRepository) Ping(context.Context) error { return nil }

type mockEventPublisher struct {
	publishFunc     func(ctx context.Context, events ...event.DomainEvent) error
	publishedEvents []event.DomainEvent
}

func (m *mockEventPublisher) Publish(ctx context.Context, evts ...event.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, evts...)
	}
	m.publishedEvents = append(m.publishedEvents, evts...)
	return nil
}

type mockRecorder struct {
	recorded []model.CreditScore
}

func (m *mockRecorder) RecordAssessment(_ context.Context, score model.CreditScore) {
	m.recorded = append(m.recorded, score)
}

// --- Fixtures ---

func strongFarmerRequest() dto.AssessFarmerRequest {
	return dto.AssessFarmerRequest{
		FarmerID: "farmer-001",
		PersonalInfo: dto.PersonalInfoDTO{
			FirstName:       "Ramesh",
			Surname:         "Patil",
			ExperienceYears: 10,
			FarmSize:        5,
		},
		FarmingData: dto.FarmingDataDTO{
			IrrigationType:        "drip",
			RainfallDependency:    "irrigated",
			AverageYield:          4,
			SoilHealthScore:       8,
			WeatherRiskManagement: 7,
			FarmMechanization:     true,
		},
		FinancialData: dto.FinancialDataDTO{
			SeasonalIncome:      300_000,
			ExpensesPerMonth:    10_000,
			ExistingLoans:       20_000,
			RequestedLoanAmount: 100_000,
		},
		CommunityData: dto.CommunityDataDTO{
			CooperativeMember: true,
			TrainingPrograms:  4,
			PeerRating:        9,
		},
	}
}

func defaultedFarmerRequest() dto.AssessFarmerRequest {
	return dto.AssessFarmerRequest{
		FarmerID: "farmer-002",
		PersonalInfo: dto.PersonalInfoDTO{
			FirstName:       "Sunil",
			Surname:         "Jadhav",
			ExperienceYears: 2,
			FarmSize:        1,
		},
		FarmingData: dto.FarmingDataDTO{
			IrrigationType:        "rainfed",
			RainfallDependency:    "rainfed",
			AverageYield:          1,
			SoilHealthScore:       3,
			WeatherRiskManagement: 3,
		},
		FinancialData: dto.FinancialDataDTO{
			SeasonalIncome:         60_000,
			ExpensesPerMonth:       6_000,
			ExistingLoans:          40_000,
			RequestedLoanAmount:    50_000,
			PreviousLoansDefaulted: true,
		},
		CommunityData: dto.CommunityDataDTO{PeerRating: 4},
		LandData:      &dto.LandDataDTO{LandType: "lease", LeasePeriod: 1},
	}
}
