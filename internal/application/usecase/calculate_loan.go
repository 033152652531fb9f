package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bibbank/agricredit/internal/application/dto"
	"github.com/bibbank/agricredit/internal/domain/model"
	"github.com/bibbank/agricredit/internal/domain/service"
)

// CalculateLoanUseCase amortizes an arbitrary loan.
type CalculateLoanUseCase struct {
	now func() time.Time
}

func NewCalculateLoanUseCase() *CalculateLoanUseCase {
	return &CalculateLoanUseCase{now: time.Now}
}

// Execute returns the EMI and totals, and the per-period schedule when requested.
func (uc *CalculateLoanUseCase) Execute(_ context.Context, req dto.CalculateLoanRequest) (dto.LoanCalculationResponse, error) {
	if err := req.Validate(); err != nil {
		return dto.LoanCalculationResponse{}, err
	}

	calc := service.Amortize(req.Principal, req.AnnualRate, req.TenureMonths)
	resp := dto.LoanCalculationResponse{
		EMI:           calc.EMI,
		TotalAmount:   calc.TotalAmount,
		TotalInterest: calc.TotalInterest,
		TenureMonths:  calc.TenureMonths,
	}

	if !req.IncludeSchedule {
		return resp, nil
	}

	start := uc.now().UTC()
	if req.StartDate != nil {
		start = req.StartDate.UTC()
	}

	schedule := model.GenerateRepaymentSchedule(
		decimal.NewFromFloat(req.Principal),
		decimal.NewFromFloat(req.AnnualRate),
		req.TenureMonths,
		start,
	)
	for _, e := range schedule {
		resp.Schedule = append(resp.Schedule, dto.RepaymentEntryResponse{
			Period:           e.Period,
			DueDate:          e.DueDate,
			Principal:        e.Principal,
			Interest:         e.Interest,
			Total:            e.Total,
			RemainingBalance: e.RemainingBalance,
		})
	}
	return resp, nil
}
