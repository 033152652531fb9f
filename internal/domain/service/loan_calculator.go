package service

import (
	"math"

	"github.com/bibbank/agricredit/internal/domain/model"
)

// Amortize computes the reducing-balance EMI for a loan:
//
//	monthlyRate = annualRatePercent / 12 / 100
//	emi         = P * r * (1+r)^n / ((1+r)^n - 1)
//
// A zero rate splits the principal evenly. Totals are derived from the
// unrounded EMI and every output is rounded to whole rupees. Non-finite or
// negative inputs are treated as zero and a non-positive tenure yields a
// zero calculation, so the result is always finite.
func Amortize(principal, annualRatePercent float64, tenureMonths int) model.LoanCalculation {
	if tenureMonths <= 0 {
		return model.LoanCalculation{}
	}
	principal = nonNegative(principal)
	annualRatePercent = nonNegative(annualRatePercent)

	n := float64(tenureMonths)
	monthlyRate := annualRatePercent / 12 / 100

	var emi float64
	if monthlyRate == 0 {
		emi = principal / n
	} else {
		factor := math.Pow(1+monthlyRate, n)
		emi = principal * monthlyRate * factor / (factor - 1)
	}

	totalAmount := emi * n

	return model.LoanCalculation{
		EMI:           math.Round(emi),
		TotalAmount:   math.Round(totalAmount),
		TotalInterest: math.Round(totalAmount - principal),
		TenureMonths:  tenureMonths,
	}
}

func nonNegative(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
